package config

const (
	// DefaultConfigPath is the standard location for the rxparse configuration file.
	// DefaultConfigPath 是 rxparse 配置文件的标准位置。
	DefaultConfigPath = "/etc/rxparse/config.yaml"

	// Input compression modes / 输入压缩模式
	CompressionAuto = "auto"
	CompressionNone = "none"
	CompressionGzip = "gzip"

	// Output types / 输出类型
	OutputStdout   = "stdout"
	OutputFile     = "file"
	OutputSQLite   = "sqlite"
	OutputPostgres = "postgres"

	// ParserTypeRegexp is the only parser type; it is also the default.
	ParserTypeRegexp = "regexp"

	DefaultCharset = "utf-8"
	DefaultTable   = "records"
)
