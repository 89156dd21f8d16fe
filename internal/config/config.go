package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/netxfw/rxparse/internal/parser"
	"github.com/netxfw/rxparse/internal/utils/logger"
	rxerrors "github.com/netxfw/rxparse/pkg/errors"
)

// DefaultConfigTemplate defines the default configuration file with bilingual comments.
// It is written by `rxparse init`.
const DefaultConfigTemplate = `# rxparse Configuration File / rxparse 配置文件

# Logging / 日志
logging:
  # Write logs to a rotated file when enabled, otherwise to stderr.
  # 启用时写入轮转日志文件，否则输出到 stderr。
  enabled: false
  level: "info"
  path: "/var/log/rxparse/rxparse.log"
  max_size: 10
  max_backups: 5
  max_age: 30
  compress: true

# Parser / 解析器
parser:
  type: "regexp"
  # Regular expression with named capture groups.
  # 带命名捕获分组的正则表达式。
  format: '^(?<ip>\S+) \S+ \S+ \[(?<time>[^\]]+)\] "(?<method>\S+) (?<path>\S+) \S+" (?<status>\d+) (?<size>\d+|-)'
  # Ordered field list. Types: string, long, double, timestamp, boolean.
  # 有序字段列表。类型：string、long、double、timestamp、boolean。
  field_types:
    - name: ip
      type: string
    - name: time
      type: timestamp
      opts:
        time_format: "%d/%b/%Y:%T %z"
    - name: method
      type: string
    - name: path
      type: string
    - name: status
      type: long
    - name: size
      type: string
  # Drop lines that do not match instead of failing the run.
  # 丢弃不匹配的行，而不是使运行失败。
  ignore_unmatched_line: false

# Input / 输入
input:
  paths: []
  # auto, none or gzip / auto、none 或 gzip
  compression: "auto"
  charset: "utf-8"

# Output / 输出
output:
  # stdout, file, sqlite or postgres / stdout、file、sqlite 或 postgres
  type: "stdout"
  path: ""
  dsn: ""
  table: "records"
  # Optional expression over column names; records evaluating to false are dropped.
  # 可选的列名表达式；结果为 false 的记录会被丢弃。
  filter: ""

# Metrics / 指标
metrics:
  # node_exporter textfile path, empty to disable.
  # node_exporter 文本文件路径，为空则禁用。
  textfile_path: ""
`

// GlobalConfig is the whole configuration file.
// GlobalConfig 是完整的配置文件。
type GlobalConfig struct {
	Logging logger.LoggingConfig `yaml:"logging"`
	Parser  parser.Config        `yaml:"parser"`
	Input   InputConfig          `yaml:"input"`
	Output  OutputConfig         `yaml:"output"`
	Metrics MetricsConfig        `yaml:"metrics"`
}

// InputConfig describes where lines come from.
// InputConfig 描述行的来源。
type InputConfig struct {
	Paths       []string `yaml:"paths"`
	Compression string   `yaml:"compression"`
	Charset     string   `yaml:"charset"`
}

// OutputConfig describes where records go.
// OutputConfig 描述记录的去向。
type OutputConfig struct {
	Type   string `yaml:"type"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
	Table  string `yaml:"table"`
	Filter string `yaml:"filter"`
}

// MetricsConfig controls run metrics export.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path"`
}

// Clone returns a deep copy. Nil slices stay nil so a missing field_types is still missing.
// Clone 返回深拷贝。nil 切片保持为 nil。
func (c *GlobalConfig) Clone() *GlobalConfig {
	out := *c
	if c.Input.Paths != nil {
		out.Input.Paths = append([]string{}, c.Input.Paths...)
	}
	if c.Parser.FieldTypes != nil {
		out.Parser.FieldTypes = make([]parser.FieldConfig, len(c.Parser.FieldTypes))
		for i, f := range c.Parser.FieldTypes {
			if f.Opts != nil {
				opts := make(map[string]string, len(f.Opts))
				for k, v := range f.Opts {
					opts[k] = v
				}
				f.Opts = opts
			}
			out.Parser.FieldTypes[i] = f
		}
	}
	return &out
}

// Default returns a configuration populated with defaults only.
// Default 返回仅包含默认值的配置。
func Default() GlobalConfig {
	return GlobalConfig{
		Logging: logger.LoggingConfig{
			Enabled:    false,
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		},
		Parser: parser.Config{
			Type: ParserTypeRegexp,
		},
		Input: InputConfig{
			Compression: CompressionAuto,
			Charset:     DefaultCharset,
		},
		Output: OutputConfig{
			Type:  OutputStdout,
			Table: DefaultTable,
		},
	}
}

// LoadConfig loads the configuration from a YAML file on top of the defaults.
// LoadConfig 在默认值之上从 YAML 文件加载配置。
func LoadConfig(path string) (*GlobalConfig, error) {
	safePath := filepath.Clean(path)
	data, err := os.ReadFile(safePath) // #nosec G304 // path is sanitized with filepath.Clean
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML bytes on top of the defaults.
func ParseConfig(data []byte) (*GlobalConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration before any line is processed.
// Validate 在处理任何行之前检查配置。
func (c *GlobalConfig) Validate() error {
	if c.Parser.Type != "" && c.Parser.Type != ParserTypeRegexp {
		return rxerrors.NewConfigError("parser.type", c.Parser.Type)
	}
	if c.Parser.Format == "" {
		return rxerrors.NewMissingConfigError("format")
	}
	if c.Parser.FieldTypes == nil {
		return rxerrors.NewMissingConfigError("field_types")
	}

	switch c.Input.Compression {
	case "", CompressionAuto, CompressionNone, CompressionGzip:
	default:
		return rxerrors.NewConfigError("input.compression", c.Input.Compression)
	}

	switch c.Output.Type {
	case "", OutputStdout:
	case OutputFile, OutputSQLite:
		if c.Output.Path == "" {
			return rxerrors.NewMissingConfigError("output.path")
		}
	case OutputPostgres:
		if c.Output.DSN == "" {
			return rxerrors.NewMissingConfigError("output.dsn")
		}
	default:
		return rxerrors.NewConfigCauseError("output.type", c.Output.Type, rxerrors.ErrUnknownOutput)
	}
	return nil
}
