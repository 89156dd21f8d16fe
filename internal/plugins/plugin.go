package plugins

import (
	"context"

	"github.com/netxfw/rxparse/internal/config"
	"github.com/netxfw/rxparse/internal/parser"
	"github.com/netxfw/rxparse/internal/sink"
)

// OutputPlugin defines the interface for record outputs
// OutputPlugin 定义了记录输出插件的接口。
type OutputPlugin interface {
	Name() string
	// Validate checks the output configuration for errors
	// Validate 检查输出配置是否存在错误。
	Validate(cfg config.OutputConfig) error
	// Open creates a sink for one run over the given columns
	// Open 为一次运行创建针对给定列的 Sink。
	Open(ctx context.Context, cfg config.OutputConfig, cols []parser.Column) (sink.Sink, error)
}

// ParserFactory compiles the parser section of the configuration.
type ParserFactory func(cfg parser.Config) (*parser.Task, error)
