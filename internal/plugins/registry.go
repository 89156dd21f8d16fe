package plugins

import (
	"context"

	"github.com/netxfw/rxparse/internal/config"
	"github.com/netxfw/rxparse/internal/parser"
	"github.com/netxfw/rxparse/internal/sink"
	rxerrors "github.com/netxfw/rxparse/pkg/errors"
)

var (
	// outputs contains all registered output plugins
	// outputs 包含所有已注册的输出插件。
	outputs = []OutputPlugin{
		&StdoutPlugin{},
		&FilePlugin{},
		&SQLPlugin{Dialect: sink.SQLite},
		&SQLPlugin{Dialect: sink.Postgres},
	}

	// parsers maps parser.type to its compiler.
	parsers = map[string]ParserFactory{
		config.ParserTypeRegexp: parser.Compile,
	}
)

// GetOutputs returns the list of all available output plugins.
// GetOutputs 返回所有可用输出插件的列表。
func GetOutputs() []OutputPlugin {
	return outputs
}

// LookupOutput finds an output plugin by type; an empty type selects stdout.
func LookupOutput(name string) (OutputPlugin, error) {
	if name == "" {
		name = config.OutputStdout
	}
	for _, p := range outputs {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, rxerrors.NewConfigCauseError("output.type", name, rxerrors.ErrUnknownOutput)
}

// CompileParser compiles the parser section with the registered parser type.
// CompileParser 使用已注册的解析器类型编译解析器配置。
func CompileParser(cfg parser.Config) (*parser.Task, error) {
	name := cfg.Type
	if name == "" {
		name = config.ParserTypeRegexp
	}
	factory, ok := parsers[name]
	if !ok {
		return nil, rxerrors.NewConfigError("parser.type", name)
	}
	return factory(cfg)
}

// OpenOutput opens the configured output and wraps it with the record filter when set.
// OpenOutput 打开配置的输出，并在设置时使用记录过滤器包装。
func OpenOutput(ctx context.Context, cfg config.OutputConfig, cols []parser.Column) (sink.Sink, error) {
	p, err := LookupOutput(cfg.Type)
	if err != nil {
		return nil, err
	}
	return OpenWith(ctx, p, cfg, cols)
}

// OpenWith opens a specific plugin, applying validation and the record filter.
func OpenWith(ctx context.Context, p OutputPlugin, cfg config.OutputConfig, cols []parser.Column) (sink.Sink, error) {
	if err := p.Validate(cfg); err != nil {
		return nil, err
	}
	s, err := p.Open(ctx, cfg, cols)
	if err != nil {
		return nil, err
	}
	if cfg.Filter == "" {
		return s, nil
	}
	f, err := sink.NewFilter(cfg.Filter, cols, s)
	if err != nil {
		s.Close()
		return nil, rxerrors.NewConfigCauseError("output.filter", cfg.Filter, err)
	}
	return f, nil
}
