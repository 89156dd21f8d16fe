package plugins

import (
	"context"
	"io"
	"os"

	"github.com/netxfw/rxparse/internal/config"
	"github.com/netxfw/rxparse/internal/parser"
	"github.com/netxfw/rxparse/internal/sink"
	rxerrors "github.com/netxfw/rxparse/pkg/errors"
)

// StdoutPlugin writes JSON lines to a writer, os.Stdout by default.
type StdoutPlugin struct {
	Writer io.Writer
}

func (p *StdoutPlugin) Name() string { return config.OutputStdout }

func (p *StdoutPlugin) Validate(config.OutputConfig) error { return nil }

func (p *StdoutPlugin) Open(_ context.Context, _ config.OutputConfig, cols []parser.Column) (sink.Sink, error) {
	w := p.Writer
	if w == nil {
		w = os.Stdout
	}
	return sink.NewJSONLines(w, cols)
}

// FilePlugin writes JSON lines to output.path.
type FilePlugin struct{}

func (p *FilePlugin) Name() string { return config.OutputFile }

func (p *FilePlugin) Validate(cfg config.OutputConfig) error {
	if cfg.Path == "" {
		return rxerrors.NewMissingConfigError("output.path")
	}
	return nil
}

func (p *FilePlugin) Open(_ context.Context, cfg config.OutputConfig, cols []parser.Column) (sink.Sink, error) {
	return sink.NewJSONLinesFile(cfg.Path, cols)
}

// SQLPlugin inserts records into a SQL table through a dialect.
// SQLPlugin 通过方言将记录插入 SQL 表。
type SQLPlugin struct {
	Dialect sink.Dialect
}

func (p *SQLPlugin) Name() string { return p.Dialect.Name }

func (p *SQLPlugin) Validate(cfg config.OutputConfig) error {
	if p.dsn(cfg) == "" {
		if p.Dialect.Name == config.OutputSQLite {
			return rxerrors.NewMissingConfigError("output.path")
		}
		return rxerrors.NewMissingConfigError("output.dsn")
	}
	return nil
}

func (p *SQLPlugin) Open(ctx context.Context, cfg config.OutputConfig, cols []parser.Column) (sink.Sink, error) {
	table := cfg.Table
	if table == "" {
		table = config.DefaultTable
	}
	return sink.NewSQL(ctx, p.Dialect, p.dsn(cfg), table, cols)
}

// dsn prefers an explicit DSN; sqlite falls back to the output path.
func (p *SQLPlugin) dsn(cfg config.OutputConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	if p.Dialect.Name == config.OutputSQLite {
		return cfg.Path
	}
	return ""
}
