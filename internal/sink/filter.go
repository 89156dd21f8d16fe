package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/netxfw/rxparse/internal/parser"
)

// Filter forwards only records for which a boolean expression over the column
// names holds. Dropped records are counted, not errors.
// Filter 仅转发列名表达式结果为 true 的记录。
type Filter struct {
	next    Sink
	program *vm.Program
	names   []string
	dropped int
}

// zeroValue gives the expression checker a typed sample for each column kind.
func zeroValue(kind parser.FieldKind) any {
	switch kind {
	case parser.KindLong:
		return int64(0)
	case parser.KindDouble:
		return float64(0)
	case parser.KindTimestamp:
		return time.Time{}
	case parser.KindBoolean:
		return false
	default:
		return ""
	}
}

// NewFilter compiles source against the columns and wraps next.
// NewFilter 针对列编译表达式并包装下一个 Sink。
func NewFilter(source string, cols []parser.Column, next Sink) (*Filter, error) {
	env := make(map[string]any, len(cols))
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		env[c.Name] = zeroValue(parser.ParseKind(c.Type))
	}

	program, err := expr.Compile(source, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", source, err)
	}
	return &Filter{next: next, program: program, names: names}, nil
}

func (f *Filter) Accept(ctx context.Context, rec parser.Record) error {
	env := make(map[string]any, len(f.names))
	for i, name := range f.names {
		if i < len(rec) {
			env[name] = rec[i]
		}
	}
	out, err := expr.Run(f.program, env)
	if err != nil {
		return fmt.Errorf("evaluate filter: %w", err)
	}
	if keep, _ := out.(bool); !keep {
		f.dropped++
		return nil
	}
	return f.next.Accept(ctx, rec)
}

func (f *Filter) Finalize(ctx context.Context) error {
	return f.next.Finalize(ctx)
}

func (f *Filter) Close() error {
	return f.next.Close()
}

// Dropped returns how many records the expression rejected.
func (f *Filter) Dropped() int {
	return f.dropped
}
