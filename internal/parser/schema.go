package parser

import (
	"regexp"

	rxerrors "github.com/netxfw/rxparse/pkg/errors"
)

// DefaultTimeFormat is applied to timestamp fields declared without a time_format option
// (Apache common log format).
// DefaultTimeFormat 用于未声明 time_format 的 timestamp 字段（Apache 通用日志格式）。
const DefaultTimeFormat = "%d/%b/%Y:%T %z"

// OptTimeFormat is the option key holding a strptime-style layout.
const OptTimeFormat = "time_format"

// FieldKind is the closed set of value types a field can be converted to.
// FieldKind 是字段可转换的值类型的封闭集合。
type FieldKind int

const (
	KindUnsupported FieldKind = iota
	KindString
	KindLong
	KindDouble
	KindTimestamp
	KindBoolean
)

var kindNames = map[string]FieldKind{
	"string":    KindString,
	"long":      KindLong,
	"double":    KindDouble,
	"timestamp": KindTimestamp,
	"boolean":   KindBoolean,
}

// ParseKind maps a declared type name to its kind. Unknown names map to KindUnsupported.
func ParseKind(name string) FieldKind {
	return kindNames[name]
}

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindLong:
		return "long"
	case KindDouble:
		return "double"
	case KindTimestamp:
		return "timestamp"
	case KindBoolean:
		return "boolean"
	default:
		return "unsupported"
	}
}

// Config is the parser section of the configuration file.
// Config 是配置文件中的解析器部分。
type Config struct {
	Type                string        `yaml:"type"`
	Format              string        `yaml:"format"`
	FieldTypes          []FieldConfig `yaml:"field_types"`
	IgnoreUnmatchedLine bool          `yaml:"ignore_unmatched_line"`
}

// FieldConfig declares one named capture and the type it converts to.
type FieldConfig struct {
	Name string            `yaml:"name"`
	Type string            `yaml:"type"`
	Opts map[string]string `yaml:"opts,omitempty"`
}

// FieldSpec is one compiled schema entry.
// FieldSpec 是一个已编译的 Schema 条目。
type FieldSpec struct {
	Index   int
	Name    string
	Type    string // declared type name, kept for error reporting
	Kind    FieldKind
	Options map[string]string
}

// Schema is the ordered, immutable list of fields defining record shape.
// Schema 是定义记录结构的有序、不可变字段列表。
type Schema struct {
	fields []FieldSpec
}

// Column is one entry of the derived schema export.
type Column struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Field returns the i-th field spec.
func (s *Schema) Field(i int) FieldSpec {
	return s.fields[i]
}

// Columns returns the (index, name, type) export used to declare downstream columns.
// Columns 返回用于声明下游列的 (index, name, type) 导出。
func (s *Schema) Columns() []Column {
	cols := make([]Column, len(s.fields))
	for i, f := range s.fields {
		cols[i] = Column{Index: f.Index, Name: f.Name, Type: f.Type}
	}
	return cols
}

// Unsupported lists fields whose declared type is not recognized. Compile does not
// reject them; conversion fails when a line first reaches such a field.
func (s *Schema) Unsupported() []FieldSpec {
	var out []FieldSpec
	for _, f := range s.fields {
		if f.Kind == KindUnsupported {
			out = append(out, f)
		}
	}
	return out
}

// Task is the compiled, read-only unit shared by drivers: schema, pattern and policy.
// Task 是驱动器之间共享的已编译只读单元：Schema、模式和策略。
type Task struct {
	schema              *Schema
	matcher             *Matcher
	ignoreUnmatchedLine bool
}

// Compile builds a Task from configuration. It fails with a ConfigError when the
// pattern or the field list is missing, or when the pattern does not compile.
// Compile 根据配置构建 Task。
func Compile(cfg Config) (*Task, error) {
	if cfg.Format == "" {
		return nil, rxerrors.NewMissingConfigError("format")
	}
	if cfg.FieldTypes == nil {
		return nil, rxerrors.NewMissingConfigError("field_types")
	}

	re, err := regexp.Compile(cfg.Format)
	if err != nil {
		return nil, rxerrors.NewConfigCauseError("format", cfg.Format, err)
	}

	fields := make([]FieldSpec, len(cfg.FieldTypes))
	for i, fc := range cfg.FieldTypes {
		opts := make(map[string]string, len(fc.Opts)+1)
		for k, v := range fc.Opts {
			opts[k] = v
		}
		kind := ParseKind(fc.Type)
		if kind == KindTimestamp {
			if _, ok := opts[OptTimeFormat]; !ok {
				opts[OptTimeFormat] = DefaultTimeFormat
			}
		}
		fields[i] = FieldSpec{
			Index:   i,
			Name:    fc.Name,
			Type:    fc.Type,
			Kind:    kind,
			Options: opts,
		}
	}

	return &Task{
		schema:              &Schema{fields: fields},
		matcher:             &Matcher{re: re},
		ignoreUnmatchedLine: cfg.IgnoreUnmatchedLine,
	}, nil
}

// Schema returns the compiled schema.
func (t *Task) Schema() *Schema {
	return t.schema
}

// Matcher returns the compiled line matcher.
func (t *Task) Matcher() *Matcher {
	return t.matcher
}

// IgnoreUnmatchedLine reports the unmatched-line policy.
func (t *Task) IgnoreUnmatchedLine() bool {
	return t.ignoreUnmatchedLine
}
