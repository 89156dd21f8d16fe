package parser

import (
	rxerrors "github.com/netxfw/rxparse/pkg/errors"
)

// Record is one converted row, ordered like the schema.
// Record 是一行转换后的数据，顺序与 Schema 一致。
type Record []Value

// Assemble converts the captures of a match in schema order. The first failing
// field aborts assembly and no partial record is returned.
// Assemble 按 Schema 顺序转换匹配结果中的捕获值。第一个失败的字段会中止组装。
func (t *Task) Assemble(m MatchResult) (Record, error) {
	record := make(Record, 0, t.schema.Len())
	for _, f := range t.schema.fields {
		raw, ok := m.Captures[f.Name]
		if !ok {
			return nil, rxerrors.NewConversionError(f.Name, f.Type, "", rxerrors.ErrMissingCapture, nil)
		}
		v, err := f.Convert(raw)
		if err != nil {
			return nil, err
		}
		record = append(record, v)
	}
	return record, nil
}

// ParseLine matches and assembles a single line. ok is false when the line does not match.
func (t *Task) ParseLine(line string) (rec Record, ok bool, err error) {
	m := t.matcher.Match(line)
	if !m.Matched {
		return nil, false, nil
	}
	rec, err = t.Assemble(m)
	if err != nil {
		return nil, true, err
	}
	return rec, true, nil
}
