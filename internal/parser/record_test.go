package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rxerrors "github.com/netxfw/rxparse/pkg/errors"
)

const accessLine = `127.0.0.1 - - [10/Oct/2020:13:55:36 -0700] "GET /x HTTP/1.1" 200`

// TestParseLine_AccessLog tests the end-to-end access log scenario
// TestParseLine_AccessLog 测试端到端的访问日志场景
func TestParseLine_AccessLog(t *testing.T) {
	task, err := Compile(accessLogConfig())
	require.NoError(t, err)

	rec, ok, err := task.ParseLine(accessLine)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, rec, task.Schema().Len())

	assert.Equal(t, "127.0.0.1", rec[0])
	want := time.Date(2020, time.October, 10, 13, 55, 36, 0, time.FixedZone("", -7*3600))
	assert.True(t, want.Equal(rec[1].(time.Time)), "got %v", rec[1])
	assert.Equal(t, "GET", rec[2])
}

func TestParseLine_NoMatch(t *testing.T) {
	task, err := Compile(accessLogConfig())
	require.NoError(t, err)

	rec, ok, err := task.ParseLine("garbage")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, rec)
}

// TestAssemble_SchemaOrder tests that record order follows the schema, not the pattern
// TestAssemble_SchemaOrder 测试记录顺序遵循 Schema 而不是模式
func TestAssemble_SchemaOrder(t *testing.T) {
	task, err := Compile(Config{
		Format: `^(?<a>\d+) (?<b>\S+) (?<c>\S+)$`,
		FieldTypes: []FieldConfig{
			{Name: "c", Type: "boolean"},
			{Name: "a", Type: "long"},
			{Name: "b", Type: "double"},
			{Name: "a", Type: "string"},
		},
	})
	require.NoError(t, err)

	rec, ok, err := task.ParseLine("12 0.5 yes")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Record{true, int64(12), 0.5, "12"}, rec)
}

// TestAssemble_FirstFailureAborts tests that no partial record is returned
// TestAssemble_FirstFailureAborts 测试不会返回部分记录
func TestAssemble_FirstFailureAborts(t *testing.T) {
	task, err := Compile(Config{
		Format: `^(?<a>\S+) (?<b>\S+)$`,
		FieldTypes: []FieldConfig{
			{Name: "a", Type: "string"},
			{Name: "b", Type: "long"},
		},
	})
	require.NoError(t, err)

	rec, ok, err := task.ParseLine("x y")
	assert.True(t, ok)
	assert.Nil(t, rec)
	assert.True(t, errors.Is(err, rxerrors.ErrInvalidInteger))
}

// TestAssemble_MissingCapture tests a declared field without a participating group
// TestAssemble_MissingCapture 测试声明的字段没有参与匹配的分组
func TestAssemble_MissingCapture(t *testing.T) {
	task, err := Compile(Config{
		Format: `^(?<a>\w+)(?: (?<b>\w+))?$`,
		FieldTypes: []FieldConfig{
			{Name: "a", Type: "string"},
			{Name: "b", Type: "string"},
		},
	})
	require.NoError(t, err)

	_, _, err = task.ParseLine("only")
	require.Error(t, err)
	assert.True(t, errors.Is(err, rxerrors.ErrMissingCapture))

	var convErr *rxerrors.ConversionError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, "b", convErr.Field)

	// a field name that is not a group at all behaves the same way
	task, err = Compile(Config{
		Format:     `^(?<a>\w+)$`,
		FieldTypes: []FieldConfig{{Name: "nope", Type: "string"}},
	})
	require.NoError(t, err)
	_, _, err = task.ParseLine("word")
	assert.True(t, errors.Is(err, rxerrors.ErrMissingCapture))
}

func TestAssemble_UnsupportedTypeIsLazy(t *testing.T) {
	task, err := Compile(Config{
		Format:     `^(?<id>\S+)$`,
		FieldTypes: []FieldConfig{{Name: "id", Type: "uuid"}},
	})
	require.NoError(t, err, "unsupported types are not rejected at compile time")

	_, _, err = task.ParseLine("abc")
	assert.True(t, errors.Is(err, rxerrors.ErrUnsupportedType))
}
