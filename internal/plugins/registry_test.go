package plugins

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netxfw/rxparse/internal/config"
	"github.com/netxfw/rxparse/internal/parser"
	"github.com/netxfw/rxparse/internal/sink"
	rxerrors "github.com/netxfw/rxparse/pkg/errors"
)

var cols = []parser.Column{
	{Index: 0, Name: "path", Type: "string"},
	{Index: 1, Name: "status", Type: "long"},
}

// TestGetOutputs tests that every configured output type has a plugin
// TestGetOutputs 测试每种输出类型都有对应的插件
func TestGetOutputs(t *testing.T) {
	var names []string
	for _, p := range GetOutputs() {
		names = append(names, p.Name())
	}
	assert.ElementsMatch(t, []string{
		config.OutputStdout, config.OutputFile, config.OutputSQLite, config.OutputPostgres,
	}, names)
}

func TestLookupOutput(t *testing.T) {
	p, err := LookupOutput("")
	require.NoError(t, err)
	assert.Equal(t, config.OutputStdout, p.Name())

	_, err = LookupOutput("kafka")
	assert.True(t, errors.Is(err, rxerrors.ErrUnknownOutput))
}

func TestValidate(t *testing.T) {
	file, _ := LookupOutput(config.OutputFile)
	assert.True(t, errors.Is(file.Validate(config.OutputConfig{}), rxerrors.ErrConfigMissing))

	sqlite, _ := LookupOutput(config.OutputSQLite)
	assert.True(t, errors.Is(sqlite.Validate(config.OutputConfig{}), rxerrors.ErrConfigMissing))
	assert.NoError(t, sqlite.Validate(config.OutputConfig{Path: "x.db"}))

	pg, _ := LookupOutput(config.OutputPostgres)
	assert.True(t, errors.Is(pg.Validate(config.OutputConfig{Path: "x"}), rxerrors.ErrConfigMissing))
	assert.NoError(t, pg.Validate(config.OutputConfig{DSN: "postgres://localhost/db"}))
}

func TestCompileParser(t *testing.T) {
	task, err := CompileParser(parser.Config{
		Format:     `(?<a>.*)`,
		FieldTypes: []parser.FieldConfig{{Name: "a", Type: "string"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, task.Schema().Len())

	_, err = CompileParser(parser.Config{Type: "csv", Format: ".*", FieldTypes: []parser.FieldConfig{}})
	assert.True(t, errors.Is(err, rxerrors.ErrConfigInvalid))
}

// TestOpenWith_Filter tests the stdout plugin wrapped in a record filter
// TestOpenWith_Filter 测试被记录过滤器包装的 stdout 插件
func TestOpenWith_Filter(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()

	s, err := OpenWith(ctx, &StdoutPlugin{Writer: &buf}, config.OutputConfig{Filter: `status != 200`}, cols)
	require.NoError(t, err)
	_, isFilter := s.(*sink.Filter)
	assert.True(t, isFilter)

	require.NoError(t, s.Accept(ctx, parser.Record{"/a", int64(200)}))
	require.NoError(t, s.Accept(ctx, parser.Record{"/b", int64(404)}))
	require.NoError(t, s.Finalize(ctx))
	assert.Equal(t, `{"path":"/b","status":404}`+"\n", buf.String())
}

func TestOpenWith_BadFilter(t *testing.T) {
	_, err := OpenWith(context.Background(), &StdoutPlugin{Writer: &bytes.Buffer{}}, config.OutputConfig{Filter: `status +`}, cols)
	assert.True(t, errors.Is(err, rxerrors.ErrConfigInvalid))
}

func TestOpenOutput_SQLite(t *testing.T) {
	ctx := context.Background()
	s, err := OpenOutput(ctx, config.OutputConfig{
		Type: config.OutputSQLite,
		Path: filepath.Join(t.TempDir(), "out.db"),
	}, cols)
	require.NoError(t, err)
	require.NoError(t, s.Accept(ctx, parser.Record{"/", int64(200)}))
	require.NoError(t, s.Finalize(ctx))
	require.NoError(t, s.Close())
}
