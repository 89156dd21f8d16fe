package sink

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/netxfw/rxparse/internal/parser"
	"github.com/netxfw/rxparse/internal/utils/fileutil"
)

const outputFileMode = 0644

// JSONLines writes one JSON object per record, keys in schema order.
// Records stream to the writer as the buffer fills; only a file output is
// withheld until Finalize.
// JSONLines 每条记录写入一个 JSON 对象，键按 Schema 顺序排列。
type JSONLines struct {
	w    *bufio.Writer
	file *fileutil.AtomicFile
	keys [][]byte
}

// NewJSONLines writes to w. The writer is not closed.
func NewJSONLines(w io.Writer, cols []parser.Column) (*JSONLines, error) {
	keys := make([][]byte, len(cols))
	for i, c := range cols {
		k, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	return &JSONLines{w: bufio.NewWriter(w), keys: keys}, nil
}

// NewJSONLinesFile writes records to a temporary file that replaces path on Finalize.
// An aborted run leaves path as it was.
// NewJSONLinesFile 将记录写入临时文件，并在 Finalize 时替换目标文件。中止的运行不会修改目标文件。
func NewJSONLinesFile(path string, cols []parser.Column) (*JSONLines, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := fileutil.CreateAtomic(path)
	if err != nil {
		return nil, err
	}
	s, err := NewJSONLines(f, cols)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.file = f
	return s, nil
}

func (s *JSONLines) Accept(_ context.Context, rec parser.Record) error {
	if len(rec) != len(s.keys) {
		return fmt.Errorf("record has %d values, schema has %d columns", len(rec), len(s.keys))
	}
	vals := make([][]byte, len(rec))
	for i, v := range rec {
		val, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", s.keys[i], err)
		}
		vals[i] = val
	}

	s.w.WriteByte('{')
	for i, val := range vals {
		if i > 0 {
			s.w.WriteByte(',')
		}
		s.w.Write(s.keys[i])
		s.w.WriteByte(':')
		s.w.Write(val)
	}
	s.w.WriteByte('}')
	return s.w.WriteByte('\n')
}

func (s *JSONLines) Finalize(context.Context) error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	if s.file != nil {
		f := s.file
		s.file = nil
		return f.Commit(outputFileMode)
	}
	return nil
}

// Close discards an uncommitted file output. Buffered stdout records are not flushed.
func (s *JSONLines) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
