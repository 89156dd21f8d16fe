package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/nxadm/tail"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/netxfw/rxparse/internal/config"
	rxerrors "github.com/netxfw/rxparse/pkg/errors"
)

const maxLineSize = 16 * 1024 * 1024

// FileSource reads an ordered list of files, one file at a time.
// FileSource 按顺序逐个读取文件列表。
type FileSource struct {
	paths       []string
	compression string
	decoder     *encoding.Decoder

	idx  int
	name string
	cur  lineReader
	err  error
}

// NewFileSource creates a source over paths. compression is one of auto, none or gzip;
// charset names an encoding from the WHATWG index (empty means UTF-8).
// NewFileSource 创建文件数据源。
func NewFileSource(paths []string, compression, charset string) (*FileSource, error) {
	switch compression {
	case "":
		compression = config.CompressionAuto
	case config.CompressionAuto, config.CompressionNone, config.CompressionGzip:
	default:
		return nil, rxerrors.NewConfigError("input.compression", compression)
	}
	dec, err := lookupCharset(charset)
	if err != nil {
		return nil, err
	}
	return &FileSource{
		paths:       paths,
		compression: compression,
		decoder:     dec,
		idx:         -1,
	}, nil
}

// NextFile closes the current file and opens the next one.
func (s *FileSource) NextFile() bool {
	if s.err != nil {
		return false
	}
	s.closeCurrent()
	if s.err != nil || s.idx+1 >= len(s.paths) {
		return false
	}
	s.idx++
	s.name = s.paths[s.idx]

	r, err := s.open(s.name)
	if err != nil {
		s.err = fmt.Errorf("open %s: %w", s.name, err)
		return false
	}
	s.cur = r
	return true
}

// Poll returns the next line of the current file.
func (s *FileSource) Poll() (string, bool) {
	if s.cur == nil {
		return "", false
	}
	line, ok := s.cur.next()
	if !ok {
		if err := s.cur.err(); err != nil && s.err == nil {
			s.err = err
		}
		return "", false
	}
	return line, true
}

// Name returns the path of the current file.
func (s *FileSource) Name() string {
	return s.name
}

// Err returns the first open or read error.
func (s *FileSource) Err() error {
	return s.err
}

// Close releases the current file. The driver does not call it; callers should defer it.
// Close 释放当前文件。
func (s *FileSource) Close() error {
	s.closeCurrent()
	return nil
}

func (s *FileSource) closeCurrent() {
	if s.cur == nil {
		return
	}
	if err := s.cur.close(); err != nil && s.err == nil {
		s.err = fmt.Errorf("close %s: %w", s.name, err)
	}
	s.cur = nil
}

func (s *FileSource) open(path string) (lineReader, error) {
	if path == StdinPath {
		return s.newStreamReader(io.NopCloser(os.Stdin))
	}

	gz, err := s.isGzip(path)
	if err != nil {
		return nil, err
	}
	if gz || s.decoder != nil {
		f, err := os.Open(filepath.Clean(path)) // #nosec G304 // user supplied input file
		if err != nil {
			return nil, err
		}
		var rc io.ReadCloser = f
		if gz {
			zr, err := gzip.NewReader(f)
			if err != nil {
				f.Close()
				return nil, err
			}
			rc = &gzipFile{Reader: zr, file: f}
		}
		return s.newStreamReader(rc)
	}
	return newTailReader(path)
}

func (s *FileSource) isGzip(path string) (bool, error) {
	switch s.compression {
	case config.CompressionGzip:
		return path != StdinPath, nil
	case config.CompressionNone:
		return false, nil
	}
	if strings.HasSuffix(path, ".gz") {
		return true, nil
	}
	f, err := os.Open(filepath.Clean(path)) // #nosec G304 // user supplied input file
	if err != nil {
		return false, err
	}
	defer f.Close()
	magic := make([]byte, 2)
	n, _ := io.ReadFull(f, magic)
	return n == 2 && magic[0] == 0x1f && magic[1] == 0x8b, nil
}

func (s *FileSource) newStreamReader(rc io.ReadCloser) (lineReader, error) {
	var r io.Reader = rc
	if s.decoder != nil {
		r = transform.NewReader(rc, s.decoder)
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return &streamReader{scanner: sc, closer: rc}, nil
}

// gzipFile closes both the gzip stream and the underlying file.
type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	ferr := g.file.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

// streamReader splits a decoded byte stream into lines.
type streamReader struct {
	scanner *bufio.Scanner
	closer  io.Closer
}

func (r *streamReader) next() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	return trimCR(r.scanner.Text()), true
}

func (r *streamReader) err() error   { return r.scanner.Err() }
func (r *streamReader) close() error { return r.closer.Close() }

// tailReader reads a plain file to its end with nxadm/tail, without following it.
// tailReader 使用 nxadm/tail 读取普通文件直到结尾，不跟随追加。
type tailReader struct {
	t       *tail.Tail
	readErr error
}

func newTailReader(path string) (*tailReader, error) {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    false,
		ReOpen:    false,
		MustExist: true,
		Poll:      true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return nil, err
	}
	return &tailReader{t: t}, nil
}

func (r *tailReader) next() (string, bool) {
	line, ok := <-r.t.Lines
	if !ok {
		if err := r.t.Wait(); err != nil {
			r.readErr = err
		}
		return "", false
	}
	if line.Err != nil {
		r.readErr = line.Err
		return "", false
	}
	return trimCR(line.Text), true
}

func (r *tailReader) err() error { return r.readErr }

func (r *tailReader) close() error {
	// unblock a pending send when the file is closed before its end
	go func(lines <-chan *tail.Line) {
		for range lines {
		}
	}(r.t.Lines)
	err := r.t.Stop()
	r.t.Cleanup()
	return err
}
