// Package source provides line sources for the parser driver: local files read with
// tail, gzip-compressed files, standard input and in-memory slices.
// Package source 为解析驱动器提供行数据源：通过 tail 读取的本地文件、gzip 压缩文件、标准输入和内存切片。
package source

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	rxerrors "github.com/netxfw/rxparse/pkg/errors"
)

// StdinPath selects standard input in a path list.
const StdinPath = "-"

// lineReader reads the lines of one opened file.
type lineReader interface {
	next() (string, bool)
	err() error
	close() error
}

// lookupCharset returns the decoder for a configured charset, or nil for UTF-8.
// Charsets are configured, never detected.
// lookupCharset 返回配置字符集的解码器，UTF-8 返回 nil。
func lookupCharset(name string) (*encoding.Decoder, error) {
	if name == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, rxerrors.NewConfigCauseError("input.charset", name, err)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return nil, nil
	}
	return enc.NewDecoder(), nil
}

func trimCR(line string) string {
	return strings.TrimSuffix(line, "\r")
}
