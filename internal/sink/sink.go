// Package sink implements record outputs for the parser driver.
// Package sink 实现解析驱动器的记录输出。
package sink

import (
	"io"

	"github.com/netxfw/rxparse/internal/parser"
)

// Sink is a parser sink that also releases its resources. Close after Finalize is a
// no-op for committed work; Close without Finalize discards what was not committed.
// Sink 是一个同时可以释放资源的解析器 Sink。
type Sink interface {
	parser.Sink
	io.Closer
}

// DropCounter is implemented by sinks that discard some of the records they accept.
type DropCounter interface {
	Dropped() int
}
