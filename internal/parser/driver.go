package parser

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/netxfw/rxparse/internal/utils/logger"
	rxerrors "github.com/netxfw/rxparse/pkg/errors"
)

// LineSource yields lines partitioned by file boundaries.
// LineSource 按文件边界划分并产生行。
type LineSource interface {
	// NextFile advances to the next file and reports whether one exists.
	NextFile() bool
	// Poll returns the next line of the current file; ok is false at end of file.
	Poll() (line string, ok bool)
	// Name identifies the current file for error messages.
	Name() string
	// Err returns the first read error, if any.
	Err() error
}

// Sink receives records one at a time and is finalized once after clean completion.
// Sink 逐条接收记录，并在正常完成后仅被 Finalize 一次。
type Sink interface {
	Accept(ctx context.Context, rec Record) error
	Finalize(ctx context.Context) error
}

// State is the driver's position in its run.
type State int

const (
	StateIdle State = iota
	StateReading
	StateMatchedEmit
	StateSkippedLine
	StateFinished
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReading:
		return "reading"
	case StateMatchedEmit:
		return "matched_emit"
	case StateSkippedLine:
		return "skipped_line"
	case StateFinished:
		return "finished"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Stats counts what a driver has processed.
// Stats 统计驱动器已处理的内容。
type Stats struct {
	Files   int
	Lines   int
	Emitted int
	Skipped int
}

// Driver pulls lines from a source, converts them and forwards records to a sink.
// A driver runs once and is not safe for concurrent use; the Task it holds is.
// Driver 从数据源拉取行，转换后将记录转发给 Sink。
type Driver struct {
	task  *Task
	src   LineSource
	sink  Sink
	state State
	stats Stats
	log   *zap.SugaredLogger
}

// NewDriver creates a driver for one run.
func NewDriver(task *Task, src LineSource, sink Sink) *Driver {
	return &Driver{
		task: task,
		src:  src,
		sink: sink,
	}
}

// State returns the current state.
func (d *Driver) State() State {
	return d.state
}

// Stats returns the counters accumulated so far.
func (d *Driver) Stats() Stats {
	return d.stats
}

// Run processes every line of every file in order. Any error is fatal: the run stops
// and the sink is not finalized. Finalize is called exactly once on clean exhaustion.
// Run 按顺序处理每个文件的每一行。任何错误都是致命的：运行停止且不会调用 Finalize。
func (d *Driver) Run(ctx context.Context) error {
	if d.state != StateIdle {
		return rxerrors.ErrDriverReused
	}
	d.log = logger.Get(ctx)
	d.state = StateReading

	for d.src.NextFile() {
		d.stats.Files++
		name := d.src.Name()
		lineNo := 0
		d.log.Debugf("[PARSE] Reading %s", name)

		for {
			line, ok := d.src.Poll()
			if !ok {
				break
			}
			lineNo++
			d.stats.Lines++

			if err := ctx.Err(); err != nil {
				return d.fail(err)
			}
			if err := d.processLine(ctx, name, lineNo, line); err != nil {
				return d.fail(err)
			}
			d.state = StateReading
		}

		if err := d.src.Err(); err != nil {
			return d.fail(fmt.Errorf("read %s: %w", name, err))
		}
	}
	if err := d.src.Err(); err != nil {
		return d.fail(err)
	}

	if err := d.sink.Finalize(ctx); err != nil {
		return d.fail(fmt.Errorf("finalize sink: %w", err))
	}
	d.state = StateFinished
	d.log.Infof("[PARSE] Finished: files=%d lines=%d records=%d skipped=%d",
		d.stats.Files, d.stats.Lines, d.stats.Emitted, d.stats.Skipped)
	return nil
}

func (d *Driver) processLine(ctx context.Context, name string, lineNo int, line string) error {
	m := d.task.matcher.Match(line)
	if !m.Matched {
		if !d.task.ignoreUnmatchedLine {
			return rxerrors.NewUnmatchedLineError(name, lineNo, line)
		}
		d.state = StateSkippedLine
		d.stats.Skipped++
		d.log.Debugf("[PARSE] Skipped unmatched line %s:%d", name, lineNo)
		return nil
	}

	rec, err := d.task.Assemble(m)
	if err != nil {
		return fmt.Errorf("%s:%d: %w", name, lineNo, err)
	}

	d.state = StateMatchedEmit
	if err := d.sink.Accept(ctx, rec); err != nil {
		return fmt.Errorf("emit %s:%d: %w", name, lineNo, err)
	}
	d.stats.Emitted++
	return nil
}

func (d *Driver) fail(err error) error {
	d.state = StateFailed
	return err
}
