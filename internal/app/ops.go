package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/netxfw/rxparse/internal/config"
	"github.com/netxfw/rxparse/internal/metrics"
	"github.com/netxfw/rxparse/internal/parser"
	"github.com/netxfw/rxparse/internal/plugins"
	"github.com/netxfw/rxparse/internal/sink"
	"github.com/netxfw/rxparse/internal/source"
	"github.com/netxfw/rxparse/internal/utils/logger"
)

// RunOptions override configuration for a single run.
// RunOptions 覆盖单次运行的配置。
type RunOptions struct {
	// Paths replaces input.paths when non-empty.
	Paths []string
	// IgnoreUnmatched replaces parser.ignore_unmatched_line when non-nil.
	IgnoreUnmatched *bool
	// Output, when set, is used instead of the plugin selected by output.type.
	Output plugins.OutputPlugin
}

// Result summarizes a run.
type Result struct {
	RunID string
	Stats parser.Stats
	// Filtered counts records the output filter dropped; they are included in Stats.Emitted.
	Filtered int
}

// Written returns how many records reached the output.
func (r Result) Written() int {
	return r.Stats.Emitted - r.Filtered
}

/**
 * RunParse compiles the parser, opens the input files and the output, and drives one run.
 * The output is finalized only when every line was processed without a fatal error.
 * RunParse 编译解析器，打开输入文件和输出，并驱动一次运行。只有在所有行都无致命错误地处理完成后才会 Finalize 输出。
 */
func RunParse(ctx context.Context, cfg *config.GlobalConfig, opts RunOptions) (Result, error) {
	runID := uuid.NewString()
	ctx = logger.WithRun(ctx, runID)
	log := logger.Get(ctx)
	res := Result{RunID: runID}

	if cfg == nil {
		return res, fmt.Errorf("no configuration loaded")
	}
	parserCfg := cfg.Parser
	if opts.IgnoreUnmatched != nil {
		parserCfg.IgnoreUnmatchedLine = *opts.IgnoreUnmatched
	}
	paths := cfg.Input.Paths
	if len(opts.Paths) > 0 {
		paths = opts.Paths
	}

	task, err := plugins.CompileParser(parserCfg)
	if err != nil {
		return res, err
	}
	for _, f := range task.Schema().Unsupported() {
		log.Warnf("[WARN]  Field %q declares unsupported type %q; lines reaching it will fail", f.Name, f.Type)
	}

	src, err := source.NewFileSource(paths, cfg.Input.Compression, cfg.Input.Charset)
	if err != nil {
		return res, err
	}
	defer src.Close()

	cols := task.Schema().Columns()
	output := opts.Output
	if output == nil {
		output, err = plugins.LookupOutput(cfg.Output.Type)
		if err != nil {
			return res, err
		}
	}
	out, err := plugins.OpenWith(ctx, output, cfg.Output, cols)
	if err != nil {
		return res, fmt.Errorf("open output %s: %w", output.Name(), err)
	}
	defer out.Close()

	log.Infof("[RUN] Parsing %d input(s) into %s", len(paths), output.Name())
	driver := parser.NewDriver(task, src, out)
	runErr := driver.Run(ctx)
	res.Stats = driver.Stats()
	if dc, ok := out.(sink.DropCounter); ok {
		res.Filtered = dc.Dropped()
	}

	metrics.Observe(res.Stats, res.Filtered, runErr)
	if cfg.Metrics.TextfilePath != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			log.Warnf("[WARN]  Failed to write metrics textfile: %v", err)
		}
	}

	if runErr != nil {
		log.Errorf("[RUN] Aborted in state %s: %v", driver.State(), runErr)
		return res, runErr
	}
	return res, nil
}

// CheckResult is the outcome of validating a configuration.
type CheckResult struct {
	Pattern     string
	Columns     []parser.Column
	Unsupported []parser.FieldSpec
	// Record is set when a sample line was given and it matched.
	Record  parser.Record
	Matched bool
}

// CheckConfig validates the configuration and optionally parses one sample line.
// CheckConfig 验证配置，并可选地解析一行示例。
func CheckConfig(cfg *config.GlobalConfig, sample *string) (CheckResult, error) {
	var res CheckResult
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	task, err := plugins.CompileParser(cfg.Parser)
	if err != nil {
		return res, err
	}
	output, err := plugins.LookupOutput(cfg.Output.Type)
	if err != nil {
		return res, err
	}
	if err := output.Validate(cfg.Output); err != nil {
		return res, err
	}

	res.Pattern = task.Matcher().Pattern()
	res.Columns = task.Schema().Columns()
	res.Unsupported = task.Schema().Unsupported()
	if sample == nil {
		return res, nil
	}

	rec, ok, err := task.ParseLine(*sample)
	if err != nil {
		return res, err
	}
	res.Record = rec
	res.Matched = ok
	return res, nil
}
