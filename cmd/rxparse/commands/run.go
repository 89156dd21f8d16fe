package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/netxfw/rxparse/internal/app"
	"github.com/netxfw/rxparse/internal/config"
	"github.com/netxfw/rxparse/internal/plugins"
	"github.com/netxfw/rxparse/internal/utils/fmtutil"
)

var runCmd = &cobra.Command{
	Use:   "run [paths...]",
	Short: "Parse input files and write records to the configured output",
	// Short: 解析输入文件并将记录写入配置的输出
	Long: `Parse every line of the input files in order. Paths given as arguments replace
input.paths; "-" reads standard input. Any unmatched line (unless ignored) or
conversion failure aborts the run and the output is not committed.
按顺序解析输入文件的每一行。参数中的路径替换 input.paths；"-" 表示标准输入。
任何未匹配行（除非忽略）或转换失败都会中止运行，输出不会被提交。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}

		opts := app.RunOptions{Paths: args}
		if cmd.Flags().Changed("ignore-unmatched") {
			ignore, _ := cmd.Flags().GetBool("ignore-unmatched")
			opts.IgnoreUnmatched = &ignore
		}
		if cfg.Output.Type == "" || cfg.Output.Type == config.OutputStdout {
			opts.Output = &plugins.StdoutPlugin{Writer: cmd.OutOrStdout()}
		}
		if len(opts.Paths) == 0 && len(cfg.Input.Paths) == 0 {
			return fmt.Errorf("no input: pass paths or set input.paths")
		}

		// Stop between lines on Ctrl+C; the output is left uncommitted
		// 收到 Ctrl+C 时在行间停止，输出不会被提交
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		start := time.Now()
		res, err := app.RunParse(ctx, cfg, opts)
		elapsed := time.Since(start)

		fmt.Fprintf(cmd.ErrOrStderr(), "run %s: %s file(s), %s line(s), %s record(s), %s filtered, %s skipped in %s (%s)\n",
			res.RunID,
			fmtutil.FormatCount(res.Stats.Files),
			fmtutil.FormatCount(res.Stats.Lines),
			fmtutil.FormatCount(res.Written()),
			fmtutil.FormatCount(res.Filtered),
			fmtutil.FormatCount(res.Stats.Skipped),
			fmtutil.FormatDuration(elapsed),
			fmtutil.FormatRate(res.Stats.Lines, elapsed, "lines"))
		return err
	},
}

func init() {
	runCmd.Flags().Bool("ignore-unmatched", false, "Skip lines that do not match instead of failing (overrides parser.ignore_unmatched_line)")
}
