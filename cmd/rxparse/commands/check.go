package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/netxfw/rxparse/internal/app"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and optionally parse a sample line",
	// Short: 验证配置并可选地解析一行示例
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}

		var sample *string
		if cmd.Flags().Changed("line") {
			line, _ := cmd.Flags().GetString("line")
			sample = &line
		}

		res, err := app.CheckConfig(cfg, sample)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration OK: %d field(s)\n", len(res.Columns))
		fmt.Fprintf(out, "Pattern: %s\n", res.Pattern)
		for _, f := range res.Unsupported {
			fmt.Fprintf(out, "Warning: field %q has unsupported type %q\n", f.Name, f.Type)
		}
		if sample == nil {
			return nil
		}
		if !res.Matched {
			fmt.Fprintln(out, "Sample line does not match")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for i, c := range res.Columns {
			fmt.Fprintf(w, "%s\t%s\t%v\n", c.Name, c.Type, res.Record[i])
		}
		return w.Flush()
	},
}

func init() {
	checkCmd.Flags().StringP("line", "l", "", "Sample line to parse with the configured pattern")
}
