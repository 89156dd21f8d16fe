package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/netxfw/rxparse/internal/plugins"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the record schema derived from field_types",
	// Short: 打印由 field_types 推导出的记录结构
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		task, err := plugins.CompileParser(cfg.Parser)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "INDEX\tNAME\tTYPE")
		for _, c := range task.Schema().Columns() {
			fmt.Fprintf(w, "%d\t%s\t%s\n", c.Index, c.Name, c.Type)
		}
		return w.Flush()
	},
}
