package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netxfw/rxparse/internal/config"
	"github.com/netxfw/rxparse/internal/utils/fileutil"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	// Short: 初始化配置
	Long: `Write the default configuration file to the --config path.
将默认配置文件写入 --config 路径。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := config.GetConfigPath()
		if err := fileutil.WriteNewFile(path, []byte(config.DefaultConfigTemplate), 0640, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing configuration file")
}
