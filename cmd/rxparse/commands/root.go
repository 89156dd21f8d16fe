package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netxfw/rxparse/internal/config"
	"github.com/netxfw/rxparse/internal/runtime"
	"github.com/netxfw/rxparse/internal/utils/logger"
)

var (
	// configManager holds the configuration read by PersistentPreRun.
	// configManager 保存 PersistentPreRun 读取的配置。
	configManager *config.ConfigManager
	loadErr       error
)

var RootCmd = &cobra.Command{
	Use:   "rxparse",
	Short: "Extract typed records from log lines with a regular expression",
	// Short: 使用正则表达式从日志行中提取类型化记录
	Long: `rxparse matches each input line against a regular expression with named groups
and converts the captures into typed records (string, long, double, timestamp, boolean).
rxparse 使用带命名分组的正则表达式匹配每一输入行，并将捕获值转换为类型化记录。`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load configuration to get logging settings
		// 加载配置以获取日志设置
		configManager = config.NewConfigManager(config.GetConfigPath())
		loadErr = configManager.LoadConfig()

		logCfg := logger.LoggingConfig{Level: "info"}
		if loadErr == nil {
			logCfg = configManager.GetConfig().Logging
		}
		if runtime.LogLevel != "" {
			logCfg.Level = runtime.LogLevel
		}
		logger.Init(logCfg)

		// Inject logger into context
		// 将 Logger 注入 Context
		ctx := logger.WithContext(cmd.Context(), logger.Get(nil))
		cmd.SetContext(ctx)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	// Config file path
	// 配置文件路径
	RootCmd.PersistentFlags().StringVarP(&runtime.ConfigPath, "config", "c", "", fmt.Sprintf("Path to configuration file (default: %s)", config.DefaultConfigPath))
	RootCmd.PersistentFlags().StringVar(&runtime.LogLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")

	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(schemaCmd)
	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(versionCmd)

	RootCmd.CompletionOptions.DisableDescriptions = true
}

// requireConfig returns a copy of the loaded configuration or the reason it is unavailable.
func requireConfig() (*config.GlobalConfig, error) {
	if configManager == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	if loadErr != nil {
		return nil, fmt.Errorf("load config %s: %w", configManager.GetConfigPath(), loadErr)
	}
	return configManager.GetConfig(), nil
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
