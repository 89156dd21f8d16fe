package config

import (
	"sync"

	"github.com/netxfw/rxparse/internal/runtime"
)

// ConfigManager loads the configuration once and hands out copies.
// ConfigManager 加载一次配置并提供副本。
type ConfigManager struct {
	configPath string
	mutex      sync.RWMutex
	config     *GlobalConfig
}

// NewConfigManager creates a new configuration manager instance
// NewConfigManager 创建新的配置管理器实例
func NewConfigManager(configPath string) *ConfigManager {
	return &ConfigManager{
		configPath: configPath,
	}
}

// LoadConfig loads the configuration from the manager's path
// LoadConfig 从管理器的路径加载配置
func (cm *ConfigManager) LoadConfig() error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cfg, err := LoadConfig(cm.configPath)
	if err != nil {
		return err
	}
	cm.config = cfg
	return nil
}

// GetConfig returns a deep copy of the current configuration, or nil before LoadConfig.
// GetConfig 返回当前配置的深拷贝。
func (cm *ConfigManager) GetConfig() *GlobalConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}
	return cm.config.Clone()
}

// GetConfigPath returns the path the manager reads from.
func (cm *ConfigManager) GetConfigPath() string {
	return cm.configPath
}

// GetConfigPath returns the configuration file path.
// If runtime.ConfigPath is set (e.g., via CLI flag or test), it takes precedence.
// GetConfigPath 返回配置文件路径。如果 runtime.ConfigPath 已设置，则优先使用它。
func GetConfigPath() string {
	if runtime.ConfigPath != "" {
		return runtime.ConfigPath
	}
	return DefaultConfigPath
}
