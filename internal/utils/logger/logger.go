package logger

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

const LoggerKey = contextKey("logger")

var (
	globalLogger   *zap.SugaredLogger
	fallbackOnce   sync.Once
	fallbackLogger *zap.SugaredLogger
)

// Init initializes the global logger based on configuration.
// Log output goes to stderr so that record output on stdout stays clean.
// Init 根据配置初始化全局日志记录器。日志输出到 stderr，以保持 stdout 上的记录输出干净。
func Init(cfg LoggingConfig) {
	writeSyncer := zapcore.AddSync(os.Stderr)

	if cfg.Enabled && cfg.Path != "" {
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			// 如果无法创建目录，则输出到 stderr
			zap.NewExample().Sugar().Warnf("[WARN]  Failed to create log directory: %v", err)
		} else {
			rotator := &lumberjack.Logger{
				Filename:   cfg.Path,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   cfg.Compress,
			}
			writeSyncer = zapcore.AddSync(rotator)
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	level := ParseLevel(cfg.Level)

	core := zapcore.NewCore(encoder, writeSyncer, level)
	logger := zap.New(core, zap.AddCaller())
	globalLogger = logger.Sugar()

	globalLogger.Debugf("[LOG] Logging initialized (Level: %s, Path: %s)", level, cfg.Path)
}

// ParseLevel maps a configured level name to a zap level, defaulting to info.
// ParseLevel 将配置的级别名称映射为 zap 级别，默认为 info。
func ParseLevel(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Sync flushes any buffered log entries.
// Sync 刷新所有缓存的日志条目。
func Sync() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

// Get returns the logger from context or global logger
// Get 从 Context 或全局日志记录器返回 Logger。
func Get(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if logger, ok := ctx.Value(LoggerKey).(*zap.SugaredLogger); ok {
			return logger
		}
	}
	if globalLogger == nil {
		fallbackOnce.Do(func() {
			l, err := zap.NewDevelopment()
			if err != nil {
				fallbackLogger = zap.NewExample().Sugar()
				return
			}
			fallbackLogger = l.Sugar()
		})
		return fallbackLogger
	}
	return globalLogger
}

// WithContext adds logger to context
// WithContext 将 Logger 添加到 Context。
func WithContext(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// WithRun returns a context whose logger tags every entry with the run id.
// WithRun 返回一个 Context，其 Logger 会为每条日志标记运行 ID。
func WithRun(ctx context.Context, runID string) context.Context {
	return WithContext(ctx, Get(ctx).With("run_id", runID))
}
