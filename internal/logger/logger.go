package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps the zap logger with additional functionality
type Logger struct {
	*zap.Logger

	file *lumberjack.Logger
}

// LogConfig controls where the event log is written.
type LogConfig struct {
	// Dir is the directory holding the log files. Empty disables the file sink.
	Dir string `yaml:"dir" json:"dir" jsonschema:"title=Log Directory,default=logs"`
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" json:"level" jsonschema:"title=Log Level,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	// MaxSizeMB is the size in megabytes at which the file is rotated.
	MaxSizeMB int `yaml:"max_size_mb" json:"max_size_mb" jsonschema:"title=Max File Size (MB),default=50"`
	// MaxBackups is the number of rotated files kept.
	MaxBackups int `yaml:"max_backups" json:"max_backups" jsonschema:"title=Max Backups,default=10"`
}

// DefaultLogConfig returns the file logging defaults.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Dir:        "logs",
		Level:      "info",
		MaxSizeMB:  50,
		MaxBackups: 10,
	}
}

// NewLogger creates a new logger instance with production configuration
func NewLogger() (*Logger, error) {
	config := zap.NewProductionConfig()

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		Logger: zapLogger,
		file:   nil,
	}, nil
}

// NewFileLogger creates a human readable logger that writes to stdout and to a
// rotating file named after the process start time, e.g. logs/trading-2025-01-02 15-04-05.log.
func NewFileLogger(cfg LogConfig, startedAt time.Time) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), level),
	}

	var file *lumberjack.Logger

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		file = &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, LogFileName(startedAt)),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     0,
			Compress:   false,
			LocalTime:  true,
		}

		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(file), level))
	}

	return &Logger{
		Logger: zap.New(zapcore.NewTee(cores...)),
		file:   file,
	}, nil
}

// LogFileName returns the event log file name for a process started at t.
func LogFileName(t time.Time) string {
	return fmt.Sprintf("trading-%s.log", t.Format("2006-01-02 15-04-05"))
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	if l.Logger != nil {
		return l.Logger.Sync()
	}

	return nil
}

// Close flushes the logger and releases the log file.
func (l *Logger) Close() error {
	_ = l.Sync()

	if l.file != nil {
		return l.file.Close()
	}

	return nil
}
