// Package logging sets up the debug log. The terminal belongs to the UI, so
// log output only ever goes to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu           sync.RWMutex
	globalLogger = zap.NewNop()
	logFilePath  string
)

// Initialize installs the global logger. With debug off every entry is
// discarded. With debug on a JSON logger at debug level writes to file, or
// to fex.log in the platform log directory when file is empty.
func Initialize(debug bool, file string) error {
	if !debug {
		replace(zap.NewNop(), "")
		return nil
	}

	path := file
	if path == "" {
		dir, err := logDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		path = filepath.Join(dir, "fex.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.Encoding = "json"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Sampling = nil

	logger, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	replace(logger, path)
	logger.Info("debug logging initialized", zap.String("log_file", path))
	return nil
}

func replace(logger *zap.Logger, path string) {
	mu.Lock()
	old := globalLogger
	globalLogger = logger
	logFilePath = path
	mu.Unlock()
	_ = old.Sync()
}

// L returns the global logger. It never returns nil.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// Path returns the active log file, or "" when logging is disabled.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logFilePath
}

// Sync flushes buffered entries.
func Sync() error {
	return L().Sync()
}

func logDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "fex"), nil
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "fex", "logs"), nil
	default:
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			stateHome = filepath.Join(homeDir, ".local", "state")
		}
		return filepath.Join(stateHome, "fex"), nil
	}
}
