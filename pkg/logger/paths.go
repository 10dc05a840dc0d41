// pkg/logger/paths.go

package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
)

// PlatformLogPaths returns candidate log file paths in priority order. The
// first writable one wins; operator machines rarely allow /var/log writes, so
// the state-dir and temp fallbacks matter.
func PlatformLogPaths() []string {
	paths := []string{"/var/log/mongoferry/mongoferry.log"}
	if state := stateDir(); state != "" {
		paths = append(paths, filepath.Join(state, "mongoferry", "mongoferry.log"))
	}
	paths = append(paths, filepath.Join(os.TempDir(), "mongoferry", "mongoferry.log"))
	return paths
}

func stateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return xdg
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state")
}

// ResolveLogPath finds the first candidate path that can actually be opened
// for appending. Returns "" when none is writable.
func ResolveLogPath() string {
	for _, path := range PlatformLogPaths() {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			continue
		}
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			continue
		}
		_ = file.Close()
		return path
	}
	return ""
}

// GetLogFileWriter opens the log file at path for appending.
func GetLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(file), nil
}
