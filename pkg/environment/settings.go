// pkg/environment/settings.go

package environment

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	cerr "github.com/cockroachdb/errors"
)

const (
	mongodumpBin    = "mongodump"
	mongorestoreBin = "mongorestore"
)

// Settings holds the fixed (non-per-environment) configuration.
type Settings struct {
	// BinPath overrides where mongodump/mongorestore are looked up.
	BinPath string `env:"MONGODB_BIN_PATH"`
	// BackupDir overrides the backup root directory.
	BackupDir string `env:"BACKUP_DIR"`
}

// LoadSettings reads Settings from the process environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, cerr.Wrap(err, "load settings")
	}
	return s, nil
}

// BackupRoot returns the backup root directory, defaulting under the system
// temp directory when BACKUP_DIR is unset.
func (s Settings) BackupRoot() string {
	if s.BackupDir != "" {
		return s.BackupDir
	}
	return filepath.Join(os.TempDir(), "mongoferry_backups")
}

// ToolPath locates the directory holding both mongodump and mongorestore.
// An explicit MONGODB_BIN_PATH must contain both binaries; otherwise PATH is
// searched for mongodump and mongorestore must live next to it.
func (s Settings) ToolPath() (string, error) {
	if s.BinPath != "" {
		var missing []string
		if _, err := os.Stat(filepath.Join(s.BinPath, mongodumpBin)); err != nil {
			missing = append(missing, mongodumpBin)
		}
		if _, err := os.Stat(filepath.Join(s.BinPath, mongorestoreBin)); err != nil {
			missing = append(missing, mongorestoreBin)
		}
		if len(missing) > 0 {
			return "", cerr.Newf("MONGODB_BIN_PATH=%q missing: %s", s.BinPath, strings.Join(missing, ", "))
		}
		return s.BinPath, nil
	}

	dumpPath, err := exec.LookPath(mongodumpBin)
	if err != nil {
		return "", cerr.Wrap(err, "mongodump not found in PATH")
	}
	dir := filepath.Dir(dumpPath)
	if _, err := os.Stat(filepath.Join(dir, mongorestoreBin)); err != nil {
		return "", cerr.Newf("mongorestore not found next to mongodump in %s", dir)
	}
	return dir, nil
}

// CheckTools verifies that the MongoDB database tools are installed. Run as a
// preflight so operators get one clear error before any orchestration starts.
func (s Settings) CheckTools() error {
	_, err := s.ToolPath()
	return err
}
