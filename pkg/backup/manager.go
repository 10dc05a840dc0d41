// pkg/backup/manager.go

package backup

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ferrytools/mongoferry/pkg/environment"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Manager creates and restores backup artifacts under Root.
type Manager struct {
	Root string
	Tool ExportImporter

	// now is swappable so tests get deterministic artifact names.
	now func() time.Time
}

func NewManager(root string, tool ExportImporter) *Manager {
	return &Manager{Root: root, Tool: tool, now: time.Now}
}

// Create snapshots database at ep into a fresh timestamped directory.
// Failure to create the directory is fatal to the call.
func (m *Manager) Create(ctx context.Context, ep environment.EndpointConfig, database string) (Artifact, error) {
	createdAt := m.now().UTC()
	path := filepath.Join(m.Root, ArtifactName(database, createdAt))

	otelzap.Ctx(ctx).Info("Creating backup",
		zap.String("environment", ep.Env.Name()),
		zap.String("database", database),
		zap.String("path", path))

	if err := os.MkdirAll(path, 0o755); err != nil {
		return Artifact{}, cerr.Wrapf(err, "create backup directory %s", path)
	}

	if err := m.Tool.Export(ctx, ep, database, path); err != nil {
		return Artifact{}, cerr.Wrapf(err, "backup of %s from %s", database, ep.Env)
	}

	return Artifact{Path: path, Database: database, CreatedAt: createdAt}, nil
}

// Restore replays an artifact into database at ep. Restores always run with
// drop=true and clear=false regardless of the options of the sync that took
// the backup: a backup restore must reproduce the pre-sync state exactly,
// so it is always a full replace.
func (m *Manager) Restore(ctx context.Context, ep environment.EndpointConfig, database string, artifact Artifact) error {
	otelzap.Ctx(ctx).Info("Restoring backup",
		zap.String("environment", ep.Env.Name()),
		zap.String("database", database),
		zap.String("path", artifact.Path))

	return m.Tool.Import(ctx, ep, database, artifact.Path, true, false)
}

// List returns the artifacts under Root, newest first. Entries that do not
// match the artifact naming pattern are skipped.
func (m *Manager) List() ([]Artifact, error) {
	entries, err := os.ReadDir(m.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, cerr.Wrapf(err, "read backup root %s", m.Root)
	}

	var artifacts []Artifact
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		artifact, ok := ParseArtifactName(entry.Name())
		if !ok {
			continue
		}
		artifact.Path = filepath.Join(m.Root, entry.Name())
		artifacts = append(artifacts, artifact)
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].CreatedAt.After(artifacts[j].CreatedAt)
	})
	return artifacts, nil
}

// ParseArtifactName decodes backup_<database>_<timestamp>. The database name
// may itself contain underscores, so the timestamp is taken from the end.
func ParseArtifactName(name string) (Artifact, bool) {
	rest, ok := strings.CutPrefix(name, "backup_")
	if !ok {
		return Artifact{}, false
	}
	i := strings.LastIndex(rest, "_")
	if i <= 0 {
		return Artifact{}, false
	}
	database, stamp := rest[:i], rest[i+1:]
	createdAt, err := time.Parse(timestampLayout, stamp)
	if err != nil {
		return Artifact{}, false
	}
	return Artifact{Database: database, CreatedAt: createdAt}, true
}
