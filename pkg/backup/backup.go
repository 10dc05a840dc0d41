// pkg/backup/backup.go

// Package backup snapshots a database into a timestamped directory before a
// sync overwrites it, and restores from such a snapshot afterwards. Artifacts
// accumulate under the backup root; nothing prunes them automatically (the
// backups command lists them so operators can clean up by hand).
package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/ferrytools/mongoferry/pkg/environment"
)

// timestampLayout is the UTC timestamp encoded into artifact names.
const timestampLayout = "20060102150405"

// Artifact is one on-disk backup: the directory plus the database name and
// creation time encoded in its name. Never mutated after creation.
type Artifact struct {
	Path      string
	Database  string
	CreatedAt time.Time
}

// ArtifactName builds the directory name for a backup of database taken at t.
func ArtifactName(database string, t time.Time) string {
	return fmt.Sprintf("backup_%s_%s", database, t.UTC().Format(timestampLayout))
}

// ExportImporter is the slice of the dump tool executor the manager needs.
type ExportImporter interface {
	Export(ctx context.Context, ep environment.EndpointConfig, database, outputDir string) error
	Import(ctx context.Context, ep environment.EndpointConfig, database, inputDir string, drop, clear bool) error
}
