// pkg/syncer/syncer.go

// Package syncer runs the synchronization pipeline:
//
//	validate -> staging dir -> [backup target] -> export source ->
//	[rename staging tree] -> import target -> {done | rollback}
//
// Failure policy, in one place so it stays auditable: a backup failure is a
// warning and the sync proceeds (backups are a safety net, not a
// precondition); an export failure aborts the sync (there is nothing valid to
// import, and the target is still untouched); an import failure triggers a
// rollback to the backup when one was taken, and the import error is what the
// operation reports either way - the rollback outcome is informational.
//
// There is no cancellation or timeout around the external tools beyond what
// the process itself enforces: an interrupted dump or restore leaves the
// target database in an indeterminate partial state, and the only recovery is
// a manual re-run. Concurrent syncs against the same target are not
// coordinated either; this is an operator-driven tool.
package syncer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ferrytools/mongoferry/pkg/backup"
	"github.com/ferrytools/mongoferry/pkg/environment"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ExportImporter is the dump-tool surface the orchestrator drives.
type ExportImporter interface {
	Export(ctx context.Context, ep environment.EndpointConfig, database, outputDir string) error
	Import(ctx context.Context, ep environment.EndpointConfig, database, inputDir string, drop, clear bool) error
}

// BackupStore takes and replays target snapshots.
type BackupStore interface {
	Create(ctx context.Context, ep environment.EndpointConfig, database string) (backup.Artifact, error)
	Restore(ctx context.Context, ep environment.EndpointConfig, database string, artifact backup.Artifact) error
}

// Resolver maps environments to endpoints.
type Resolver interface {
	Resolve(env environment.Environment) (environment.EndpointConfig, error)
}

// Orchestrator wires the collaborators for one or more sync runs.
type Orchestrator struct {
	Registry Resolver
	Tool     ExportImporter
	Backups  BackupStore

	// Staging allocates the scratch directory for one run. Defaults to a
	// fresh temp dir; swappable in tests.
	Staging func() (string, error)
}

func NewOrchestrator(registry Resolver, tool ExportImporter, backups BackupStore) *Orchestrator {
	return &Orchestrator{
		Registry: registry,
		Tool:     tool,
		Backups:  backups,
		Staging: func() (string, error) {
			return os.MkdirTemp("", "mongoferry_sync_")
		},
	}
}

// Result reports what a run did beyond its error: whether a backup artifact
// was taken, and how the rollback went if one ran. When Run returns an error
// alongside a Result, the error is the import or export failure; RestoreErr
// never replaces it.
type Result struct {
	Backup     *backup.Artifact
	RolledBack bool
	RestoreErr error
}

// Run executes one sync request. The staging directory is released on every
// exit path, including panics out of the tool layer.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	log := otelzap.Ctx(ctx)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	source, err := o.Registry.Resolve(req.SourceEnv)
	if err != nil {
		return nil, cerr.Wrapf(err, "resolve source environment %s", req.SourceEnv)
	}
	target, err := o.Registry.Resolve(req.TargetEnv)
	if err != nil {
		return nil, cerr.Wrapf(err, "resolve target environment %s", req.TargetEnv)
	}

	staging, err := o.Staging()
	if err != nil {
		return nil, cerr.Wrap(err, "create staging directory")
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			log.Warn("Failed to remove staging directory",
				zap.String("path", staging), zap.Error(err))
		}
	}()

	log.Info("Starting sync",
		zap.String("source", req.SourceEnv.Name()+"/"+req.SourceDB),
		zap.String("target", req.TargetEnv.Name()+"/"+req.TargetDB),
		zap.Bool("backup", req.Options.CreateBackup),
		zap.Bool("drop", req.Options.DropCollections),
		zap.Bool("clear", req.Options.ClearCollections),
		zap.String("staging", staging))

	result := &Result{}

	// The backup protects the data about to be overwritten, so it is taken
	// from the target. Failure here is a warning, not a stop: operators
	// without working backup tooling must still be able to sync. The
	// trade-off is that a failed import then has no rollback path.
	if req.Options.CreateBackup {
		artifact, err := o.Backups.Create(ctx, target, req.TargetDB)
		if err != nil {
			log.Warn("Backup failed, proceeding without backup", zap.Error(err))
		} else {
			result.Backup = &artifact
			log.Info("Backup created", zap.String("path", artifact.Path))
		}
	}

	if err := o.Tool.Export(ctx, source, req.SourceDB, staging); err != nil {
		return result, cerr.Wrap(err, "export failed")
	}
	log.Info("Export completed", zap.String("database", req.SourceDB))

	// mongorestore derives the destination database from the directory name,
	// so a cross-database sync renames the staged tree first.
	if req.CrossDatabase() {
		if err := renameStaged(staging, req.SourceDB, req.TargetDB); err != nil {
			return result, err
		}
		log.Info("Renamed staged export",
			zap.String("from", req.SourceDB), zap.String("to", req.TargetDB))
	}

	importErr := o.Tool.Import(ctx, target, req.TargetDB, staging,
		req.Options.DropCollections, req.Options.ClearCollections)
	if importErr == nil {
		log.Info("Import completed", zap.String("database", req.TargetDB))
		return result, nil
	}

	log.Error("Import failed", zap.Error(importErr))

	if result.Backup != nil {
		log.Info("Rolling back target from backup", zap.String("path", result.Backup.Path))
		if restoreErr := o.Backups.Restore(ctx, target, req.TargetDB, *result.Backup); restoreErr != nil {
			result.RestoreErr = restoreErr
			log.Error("Backup restoration failed", zap.Error(restoreErr))
		} else {
			result.RolledBack = true
			log.Info("Backup restored successfully")
		}
	}

	return result, cerr.Wrap(importErr, "import failed")
}

// renameStaged moves staging/source to staging/target, replacing any
// pre-existing tree at the destination.
func renameStaged(staging, source, target string) error {
	from := filepath.Join(staging, source)
	to := filepath.Join(staging, target)

	if err := os.RemoveAll(to); err != nil {
		return cerr.Wrapf(err, "remove stale staged tree %s", to)
	}
	if err := os.Rename(from, to); err != nil {
		return cerr.Wrapf(err, "rename staged export %s -> %s", source, target)
	}
	return nil
}
