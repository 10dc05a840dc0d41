// pkg/dumptool/dumptool.go

// Package dumptool drives the external MongoDB database tools. Export wraps
// mongodump, Import wraps mongorestore. Both work on the on-disk layout the
// tools share: <dir>/<database>/<collection>.bson.
package dumptool

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ferrytools/mongoferry/pkg/environment"
	"github.com/ferrytools/mongoferry/pkg/execute"
	"github.com/ferrytools/mongoferry/pkg/mongocat"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var (
	// ErrExportOutputMissing means mongodump reported success but produced no
	// output tree, which happens for empty or nonexistent source databases.
	ErrExportOutputMissing = cerr.New("export directory not found - database may be empty")
	// ErrImportInputMissing means the expected <dir>/<database> tree is absent;
	// mongorestore is not invoked in that case.
	ErrImportInputMissing = cerr.New("restore input directory not found")
)

// RunFunc matches execute.Run and is swappable in tests.
type RunFunc func(ctx context.Context, opts execute.Options) (string, error)

// ClearFunc matches mongocat.ClearCollections and is swappable in tests.
type ClearFunc func(ctx context.Context, ep environment.EndpointConfig, database string) error

// Executor invokes mongodump and mongorestore from a resolved tool directory.
type Executor struct {
	ToolDir string
	Run     RunFunc
	Clear   ClearFunc
}

func NewExecutor(toolDir string) *Executor {
	return &Executor{
		ToolDir: toolDir,
		Run:     execute.Run,
		Clear:   mongocat.ClearCollections,
	}
}

// Export dumps database from ep into outputDir. After a successful run
// outputDir/database must exist; a clean exit without output is reported as
// ErrExportOutputMissing.
func (e *Executor) Export(ctx context.Context, ep environment.EndpointConfig, database, outputDir string) error {
	log := otelzap.Ctx(ctx)
	log.Info("Exporting database",
		zap.String("environment", ep.Env.Name()),
		zap.String("database", database),
		zap.String("output_dir", outputDir))

	output, err := e.Run(ctx, execute.Options{
		Command: filepath.Join(e.ToolDir, "mongodump"),
		Args: []string{
			"--uri", ep.URI,
			"--db", database,
			"--out", outputDir,
		},
		Capture: true,
	})
	if err != nil {
		return cerr.Wrapf(err, "export of %s from %s failed", database, ep.Env)
	}
	log.Debug("mongodump finished", zap.String("summary", lastLine(output)))

	dumped := filepath.Join(outputDir, database)
	if _, err := os.Stat(dumped); err != nil {
		log.Error("Export produced no output", zap.String("expected", dumped))
		return cerr.Wrapf(ErrExportOutputMissing, "%s", dumped)
	}
	return nil
}

// Import restores database at ep from inputDir/database. When clear is set
// (and drop is not) all collection contents are deleted first; when drop is
// set mongorestore drops each collection before restoring it. The restore is
// always restricted to the database.* namespace so sibling trees staged in
// inputDir are never restored by accident.
func (e *Executor) Import(ctx context.Context, ep environment.EndpointConfig, database, inputDir string, drop, clear bool) error {
	log := otelzap.Ctx(ctx)
	log.Info("Importing database",
		zap.String("environment", ep.Env.Name()),
		zap.String("database", database),
		zap.String("input_dir", inputDir),
		zap.Bool("drop", drop),
		zap.Bool("clear", clear))

	source := filepath.Join(inputDir, database)
	if _, err := os.Stat(source); err != nil {
		log.Error("Restore input missing", zap.String("expected", source))
		return cerr.Wrapf(ErrImportInputMissing, "%s", source)
	}

	if clear && !drop {
		if err := e.Clear(ctx, ep, database); err != nil {
			return cerr.Wrapf(err, "clear collections of %s at %s", database, ep.Env)
		}
	}

	args := []string{
		"--uri", ep.URI,
		"--nsInclude", database + ".*",
	}
	if drop {
		args = append(args, "--drop")
	}
	args = append(args, inputDir)

	output, err := e.Run(ctx, execute.Options{
		Command: filepath.Join(e.ToolDir, "mongorestore"),
		Args:    args,
		Capture: true,
	})
	if err != nil {
		return cerr.Wrapf(err, "import of %s to %s failed", database, ep.Env)
	}
	log.Debug("mongorestore finished", zap.String("summary", lastLine(output)))
	return nil
}
