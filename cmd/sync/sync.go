// cmd/sync/sync.go

package sync

import (
	"fmt"
	"slices"

	"github.com/ferrytools/mongoferry/pkg/backup"
	"github.com/ferrytools/mongoferry/pkg/dumptool"
	"github.com/ferrytools/mongoferry/pkg/environment"
	"github.com/ferrytools/mongoferry/pkg/ferry_cli"
	"github.com/ferrytools/mongoferry/pkg/ferry_err"
	"github.com/ferrytools/mongoferry/pkg/ferry_io"
	"github.com/ferrytools/mongoferry/pkg/interaction"
	"github.com/ferrytools/mongoferry/pkg/mongocat"
	"github.com/ferrytools/mongoferry/pkg/syncer"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// SyncCmd synchronizes a database between two environments.
var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize a database between MongoDB environments",
	Long: `Copy a database from a source environment to a target environment.

The target can be backed up first (--backup, on by default) and is restored
from that backup if the import fails. Collections are dropped before restore
by default (--drop); --clear instead deletes documents while keeping the
collections, and is ignored when --drop is set.

Examples:
  mongoferry sync --from DEV --to LOCAL --db shop
  mongoferry sync --from DEV --to LOCAL --db shop --target-db shop_copy
  mongoferry sync --interactive
  mongoferry sync --from DEV --to LOCAL --db shop --dry-run`,
	RunE: ferry_cli.Wrap(runSync),
}

func init() {
	SyncCmd.Flags().StringP("from", "f", "", "Source environment (e.g. LOCAL, DEV)")
	SyncCmd.Flags().StringP("to", "t", "", "Target environment (e.g. LOCAL, DEV)")
	SyncCmd.Flags().StringP("db", "d", "", "Database to synchronize")
	SyncCmd.Flags().StringP("target-db", "n", "", "Target database name (defaults to source database name)")
	SyncCmd.Flags().Bool("backup", true, "Create a backup of the target before import")
	SyncCmd.Flags().BoolP("drop", "D", true, "Drop collections during import")
	SyncCmd.Flags().BoolP("clear", "c", false, "Clear collections during import (ignored if drop is enabled)")
	SyncCmd.Flags().BoolP("interactive", "i", false, "Prompt for values not provided on the command line")
	SyncCmd.Flags().Bool("dry-run", false, "Show what would be done without executing")
}

func runSync(rc *ferry_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var req syncer.Request
	var cancelled bool
	if interactive {
		req, cancelled, err = buildRequestInteractive(rc, cmd, deps)
	} else {
		req, err = buildRequestFromFlags(rc, cmd, deps)
	}
	if err != nil {
		return err
	}
	if cancelled {
		fmt.Println("Operation cancelled.")
		return nil
	}

	rc.Attributes["source"] = req.SourceEnv.Name() + "/" + req.SourceDB
	rc.Attributes["target"] = req.TargetEnv.Name() + "/" + req.TargetDB

	if dryRun {
		printDryRunSummary(req)
		return nil
	}

	printPlan(req)

	result, runErr := deps.orchestrator.Run(rc.Ctx, req)
	return report(result, runErr)
}

// deps bundles the collaborators one sync invocation needs.
type deps struct {
	registry     *environment.Registry
	orchestrator *syncer.Orchestrator
}

func buildDeps() (*deps, error) {
	settings, err := environment.LoadSettings()
	if err != nil {
		return nil, err
	}
	toolDir, err := settings.ToolPath()
	if err != nil {
		return nil, err
	}

	registry := environment.NewRegistry()
	tool := dumptool.NewExecutor(toolDir)
	backups := backup.NewManager(settings.BackupRoot(), tool)

	return &deps{
		registry:     registry,
		orchestrator: syncer.NewOrchestrator(registry, tool, backups),
	}, nil
}

// syncableDatabases lists the non-system databases of env. Used both for
// selection menus and for validating databases named on the command line, so
// admin, local and config are never offered or accepted.
func syncableDatabases(rc *ferry_io.RuntimeContext, d *deps, env environment.Environment) ([]string, error) {
	ep, err := d.registry.Resolve(env)
	if err != nil {
		return nil, cerr.Wrapf(err, "no configuration for %s", env)
	}
	names, err := mongocat.ListDatabases(rc.Ctx, ep)
	if err != nil {
		return nil, err
	}
	return mongocat.FilterSystem(names), nil
}

func buildRequestFromFlags(rc *ferry_io.RuntimeContext, cmd *cobra.Command, d *deps) (syncer.Request, error) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	db, _ := cmd.Flags().GetString("db")
	targetDB, _ := cmd.Flags().GetString("target-db")

	if from == "" {
		return syncer.Request{}, ferry_err.NewExpectedError(cerr.New("source environment is required (--from)"))
	}
	if to == "" {
		return syncer.Request{}, ferry_err.NewExpectedError(cerr.New("target environment is required (--to)"))
	}
	if db == "" {
		return syncer.Request{}, ferry_err.NewExpectedError(cerr.New("source database is required (--db)"))
	}

	sourceEnv, err := environment.Parse(from)
	if err != nil {
		return syncer.Request{}, cerr.Wrapf(err, "invalid environment %q", from)
	}
	targetEnv, err := environment.Parse(to)
	if err != nil {
		return syncer.Request{}, cerr.Wrapf(err, "invalid environment %q", to)
	}

	if sourceEnv == targetEnv {
		rc.Log.Warn("Source and target are the same environment, proceeding anyway",
			zap.String("environment", sourceEnv.Name()))
	}

	available, err := syncableDatabases(rc, d, sourceEnv)
	if err != nil {
		return syncer.Request{}, err
	}
	if !slices.Contains(available, db) {
		return syncer.Request{}, cerr.Newf("database %q not found in %s (available: %v)", db, sourceEnv, available)
	}

	if targetDB == "" {
		targetDB = db
	}

	return syncer.Request{
		SourceEnv: sourceEnv,
		TargetEnv: targetEnv,
		SourceDB:  db,
		TargetDB:  targetDB,
		Options:   optionsFromFlags(cmd),
	}, nil
}

func buildRequestInteractive(rc *ferry_io.RuntimeContext, cmd *cobra.Command, d *deps) (syncer.Request, bool, error) {
	if !interaction.IsTerminal() {
		return syncer.Request{}, false, cerr.New("interactive mode requires a terminal")
	}

	sourceEnv, err := pickEnvironment(cmd, d, "from", "1. Select source environment:")
	if err != nil {
		return syncer.Request{}, false, err
	}

	sourceDBs, err := syncableDatabases(rc, d, sourceEnv)
	if err != nil {
		return syncer.Request{}, false, err
	}
	if len(sourceDBs) == 0 {
		return syncer.Request{}, false, cerr.Newf("no databases found in %s", sourceEnv)
	}

	sourceDB, _ := cmd.Flags().GetString("db")
	if sourceDB != "" {
		if !slices.Contains(sourceDBs, sourceDB) {
			return syncer.Request{}, false, cerr.Newf("database %q not found in %s", sourceDB, sourceEnv)
		}
	} else {
		sourceDB, err = interaction.PromptSelect("2. Select source database:", sourceDBs, -1)
		if err != nil {
			return syncer.Request{}, false, err
		}
	}

	targetEnv, err := pickEnvironment(cmd, d, "to", "3. Select target environment:")
	if err != nil {
		return syncer.Request{}, false, err
	}

	if sourceEnv == targetEnv {
		fmt.Printf("Warning: source and target are the same environment (%s)\n", sourceEnv)
		if !interaction.PromptYesNo("Are you sure you want to proceed?", false) {
			return syncer.Request{}, true, nil
		}
	}

	targetDB, _ := cmd.Flags().GetString("target-db")
	if targetDB == "" {
		targetDBs, err := syncableDatabases(rc, d, targetEnv)
		if err != nil {
			return syncer.Request{}, false, err
		}
		if len(targetDBs) == 0 {
			return syncer.Request{}, false, cerr.Newf("no databases found in %s", targetEnv)
		}
		defaultIdx := slices.Index(targetDBs, sourceDB)
		targetDB, err = interaction.PromptSelect("4. Select target database:", targetDBs, defaultIdx)
		if err != nil {
			return syncer.Request{}, false, err
		}
	}

	opts := optionsFromFlags(cmd)
	fmt.Println("5. Configure sync settings:")
	opts.CreateBackup = interaction.PromptYesNo("Create backup before import", opts.CreateBackup)
	opts.DropCollections = interaction.PromptYesNo("Drop collections during import", opts.DropCollections)
	if !opts.DropCollections {
		opts.ClearCollections = interaction.PromptYesNo("Clear collections during import", opts.ClearCollections)
	}
	opts.Normalize()

	req := syncer.Request{
		SourceEnv: sourceEnv,
		TargetEnv: targetEnv,
		SourceDB:  sourceDB,
		TargetDB:  targetDB,
		Options:   opts,
	}

	fmt.Printf("%s:%s -> %s:%s  backup=%v drop=%v clear=%v\n",
		req.SourceEnv, req.SourceDB, req.TargetEnv, req.TargetDB,
		opts.CreateBackup, opts.DropCollections, opts.ClearCollections)
	if !interaction.PromptYesNo("6. Ready to proceed with synchronization?", true) {
		return syncer.Request{}, true, nil
	}

	return req, false, nil
}

// pickEnvironment resolves an environment from its flag, or prompts with the
// configured environments when the flag is unset.
func pickEnvironment(cmd *cobra.Command, d *deps, flag, label string) (environment.Environment, error) {
	raw, _ := cmd.Flags().GetString(flag)
	if raw != "" {
		return environment.Parse(raw)
	}

	envs := d.registry.ListAvailable()
	if len(envs) == 0 {
		return "", cerr.New("no MongoDB environments configured; run 'mongoferry info' for setup instructions")
	}
	names := make([]string, len(envs))
	for i, env := range envs {
		names[i] = env.Name()
	}
	chosen, err := interaction.PromptSelect(label, names, -1)
	if err != nil {
		return "", err
	}
	return environment.New(chosen), nil
}

func optionsFromFlags(cmd *cobra.Command) syncer.Options {
	createBackup, _ := cmd.Flags().GetBool("backup")
	drop, _ := cmd.Flags().GetBool("drop")
	clear, _ := cmd.Flags().GetBool("clear")
	return syncer.NewOptions(createBackup, drop, clear)
}

func printPlan(req syncer.Request) {
	fmt.Println("\nSynchronization plan:")
	fmt.Printf("  From:            %s\n", req.SourceEnv)
	fmt.Printf("  To:              %s\n", req.TargetEnv)
	fmt.Printf("  Source database: %s\n", req.SourceDB)
	fmt.Printf("  Target database: %s\n", req.TargetDB)
	fmt.Printf("  Create backup:   %s\n", yesNo(req.Options.CreateBackup))
	fmt.Printf("  Drop collections:  %s\n", yesNo(req.Options.DropCollections))
	fmt.Printf("  Clear collections: %s\n", yesNo(req.Options.ClearCollections))
}

func printDryRunSummary(req syncer.Request) {
	fmt.Println("\n=== DRY RUN MODE ===")
	fmt.Println("The following synchronization would be performed:")
	fmt.Printf("  Environments: %s -> %s\n", req.SourceEnv, req.TargetEnv)
	fmt.Printf("  Databases:    %s -> %s\n", req.SourceDB, req.TargetDB)
	fmt.Printf("  Create backup:     %s\n", yesNo(req.Options.CreateBackup))
	fmt.Printf("  Drop collections:  %s\n", yesNo(req.Options.DropCollections))
	fmt.Printf("  Clear collections: %s\n", yesNo(req.Options.ClearCollections))
	fmt.Println("\nNo changes were made.")
}

// report prints the run outcome. The import error, when present, is what the
// command fails with; the rollback result is informational.
func report(result *syncer.Result, runErr error) error {
	if runErr == nil {
		fmt.Println("\nSynchronization completed")
		return nil
	}
	if result != nil {
		switch {
		case result.RolledBack:
			fmt.Println("Target database was restored from backup.")
		case result.RestoreErr != nil:
			fmt.Printf("Backup restoration also failed: %v\n", result.RestoreErr)
		case result.Backup == nil:
			fmt.Println("No backup was available; the target may be in a partial state.")
		}
	}
	return runErr
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
