// pkg/dumptool/dumptool_test.go

package dumptool

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ferrytools/mongoferry/pkg/environment"
	"github.com/ferrytools/mongoferry/pkg/execute"
	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEndpoint = environment.EndpointConfig{
	Env: environment.New("LOCAL"),
	URI: "mongodb://localhost:27017",
}

// fakeRun records invocations and can simulate mongodump laying down the
// output tree.
type fakeRun struct {
	calls    []execute.Options
	err      error
	mkOutput bool
}

func (f *fakeRun) run(ctx context.Context, opts execute.Options) (string, error) {
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return "", f.err
	}
	if f.mkOutput {
		// mongodump args: --uri <uri> --db <db> --out <dir>
		db := argValue(opts.Args, "--db")
		out := argValue(opts.Args, "--out")
		if db != "" && out != "" {
			if err := os.MkdirAll(filepath.Join(out, db), 0o755); err != nil {
				return "", err
			}
		}
	}
	return "done", nil
}

func argValue(args []string, flag string) string {
	i := slices.Index(args, flag)
	if i < 0 || i+1 >= len(args) {
		return ""
	}
	return args[i+1]
}

func newTestExecutor(run *fakeRun) (*Executor, *int) {
	clearCalls := 0
	e := NewExecutor("/opt/mongodb/bin")
	e.Run = run.run
	e.Clear = func(ctx context.Context, ep environment.EndpointConfig, database string) error {
		clearCalls++
		return nil
	}
	return e, &clearCalls
}

func TestExportVerifiesOutputTree(t *testing.T) {
	run := &fakeRun{mkOutput: true}
	e, _ := newTestExecutor(run)
	out := t.TempDir()

	err := e.Export(context.Background(), testEndpoint, "shop", out)
	require.NoError(t, err)

	require.Len(t, run.calls, 1)
	call := run.calls[0]
	assert.Equal(t, filepath.Join("/opt/mongodb/bin", "mongodump"), call.Command)
	assert.Equal(t, "shop", argValue(call.Args, "--db"))
	assert.Equal(t, out, argValue(call.Args, "--out"))
}

func TestExportFailsWhenToolSucceedsButOutputMissing(t *testing.T) {
	run := &fakeRun{mkOutput: false}
	e, _ := newTestExecutor(run)

	err := e.Export(context.Background(), testEndpoint, "empty_db", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExportOutputMissing)
}

func TestExportWrapsToolFailure(t *testing.T) {
	run := &fakeRun{err: cerr.New("mongodump: connection refused")}
	e, _ := newTestExecutor(run)

	err := e.Export(context.Background(), testEndpoint, "shop", t.TempDir())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrExportOutputMissing)
}

func TestImportRequiresInputTree(t *testing.T) {
	run := &fakeRun{}
	e, clearCalls := newTestExecutor(run)

	err := e.Import(context.Background(), testEndpoint, "shop", t.TempDir(), true, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrImportInputMissing)
	assert.Empty(t, run.calls, "mongorestore must not be invoked without input")
	assert.Zero(t, *clearCalls)
}

func TestImportNamespaceFilterAndDrop(t *testing.T) {
	run := &fakeRun{}
	e, clearCalls := newTestExecutor(run)

	in := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(in, "shop"), 0o755))

	err := e.Import(context.Background(), testEndpoint, "shop", in, true, false)
	require.NoError(t, err)

	require.Len(t, run.calls, 1)
	call := run.calls[0]
	assert.Equal(t, filepath.Join("/opt/mongodb/bin", "mongorestore"), call.Command)
	assert.Equal(t, "shop.*", argValue(call.Args, "--nsInclude"))
	assert.Contains(t, call.Args, "--drop")
	assert.Equal(t, in, call.Args[len(call.Args)-1], "input root is the final argument")
	assert.Zero(t, *clearCalls, "drop skips the clear pass")
}

func TestImportClearsBeforeRestoreWhenNotDropping(t *testing.T) {
	run := &fakeRun{}
	e, clearCalls := newTestExecutor(run)

	in := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(in, "shop"), 0o755))

	err := e.Import(context.Background(), testEndpoint, "shop", in, false, true)
	require.NoError(t, err)
	assert.Equal(t, 1, *clearCalls)

	require.Len(t, run.calls, 1)
	assert.NotContains(t, run.calls[0].Args, "--drop")
}

func TestLastLine(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"", ""},
		{"one line", "one line"},
		{"first\nsecond\n", "second"},
		{"first\n\n  \n", "first"},
	}
	for _, tt := range tests {
		if got := lastLine(tt.output); got != tt.want {
			t.Errorf("lastLine(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}
