// pkg/ferry_cli/wrap.go

package ferry_cli

import (
	"context"

	"github.com/ferrytools/mongoferry/pkg/ferry_io"
	"github.com/spf13/cobra"
)

// Wrap adapts a RuntimeContext-based handler to a cobra RunE, ensuring panic
// recovery and outcome logging on every exit path.
func Wrap(fn func(rc *ferry_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		rc := ferry_io.NewContext(context.Background(), cmd.Name())
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		return fn(rc, cmd, args)
	}
}
