// pkg/syncer/request.go

package syncer

import (
	"github.com/ferrytools/mongoferry/pkg/environment"
	cerr "github.com/cockroachdb/errors"
)

// Request is a fully resolved sync: where to read, where to write, and how.
// The orchestrator refuses partially resolved requests up front.
type Request struct {
	SourceEnv environment.Environment
	TargetEnv environment.Environment
	SourceDB  string
	TargetDB  string
	Options   Options
}

// Validate checks that every identifier is resolved.
func (r Request) Validate() error {
	switch {
	case r.SourceEnv == "":
		return cerr.New("sync request missing source environment")
	case r.TargetEnv == "":
		return cerr.New("sync request missing target environment")
	case r.SourceDB == "":
		return cerr.New("sync request missing source database")
	case r.TargetDB == "":
		return cerr.New("sync request missing target database")
	}
	return nil
}

// CrossDatabase reports whether the sync renames the database on the way.
func (r Request) CrossDatabase() bool {
	return r.SourceDB != r.TargetDB
}
