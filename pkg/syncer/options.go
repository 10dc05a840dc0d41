// pkg/syncer/options.go

package syncer

// Options are the three independent sync toggles. Dropping subsumes clearing:
// Normalize forces ClearCollections off whenever DropCollections is set, and
// every constructor and update path calls it, so the orchestrator never sees
// both at once.
type Options struct {
	CreateBackup     bool
	DropCollections  bool
	ClearCollections bool
}

// DefaultOptions mirrors the CLI defaults: backup and drop on, clear off.
func DefaultOptions() Options {
	return Options{CreateBackup: true, DropCollections: true}
}

// NewOptions builds a normalized option set.
func NewOptions(createBackup, drop, clear bool) Options {
	o := Options{
		CreateBackup:     createBackup,
		DropCollections:  drop,
		ClearCollections: clear,
	}
	o.Normalize()
	return o
}

// Normalize enforces the drop-over-clear priority.
func (o *Options) Normalize() {
	if o.DropCollections {
		o.ClearCollections = false
	}
}
