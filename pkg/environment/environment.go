// pkg/environment/environment.go

// Package environment resolves named MongoDB deployments ("LOCAL", "DEV",
// "PROD", ...) to connection endpoints from process environment variables of
// the form MONGO_<ENV>_URI. The set of environments is open: anything
// configured is discoverable, there is no fixed list.
package environment

import (
	"strings"

	cerr "github.com/cockroachdb/errors"
)

// Environment names a MongoDB deployment. The value is always stored
// upper-cased, so two spellings of the same name compare equal.
type Environment string

// ErrInvalidEnvironment is returned for empty or whitespace-only names.
var ErrInvalidEnvironment = cerr.New("invalid environment")

// New normalizes a raw name into an Environment. Callers that handle operator
// input should prefer Parse, which rejects blank input.
func New(name string) Environment {
	return Environment(strings.ToUpper(strings.TrimSpace(name)))
}

// Parse validates and normalizes operator input.
func Parse(raw string) (Environment, error) {
	if strings.TrimSpace(raw) == "" {
		return "", cerr.Wrap(ErrInvalidEnvironment, "empty environment name")
	}
	return New(raw), nil
}

func (e Environment) Name() string {
	return string(e)
}

func (e Environment) String() string {
	return string(e)
}
