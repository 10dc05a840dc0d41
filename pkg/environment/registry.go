// pkg/environment/registry.go

package environment

import (
	"os"
	"sort"
	"strings"

	cerr "github.com/cockroachdb/errors"
)

const (
	uriPrefix = "MONGO_"
	uriSuffix = "_URI"
)

// ErrEnvVarNotFound is returned when an environment has no configured URI.
var ErrEnvVarNotFound = cerr.New("environment variable not found")

// EndpointConfig pairs an environment with its resolved connection string.
// The URI is resolved fresh on every Resolve call and never mutated after.
type EndpointConfig struct {
	Env Environment
	URI string
}

// Registry looks up endpoint configuration from the process environment.
// The lookup functions are injectable for tests; NewRegistry wires the real
// process environment.
type Registry struct {
	lookupEnv func(string) (string, bool)
	environ   func() []string
}

func NewRegistry() *Registry {
	return &Registry{
		lookupEnv: os.LookupEnv,
		environ:   os.Environ,
	}
}

// NewRegistryFrom builds a registry over a fixed key/value map. Test helper,
// also usable for config snapshots.
func NewRegistryFrom(vars map[string]string) *Registry {
	return &Registry{
		lookupEnv: func(key string) (string, bool) {
			v, ok := vars[key]
			return v, ok
		},
		environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
}

// VarName returns the environment variable that configures env.
func VarName(env Environment) string {
	return uriPrefix + env.Name() + uriSuffix
}

// Resolve returns the endpoint configuration for env, reading the process
// environment again on each call so configuration changes are observed.
func (r *Registry) Resolve(env Environment) (EndpointConfig, error) {
	key := VarName(env)
	uri, ok := r.lookupEnv(key)
	if !ok || uri == "" {
		return EndpointConfig{}, cerr.Wrapf(ErrEnvVarNotFound, "%s", key)
	}
	return EndpointConfig{Env: env, URI: uri}, nil
}

// ListAvailable scans configured MONGO_<ENV>_URI variables and returns the
// environment names, deduplicated and sorted.
func (r *Registry) ListAvailable() []Environment {
	seen := make(map[Environment]struct{})
	var envs []Environment

	for _, kv := range r.environ() {
		key, _, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if !strings.HasPrefix(key, uriPrefix) || !strings.HasSuffix(key, uriSuffix) {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(key, uriPrefix), uriSuffix)
		if name == "" {
			continue
		}
		env := New(name)
		if _, dup := seen[env]; dup {
			continue
		}
		seen[env] = struct{}{}
		envs = append(envs, env)
	}

	sort.Slice(envs, func(i, j int) bool { return envs[i] < envs[j] })
	return envs
}
