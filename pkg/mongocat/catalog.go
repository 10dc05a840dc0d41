// pkg/mongocat/catalog.go

// Package mongocat is the thin driver layer: it lists databases and
// collections at an endpoint and clears collection contents. Everything else
// (dump, restore) goes through the external database tools.
package mongocat

import (
	"context"

	"github.com/ferrytools/mongoferry/pkg/environment"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// systemDatabases are never offered as sync sources or targets.
var systemDatabases = map[string]struct{}{
	"admin":  {},
	"local":  {},
	"config": {},
}

func connect(ctx context.Context, ep environment.EndpointConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(ep.URI))
	if err != nil {
		return nil, cerr.Wrapf(err, "connect to %s", ep.Env)
	}
	return client, nil
}

func disconnect(ctx context.Context, client *mongo.Client) {
	if err := client.Disconnect(ctx); err != nil {
		otelzap.Ctx(ctx).Warn("Failed to disconnect mongo client", zap.Error(err))
	}
}

// ListDatabases returns every database name the server reports, system
// databases included. Callers feeding a selection or validation must filter
// with FilterSystem.
func ListDatabases(ctx context.Context, ep environment.EndpointConfig) ([]string, error) {
	client, err := connect(ctx, ep)
	if err != nil {
		return nil, err
	}
	defer disconnect(ctx, client)

	names, err := client.ListDatabaseNames(ctx, bson.D{})
	if err != nil {
		return nil, cerr.Wrapf(err, "list databases at %s", ep.Env)
	}
	return names, nil
}

// IsSystemDatabase reports whether name is one of admin, local or config.
func IsSystemDatabase(name string) bool {
	_, ok := systemDatabases[name]
	return ok
}

// FilterSystem drops system databases from names, preserving order.
func FilterSystem(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if IsSystemDatabase(name) {
			continue
		}
		out = append(out, name)
	}
	return out
}
