// pkg/mongocat/clear.go

package mongocat

import (
	"context"
	"strings"

	"github.com/ferrytools/mongoferry/pkg/environment"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ClearCollections deletes every document from every non-system collection of
// database at ep. Collections themselves (and their indexes) are kept.
//
// This is not transactional: a failure partway leaves a partially cleared
// database. The first error is returned and the remaining collections are
// left untouched.
func ClearCollections(ctx context.Context, ep environment.EndpointConfig, database string) error {
	log := otelzap.Ctx(ctx)
	log.Info("Clearing collections",
		zap.String("environment", ep.Env.Name()),
		zap.String("database", database))

	client, err := connect(ctx, ep)
	if err != nil {
		return err
	}
	defer disconnect(ctx, client)

	db := client.Database(database)
	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return cerr.Wrapf(err, "list collections of %s at %s", database, ep.Env)
	}

	for _, name := range names {
		if strings.HasPrefix(name, "system.") {
			continue
		}
		result, err := db.Collection(name).DeleteMany(ctx, bson.D{})
		if err != nil {
			return cerr.Wrapf(err, "clear collection %s.%s", database, name)
		}
		log.Debug("Cleared collection",
			zap.String("collection", name),
			zap.Int64("deleted", result.DeletedCount))
	}

	log.Info("Collections cleared", zap.String("database", database))
	return nil
}
