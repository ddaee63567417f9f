// Package loader fetches the three dashboard collections from MongoDB as one
// snapshot per render. The fetch is read-only and unfiltered; every
// connection is opened and released within a single Load call.
package loader

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/npardra/clientdash/pkg/config"
	"github.com/npardra/clientdash/pkg/model"
)

// Config holds the connection settings. Both fields are required and come
// from the environment; there are no baked-in defaults.
type Config struct {
	URI      string
	Database string
}

// Validate reports a configuration error before any connection is attempted.
func (c Config) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("%w: %s is required", model.ErrConfig, config.EnvMongoURI)
	}
	if c.Database == "" {
		return fmt.Errorf("%w: %s is required", model.ErrConfig, config.EnvMongoDB)
	}
	return nil
}

// SnapshotLoader is the boundary handlers load through, so tests can swap in
// a fixture-backed fake.
type SnapshotLoader interface {
	Load(ctx context.Context) (*model.Snapshot, error)
}

// Mongo loads snapshots from a MongoDB database.
type Mongo struct {
	cfg Config
}

// NewMongo validates the configuration and returns a loader.
func NewMongo(cfg Config) (*Mongo, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Mongo{cfg: cfg}, nil
}

// Load connects, reads the clients, memberships, and transactions
// collections in full, normalizes them, and disconnects. Driver failures
// come back as ErrConnection with the cause; unparseable rows as ErrParse.
func (m *Mongo) Load(ctx context.Context) (*model.Snapshot, error) {
	connectCtx, cancel := context.WithTimeout(ctx, config.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(m.cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", model.ErrConnection, err)
	}
	defer func() {
		if derr := client.Disconnect(context.Background()); derr != nil {
			log.Printf("Failed to disconnect from MongoDB: %v", derr)
		}
	}()

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("%w: ping: %v", model.ErrConnection, err)
	}

	db := client.Database(m.cfg.Database)

	var rawClients []wireClient
	if err := readAll(ctx, db, config.CollectionClients, &rawClients); err != nil {
		return nil, err
	}
	var rawMemberships []wireMembership
	if err := readAll(ctx, db, config.CollectionMemberships, &rawMemberships); err != nil {
		return nil, err
	}
	var rawTransactions []wireTransaction
	if err := readAll(ctx, db, config.CollectionTransactions, &rawTransactions); err != nil {
		return nil, err
	}

	return Normalize(rawClients, rawMemberships, rawTransactions)
}

// readAll drains one collection into out, which must be a pointer to a slice
// of wire records.
func readAll(ctx context.Context, db *mongo.Database, collection string, out interface{}) error {
	cur, err := db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("%w: find %s: %v", model.ErrConnection, collection, err)
	}
	defer cur.Close(ctx)

	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("%w: read %s: %v", model.ErrConnection, collection, err)
	}
	return nil
}
