package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Mongo is a MongoDB client counting documents in a collection.
type Mongo struct {
	uri      string
	client   *mongo.Client
	database string
}

// NewMongo creates an unconnected Mongo client.
// The database is taken from the URI path.
func NewMongo(uri string) *Mongo {
	return &Mongo{uri: uri}
}

// Connect creates the client and pings the primary.
func (m *Mongo) Connect(ctx context.Context) error {
	if m.client != nil {
		return ErrAlreadyConnected
	}

	cs, err := connstring.ParseAndValidate(m.uri)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}
	if cs.Database == "" {
		return ErrMissingDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.uri))
	if err != nil {
		return fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("failed to ping database: %w", err)
	}

	m.client = client
	m.database = cs.Database
	return nil
}

// Count returns the number of documents in the collection.
func (m *Mongo) Count(ctx context.Context, collection string) (int64, error) {
	if m.client == nil {
		return 0, ErrNotConnected
	}
	if collection == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidTable)
	}

	count, err := m.client.Database(m.database).Collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", collection, err)
	}
	return count, nil
}

// Disconnect closes the client if one was created.
func (m *Mongo) Disconnect(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	client := m.client
	m.client = nil
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongo client: %w", err)
	}
	return nil
}

// Database returns the database name resolved at Connect.
func (m *Mongo) Database() string {
	return m.database
}
