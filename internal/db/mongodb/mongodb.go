// Package mongodb probes and bootstraps the document database engine.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/confsmith/confsmith/internal/db"
)

const probeCollection = "confsmith_probe"

// Command error codes the bootstrap tolerates or inspects.
const (
	codeUnauthorized    = 13
	codeNamespaceExists = 48
	codeUserExists      = 51003
)

// MongoDB implements db.Prober for the document database.
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	config   *db.Config
}

// New creates an unconnected prober for the given connection parameters.
func New(config *db.Config) (*MongoDB, error) {
	if config.URI == "" {
		return nil, fmt.Errorf("document database URI is required")
	}
	return &MongoDB{config: config}, nil
}

// Connect establishes and verifies the connection.
func (m *MongoDB) Connect(ctx context.Context) error {
	timeout := m.config.EffectiveTimeout()
	clientOptions := options.Client().
		ApplyURI(m.config.URI).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to document database: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("failed to ping document database: %w", err)
	}

	m.client = client
	m.database = client.Database(m.config.Database)
	return nil
}

// Disconnect closes the connection.
func (m *MongoDB) Disconnect(ctx context.Context) error {
	if m.client != nil {
		return m.client.Disconnect(ctx)
	}
	return nil
}

// Ping checks the connection.
func (m *MongoDB) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("not connected to document database")
	}
	return m.client.Ping(ctx, nil)
}

// RoundTrip inserts, reads back and deletes a probe document, proving
// the engine accepts writes for the configured database.
func (m *MongoDB) RoundTrip(ctx context.Context) error {
	if m.database == nil {
		return fmt.Errorf("not connected to document database")
	}

	coll := m.database.Collection(probeCollection)
	probe := bson.M{"_id": "connection-probe", "written_at": time.Now()}

	if _, err := coll.InsertOne(ctx, probe); err != nil {
		return fmt.Errorf("probe insert failed: %w", err)
	}

	var got bson.M
	if err := coll.FindOne(ctx, bson.M{"_id": "connection-probe"}).Decode(&got); err != nil {
		return fmt.Errorf("probe read failed: %w", err)
	}

	if _, err := coll.DeleteOne(ctx, bson.M{"_id": "connection-probe"}); err != nil {
		return fmt.Errorf("probe delete failed: %w", err)
	}

	return nil
}

// Info reports the server version.
func (m *MongoDB) Info(ctx context.Context) (*db.Info, error) {
	if m.client == nil {
		return nil, fmt.Errorf("not connected to document database")
	}

	var build bson.M
	err := m.client.Database("admin").
		RunCommand(ctx, bson.D{{Key: "buildInfo", Value: 1}}).
		Decode(&build)
	if err != nil {
		return nil, fmt.Errorf("buildInfo failed: %w", err)
	}

	info := &db.Info{Engine: "document-database", Details: map[string]string{}}
	if v, ok := build["version"].(string); ok {
		info.Version = v
	}
	if arch, ok := build["targetArch"].(string); ok {
		info.Details["arch"] = arch
	}
	return info, nil
}

// Role grants one role on one database.
type Role struct {
	Role string
	DB   string
}

// UserSpec describes a user to bootstrap.
type UserSpec struct {
	Name     string
	Password string
	Roles    []Role
}

// AuthRequired reports whether the server already enforces authorization.
// A fresh install answers usersInfo without credentials; a locked-down
// one rejects it with Unauthorized.
func (m *MongoDB) AuthRequired(ctx context.Context) (bool, error) {
	err := m.client.Database("admin").
		RunCommand(ctx, bson.D{{Key: "usersInfo", Value: 1}}).
		Err()
	if err == nil {
		return false, nil
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == codeUnauthorized {
		return true, nil
	}
	return false, fmt.Errorf("usersInfo failed: %w", err)
}

// EnsureUser creates a user in the given database. A user that already
// exists is not an error; bootstrap must be re-runnable.
func (m *MongoDB) EnsureUser(ctx context.Context, dbName string, spec UserSpec) (created bool, err error) {
	roles := make(bson.A, 0, len(spec.Roles))
	for _, r := range spec.Roles {
		roles = append(roles, bson.M{"role": r.Role, "db": r.DB})
	}

	cmd := bson.D{
		{Key: "createUser", Value: spec.Name},
		{Key: "pwd", Value: spec.Password},
		{Key: "roles", Value: roles},
	}

	err = m.client.Database(dbName).RunCommand(ctx, cmd).Err()
	if err == nil {
		return true, nil
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == codeUserExists {
		return false, nil
	}
	return false, fmt.Errorf("createUser %s@%s failed: %w", spec.Name, dbName, err)
}

// EnsureCollections creates the named collections in the configured
// database, ignoring ones that already exist.
func (m *MongoDB) EnsureCollections(ctx context.Context, names ...string) error {
	for _, name := range names {
		err := m.database.CreateCollection(ctx, name)
		if err == nil {
			continue
		}
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == codeNamespaceExists {
			continue
		}
		return fmt.Errorf("create collection %s: %w", name, err)
	}
	return nil
}

// EnsureIndexes creates lookup indexes on a bootstrapped collection.
func (m *MongoDB) EnsureIndexes(ctx context.Context, collection string, keys ...string) error {
	models := make([]mongo.IndexModel, 0, len(keys))
	for _, key := range keys {
		models = append(models, mongo.IndexModel{
			Keys: bson.D{{Key: key, Value: 1}},
		})
	}
	if len(models) == 0 {
		return nil
	}

	if _, err := m.database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create indexes on %s: %w", collection, err)
	}
	return nil
}
