// Package mongo persists users and transactions in MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection        = "users"
	TransactionsCollection = "transactions"
)

// Store-level sentinel errors. Handlers translate these to HTTP statuses.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Connect establishes and verifies a MongoDB connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	return client, nil
}

// Store bundles the repositories backed by one database.
type Store struct {
	db *mongo.Database
}

// NewStore creates a Store over the named database.
func NewStore(client *mongo.Client, database string) *Store {
	return &Store{db: client.Database(database)}
}

// Users returns the user repository.
func (s *Store) Users() *UserRepository {
	return &UserRepository{col: s.db.Collection(UsersCollection)}
}

// Transactions returns the transaction repository.
func (s *Store) Transactions() *TransactionRepository {
	return &TransactionRepository{col: s.db.Collection(TransactionsCollection)}
}

// EnsureIndexes creates all indexes for both collections. Run by the
// migrate command, not at server startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if err := s.Users().EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := s.Transactions().EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("transaction indexes: %w", err)
	}
	return nil
}
