package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/domain"
)

// TransactionRepository stores transactions. Every read and write is scoped
// by owner; callers pass the authenticated user id, never raw client input.
type TransactionRepository struct {
	col *mongo.Collection
}

// ListOptions narrows a ListByOwner query. Zero values mean "no filter".
type ListOptions struct {
	Since time.Time
	Type  domain.TransactionType
	Limit int64
}

// Insert stores a new transaction.
func (r *TransactionRepository) Insert(ctx context.Context, t *domain.Transaction) error {
	if _, err := r.col.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's transactions, newest first.
func (r *TransactionRepository) ListByOwner(ctx context.Context, userID string, opts ListOptions) ([]domain.Transaction, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := r.col.Find(ctx, ownerFilter(userID, opts), findOpts)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer cursor.Close(ctx)

	txs := make([]domain.Transaction, 0)
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return txs, nil
}

// ByID finds a transaction by id without owner scoping; callers must check
// ownership before acting on the result.
func (r *TransactionRepository) ByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var t domain.Transaction
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return &t, nil
}

// Update replaces the stored transaction. The filter includes the owner so
// a stale or forged id can never touch another user's record.
func (r *TransactionRepository) Update(ctx context.Context, t *domain.Transaction) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": t.ID, "user": t.UserID}, t)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the owner's transaction by id.
func (r *TransactionRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user": userID})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the owner-scoped query indexes.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	if _, err := r.col.Indexes().CreateMany(ctx, transactionIndexModels()); err != nil {
		return fmt.Errorf("create transaction indexes: %w", err)
	}
	return nil
}

// ownerFilter builds the bson filter for an owner-scoped list query.
func ownerFilter(userID string, opts ListOptions) bson.M {
	filter := bson.M{"user": userID}
	if !opts.Since.IsZero() {
		filter["createdAt"] = bson.M{"$gte": opts.Since}
	}
	if opts.Type != "" {
		filter["type"] = opts.Type
	}
	return filter
}
