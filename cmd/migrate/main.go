// Command migrate creates the MongoDB indexes the API depends on: the
// unique email index on users and the owner-scoped query indexes on
// transactions. Safe to run repeatedly.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/config"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/logger"
	mongostore "github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/store/mongo"
)

func main() {
	cfg := config.Load()

	uri := flag.String("uri", cfg.MongoURI, "MongoDB connection URI")
	database := flag.String("db", cfg.MongoDatabase, "MongoDB database name")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	log := logger.New("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := mongostore.Connect(ctx, *uri)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}()

	store := mongostore.NewStore(client, *database)

	log.Info().Str("database", *database).Msg("Creating indexes")

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create indexes")
	}

	log.Info().Msg("Indexes created")
}
