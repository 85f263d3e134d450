package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/ai"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/api/handlers"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/api/middleware"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/auth"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/config"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/logger"
	mongostore "github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/store/mongo"
)

func main() {
	cfg := config.Load()

	port := flag.String("port", cfg.Port, "HTTP server port")
	flag.Parse()

	log := logger.New("api")

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	client, err := mongostore.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}()

	store := mongostore.NewStore(client, cfg.MongoDatabase)

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	var generator ai.TextGenerator
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("No Gemini API key configured - AI features will use fallbacks")
	} else {
		gen, err := ai.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Gemini client")
		}
		generator = gen
	}
	aiService := ai.NewService(generator, cfg.AITimeout, log)

	authHandler := handlers.NewAuthHandler(store.Users(), tokens, log)
	txHandler := handlers.NewTransactionsHandler(store.Transactions(), aiService, log)
	aiHandler := handlers.NewAIHandler(store.Transactions(), aiService, handlers.Budgets{
		Monthly:       cfg.MonthlyBudget,
		HighSpend:     cfg.HighSpendThreshold,
		LargeCategory: cfg.LargeCategoryThreshold,
	}, log)
	healthHandler := handlers.NewHealthHandler(generator != nil)

	authLimiter := middleware.NewRateLimiter(1, 5)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/api/health", healthHandler.Health)

	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/api/auth/register", authHandler.Register)
		r.Post("/api/auth/login", authHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens))

		r.Get("/api/auth/user", authHandler.Me)

		r.Get("/api/transactions", txHandler.List)
		r.Post("/api/transactions", txHandler.Create)
		r.Put("/api/transactions/{id}", txHandler.Update)
		r.Delete("/api/transactions/{id}", txHandler.Delete)

		r.Post("/api/ai/categorize", aiHandler.Categorize)
		r.Get("/api/ai/insights", aiHandler.Insights)
		r.Post("/api/ai/chat", aiHandler.Chat)
		r.Get("/api/ai/predictions", aiHandler.Predictions)
		r.Get("/api/ai/analytics", aiHandler.Analytics)
	})

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
