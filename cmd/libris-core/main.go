package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/libris-labs/libris-core/internal/adapters/driven/ai"
	redisadapter "github.com/libris-labs/libris-core/internal/adapters/driven/redis"
	"github.com/libris-labs/libris-core/internal/adapters/driven/sqlite"
	"github.com/libris-labs/libris-core/internal/adapters/driving/http"
	"github.com/libris-labs/libris-core/internal/adapters/driving/tui"
	"github.com/libris-labs/libris-core/internal/config"
	"github.com/libris-labs/libris-core/internal/core/domain"
	"github.com/libris-labs/libris-core/internal/core/ports/driven"
	"github.com/libris-labs/libris-core/internal/core/ports/driving"
	"github.com/libris-labs/libris-core/internal/core/services"
)

var version = "dev"

func main() {
	// Load .env if present; real environment wins
	_ = godotenv.Load()

	// Get run mode from environment (RUN_MODE) or command line arg
	mode := getEnv("RUN_MODE", "api")
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	logger.Info("libris-core starting", "version", version, "mode", mode)

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	apiKey := config.APIKey()
	provider := domain.AIProvider(cfg.Provider.Name)
	if provider == domain.AIProviderOpenAI && apiKey == "" {
		log.Fatalf("Startup failed: %v: set OPENAI_API_KEY", domain.ErrMissingAPIKey)
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// ===== Vector index (SQLite) =====
	index, err := sqlite.NewIndex(cfg.Catalog.IndexPath)
	if err != nil {
		log.Fatalf("Failed to open vector index: %v", err)
	}
	defer index.Close()

	// ===== Redis query-embedding cache (optional) =====
	var embeddingCache driven.EmbeddingCache
	if cfg.Cache.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Cache.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		cache := redisadapter.NewEmbeddingCache(redisClient)
		defer cache.Close()
		embeddingCache = cache
		logger.Info("query-embedding cache enabled")
	}

	// ===== AI services =====
	aiFactory := ai.NewFactory()
	embeddings, err := aiFactory.CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: provider,
		APIKey:   apiKey,
		Model:    cfg.Provider.EmbeddingModel,
		BaseURL:  cfg.Provider.BaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to create embedding service: %v", err)
	}
	if embeddings == nil {
		log.Fatalf("Embedding provider %q is not configured", cfg.Provider.Name)
	}
	defer embeddings.Close()

	completion, err := aiFactory.CreateCompletionService(&domain.CompletionSettings{
		Provider: provider,
		APIKey:   apiKey,
		Model:    cfg.Provider.ChatModel,
		BaseURL:  cfg.Provider.BaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to create completion service: %v", err)
	}
	if completion == nil {
		log.Fatalf("Completion provider %q is not configured", cfg.Provider.Name)
	}
	defer completion.Close()

	// ===== Catalog: load, then seed the index once =====
	catalog := services.NewCatalog(index, embeddings, embeddingCache, logger)
	if err := catalog.Load(cfg.Catalog.Path); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	if err := catalog.Populate(ctx); err != nil {
		log.Fatalf("Failed to populate index: %v", err)
	}

	// ===== Services =====
	registry := services.NewToolRegistry(catalog.Records())
	chatService := services.NewChatService(catalog, registry, completion, logger)

	switch mode {
	case "api":
		runAPI(cfg, chatService, catalog, logger)

	case "chat":
		if err := tui.Run(ctx, chatService); err != nil {
			log.Fatalf("Chat error: %v", err)
		}

	case "all":
		// API in background, interactive chat in foreground
		go runAPI(cfg, chatService, catalog, logger)
		if err := tui.Run(ctx, chatService); err != nil {
			log.Fatalf("Chat error: %v", err)
		}

	default:
		log.Fatalf("Unknown mode: %s (use: api, chat, or all)", mode)
	}
}

func runAPI(cfg *config.AppConfig, chatService driving.ChatService, libraryService driving.LibraryService, logger *slog.Logger) {
	serverCfg := http.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}

	server := http.NewServer(serverCfg, chatService, libraryService, logger)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
