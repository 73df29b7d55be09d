package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP boundary.
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// CatalogConfig locates the book catalog and its index.
type CatalogConfig struct {
	Path      string `yaml:"path"`
	IndexPath string `yaml:"index_path"`
}

// ProviderConfig configures the AI provider. The API key is never read
// from the file; it comes from the environment only.
type ProviderConfig struct {
	Name           string `yaml:"name"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`
	BaseURL        string `yaml:"base_url"`
}

// CacheConfig configures the optional Redis query-embedding cache.
// An empty URL disables caching.
type CacheConfig struct {
	RedisURL string `yaml:"redis_url"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Provider ProviderConfig `yaml:"provider"`
	Cache    CacheConfig    `yaml:"cache"`
}

// Load reads a config from the given path, falling back to defaults
// when the file does not exist. Environment variables override file
// values in either case.
func Load(path string) (*AppConfig, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
		applyDefaults(cfg)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
			AllowedOrigins: []string{
				"http://localhost:3001",
				"http://localhost:3000",
			},
		},
		Catalog: CatalogConfig{
			Path:      "data/book_summaries.txt",
			IndexPath: "data/library_index.db",
		},
		Provider: ProviderConfig{
			Name:           "openai",
			EmbeddingModel: "text-embedding-3-small",
			ChatModel:      "gpt-4o-mini",
		},
	}
}

func applyDefaults(cfg *AppConfig) {
	defaults := defaultConfig()
	if cfg.Server.Host == "" {
		cfg.Server.Host = defaults.Server.Host
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaults.Server.Port
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = defaults.Server.AllowedOrigins
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = defaults.Catalog.Path
	}
	if cfg.Catalog.IndexPath == "" {
		cfg.Catalog.IndexPath = defaults.Catalog.IndexPath
	}
	if cfg.Provider.Name == "" {
		cfg.Provider.Name = defaults.Provider.Name
	}
	if cfg.Provider.EmbeddingModel == "" {
		cfg.Provider.EmbeddingModel = defaults.Provider.EmbeddingModel
	}
	if cfg.Provider.ChatModel == "" {
		cfg.Provider.ChatModel = defaults.Provider.ChatModel
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins := []string{}
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		if len(origins) > 0 {
			cfg.Server.AllowedOrigins = origins
		}
	}
	if v := os.Getenv("CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("INDEX_PATH"); v != "" {
		cfg.Catalog.IndexPath = v
	}
	if v := os.Getenv("AI_PROVIDER"); v != "" {
		cfg.Provider.Name = v
	}
	if v := os.Getenv("EMBEDDING_MODEL"); v != "" {
		cfg.Provider.EmbeddingModel = v
	}
	if v := os.Getenv("CHAT_MODEL"); v != "" {
		cfg.Provider.ChatModel = v
	}
	if v := os.Getenv("AI_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.RedisURL = v
	}
}

// APIKey returns the provider API key from the environment.
func APIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}
