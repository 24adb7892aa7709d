package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Embedding providers.
const (
	ProviderHTTP   = "http"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Vector backends.
const (
	BackendSQLiteVec = "sqlite-vec"
	BackendQdrant    = "qdrant"
)

// EmbeddingConfig configures the embedding provider.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider" toml:"provider"`
	BaseURL   string `yaml:"base_url" toml:"base_url"`
	APIKey    string `yaml:"api_key" toml:"api_key"`
	ModelName string `yaml:"model_name" toml:"model_name"`
	Dimension int    `yaml:"dimension" toml:"dimension"`
	BatchSize int    `yaml:"batch_size" toml:"batch_size"`
	Workers   int    `yaml:"workers" toml:"workers"`
}

// Enabled reports whether embeddings are generated.
func (e EmbeddingConfig) Enabled() bool {
	return e.Provider != ProviderNone
}

// QdrantConfig contains connection details for the Qdrant vector backend.
type QdrantConfig struct {
	URL        string `yaml:"url" toml:"url"`
	Collection string `yaml:"collection" toml:"collection"`
}

// Config holds all configuration for the application.
type Config struct {
	DBPath          string          `yaml:"db_path" toml:"db_path"`
	DocsRoot        string          `yaml:"docs_root" toml:"docs_root"`
	ChunkSize       int             `yaml:"chunk_size" toml:"chunk_size"`
	ChunkOverlap    int             `yaml:"chunk_overlap" toml:"chunk_overlap"`
	Embedding       EmbeddingConfig `yaml:"embedding" toml:"embedding"`
	VectorBackend   string          `yaml:"vector_backend" toml:"vector_backend"`
	Qdrant          QdrantConfig    `yaml:"qdrant" toml:"qdrant"`
	APIPort         string          `yaml:"api_port" toml:"api_port"`
	ReindexSchedule string          `yaml:"reindex_schedule" toml:"reindex_schedule"`
	LogLevel        string          `yaml:"log_level" toml:"log_level"`
	LogFormat       string          `yaml:"log_format" toml:"log_format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		DBPath:       "docs.db",
		ChunkSize:    1500,
		ChunkOverlap: 200,
		Embedding: EmbeddingConfig{
			Provider:  ProviderHTTP,
			BaseURL:   "http://localhost:8081",
			ModelName: "BAAI/bge-small-en-v1.5",
			Dimension: 384,
			BatchSize: 32,
			Workers:   2,
		},
		VectorBackend: BackendSQLiteVec,
		Qdrant: QdrantConfig{
			URL:        "http://localhost:6333",
			Collection: "docs",
		},
		APIPort:   "9000",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load builds the configuration from, in increasing precedence: defaults,
// the config file at path (or $DOCS_MCP_CONFIG when path is empty), a .env
// file and environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("DOCS_MCP_CONFIG")
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	loadDotEnv()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile decodes a YAML or TOML config file over cfg.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file extension %q (want .yaml, .yml or .toml)", ext)
	}
	return nil
}

// loadDotEnv loads the first .env found in the working directory or up to
// five of its parents. Variables already set take precedence.
func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 6; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func applyEnv(cfg *Config) error {
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.DocsRoot = getEnv("DOCS_ROOT", cfg.DocsRoot)
	cfg.Embedding.Provider = getEnv("EMBEDDING_PROVIDER", cfg.Embedding.Provider)
	cfg.Embedding.BaseURL = getEnv("EMBEDDING_BASE_URL", cfg.Embedding.BaseURL)
	cfg.Embedding.APIKey = getEnv("EMBEDDING_API_KEY", cfg.Embedding.APIKey)
	cfg.Embedding.ModelName = getEnv("EMBEDDING_MODEL_NAME", cfg.Embedding.ModelName)
	cfg.VectorBackend = getEnv("VECTOR_BACKEND", cfg.VectorBackend)
	cfg.Qdrant.URL = getEnv("QDRANT_URL", cfg.Qdrant.URL)
	cfg.Qdrant.Collection = getEnv("QDRANT_COLLECTION", cfg.Qdrant.Collection)
	cfg.APIPort = getEnv("API_PORT", cfg.APIPort)
	cfg.ReindexSchedule = getEnv("REINDEX_SCHEDULE", cfg.ReindexSchedule)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	ints := []struct {
		key string
		dst *int
	}{
		{"CHUNK_SIZE", &cfg.ChunkSize},
		{"CHUNK_OVERLAP", &cfg.ChunkOverlap},
		{"EMBEDDING_DIMENSION", &cfg.Embedding.Dimension},
		{"EMBEDDING_BATCH_SIZE", &cfg.Embedding.BatchSize},
		{"EMBEDDING_WORKERS", &cfg.Embedding.Workers},
	}
	for _, v := range ints {
		n, err := getEnvInt(v.key, *v.dst)
		if err != nil {
			return err
		}
		*v.dst = n
	}
	return nil
}

// Validate checks value ranges and enumerations. Errors name the offending key.
func (c *Config) Validate() error {
	var errs []error

	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH is required"))
	}
	if c.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("CHUNK_SIZE must be greater than 0, got %d", c.ChunkSize))
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		errs = append(errs, fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", c.ChunkOverlap))
	}

	switch c.Embedding.Provider {
	case ProviderHTTP, ProviderOpenAI, ProviderNone:
	default:
		errs = append(errs, fmt.Errorf("EMBEDDING_PROVIDER must be one of http, openai, none, got %q", c.Embedding.Provider))
	}
	if c.Embedding.Enabled() {
		if c.Embedding.Dimension <= 0 {
			errs = append(errs, fmt.Errorf("EMBEDDING_DIMENSION must be greater than 0, got %d", c.Embedding.Dimension))
		}
		if c.Embedding.BatchSize <= 0 {
			errs = append(errs, fmt.Errorf("EMBEDDING_BATCH_SIZE must be greater than 0, got %d", c.Embedding.BatchSize))
		}
		if c.Embedding.Workers <= 0 {
			errs = append(errs, fmt.Errorf("EMBEDDING_WORKERS must be greater than 0, got %d", c.Embedding.Workers))
		}
		if c.Embedding.ModelName == "" {
			errs = append(errs, errors.New("EMBEDDING_MODEL_NAME is required when embeddings are enabled"))
		}
	}

	switch c.VectorBackend {
	case BackendSQLiteVec:
	case BackendQdrant:
		if c.Qdrant.URL == "" {
			errs = append(errs, errors.New("QDRANT_URL is required for the qdrant backend"))
		}
		if c.Qdrant.Collection == "" {
			errs = append(errs, errors.New("QDRANT_COLLECTION is required for the qdrant backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("VECTOR_BACKEND must be sqlite-vec or qdrant, got %q", c.VectorBackend))
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// ParseLogLevel converts a LOG_LEVEL value into a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", s)
	}
	return level, nil
}

// getEnv gets an environment variable or returns the current value.
func getEnv(key, current string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return current
}

// getEnvInt parses an integer environment variable or returns the current value.
func getEnvInt(key string, current int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return current, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}
