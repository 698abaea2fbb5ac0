package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Semantic backends selectable with SEMANTIC_BACKEND.
const (
	BackendExhaustive = "exhaustive" // re-embed every chunk per query
	BackendCache      = "cache"      // reuse vectors cached in SQLite at ingestion
	BackendQdrant     = "qdrant"
	BackendChromem    = "chromem"
)

// Config holds all configuration for the application.
type Config struct {
	DataDir             string
	DBPath              string
	APIPort             string
	LLMBaseURL          string
	LLMModelName        string
	LLMAPIKey           string
	EmbeddingBaseURL    string
	EmbeddingModelName  string
	EmbeddingVectorSize int
	SemanticBackend     string
	QdrantURL           string
	QdrantCollection    string
	ChromemPath         string
	ChromemCollection   string
	ChunkMinLen         int
	ChunkMaxLen         int
	RowWindow           int
	TopK                int
	LogLevel            slog.Level
	LogFormat           string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent, it is loaded first;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		DataDir:            getEnv("DATA_DIR", "./data/documents"),
		DBPath:             getEnv("DB_PATH", "./data/hybridrag.db"),
		APIPort:            getEnv("API_PORT", "9000"),
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://127.0.0.1:1234"),
		LLMModelName:       getEnv("LLM_MODEL", "meta-llama-3.1-8b-instruct"),
		LLMAPIKey:          getEnv("LLM_API_KEY", "not-needed"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "https://api.openai.com"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "text-embedding-3-small"),
		SemanticBackend:    strings.ToLower(getEnv("SEMANTIC_BACKEND", BackendExhaustive)),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "documents"),
		ChromemPath:        getEnv("CHROMEM_PATH", "./data/chromem"),
		ChromemCollection:  getEnv("CHROMEM_COLLECTION", "documents"),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	// Must match the output size of the embedding model; vector store
	// collections are created with it.
	vectorSize, err := getInt("EMBEDDING_VECTOR_SIZE", "")
	if err != nil {
		return nil, err
	}
	cfg.EmbeddingVectorSize = vectorSize

	if cfg.ChunkMinLen, err = getInt("CHUNK_MIN_LEN", "150"); err != nil {
		return nil, err
	}
	if cfg.ChunkMaxLen, err = getInt("CHUNK_MAX_LEN", "250"); err != nil {
		return nil, err
	}
	if cfg.ChunkMinLen > cfg.ChunkMaxLen {
		return nil, fmt.Errorf("CHUNK_MIN_LEN (%d) must not exceed CHUNK_MAX_LEN (%d)", cfg.ChunkMinLen, cfg.ChunkMaxLen)
	}
	if cfg.RowWindow, err = getInt("ROW_WINDOW", "5"); err != nil {
		return nil, err
	}
	if cfg.TopK, err = getInt("TOP_K", "6"); err != nil {
		return nil, err
	}

	switch cfg.SemanticBackend {
	case BackendExhaustive, BackendCache, BackendQdrant, BackendChromem:
	default:
		return nil, fmt.Errorf("SEMANTIC_BACKEND must be one of exhaustive, cache, qdrant, chromem: got %q", cfg.SemanticBackend)
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json: got %q", cfg.LogFormat)
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt reads a positive integer. An empty default makes the key required.
func getInt(key, defaultValue string) (int, error) {
	raw := getEnv(key, defaultValue)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return n, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	return level, nil
}

// NewLogger builds the process logger from the configured level and format.
func (c *Config) NewLogger() *slog.Logger {
	return c.NewLoggerTo(os.Stdout)
}

// NewLoggerTo is NewLogger writing to w.
func (c *Config) NewLoggerTo(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
