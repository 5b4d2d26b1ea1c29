package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// blankEnv clears enough variables that Load falls back to its built-in
// defaults even when the host environment sets them.
func blankEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	blankEnv(t,
		"PORT", "ENV",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"UPLOAD_PATH", "MAX_FILE_SIZE",
		"WORKER_CONCURRENCY", "RETRY_MAX_ATTEMPTS", "RETRY_INITIAL_DELAY", "WORKER_POLL_INTERVAL",
		"SKILLS_FILE", "MAX_SKILLS", "SIMILARITY_THRESHOLD", "SEMANTIC_TOP_K",
		"EMBEDDING_CACHE_DIR", "VECTOR_BACKEND", "MATCH_PROFILE_FILE", "TOP_KEYWORDS",
		"USE_SEMANTIC", "USE_LINGUISTIC", "USE_LLM_EXTRACTION",
	)

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "ats_agent", cfg.Database.DBName)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.Equal(t, 2*time.Second, cfg.Worker.RetryInitialDelay)
	assert.Equal(t, 10*time.Second, cfg.Worker.PollInterval)
	assert.Equal(t, "local", cfg.Matching.VectorBackend)
	assert.InDelta(t, 0.60, cfg.Matching.SimilarityThreshold, 1e-9)
	assert.Equal(t, 30, cfg.Matching.TopKeywords)
	assert.False(t, cfg.Matching.UseSemantic)
	assert.True(t, cfg.Matching.UseLinguistic)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("WORKER_CONCURRENCY", "5")
	t.Setenv("RETRY_INITIAL_DELAY", "500ms")
	t.Setenv("SIMILARITY_THRESHOLD", "0.75")
	t.Setenv("USE_SEMANTIC", "true")
	t.Setenv("VECTOR_BACKEND", "qdrant")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, int64(1024), cfg.Storage.MaxFileSize)
	assert.Equal(t, 5, cfg.Worker.Concurrency)
	assert.Equal(t, 500*time.Millisecond, cfg.Worker.RetryInitialDelay)
	assert.InDelta(t, 0.75, cfg.Matching.SimilarityThreshold, 1e-9)
	assert.True(t, cfg.Matching.UseSemantic)
	assert.Equal(t, "qdrant", cfg.Matching.VectorBackend)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("WORKER_CONCURRENCY", "lots")
	t.Setenv("SIMILARITY_THRESHOLD", "high")
	t.Setenv("RETRY_INITIAL_DELAY", "soon")

	cfg := Load()

	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.InDelta(t, 0.60, cfg.Matching.SimilarityThreshold, 1e-9)
	assert.Equal(t, 2*time.Second, cfg.Worker.RetryInitialDelay)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "secret",
		DBName:   "ats_agent",
	}}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=ats_agent sslmode=disable",
		cfg.GetDatabaseDSN(),
	)
}
