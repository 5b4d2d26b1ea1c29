package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
	Worker   WorkerConfig
	Matching MatchingConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type GeminiConfig struct {
	APIKey     string
	EmbedModel string
	ChatModel  string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency       int
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
	PollInterval      time.Duration
}

// MatchingConfig drives the keyword extraction strategies and the
// scoring thresholds of the matching engine.
type MatchingConfig struct {
	// SkillsFile is the CSV corpus for semantic matching; first column
	// per row is the skill label.
	SkillsFile string
	// MaxSkills caps how many corpus rows are loaded and keys the
	// embedding cache filename.
	MaxSkills int
	// SimilarityThreshold is the minimum cosine similarity for a
	// semantic skill hit.
	SimilarityThreshold float64
	// TopK caps semantic results per document when > 0.
	TopK int
	// CacheDir holds the on-disk embedding cache files.
	CacheDir string
	// VectorBackend selects the semantic index: "local" or "qdrant".
	VectorBackend string
	// ProfileFile optionally points to a YAML match profile overriding
	// the built-in weight presets and level cutoffs.
	ProfileFile string
	// TopKeywords limits the statistical and linguistic strategies.
	TopKeywords   int
	UseSemantic   bool
	UseLinguistic bool
	UseLLM        bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ats_agent"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "ats_skills"),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			EmbedModel: getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
			ChatModel:  getEnv("GEMINI_CHAT_MODEL", "gemini-2.5-flash"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:       getEnvAsInt("WORKER_CONCURRENCY", 3),
			RetryMaxAttempts:  getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			RetryInitialDelay: getEnvAsDuration("RETRY_INITIAL_DELAY", "2s"),
			PollInterval:      getEnvAsDuration("WORKER_POLL_INTERVAL", "10s"),
		},
		Matching: MatchingConfig{
			SkillsFile:          getEnv("SKILLS_FILE", "./data/skills.csv"),
			MaxSkills:           getEnvAsInt("MAX_SKILLS", 100000),
			SimilarityThreshold: getEnvAsFloat("SIMILARITY_THRESHOLD", 0.60),
			TopK:                getEnvAsInt("SEMANTIC_TOP_K", 50),
			CacheDir:            getEnv("EMBEDDING_CACHE_DIR", "./cache"),
			VectorBackend:       getEnv("VECTOR_BACKEND", "local"),
			ProfileFile:         getEnv("MATCH_PROFILE_FILE", ""),
			TopKeywords:         getEnvAsInt("TOP_KEYWORDS", 30),
			UseSemantic:         getEnvAsBool("USE_SEMANTIC", false),
			UseLinguistic:       getEnvAsBool("USE_LINGUISTIC", true),
			UseLLM:              getEnvAsBool("USE_LLM_EXTRACTION", false),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
