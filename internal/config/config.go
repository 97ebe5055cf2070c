package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vytor/roster/internal/logger"
)

// Record store backends.
const (
	RecordStoreSQLite   = "sqlite"
	RecordStorePostgres = "postgres"
	RecordStoreMongo    = "mongo"
)

// Object store backends.
const (
	ObjectStoreMemory = "memory"
	ObjectStoreMinio  = "minio"
	ObjectStoreS3     = "s3"
	ObjectStoreGCS    = "gcs"
)

type Config struct {
	Addr      string
	LogLevel  string
	LogColors bool

	RecordStore   string
	DBPath        string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string

	ObjectStore        string
	AvatarBucket       string
	StoragePublicURL   string
	MinioEndpoint      string
	MinioAccessKey     string
	MinioSecretKey     string
	MinioUseSSL        bool
	S3Region           string
	S3Endpoint         string
	GCSCredentialsFile string

	JWTSecret   string
	JWTAudience string

	SyncWorkDuration time.Duration
	SyncWorkerCount  int
	SyncQueueSize    int

	MaxAvatarBytes     int
	CORSAllowedOrigins []string
	EditFailOpen       bool
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:      envOr("ADDR", ":8080"),
		LogLevel:  envOr("LOG_LEVEL", "INFO"),
		LogColors: envBoolOr("LOG_COLORS", true),

		RecordStore:   strings.ToLower(envOr("RECORD_STORE", RecordStoreSQLite)),
		DBPath:        envOr("DB_PATH", "file:roster.db"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: envOr("MONGO_DATABASE", "roster"),

		ObjectStore:        strings.ToLower(envOr("OBJECT_STORE", ObjectStoreMemory)),
		AvatarBucket:       envOr("AVATAR_BUCKET", "avatars"),
		StoragePublicURL:   os.Getenv("STORAGE_PUBLIC_URL"),
		MinioEndpoint:      os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:     os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:     os.Getenv("MINIO_SECRET_KEY"),
		MinioUseSSL:        envBoolOr("MINIO_USE_SSL", true),
		S3Region:           envOr("S3_REGION", "us-east-1"),
		S3Endpoint:         os.Getenv("S3_ENDPOINT"),
		GCSCredentialsFile: os.Getenv("GCS_CREDENTIALS_FILE"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTAudience: os.Getenv("JWT_AUDIENCE"),

		SyncWorkDuration: envDurationMsOr("SYNC_WORK_DURATION_MS", 3*time.Second),
		SyncWorkerCount:  envIntOr("SYNC_WORKER_COUNT", 4),
		SyncQueueSize:    envIntOr("SYNC_QUEUE_SIZE", 32),

		MaxAvatarBytes:     envIntOr("MAX_AVATAR_BYTES", 5<<20),
		CORSAllowedOrigins: splitList(envOr("CORS_ALLOWED_ORIGINS", "*")),
		EditFailOpen:       envBoolOr("EDIT_FAIL_OPEN", true),
	}
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if !logger.ValidLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}

	switch c.RecordStore {
	case RecordStoreSQLite:
		if c.DBPath == "" {
			problems = append(problems, "DB_PATH cannot be empty")
		}
	case RecordStorePostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required when RECORD_STORE=postgres")
		}
	case RecordStoreMongo:
		if c.MongoURI == "" {
			problems = append(problems, "MONGO_URI is required when RECORD_STORE=mongo")
		}
		if c.MongoDatabase == "" {
			problems = append(problems, "MONGO_DATABASE cannot be empty")
		}
	default:
		problems = append(problems, fmt.Sprintf("RECORD_STORE %q is not one of sqlite, postgres, mongo", c.RecordStore))
	}

	switch c.ObjectStore {
	case ObjectStoreMemory, ObjectStoreS3, ObjectStoreGCS:
	case ObjectStoreMinio:
		if c.MinioEndpoint == "" {
			problems = append(problems, "MINIO_ENDPOINT is required when OBJECT_STORE=minio")
		}
		if c.MinioAccessKey == "" || c.MinioSecretKey == "" {
			problems = append(problems, "MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when OBJECT_STORE=minio")
		}
	default:
		problems = append(problems, fmt.Sprintf("OBJECT_STORE %q is not one of memory, minio, s3, gcs", c.ObjectStore))
	}
	if c.AvatarBucket == "" {
		problems = append(problems, "AVATAR_BUCKET cannot be empty")
	}
	if u, err := url.Parse(c.StoragePublicURL); c.StoragePublicURL == "" || err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, "STORAGE_PUBLIC_URL must be an absolute URL")
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET cannot be empty")
	}

	if c.SyncWorkDuration < 0 {
		problems = append(problems, "SYNC_WORK_DURATION_MS cannot be negative")
	}
	if c.SyncWorkerCount < 1 {
		problems = append(problems, "SYNC_WORKER_COUNT must be at least 1")
	}
	if c.SyncQueueSize < 1 {
		problems = append(problems, "SYNC_QUEUE_SIZE must be at least 1")
	}
	if c.MaxAvatarBytes < 1 {
		problems = append(problems, "MAX_AVATAR_BYTES must be at least 1")
	}
	if len(c.CORSAllowedOrigins) == 0 {
		problems = append(problems, "CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}

func envDurationMsOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
