package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/roster/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:               ":8080",
		LogLevel:           "INFO",
		RecordStore:        config.RecordStoreSQLite,
		DBPath:             "test.db",
		ObjectStore:        config.ObjectStoreMemory,
		AvatarBucket:       "avatars",
		StoragePublicURL:   "https://project.example.co/storage/v1/object/public",
		JWTSecret:          "secret",
		SyncWorkDuration:   3 * time.Second,
		SyncWorkerCount:    4,
		SyncQueueSize:      32,
		MaxAvatarBytes:     5 << 20,
		CORSAllowedOrigins: []string{"*"},
		EditFailOpen:       true,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_StoragePublicURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "relative", url: "/storage"},
		{name: "no host", url: "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.StoragePublicURL = tt.url

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "STORAGE_PUBLIC_URL")
		})
	}
}

func TestValidate_RecordStoreRequirements(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:          "unknown backend",
			mutate:        func(c *config.Config) { c.RecordStore = "redis" },
			expectedError: "RECORD_STORE",
		},
		{
			name:          "postgres without url",
			mutate:        func(c *config.Config) { c.RecordStore = config.RecordStorePostgres },
			expectedError: "DATABASE_URL",
		},
		{
			name:          "mongo without uri",
			mutate:        func(c *config.Config) { c.RecordStore = config.RecordStoreMongo; c.MongoDatabase = "roster" },
			expectedError: "MONGO_URI",
		},
		{
			name:          "sqlite without path",
			mutate:        func(c *config.Config) { c.DBPath = "" },
			expectedError: "DB_PATH cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_MinioRequiresCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.ObjectStore = config.ObjectStoreMinio

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MINIO_ENDPOINT")
	assert.Contains(t, err.Error(), "MINIO_ACCESS_KEY")

	cfg.MinioEndpoint = "localhost:9000"
	cfg.MinioAccessKey = "key"
	cfg.MinioSecretKey = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		valid bool
	}{
		{name: "invalid level", level: "INVALID"},
		{name: "empty level", level: ""},
		{name: "lowercase valid level", level: "debug", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			}
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		RecordStore: config.RecordStoreSQLite,
		ObjectStore: config.ObjectStoreMemory,
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "AVATAR_BUCKET")
	assert.Contains(t, errStr, "STORAGE_PUBLIC_URL")
	assert.Contains(t, errStr, "JWT_SECRET")
	assert.Contains(t, errStr, "SYNC_WORKER_COUNT")
	assert.Contains(t, errStr, "SYNC_QUEUE_SIZE")
	assert.Contains(t, errStr, "MAX_AVATAR_BYTES")
	assert.Contains(t, errStr, "CORS_ALLOWED_ORIGINS")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("RECORD_STORE", "Postgres")
	t.Setenv("SYNC_WORK_DURATION_MS", "250")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://club.example, https://admin.example")
	t.Setenv("EDIT_FAIL_OPEN", "false")
	t.Setenv("SYNC_WORKER_COUNT", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, config.RecordStorePostgres, cfg.RecordStore)
	assert.Equal(t, 250*time.Millisecond, cfg.SyncWorkDuration)
	assert.Equal(t, []string{"https://club.example", "https://admin.example"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.EditFailOpen)
	assert.Equal(t, 4, cfg.SyncWorkerCount)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AVATAR_BUCKET", "")
	t.Setenv("SYNC_WORK_DURATION_MS", "")

	cfg := config.Load()

	assert.Equal(t, "avatars", cfg.AvatarBucket)
	assert.Equal(t, 3*time.Second, cfg.SyncWorkDuration)
}
