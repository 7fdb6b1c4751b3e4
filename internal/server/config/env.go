package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/flagx"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable the server reads.
const EnvPrefix = "CONTACTBOOK_"

// loadDotEnv is a seam for godotenv.Load.
var loadDotEnv = func() error { return godotenv.Load() }

// parseEnv overlays Config with CONTACTBOOK_* environment variables. A .env
// file in the working directory is loaded first when present; variables
// already set in the process environment win over it.
//
// Durations accept time.ParseDuration syntax. Malformed numbers and
// durations are ignored and the previous value is kept.
func parseEnv(config *Config) {
	_ = loadDotEnv()

	setString(&config.HTTPAddr, "HTTP_ADDR")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.SecretKey, "SECRET_KEY")
	setDuration(&config.TokenTTL, "TOKEN_TTL")
	setInt(&config.BcryptCost, "BCRYPT_COST")
	setString(&config.UploadDir, "UPLOAD_DIR")
	setInt64(&config.MaxUploadSize, "MAX_UPLOAD_SIZE")
	setString(&config.StorageBackend, "STORAGE_BACKEND")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	setString(&config.LogLevel, "LOG_LEVEL")
	setDuration(&config.ShutdownTimeout, "SHUTDOWN_TIMEOUT")

	if v, ok := os.LookupEnv(EnvPrefix + "CORS_ORIGINS"); ok {
		config.CORSOrigins = flagx.SplitList(v)
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
