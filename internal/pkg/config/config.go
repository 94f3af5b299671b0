package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the environment-driven settings for all four binaries. Each
// process reads the same struct and uses the parts it needs.
type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	GatewayPort string `env:"GATEWAY_PORT, default=5000"`
	ProfilePort string `env:"PROFILE_PORT, default=5001"`
	DataPort    string `env:"DATA_PORT,    default=5002"`
	MetricsPort string `env:"WORKER_METRICS_PORT, default=2112"`

	JWTSecret string        `env:"JWT_SECRET_KEY"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Store    StoreConfig
	Upstream UpstreamConfig
	Import   ImportConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_platform"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// StoreConfig points at the S3-compatible bucket for profile pictures.
type StoreConfig struct {
	Endpoint  string `env:"S3_ENDPOINT, default=s3.amazonaws.com"`
	AccessKey string `env:"AWS_ACCESS_KEY_ID"`
	SecretKey string `env:"AWS_SECRET_ACCESS_KEY"`
	Bucket    string `env:"S3_BUCKET_NAME"`
	Region    string `env:"S3_REGION"`
	UseSSL    bool   `env:"S3_USE_SSL, default=true"`
}

// UpstreamConfig holds the gateway's backend base URLs and relay policy.
type UpstreamConfig struct {
	UserServiceURL string        `env:"USER_SERVICE_URL, default=http://localhost:5001"`
	DataServiceURL string        `env:"DATA_SERVICE_URL, default=http://localhost:5002"`
	Timeout        time.Duration `env:"UPSTREAM_TIMEOUT, default=10s"`
	Retries        int           `env:"UPSTREAM_RETRIES, default=2"`
}

type ImportConfig struct {
	UploadDir string        `env:"UPLOAD_DIR,       default=uploads"`
	RowPause  time.Duration `env:"IMPORT_ROW_PAUSE, default=1s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
