package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds application configuration values.
type Config struct {
	ShopName    string
	DatabaseDSN string
	HTTPPort    string
	Sync        SyncConfig
}

// SyncConfig identifies the remote blob the whole dataset is pushed to
// and pulled from. An empty Bucket or Key means remote sync is disabled.
type SyncConfig struct {
	Bucket          string
	Key             string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	shop := os.Getenv("SHOP_NAME")
	if shop == "" {
		shop = "Nasim Bakery"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "file:bakeshop.db"
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	return Config{
		ShopName:    shop,
		DatabaseDSN: dsn,
		HTTPPort:    port,
		Sync: SyncConfig{
			Bucket:          os.Getenv("SYNC_BUCKET"),
			Key:             os.Getenv("SYNC_KEY"),
			Region:          os.Getenv("SYNC_REGION"),
			Endpoint:        os.Getenv("SYNC_ENDPOINT"),
			AccessKeyID:     os.Getenv("SYNC_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("SYNC_SECRET_ACCESS_KEY"),
			PathStyle:       os.Getenv("SYNC_PATH_STYLE") == "true",
		},
	}
}

// Configured reports whether remote sync has a target to talk to.
func (s SyncConfig) Configured() bool {
	return s.Bucket != "" && s.Key != ""
}
