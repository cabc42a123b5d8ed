package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Auth   AuthConfig
	Upload UploadConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type MongoConfig struct {
	URI      string
	Database string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type UploadConfig struct {
	// MaxBodySize caps the whole request body. Per-image limits live in the
	// ingest package.
	MaxBodySize int64
}

// Load reads configuration from the environment, falling back to development
// defaults for everything except the signing secret.
func Load() (*Config, error) {
	viper.SetDefault("SERVER_HOST", "")
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "carinventory")
	viper.SetDefault("JWT_TTL", "24h")
	viper.SetDefault("MAX_BODY_SIZE", 10*1024*1024)

	viper.AutomaticEnv()

	secret := viper.GetString("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("SERVER_HOST"),
			Port: viper.GetString("PORT"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("MONGO_URI"),
			Database: viper.GetString("MONGO_DB"),
		},
		Auth: AuthConfig{
			JWTSecret: secret,
			TokenTTL:  viper.GetDuration("JWT_TTL"),
		},
		Upload: UploadConfig{
			MaxBodySize: viper.GetInt64("MAX_BODY_SIZE"),
		},
	}

	return cfg, nil
}
