package config

import (
	"errors"
	"fmt"
	"os"

	"legalaid-backend/storage"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// StorageTypeNone disables archiving of raw replies
const StorageTypeNone storage.StorageType = "none"

type Config struct {
	Server   ServerConfig          `yaml:"server"`
	Database DatabaseConfig        `yaml:"database"`
	Gemini   GeminiConfig          `yaml:"gemini"`
	Storage  storage.StorageConfig `yaml:"storage"`
	Log      LogConfig             `yaml:"log"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig holds the Postgres connection. An empty URL disables persistence.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type GeminiConfig struct {
	APIKey string `yaml:"-"`
	Model  string `yaml:"model"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// ArchiveEnabled reports whether raw replies should be archived
func (c *Config) ArchiveEnabled() bool {
	return c.Storage.Type != StorageTypeNone
}

// PersistenceEnabled reports whether analyses should be stored in Postgres
func (c *Config) PersistenceEnabled() bool {
	return c.Database.URL != ""
}

// LoadDotEnv loads the first .env file found among paths. A missing file is
// not an error.
func LoadDotEnv(paths ...string) bool {
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			return true
		}
	}
	return false
}

// Load reads the optional YAML file at path, applies environment overrides
// and fills defaults
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	setDefaults(&cfg)

	if cfg.Storage.Type == storage.StorageTypeS3 && cfg.Storage.S3Bucket == "" {
		return nil, errors.New("AWS_S3_BUCKET is required for S3 storage")
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.Server.Port, "PORT")
	setFromEnv(&cfg.Database.URL, "DATABASE_URL")
	setFromEnv(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "GEMINI_MODEL")

	var storageType string
	if setFromEnv(&storageType, "STORAGE_TYPE") {
		cfg.Storage.Type = storage.StorageType(storageType)
	}
	setFromEnv(&cfg.Storage.LocalPath, "STORAGE_LOCAL_PATH")
	setFromEnv(&cfg.Storage.S3Bucket, "AWS_S3_BUCKET")
	setFromEnv(&cfg.Storage.S3Region, "AWS_REGION")
	setFromEnv(&cfg.Storage.AWSAccessKey, "AWS_ACCESS_KEY_ID")
	setFromEnv(&cfg.Storage.AWSSecretKey, "AWS_SECRET_ACCESS_KEY")

	setFromEnv(&cfg.Log.Level, "LOG_LEVEL")
	setFromEnv(&cfg.Log.Format, "LOG_FORMAT")
}

func setFromEnv(dst *string, key string) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
		return true
	}
	return false
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.0-flash"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = storage.StorageTypeLocal
	}
	if cfg.Storage.Type == storage.StorageTypeLocal && cfg.Storage.LocalPath == "" {
		cfg.Storage.LocalPath = "./storage/archive"
	}
	if cfg.Storage.S3Region == "" {
		cfg.Storage.S3Region = "us-east-1"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}
