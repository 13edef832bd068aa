package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	S3       S3Config       `mapstructure:"s3"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Sessions SessionsConfig `mapstructure:"sessions"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// AuthConfig holds the secret used to verify bearer tokens issued elsewhere.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// Storage backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
	BackendS3     = "s3"
)

type StorageConfig struct {
	Backend string         `mapstructure:"backend"`
	SQLite  SQLiteConfig   `mapstructure:"sqlite"`
	Mongo   DatabaseConfig `mapstructure:"mongo"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	Prefix          string `mapstructure:"prefix"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// CalendarConfig decides day boundaries and week grouping.
type CalendarConfig struct {
	Timezone  string `mapstructure:"timezone"`
	WeekStart string `mapstructure:"week_start"`
}

type SessionsConfig struct {
	// DefaultTime is the HH:MM used when a session is created without an explicit time.
	DefaultTime string `mapstructure:"default_time"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// storage.sqlite.path -> STORAGE_SQLITE_PATH
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.sqlite.path", "coachlog.db")
	v.SetDefault("storage.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("storage.mongo.name", "coachlog")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.prefix", "coachlog")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("calendar.timezone", "Local")
	v.SetDefault("calendar.week_start", "sunday")
	v.SetDefault("sessions.default_time", "15:30")

	// A missing config file is fine: defaults and env vars still apply.
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, err
	}
	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks settings that would otherwise fail late, at first use.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendSQLite, BackendMongo, BackendS3:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendS3 && c.S3.BucketName == "" {
		return errors.New("s3.bucket_name is required for the s3 backend")
	}
	return nil
}
