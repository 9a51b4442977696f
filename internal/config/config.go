package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	SPAPI    SPAPIConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	SeriesTTLSeconds int
}

// SPAPIConfig carries the LWA application credentials plus call pacing for
// the upstream Selling Partner API.
type SPAPIConfig struct {
	ClientID      string
	ClientSecret  string
	Region        string
	Marketplace   string
	PaceMillis    int
	MaxTokenPages int
	DefaultTenant string
}

// StorageConfig points at the S3-compatible bucket receiving audit exports.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "amz")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_SERIES_TTL_SECONDS", 300)
		viper.SetDefault("SPAPI_REGION", "EU")
		viper.SetDefault("SPAPI_MARKETPLACE", "DE")
		viper.SetDefault("SPAPI_PACE_MS", 2500)
		viper.SetDefault("SPAPI_MAX_TOKEN_PAGES", 500)
		viper.SetDefault("TENANT_ID", "default")
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_BUCKET", "amz-audit")
		viper.SetDefault("STORAGE_USE_SSL", true)

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:          viper.GetBool("CACHE_ENABLED"),
				RedisURL:         viper.GetString("REDIS_URL"),
				RedisHost:        viper.GetString("REDIS_HOST"),
				RedisPort:        viper.GetString("REDIS_PORT"),
				RedisPassword:    viper.GetString("REDIS_PASSWORD"),
				RedisDB:          viper.GetInt("REDIS_DB"),
				SeriesTTLSeconds: viper.GetInt("CACHE_SERIES_TTL_SECONDS"),
			},
			SPAPI: SPAPIConfig{
				ClientID:      viper.GetString("LWA_CLIENT_ID"),
				ClientSecret:  viper.GetString("LWA_CLIENT_SECRET"),
				Region:        viper.GetString("SPAPI_REGION"),
				Marketplace:   viper.GetString("SPAPI_MARKETPLACE"),
				PaceMillis:    viper.GetInt("SPAPI_PACE_MS"),
				MaxTokenPages: viper.GetInt("SPAPI_MAX_TOKEN_PAGES"),
				DefaultTenant: viper.GetString("TENANT_ID"),
			},
			Storage: StorageConfig{
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
			},
		}
	})

	return instance
}

// RequireSPAPI fails fast when the LWA secrets are absent; nothing upstream
// may be called without them.
func (c *Config) RequireSPAPI() error {
	if c.SPAPI.ClientID == "" {
		return fmt.Errorf("missing required config LWA_CLIENT_ID")
	}
	if c.SPAPI.ClientSecret == "" {
		return fmt.Errorf("missing required config LWA_CLIENT_SECRET")
	}
	return nil
}

// Pace converts the configured pacing to a duration.
func (c *SPAPIConfig) Pace() time.Duration {
	return time.Duration(c.PaceMillis) * time.Millisecond
}
