package config

import (
	"fmt"
	"strings"
	"sync"

	"roombook/core/constants"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Booking  BookingConfig
	Room     RoomConfig
	LogLevel string
}

type ServerConfig struct {
	Host      string
	Port      int
	BaseURL   string
	SecretKey string
}

// StorageConfig selects the reservation store backend.
// Driver is "file" (atomic JSON snapshot) or "postgres".
type StorageConfig struct {
	Driver   string
	FilePath string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// CacheConfig enables the Redis-backed month-view cache and the
// notification queue. An empty RedisAddr keeps both in-process.
type CacheConfig struct {
	RedisAddr string
}

type BookingConfig struct {
	WorkdayStart string
	WorkdayEnd   string
}

type RoomConfig struct {
	Name string
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads .env (when present) and the environment, builds the config
// and installs it as the process-wide instance.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.secret_key", "devkey-change-me")

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.file_path", "reservations.json")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "roombook")
	v.SetDefault("database.password", "roombook")
	v.SetDefault("database.dbname", "roombook")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("cache.redis_addr", "")

	v.SetDefault("booking.workday_start", constants.DefaultWorkdayStart)
	v.SetDefault("booking.workday_end", constants.DefaultWorkdayEnd)

	v.SetDefault("room.name", "Meeting Room")

	v.SetDefault("log_level", "info")

	cfg := &Config{
		Server: ServerConfig{
			Host:      v.GetString("server.host"),
			Port:      v.GetInt("server.port"),
			BaseURL:   v.GetString("server.base_url"),
			SecretKey: v.GetString("server.secret_key"),
		},
		Storage: StorageConfig{
			Driver:   v.GetString("storage.driver"),
			FilePath: v.GetString("storage.file_path"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.dbname"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Cache: CacheConfig{
			RedisAddr: v.GetString("cache.redis_addr"),
		},
		Booking: BookingConfig{
			WorkdayStart: v.GetString("booking.workday_start"),
			WorkdayEnd:   v.GetString("booking.workday_end"),
		},
		Room: RoomConfig{
			Name: v.GetString("room.name"),
		},
		LogLevel: v.GetString("log_level"),
	}

	switch cfg.Storage.Driver {
	case "file", "postgres":
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()
	return cfg, nil
}

// Get returns the loaded config; callers must ensure Load ran first.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return instance
}

// GetSafe returns the loaded config and whether it is initialized.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
