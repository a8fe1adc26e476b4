package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	Server   ServerConfig
	HTTP     HTTPConfig
	DB       DatabaseConfig
	AppUsers AppUsersConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type HTTPConfig struct {
	RateLimitRPS     int // 0 disables the limiter
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	Driver          string
	Path            string // sqlite only
	MySQL           MySQLConfig
	BootstrapSchema bool
	MaxOpenConns    int
}

type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type AppUsersConfig struct {
	HashPasswords bool
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 3000),
		},
		HTTP: HTTPConfig{
			RateLimitRPS:     getEnvInt("RATE_LIMIT_RPS", 20),
			CORSAllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		DB: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", DriverSQLite),
			Path:   getEnv("DB_PATH", "./data/drone.db"),
			MySQL: MySQLConfig{
				Host:     getEnv("MYSQL_HOST", "localhost"),
				Port:     getEnvInt("MYSQL_PORT", 3306),
				User:     getEnv("MYSQL_USER", "editor_staff"),
				Password: getEnv("MYSQL_PASSWORD", ""),
				Database: getEnv("MYSQL_DATABASE", "drone"),
			},
			BootstrapSchema: getEnvBool("DB_BOOTSTRAP_SCHEMA", false),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		},
		AppUsers: AppUsersConfig{
			HashPasswords: getEnvBool("APP_USERS_HASH_PASSWORDS", false),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.Path == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	case DriverMySQL:
		if c.DB.MySQL.Database == "" {
			return fmt.Errorf("MYSQL_DATABASE is required for the mysql driver")
		}
		if c.DB.MySQL.Port < 1 || c.DB.MySQL.Port > 65535 {
			return fmt.Errorf("invalid mysql port: %d", c.DB.MySQL.Port)
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.DB.Driver)
	}

	if c.DB.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1")
	}
	if c.HTTP.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
