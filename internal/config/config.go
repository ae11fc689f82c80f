package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	JWTSecret    string
	JWTAlgorithm string
	TokenTTL     time.Duration

	ProvisionerURL   string
	ProvisionTimeout time.Duration
	FileServiceURL   string

	LoginMaxAttempts int
	LoginWindow      time.Duration

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/skybox?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),

		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		JWTAlgorithm: getEnv("JWT_ALGORITHM", "HS256"),
		TokenTTL:     getEnvDuration("TOKEN_TTL", 30*time.Minute),

		ProvisionerURL:   getEnv("PROVISIONER_URL", "http://localhost:3000"),
		ProvisionTimeout: getEnvDuration("PROVISION_TIMEOUT", 10*time.Second),
		FileServiceURL:   getEnv("FILE_SERVICE_URL", "http://localhost:3000"),

		LoginMaxAttempts: getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginWindow:      getEnvDuration("LOGIN_WINDOW", 15*time.Minute),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
