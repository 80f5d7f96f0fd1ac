package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP        string        // Host IP for the server
	RESTPort      int           // Port for the REST API
	DBHost        string        // Hostname or IP address for the database
	DBPort        int           // Port number for the database
	DBUser        string        // Username for the database
	DBPassword    string        // Password for the database
	DBName        string        // Name of the database
	RedisAddr     string        // host:port of the Redis server
	RedisPassword string        // Password for Redis, empty when unauthenticated
	CacheTTL      time.Duration // How long generated mazes stay cached
	GinMode       string        // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret     string        // Secret key for JWT signing
	JWTIssuer     string        // Issuer claim for JWTs
	TokenTTL      time.Duration // Lifetime of issued access tokens
	APIClientID   string        // Client id allowed to request tokens
	APIKeyHash    string        // bcrypt hash of that client's API key
	MaxDimension  int           // Upper bound of maze width and height
}

// Envs holds the application's configuration once Load has run.
var Envs Config

// Load reads the configuration from the environment into Envs.
// It loads environment variables from a .env file first, if there is one,
// and exits when a required variable is missing.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	Envs = Config{
		DBHost:        mustGetEnv("DB_HOST"),
		DBPort:        mustGetEnvAsInt("DB_PORT"),
		DBUser:        mustGetEnv("DB_USER"),
		DBPassword:    mustGetEnv("DB_PASS"),
		DBName:        mustGetEnv("DB_NAME"),
		RedisAddr:     mustGetEnv("REDIS_ADDR"),
		RedisPassword: getEnvWithDefault("REDIS_PASSWORD", ""),
		CacheTTL:      getEnvAsDurationWithDefault("CACHE_TTL", time.Hour),
		GinMode:       getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:     mustGetEnv("JWT_SECRET"),
		JWTIssuer:     mustGetEnv("JWT_ISSUER"),
		TokenTTL:      getEnvAsDurationWithDefault("TOKEN_TTL", 24*time.Hour),
		APIClientID:   mustGetEnv("API_CLIENT_ID"),
		APIKeyHash:    mustGetEnv("API_KEY_HASH"),
		MaxDimension:  getEnvAsIntWithDefault("MAX_DIMENSION", 100),
		HostIP:        mustGetEnv("HOST_IP"),
		RESTPort:      mustGetEnvAsInt("REST_PORT"),
	}
	return Envs
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsDurationWithDefault accepts Go duration strings such as "90s" or "2h".
func getEnvAsDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a duration: %v", key, err)
	}
	return value
}
