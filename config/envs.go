package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP           string // Host IP for the server
	RESTPort         int    // Port for the REST API
	DBHost           string // Hostname or IP address for the database
	DBPort           int    // Port number for the database
	DBUser           string // Username for the database
	DBPassword       string // Password for the database
	DBName           string // Name of the database
	RedisAddr        string // host:port of the redis cache
	RedisPassword    string // Password for redis, empty when unauthenticated
	CacheTTLSeconds  int    // Lifetime of cached solutions
	MaxMazeDimension int    // Largest accepted height or width of a submitted maze
	GinMode          string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret        string // Secret key for JWT signing
	JWTIssuer        string // Issuer claim for JWTs
}

// Envs holds the application's configuration loaded from environment variables.
// It is populated by Load; commands that do not need the server configuration
// never call it.
var Envs Config

// Load reads the environment into Envs. It loads variables from a .env file
// first when one is present.
func Load() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	Envs = Config{
		DBHost:           mustGetEnv("DB_HOST"),
		DBPort:           mustGetEnvAsInt("DB_PORT"),
		DBUser:           mustGetEnv("DB_USER"),
		DBPassword:       mustGetEnv("DB_PASS"),
		DBName:           mustGetEnv("DB_NAME"),
		RedisAddr:        mustGetEnv("REDIS_ADDR"),
		RedisPassword:    getEnvWithDefault("REDIS_PASS", ""),
		CacheTTLSeconds:  getEnvAsIntWithDefault("CACHE_TTL_SECONDS", 3600),
		MaxMazeDimension: getEnvAsIntWithDefault("MAX_MAZE_DIMENSION", 1024),
		GinMode:          getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:        mustGetEnv("JWT_SECRET"),
		JWTIssuer:        mustGetEnv("JWT_ISSUER"),
		HostIP:           mustGetEnv("HOST_IP"),
		RESTPort:         mustGetEnvAsInt("REST_PORT"),
	}
	return Envs
}

// LoadTokenConfig reads only the variables needed to sign API tokens.
func LoadTokenConfig() (secret, issuer string) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}
	return mustGetEnv("JWT_SECRET"), mustGetEnv("JWT_ISSUER")
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

// getEnvAsIntWithDefault is getEnvWithDefault for integers. Unparsable values are fatal.
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
