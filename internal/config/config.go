package config // package config loads application configuration from environment variables

import (
	"log"  // log reports configuration errors and halts execution
	"os"   // os provides access to environment variables
	"time" // time parses the cache TTL duration
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable. The types reflect how the
// values are used: strings for identifiers and secrets, a duration
// for the hotel cache TTL.
type Config struct {
	Env           string        // application environment (e.g. "dev", "prod")
	Port          string        // HTTP port to listen on
	DBUser        string        // database username
	DBPass        string        // database password (optional)
	DBHost        string        // database host address
	DBPort        string        // database port number
	DBName        string        // database name
	JWTSecret     string        // secret used to verify access tokens
	HotelCacheTTL time.Duration // lifetime of the cached hotel list
}

// Load reads configuration values from environment variables and
// returns a Config. Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"), // empty allowed
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		JWTSecret:     must("JWT_SECRET"),
		HotelCacheTTL: envDur("HOTEL_CACHE_TTL", 30*time.Second),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// envDur reads a duration variable, falling back to a default when
// the variable is unset or malformed.
func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
