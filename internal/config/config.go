package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	MongoURI       string
	DatabaseName   string
	MongoTimeout   time.Duration
	RedisURI       string   // empty disables the Redis rate limiter
	Port           string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS, defaults to "*"
	Environment    string   // ENV: production, development, etc.
	LogLevel       string
	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	mongoURI := getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/mentracare"))

	return &Config{
		MongoURI:       mongoURI,
		DatabaseName:   getEnv("DATABASE_NAME", databaseFromURI(mongoURI, "mentracare")),
		MongoTimeout:   getDuration("MONGO_TIMEOUT", 10*time.Second),
		RedisURI:       getEnv("REDIS_URI", ""),
		Port:           getEnv("PORT", "8000"),
		AllowedOrigins: allowedOrigins,
		Environment:    env,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 20),
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// databaseFromURI extracts the path segment of a mongodb:// or mongodb+srv://
// URI (mongodb://host/dbname?opts). Falls back to def when there is none.
func databaseFromURI(uri, def string) string {
	rest := uri
	if idx := strings.Index(rest, "://"); idx != -1 {
		rest = rest[idx+3:]
	}
	idx := strings.Index(rest, "/")
	if idx == -1 {
		return def
	}
	name := strings.Split(rest[idx+1:], "?")[0]
	if name == "" {
		return def
	}
	return name
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil && v > 0 {
		return v
	}
	return defaultValue
}
