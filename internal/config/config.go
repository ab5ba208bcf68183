package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DBDriver    string
	DatabaseURL string

	JWTSecret []byte

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "storefront"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DBDriver:    EnvDefault("DB_DRIVER", "pgx"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),

		RateLimitRPS:   EnvFloatDefault("RATE_LIMIT_RPS", 0),
		RateLimitBurst: EnvIntDefault("RATE_LIMIT_BURST", 20),
		CORSOrigins:    CSV(os.Getenv("CORS_ORIGINS")),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvFloatDefault(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
