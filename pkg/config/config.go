package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	MongoURI                string
	MongoDatabase           string
	PostgresConnStr         string
	Timezone                string
	SpotifyClientID         string
	SpotifyClientSecret     string
	CatalogCacheTTL         time.Duration
	RateLimitRPS            float64
}

func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "discover"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		Timezone:                getEnv("TIMEZONE", "Europe/Paris"),
		SpotifyClientID:         getEnv("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret:     getEnv("SPOTIFY_CLIENT_SECRET", ""),
		CatalogCacheTTL:         getEnvDuration("CATALOG_CACHE_TTL", 24*time.Hour),
		RateLimitRPS:            10,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Invalid duration for %s: %v, using default %s", key, err, defaultValue)
		return defaultValue
	}
	return d
}
