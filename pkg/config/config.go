package config

import (
	"os"
	"time"
)

// Config holds the application configuration, loaded from the environment.
type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	StorageBucket           string
	PostsBackend            string // "firestore" or "mongo"
	MongoURI                string
	PostgresURL             string
	RemoteTimeout           time.Duration
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		StorageBucket:           getEnv("STORAGE_BUCKET", ""),
		PostsBackend:            getEnv("POSTS_BACKEND", "firestore"),
		MongoURI:                getEnv("MONGO_URI", ""),
		PostgresURL:             getEnv("POSTGRES_URL", ""),
		RemoteTimeout:           getDuration("REMOTE_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
