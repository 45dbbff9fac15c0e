package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var (
	once     sync.Once
	instance *Config
)

type Config struct{}

// New loads ./configs/.env once. Variables already present in the process
// environment win over the file, so deployments can override without edits.
func New() *Config {
	once.Do(func() {
		if err := godotenv.Load("./configs/.env"); err != nil {
			log.Println("no .env file loaded, relying on process environment: ", err)
		}
		instance = &Config{}
	})
	return instance
}

func (c *Config) GetString(key string) string {
	return os.Getenv(key)
}

// GetStringOr falls back to def when the key is unset or empty.
func (c *Config) GetStringOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
