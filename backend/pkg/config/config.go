package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	apperrors "hivery/backend/pkg/errors"
)

// Storage backends
const (
	BackendBadger = "badger"
	BackendNeo4j  = "neo4j"
)

// Config holds all application configuration
type Config struct {
	// App
	Port     string
	Env      string
	LogLevel string

	// Storage
	StoreBackend   string
	ResetOnStart   bool
	BadgerPath     string
	BadgerInMemory bool

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// Dataset
	CompaniesFile string
	PeopleFile    string
	FoodsFile     string

	// Query
	PersonCacheSize int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8888"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", ""),
		StoreBackend:    strings.ToLower(getEnv("STORE_BACKEND", BackendBadger)),
		ResetOnStart:    getEnvBool("RESET_ON_START", true),
		BadgerPath:      getEnv("BADGER_PATH", "hivery.db"),
		BadgerInMemory:  getEnvBool("BADGER_IN_MEMORY", false),
		Neo4jURI:        getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:       getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:   getEnv("NEO4J_PASSWORD", ""),
		CompaniesFile:   getEnv("COMPANIES_FILE", "data/companies.json"),
		PeopleFile:      getEnv("PEOPLE_FILE", "data/people.json"),
		FoodsFile:       getEnv("FOODS_FILE", "data/foods.json"),
		PersonCacheSize: getEnvInt("PERSON_CACHE_SIZE", 1024),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendBadger:
		if c.BadgerPath == "" && !c.BadgerInMemory {
			return apperrors.NewConfigMissingRequired("BADGER_PATH")
		}
	case BackendNeo4j:
		if c.Neo4jURI == "" {
			return apperrors.NewConfigMissingRequired("NEO4J_URI")
		}
		if c.Neo4jUser == "" {
			return apperrors.NewConfigMissingRequired("NEO4J_USER")
		}
		if c.Neo4jPassword == "" {
			return apperrors.NewConfigMissingRequired("NEO4J_PASSWORD")
		}
	default:
		return apperrors.NewConfigValidationFailed("STORE_BACKEND", fmt.Sprintf("unknown backend %q", c.StoreBackend))
	}

	if c.CompaniesFile == "" {
		return apperrors.NewConfigMissingRequired("COMPANIES_FILE")
	}
	if c.PeopleFile == "" {
		return apperrors.NewConfigMissingRequired("PEOPLE_FILE")
	}
	if c.FoodsFile == "" {
		return apperrors.NewConfigMissingRequired("FOODS_FILE")
	}
	if c.PersonCacheSize <= 0 {
		return apperrors.NewConfigValidationFailed("PERSON_CACHE_SIZE", "must be positive")
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.ParseBool(value); err == nil {
			return result
		}
	}
	return defaultValue
}
