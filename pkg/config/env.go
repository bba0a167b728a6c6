package config

import (
	"os"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// GetEnv returns the value of an environment variable or a default value if not set.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// isProductionLike reports whether the environment enforces production configuration.
func isProductionLike(environment string) bool {
	return environment == EnvStaging || environment == EnvProduction
}
