// Package config defines the environment-driven configuration surface of the
// docparse service, loaded with github.com/caarlos0/env.
package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files:
//   - database.go: Postgres and Redis configuration
//   - http.go: HTTP server configuration
//   - services.go: service mode and worker configuration
//   - observability.go: metrics configuration
type AppConfig struct {
	// IsDev controls development mode behavior (dev seeding, relaxed defaults).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Features toggles optional behaviour at runtime.
	Features FeaturesConfig `envPrefix:"FEATURES_"`

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Services is a comma-delimited list of enabled services (http, worker).
	Services string `env:"SERVICES" envDefault:"http"`

	// Worker configuration
	Worker WorkerConfig `envPrefix:"WORKER_"`

	// Observability configuration
	Observability ObservabilityConfig
}

// FeaturesConfig holds runtime feature flags.
type FeaturesConfig struct {
	// EnableParsers gates parse submission. When false, every submission is
	// rejected before any validation or queue write happens.
	EnableParsers bool `env:"ENABLE_PARSERS" envDefault:"true"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Worker.Sanitize()
	c.Observability.Sanitize()

	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsHTTPServerEnabled returns true if the HTTP server service is enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeHTTP]
}

// IsWorkerEnabled returns true if the parse worker service is enabled.
func (c *AppConfig) IsWorkerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeWorker]
}
