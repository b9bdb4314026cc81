package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	Port            string `envconfig:"PORT" default:"8080"`
	GinMode         string `envconfig:"GIN_MODE" default:"debug"`
	MongodbURL      string `envconfig:"MONGODB_URL" default:"mongodb://localhost:27017"`
	MongodbDatabase string `envconfig:"MONGODB_DATABASE" default:"songlibrary"`
	CorsOrigin      string `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
