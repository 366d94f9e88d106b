// Package config reads runtime configuration from environment variables.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the terminal needs to reach its collaborators
// and to stamp the receipt header. Defaults mirror the original store
// deployment.
type Config struct {
	APIBaseURL  string        `envconfig:"API_BASE_URL" default:"http://localhost:5000/api"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	GotenbergURL string `envconfig:"GOTENBERG_URL" default:"http://127.0.0.1:3000"`
	TicketDir    string `envconfig:"TICKET_DIR" default:"."`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	StoreName    string `envconfig:"STORE_NAME" default:"AGRONORTE"`
	StoreTagline string `envconfig:"STORE_TAGLINE" default:"MATERIAIS DE PESCA | RAÇÕES | PÁSSAROS E AQUARISMO"`
	StoreAddress string `envconfig:"STORE_ADDRESS" default:"Rua Araras 100 Centro"`
	StorePhone   string `envconfig:"STORE_PHONE" default:"Tel: 3252-6819"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
