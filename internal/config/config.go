package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"TramiteFacil"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"tramitefacil"`
	}

	Payment struct {
		// Mode selects the provider: "real" (Mercado Pago) or "mock"
		// (outcome chosen locally).
		Mode string `envconfig:"PAYMENT_MODE" default:"mock"`

		// FallbackToMock substitutes the mock when the real provider
		// fails its health check instead of blocking payment.
		FallbackToMock bool `envconfig:"PAYMENT_FALLBACK_TO_MOCK" default:"false"`

		MercadoPagoToken string `envconfig:"MERCADOPAGO_ACCESS_TOKEN"`

		Currency      string  `envconfig:"PAYMENT_CURRENCY" default:"COP"`
		ServiceFeeCOP int64   `envconfig:"PAYMENT_SERVICE_FEE" default:"2500"`
		TaxRate       float64 `envconfig:"PAYMENT_TAX_RATE" default:"0.19"`
	}

	Flow struct {
		// Pacing only; correctness is independent of these delays.
		TypingDelay     time.Duration `envconfig:"FLOW_TYPING_DELAY" default:"500ms"`
		GenerationDelay time.Duration `envconfig:"FLOW_GENERATION_DELAY" default:"7s"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
