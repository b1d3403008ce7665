package config

import "time"

// APIConfig configures the EduHub backend connection.
type APIConfig struct {
	// BaseURL is the API root every request path is joined to.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000/api"`

	// Timeout bounds each HTTP request, including the transparent
	// refresh-and-replay on an expired access token.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`

	// UserAgent is sent with every request.
	UserAgent string `env:"USER_AGENT" envDefault:"eduhub-go"`
}

// Sanitize applies guardrails to values loaded from env.
func (c *APIConfig) Sanitize() {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "eduhub-go"
	}
}
