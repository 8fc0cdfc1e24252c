package config

import "time"

// BackendConfig contains the connection settings for the payments backend API.
type BackendConfig struct {
	// BaseURL is the root of the backend API, e.g. "https://api.tillflow.example".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:5000/api"`

	// Timeout bounds every backend call.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	if b.Timeout <= 0 {
		b.Timeout = 15 * time.Second
	}
}

// SessionConfig contains session persistence configuration.
type SessionConfig struct {
	// TTL is how long a persisted session record survives without activity.
	// Zero means no expiry.
	TTL time.Duration `env:"TTL" envDefault:"720h"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL < 0 {
		s.TTL = 0
	}
}
