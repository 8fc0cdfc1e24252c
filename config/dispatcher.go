package config

import "time"

// DispatcherConfig contains the scheduled notification dispatcher configuration.
type DispatcherConfig struct {
	// Interval is the dispatcher tick interval.
	Interval time.Duration `env:"DISPATCHER_INTERVAL" envDefault:"30s"`
}

// Sanitize applies guardrails to dispatcher configuration values.
func (d *DispatcherConfig) Sanitize() {
	if d.Interval < time.Second {
		d.Interval = time.Second
	}
}
