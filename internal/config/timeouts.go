package config

import (
	"os"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	Approval     time.Duration // Bound on the interactive approval prompt
	Rollout      time.Duration // Bound on the rollout verification wait
	PollInterval time.Duration // Interval between rollout status polls
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - PROMOTE_TIMEOUT_APPROVAL (default: 2m)
//   - PROMOTE_TIMEOUT_ROLLOUT (default: 10m)
//   - PROMOTE_POLL_INTERVAL (default: 5s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Approval:     parseDuration("PROMOTE_TIMEOUT_APPROVAL", 2*time.Minute),
		Rollout:      parseDuration("PROMOTE_TIMEOUT_ROLLOUT", 10*time.Minute),
		PollInterval: parseDuration("PROMOTE_POLL_INTERVAL", 5*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	parsed, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
