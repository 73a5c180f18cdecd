package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadTimeouts_Defaults(t *testing.T) {
	timeouts := LoadTimeouts()

	assert.Equal(t, 2*time.Minute, timeouts.Approval)
	assert.Equal(t, 10*time.Minute, timeouts.Rollout)
	assert.Equal(t, 5*time.Second, timeouts.PollInterval)
}

func TestLoadTimeouts_EnvOverride(t *testing.T) {
	t.Setenv("PROMOTE_TIMEOUT_APPROVAL", "30s")
	t.Setenv("PROMOTE_TIMEOUT_ROLLOUT", "3m")

	timeouts := LoadTimeouts()

	assert.Equal(t, 30*time.Second, timeouts.Approval)
	assert.Equal(t, 3*time.Minute, timeouts.Rollout)
}

func TestLoadTimeouts_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("PROMOTE_TIMEOUT_ROLLOUT", "not-a-duration")

	timeouts := LoadTimeouts()

	assert.Equal(t, 10*time.Minute, timeouts.Rollout)
}
