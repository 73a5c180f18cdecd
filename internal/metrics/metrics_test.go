package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.RecordRun("released")
	r.ObserveRolloutDuration(90 * time.Second)

	path := filepath.Join(t.TempDir(), "promotectl.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `promotectl_runs_total{result="released"} 1`)
	assert.Contains(t, out, "promotectl_rollout_duration_seconds 90")
}

func TestRecorder_CountsByResult(t *testing.T) {
	r := NewRecorder()
	r.RecordRun("failed")
	r.RecordRun("failed")
	r.RecordRun("aborted")

	path := filepath.Join(t.TempDir(), "promotectl.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), `promotectl_runs_total{result="failed"} 2`)
	assert.Contains(t, string(data), `promotectl_runs_total{result="aborted"} 1`)
}
