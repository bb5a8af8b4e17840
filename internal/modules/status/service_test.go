package status

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylbow/clawdgod/internal/storage"
)

func TestSnapshot_DefaultsWhenNoOverride(t *testing.T) {
	svc := NewService(storage.New(t.TempDir()), zerolog.Nop())

	snapshot := svc.Snapshot()
	assert.Equal(t, 0, snapshot["trades_today"])
	assert.Equal(t, "active", snapshot["scanner"])
	assert.Equal(t, []any{}, snapshot["log"])
	assert.NotEmpty(t, snapshot["instance_id"])
	assert.GreaterOrEqual(t, snapshot["uptime"].(float64), 0.0)
}

func TestSnapshot_OverrideShadowsDefaults(t *testing.T) {
	dir := t.TempDir()
	doc := `{"trades_today": 7, "scanner": "paused", "log": ["bought KXHIGHCHI-X"]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bot-status.json"), []byte(doc), 0644))

	svc := NewService(storage.New(dir), zerolog.Nop())
	snapshot := svc.Snapshot()

	assert.Equal(t, float64(7), snapshot["trades_today"])
	assert.Equal(t, "paused", snapshot["scanner"])
	assert.Equal(t, []any{"bought KXHIGHCHI-X"}, snapshot["log"])

	// Fields the override does not mention keep their defaults.
	assert.NotEmpty(t, snapshot["instance_id"])
	assert.Contains(t, snapshot, "uptime")
}

func TestSnapshot_InstanceIDStableAcrossCalls(t *testing.T) {
	svc := NewService(storage.New(t.TempDir()), zerolog.Nop())
	first := svc.Snapshot()["instance_id"]
	second := svc.Snapshot()["instance_id"]
	assert.Equal(t, first, second)
}
