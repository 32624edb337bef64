package logging

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitializeDisabled(t *testing.T) {
	require.NoError(t, Initialize(false, ""))
	assert.NotNil(t, L())
	assert.Empty(t, Path())
	assert.False(t, L().Core().Enabled(zap.DebugLevel))
}

func TestInitializeWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fex.log")
	require.NoError(t, Initialize(true, path))
	t.Cleanup(func() { _ = Initialize(false, "") })

	assert.Equal(t, path, Path())
	L().Debug("navigated", zap.String("path", "/tmp"))
	_ = Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"navigated"`)
	assert.Contains(t, string(data), `"path":"/tmp"`)
}

func TestLogDirUsesStateHome(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("XDG layout only")
	}
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)
	dir, err := logDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(state, "fex"), dir)
}
