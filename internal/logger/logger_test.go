package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log, err := New("prod", path)
	require.NoError(t, err)

	log.With("lesson", "swatch").Info("painted", "steps", 2)
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `"lesson":"swatch"`), string(data))
	require.True(t, strings.Contains(string(data), `"steps":2`), string(data))
}

func TestOrNop(t *testing.T) {
	require.NotNil(t, OrNop(nil))
	l := Nop()
	require.Same(t, l, OrNop(l))
	OrNop(nil).Warn("discarded")
}
