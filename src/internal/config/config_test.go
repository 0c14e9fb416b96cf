package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "auto", s.PreferredManager())
	assert.False(t, s.PinAutoApply())
	assert.Equal(t, time.Duration(0), s.ExecTimeout())
	assert.Equal(t, 24*time.Hour, s.IndexTTL())
	assert.Empty(t, s.ToolPath("nvm"))
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `manager:
  preferred: fnm
paths:
  fnm: /opt/fnm/fnm
pin:
  autoApply: true
exec:
  timeout: 45s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "fnm", s.PreferredManager())
	assert.Equal(t, "/opt/fnm/fnm", s.ToolPath("fnm"))
	assert.True(t, s.PinAutoApply())
	assert.Equal(t, 45*time.Second, s.ExecTimeout())
}

func TestLoad_MalformedFileErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("manager: [unclosed"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("NVMAN_MANAGER_PREFERRED", "volta")

	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "volta", s.PreferredManager())
}

func TestSetAndSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := Load(dir)
	require.NoError(t, err)

	s.Set(KeyPinAutoApply, true)
	s.Set(KeyPreferredManager, "mise")
	require.NoError(t, s.Save())

	reloaded, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, reloaded.PinAutoApply())
	assert.Equal(t, "mise", reloaded.PreferredManager())
}

func TestSave_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "nvman")

	s, err := Load(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save())
	_, statErr := os.Stat(filepath.Join(dir, "config.yaml"))
	assert.NoError(t, statErr)
}
