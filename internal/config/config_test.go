package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, ModeCompile, cfg.DefaultMode)
	assert.True(t, cfg.UsePIC())
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mipscc.yml")
	content := "default_mode: ir\npic: false\ntarget_cpu: mips32r2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeIR, cfg.DefaultMode)
	assert.False(t, cfg.UsePIC())
	assert.Equal(t, "mips32r2", cfg.TargetCPU)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mipscc.yml")
	require.NoError(t, os.WriteFile(path, []byte("default_mode: [oops"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
