package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PROGRESS_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"主要工程", "偉鴻", "材料案"}, cfg.Divisions.Sections)
}

func TestRequireServer(t *testing.T) {
	t.Run("missing DSN", func(t *testing.T) {
		cfg := &Config{SessionSecret: "s"}
		assert.ErrorIs(t, cfg.RequireServer(), ErrMissing)
	})

	t.Run("missing password", func(t *testing.T) {
		t.Setenv("ACCESS_PASSWORD", "")
		t.Setenv("ACCESS_PASSWORD_HASH", "")
		cfg := &Config{DBDSN: "x", SessionSecret: "s"}
		assert.ErrorIs(t, cfg.RequireServer(), ErrMissing)
	})

	t.Run("plain password is hashed", func(t *testing.T) {
		t.Setenv("ACCESS_PASSWORD", "shop-floor")
		t.Setenv("ACCESS_PASSWORD_HASH", "")
		cfg := &Config{DBDSN: "x", SessionSecret: "s"}
		require.NoError(t, cfg.RequireServer())
		assert.NoError(t, bcrypt.CompareHashAndPassword(cfg.PasswordHash, []byte("shop-floor")))
	})

	t.Run("hash wins", func(t *testing.T) {
		t.Setenv("ACCESS_PASSWORD", "ignored")
		t.Setenv("ACCESS_PASSWORD_HASH", "$2a$10$abc")
		cfg := &Config{DBDSN: "x", SessionSecret: "s"}
		require.NoError(t, cfg.RequireServer())
		assert.Equal(t, "$2a$10$abc", string(cfg.PasswordHash))
	})
}

func TestLoadDivisions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "divisions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sections:\n  - 北廠\n  - 南廠\n"), 0o644))

	d, err := LoadDivisions(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"北廠", "南廠"}, d.Sections)
	assert.Equal(t, []string{"114", "115", "116"}, d.HandoverYears)

	assert.True(t, d.HasSection("南廠"))
	assert.True(t, d.HasSection(""))
	assert.False(t, d.HasSection("主要工程"))

	_, err = LoadDivisions(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
