package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "memory", cfg.SessionBackend)
	assert.Equal(t, "/auth/login", cfg.LoginPath)
	assert.Equal(t, "/auth", cfg.AuthPrefix)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)

	for _, role := range domain.Roles() {
		if _, ok := cfg.Dashboards[role]; !ok {
			t.Errorf("default dashboards missing role %s", role)
		}
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  name: healthcare-staging
api:
  base_url: https://auth.staging.example.com
  timeout: 5s
session:
  backend: redis
  default_ttl: 30m
redis:
  addr: redis.staging:6379
  db: 2
paths:
  login: /signin
  dashboards:
    DOCTOR: /doc/home
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "healthcare-staging", cfg.AppName)
	assert.Equal(t, "https://auth.staging.example.com", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, "redis", cfg.SessionBackend)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "redis.staging:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "/signin", cfg.LoginPath)
	assert.Equal(t, "/doc/home", cfg.Dashboards[domain.RoleDoctor])
	// untouched defaults survive the merge
	assert.Equal(t, "/auth", cfg.AuthPrefix)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	path := writeConfig(t, "api:\n  timeout: soon\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_UnknownDashboardRole(t *testing.T) {
	path := writeConfig(t, "paths:\n  dashboards:\n    NURSE: /nurse\n")
	_, err := Load(path)
	assert.Error(t, err)
}
