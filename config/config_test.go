package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_FileValuesAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `{
		"app": {"port": "9000", "allowed_origins": ["https://board.example"]},
		"session": {"secret": "file-secret", "ttl_hours": 24},
		"database": {"driver": "postgres", "name": "board"},
		"roster": {
			"teacher": {"name": "선생님", "code": "1234"},
			"students": [{"name": "학생", "code": "0001"}]
		}
	}`)
	t.Setenv("APP_PORT", "9100")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.AppPort)
	assert.Equal(t, []string{"https://board.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "file-secret", cfg.SessionSecret)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "board", cfg.DBName)
	assert.Equal(t, RosterEntry{Name: "선생님", Code: "1234"}, cfg.Teacher)
	require.Len(t, cfg.Students, 1)
	assert.Equal(t, "학생", cfg.Students[0].Name)
}

func TestLoadFile_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("SESSION_SECRET", "env-secret")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.SessionSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, DefaultTeacher, cfg.Teacher)
	assert.Equal(t, DefaultStudents, cfg.Students)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFile_CommaSeparatedOrigins(t *testing.T) {
	t.Setenv("SESSION_SECRET", "env-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadFile_RequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := LoadFile(writeConfig(t, `{"app": {"port": "8080"}}`))
	assert.Error(t, err)
}

func TestLoadFile_RejectsMalformedRoster(t *testing.T) {
	t.Setenv("SESSION_SECRET", "env-secret")

	tests := []struct {
		name string
		body string
	}{
		{"non numeric code", `{"roster": {"teacher": {"name": "교사", "code": "12a4"}}}`},
		{"missing code", `{"roster": {"students": [{"name": "학생"}]}}`},
		{"blank name", `{"roster": {"students": [{"name": " ", "code": "1111"}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_AcceptsHashedCode(t *testing.T) {
	t.Setenv("SESSION_SECRET", "env-secret")

	cfg, err := LoadFile(writeConfig(t, `{"roster": {"teacher": {"name": "교사", "code_hash": "$2a$10$abcdefghijklmnopqrstuv"}}}`))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Teacher.Code)
	assert.NotEmpty(t, cfg.Teacher.CodeHash)
}

func TestNewDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := newDialector(AppConfig{DBDriver: driver, DBName: "board"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := newDialector(AppConfig{DBDriver: "oracle"})
	assert.Error(t, err)
}
