package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.ini")
	content := `
[log]
path = /var/log/app.log

[output]
dir = /tmp/extracts

[sample]
generate = false
entries = 50

[mysql]
host = db.example.com
port = 3307
password = secret
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/log/app.log", cfg.LogPath)
	assert.Equal(t, "/tmp/extracts", cfg.OutputDir)
	assert.False(t, cfg.Sample.Generate)
	assert.Equal(t, 50, cfg.Sample.Entries)
	assert.Equal(t, 365, cfg.Sample.Days, "unset keys keep defaults")
	assert.Equal(t, "db.example.com", cfg.MySQL.Host)
	assert.Equal(t, 3307, cfg.MySQL.Port)
	assert.Equal(t, "root", cfg.MySQL.User)
	assert.Equal(t, "secret", cfg.MySQL.Password)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ini")
	require.NoError(t, os.WriteFile(path, []byte("[log\npath = x\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultFile, filepath.Base(DefaultPath()))
}
