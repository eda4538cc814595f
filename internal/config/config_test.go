package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadValid(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/meetup.db
server:
  bind_address: 127.0.0.1
  bind_port: 8765
  session_length: 600
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/meetup.db", cfg.Database.Path)
	assert.Equal(t, "127.0.0.1:8765", cfg.Addr())
	assert.Equal(t, 600, cfg.Server.SessionLength)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Nil(t, cfg.TLS)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "database: [not: valid\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing configuration")
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"missing database path": `
server:
  bind_address: 127.0.0.1
  bind_port: 8765
  session_length: 600
`,
		"missing bind address": `
database:
  path: /tmp/meetup.db
server:
  bind_port: 8765
  session_length: 600
`,
		"bad port": `
database:
  path: /tmp/meetup.db
server:
  bind_address: 127.0.0.1
  bind_port: 123456
  session_length: 600
`,
		"zero session length": `
database:
  path: /tmp/meetup.db
server:
  bind_address: 127.0.0.1
  bind_port: 8765
  session_length: 0
`,
		"tls without key": `
database:
  path: /tmp/meetup.db
server:
  bind_address: 127.0.0.1
  bind_port: 8765
  session_length: 600
tls:
  cert_file: /tmp/cert.pem
`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".cache"), ExpandHome("~/.cache"))
	assert.Equal(t, "/etc/meetup.yml", ExpandHome("/etc/meetup.yml"))
	assert.Equal(t, "relative/path", ExpandHome("relative/path"))
}
