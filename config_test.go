package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, s string) string {
	path := filepath.Join(t.TempDir(), "gofm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(s), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
	assert.NoError(t, c.Validate())
	assert.Equal(t, "I2C1", c.Radio.Bus)
	assert.Equal(t, uint16(0x10), c.Radio.Addr)
	assert.Equal(t, 40*time.Millisecond, c.Radio.Poll)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
radio:
  channel: 94.9
  poll: 20ms
  reset: false
sqlite:
  path: /var/lib/gofm/stations.db
redis:
  addr: localhost:6379
  prefix: kitchen
log:
  level: debug
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 94.9, c.Radio.Channel)
	assert.Equal(t, 20*time.Millisecond, c.Radio.Poll)
	assert.False(t, c.Radio.Reset)
	assert.Equal(t, "/var/lib/gofm/stations.db", c.SQLite.Path)
	assert.Equal(t, "localhost:6379", c.Redis.Addr)
	assert.Equal(t, "kitchen", c.Redis.Prefix)
	assert.Equal(t, "debug", c.Log.Level)

	// untouched keys keep their defaults
	assert.Equal(t, "I2C1", c.Radio.Bus)
	assert.Equal(t, "gofm.rds", c.NATS.Subject)
	assert.True(t, c.Display.RBDS)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "radio:\n  chanel: 94.9\n"))
	assert.Error(t, err, "unknown key")

	_, err = LoadConfig(writeConfig(t, "radio:\n  channel: 120.1\n"))
	require.Error(t, err)
	assert.Equal(t, ErrInvalidFreq, errors.Cause(err))

	_, err = LoadConfig(writeConfig(t, "radio:\n  poll: 0s\n"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	log, err := newLogger("warn", false, false, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log, err = newLogger("warn", true, false, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log, err = newLogger("error", true, true, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.Debug("tuned")
	assert.Contains(t, buf.String(), "msg=tuned")

	_, err = newLogger("loud", false, false, &buf)
	assert.Error(t, err)
}

func TestLogOutput(t *testing.T) {
	var fallback bytes.Buffer
	out, closer, err := logOutput("", &fallback)
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.Equal(t, &fallback, out)

	path := filepath.Join(t.TempDir(), "gofm.log")
	out, closer, err = logOutput(path, &fallback)
	require.NoError(t, err)
	_, err = out.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}
