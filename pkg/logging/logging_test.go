package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestL_DefaultIsNop(t *testing.T) {
	assert.NotNil(t, L())
	assert.NotNil(t, S())
	assert.NoError(t, Sync())
}

func TestInit_WritesToFile(t *testing.T) {
	restore := Replace(L())
	defer restore()

	out := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, Init(Config{Level: "debug", Format: "json", OutputPath: out}))

	L().Info("root added", Path("/tmp/a"))
	_ = Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"path":"/tmp/a"`), string(data))
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	logger, err := New(Config{Level: "loud", Format: "console", OutputPath: filepath.Join(t.TempDir(), "x.log")})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestSetLevel(t *testing.T) {
	logger, err := New(Config{Level: "info", OutputPath: filepath.Join(t.TempDir(), "x.log")})
	require.NoError(t, err)

	SetLevel("error")
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))

	SetLevel("not-a-level")
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))

	SetLevel("debug")
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	SetLevel("info")
}

func TestReplace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))

	L().Warn("size timeout", Path("/big"), Duration("timeout", 5*time.Second), Int64("bytes", 3), Err(errors.New("x")))
	restore()
	L().Warn("ignored")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "size timeout", entry.Message)
	assert.Equal(t, "/big", entry.ContextMap()["path"])
}
