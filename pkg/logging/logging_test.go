package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture swaps the global logger for a JSON buffer for the test duration
func capture(t *testing.T, level zerolog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(level)
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func TestLevelFor(t *testing.T) {
	cases := map[int]zerolog.Level{
		-1: zerolog.WarnLevel,
		0:  zerolog.WarnLevel,
		1:  zerolog.InfoLevel,
		2:  zerolog.DebugLevel,
		3:  zerolog.TraceLevel,
		9:  zerolog.TraceLevel,
	}
	for v, want := range cases {
		assert.Equal(t, want, LevelFor(v), "verbosity %d", v)
	}
}

func TestSetupWritesXDGLogFile(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var console bytes.Buffer
	got := Setup(Options{Verbosity: 1, Console: &console})

	want := filepath.Join(state, "importsteps", "importsteps.log")
	assert.Equal(t, want, got)
	assert.Equal(t, want, DefaultLogFile())
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	log.Info().Str("step", "s1").Msg("applied rename")
	assert.Contains(t, console.String(), "applied rename")

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"step":"s1"`)
}

func TestSetupConsoleOnly(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var console bytes.Buffer
	assert.Empty(t, Setup(Options{Verbosity: 0, Console: &console, NoFile: true}))

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
}

func TestSetupFallsBackWhenFileUnavailable(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	var console bytes.Buffer
	got := Setup(Options{Console: &console, LogFile: filepath.Join(blocker, "x.log")})
	assert.Empty(t, got)
	assert.Contains(t, console.String(), "Log file unavailable")
}

func TestGetLogger(t *testing.T) {
	buf := capture(t, zerolog.InfoLevel)

	logger := GetLogger("resolver")
	logger.Info().Msg("resolved")

	assert.Contains(t, buf.String(), `"component":"resolver"`)
	assert.Contains(t, buf.String(), `"message":"resolved"`)
}

func TestTimed(t *testing.T) {
	buf := capture(t, zerolog.DebugLevel)

	done := Timed(log.Logger, "end_batch")
	assert.Contains(t, buf.String(), "Operation started")
	done()

	assert.Contains(t, buf.String(), `"operation":"end_batch"`)
	assert.Contains(t, buf.String(), `"duration"`)
	assert.Contains(t, buf.String(), "Operation completed")
}
