package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RunWithFlags(t *testing.T) {
	// Arrange
	out := &bytes.Buffer{}
	args := []string{"run", "-c", "a.hcl", "--config", "b.yaml", "extra", "--log-level", "DEBUG", "--log-format", "json", "--trace"}

	// Act
	inv, exit, err := Parse(args, out)

	// Assert
	require.NoError(t, err)
	assert.False(t, exit)
	require.NotNil(t, inv)
	assert.Equal(t, CommandRun, inv.Command)
	assert.Equal(t, []string{"a.hcl", "b.yaml", "extra"}, inv.Config.ConfigPaths)
	assert.Equal(t, "debug", inv.Config.LogLevel)
	assert.Equal(t, "json", inv.Config.LogFormat)
	assert.True(t, inv.Config.Trace)
}

func TestParse_EnvironmentFallback(t *testing.T) {
	// Arrange
	t.Setenv("SPECTRUMGO_LOG_LEVEL", "warn")
	t.Setenv("SPECTRUMGO_TRANSPORT", "socketio")
	t.Setenv("SPECTRUMGO_COORDINATOR", "http://localhost:3000")
	t.Setenv("SPECTRUMGO_JOB", "scan-7")

	// Act
	inv, _, err := Parse([]string{"capabilities", "units.hcl"}, &bytes.Buffer{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, CommandCapabilities, inv.Command)
	assert.Equal(t, "warn", inv.Config.LogLevel)
	assert.Equal(t, "socketio", inv.Config.Transport)
	assert.Equal(t, "http://localhost:3000", inv.Config.CoordinatorURL)
	assert.Equal(t, "scan-7", inv.Config.Job)
}

func TestParse_FlagBeatsEnvironment(t *testing.T) {
	// Arrange
	t.Setenv("SPECTRUMGO_LOG_LEVEL", "warn")

	// Act
	inv, _, err := Parse([]string{"run", "a.hcl", "--log-level", "error"}, &bytes.Buffer{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "error", inv.Config.LogLevel)
}

func TestParse_HelpExitsCleanly(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {}, {"run", "--help"}} {
		// Arrange
		out := &bytes.Buffer{}

		// Act
		inv, exit, err := Parse(args, out)

		// Assert
		require.NoError(t, err, "args %v", args)
		assert.True(t, exit, "args %v", args)
		assert.Nil(t, inv)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"run", "--nope"}, "unknown flag: --nope"},
		{"unknown command", []string{"fly"}, `unknown command "fly"`},
		{"no config", []string{"run"}, "no configuration given"},
		{"bad level", []string{"run", "a.hcl", "--log-level", "loud"}, "invalid log-level"},
		{"bad format", []string{"run", "a.hcl", "--log-format", "xml"}, "invalid log-format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, _, err := Parse(tc.args, &bytes.Buffer{})

			// Assert
			require.Error(t, err)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}
