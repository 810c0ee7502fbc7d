// Package testutil provides the shared harness for the integration tests:
// it writes configuration files to a temporary tree, builds an App over them
// and runs it.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/spectrumgo/internal/app"
	"github.com/specialistvlad/spectrumgo/internal/bootstrap"
	"github.com/specialistvlad/spectrumgo/internal/registry"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	// Output holds printed spectra and debug logs in write order.
	Output string
	Err    error
	App    *app.App
}

// WriteFiles writes files, keyed by relative path, under a fresh temporary
// root and returns the root.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// RunIntegrationTest loads every file from a temporary tree and runs the
// app over it using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, nil, modules...)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller context
// and, when transport is non-nil, a caller transport. A construction error
// is reported in the result with a nil App.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, transport bootstrap.Transport, modules ...registry.Module) *HarnessResult {
	t.Helper()

	root := WriteFiles(t, files)
	logBuffer := &app.SafeBuffer{}
	appConfig := &app.Config{
		ConfigPaths: []string{root},
		LogLevel:    "debug",
		LogFormat:   "text",
	}

	a, err := app.NewApp(logBuffer, logBuffer, appConfig, app.NewLoader(), modules...)
	if err != nil {
		return &HarnessResult{Output: logBuffer.String(), Err: err}
	}
	if transport != nil {
		a.SetTransport(transport)
	}

	runErr := a.Run(ctx)
	logOutput := logBuffer.String()
	t.Cleanup(func() {
		if os.Getenv("SPECTRUMGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logOutput)
		}
	})

	return &HarnessResult{Output: logOutput, Err: runErr, App: a}
}
