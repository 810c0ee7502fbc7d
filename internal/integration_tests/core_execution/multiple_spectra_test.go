package integration_tests

import (
	"strings"
	"testing"

	"github.com/specialistvlad/spectrumgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCore_SpectraPrintInConfigurationOrder checks that every spectrum entry
// gets its own facade and that output follows declaration order.
func TestCore_SpectraPrintInConfigurationOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
			spectrum "qedqcd" {
				run = [150]
			}
			spectrum "mssm" {
				dimensionless {
					g3 = 1.1
				}
			}
			spectrum "qedqcd" {}
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	first := strings.Index(result.Output, "Running parameters (qedqcd) at Q = 1.500000e+02 GeV")
	second := strings.Index(result.Output, "Running parameters (mssm)")
	third := strings.LastIndex(result.Output, "Running parameters (qedqcd) at Q = 9.118760e+01 GeV")
	require.True(t, first >= 0 && second >= 0 && third >= 0, "all three spectra printed")
	assert.Less(t, first, second)
	assert.Less(t, second, third)
	assert.Equal(t, []float64{1.1}, testutil.PrintedValues(t, result, "g3"))
}
