package integration_tests

import (
	"testing"

	"github.com/specialistvlad/spectrumgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCore_ConvertMassesOffPrintsMagnitudes checks that with the signed
// convention switched off every fermion mass is printed as a magnitude.
func TestCore_ConvertMassesOffPrintsMagnitudes(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
			spectrum "mssm" {
				convert_masses = false
			}
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	for _, key := range []string{"MGluino", "MChi(1)", "MChi(2)", "MChi(3)", "MChi(4)", "MCha(1)", "MCha(2)"} {
		got := testutil.PrintedValues(t, result, key)
		require.Len(t, got, 1, key)
		assert.GreaterOrEqual(t, got[0], 0.0, key)
	}
}
