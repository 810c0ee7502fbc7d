package integration_tests

import (
	"testing"

	"github.com/specialistvlad/spectrumgo/internal/capability"
	"github.com/specialistvlad/spectrumgo/internal/specerr"
	"github.com/specialistvlad/spectrumgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrorHandling_StartupRejectsBadConfiguration covers the failures that
// stop the app before any process group is formed.
func TestErrorHandling_StartupRejectsBadConfiguration(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		files   map[string]string
		wantErr error
		wantMsg string
	}{
		{
			name:    "invalid HCL",
			files:   map[string]string{"main.hcl": `spectrum "mssm" {`},
			wantMsg: "failed to parse",
		},
		{
			name: "unresolved dependency",
			files: map[string]string{"units.hcl": `
				unit "ExampleBit_A" {
					capability "nevents" {
						type = "double"
						dependency "xsection" {
							type = "double"
						}
					}
				}
			`},
			wantErr: capability.ErrUnresolvedDependency,
		},
		{
			name: "unit clashes with a module unit",
			files: map[string]string{"units.hcl": `
				unit "SpecBit_SM" {
					capability "alpha" {
						type = "double"
					}
				}
			`},
			wantErr: specerr.ErrDuplicateRegistration,
		},
		{
			name:    "unknown transport",
			files:   map[string]string{"main.hcl": `bootstrap { transport = "mpi" }`},
			wantMsg: `unknown transport "mpi"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			result := testutil.RunIntegrationTest(t, tc.files)

			// --- Assert ---
			require.Error(t, result.Err)
			assert.Nil(t, result.App, "no app is built from a bad configuration")
			if tc.wantErr != nil {
				assert.ErrorIs(t, result.Err, tc.wantErr)
			}
			if tc.wantMsg != "" {
				assert.Contains(t, result.Err.Error(), tc.wantMsg)
			}
		})
	}
}
