package testutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertPrintedAt checks that a spectrum of model was printed at scale q,
// using the same header the printer writes.
func AssertPrintedAt(t *testing.T, result *HarnessResult, model string, q float64) {
	t.Helper()
	header := fmt.Sprintf("Running parameters (%s) at Q = %.6e GeV", model, q)
	require.True(t, strings.Contains(result.Output, header),
		"expected header %q was not found in output", header)
}

// PrintedValues returns every value printed for key, in output order. key
// may carry indices, e.g. "mq2(3,3)" or "MChi(1)".
func PrintedValues(t *testing.T, result *HarnessResult, key string) []float64 {
	t.Helper()
	re := regexp.MustCompile(`(?m)^  ` + regexp.QuoteMeta(key) + ` = (\S+)$`)
	var values []float64
	for _, m := range re.FindAllStringSubmatch(result.Output, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		require.NoError(t, err, "printed value for %s", key)
		values = append(values, v)
	}
	return values
}
