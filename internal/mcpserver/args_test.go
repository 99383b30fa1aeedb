package mcpserver

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bl4ck0w1/seclynx/pkg/models"
)

func request(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestFiltersFromRequestEmpty(t *testing.T) {
	f, err := filtersFromRequest(request(map[string]interface{}{}))
	require.NoError(t, err)
	assert.Equal(t, models.FilterSet{}, f)
}

func TestFiltersFromRequestZeroSeverityIsPresent(t *testing.T) {
	// JSON numbers arrive as float64.
	f, err := filtersFromRequest(request(map[string]interface{}{"severity": float64(0)}))
	require.NoError(t, err)

	require.NotNil(t, f.Severity)
	assert.Equal(t, 0, *f.Severity)
}

func TestFiltersFromRequestFullSet(t *testing.T) {
	f, err := filtersFromRequest(request(map[string]interface{}{
		"scan_type":             "sca",
		"severity_gte":          float64(4),
		"cvss_gte":              7.5,
		"cwe":                   "89, 79",
		"cve":                   "CVE-2021-44228",
		"context":               "sandbox-guid",
		"new_only":              true,
		"policy_violation_only": true,
		"sca_dependency_mode":   "direct",
	}))
	require.NoError(t, err)

	assert.Equal(t, models.ScanSCA, f.ScanType)
	require.NotNil(t, f.SeverityGTE)
	assert.Equal(t, 4, *f.SeverityGTE)
	require.NotNil(t, f.CVSSGTE)
	assert.Equal(t, 7.5, *f.CVSSGTE)
	assert.Equal(t, []int{89, 79}, f.CWE)
	assert.Equal(t, "CVE-2021-44228", f.CVE)
	assert.True(t, f.NewOnly)
	assert.True(t, f.PolicyViolation)
	assert.Equal(t, "DIRECT", f.SCADependencyMode)
	assert.Nil(t, f.Severity)
	assert.Nil(t, f.CVSS)
}

func TestFiltersFromRequestInvalidScanType(t *testing.T) {
	_, err := filtersFromRequest(request(map[string]interface{}{"scan_type": "PENETRATION"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scan_type")
}

func TestFiltersFromRequestInvalidCWE(t *testing.T) {
	_, err := filtersFromRequest(request(map[string]interface{}{"cwe": "89,sql-injection"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid CWE id")
}

func TestIntArgCoercions(t *testing.T) {
	args := map[string]interface{}{
		"float":  float64(3),
		"int":    2,
		"string": "5",
		"junk":   "abc",
	}

	v, ok := intArg(args, "float")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = intArg(args, "int")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = intArg(args, "string")
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	_, ok = intArg(args, "junk")
	assert.False(t, ok)

	_, ok = intArg(args, "missing")
	assert.False(t, ok)
}
