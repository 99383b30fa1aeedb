package mcpserver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bl4ck0w1/seclynx/pkg/models"
)

// filtersFromRequest builds a FilterSet from the request arguments.
// Numeric filters must distinguish "absent" from zero, so presence is
// checked against the raw argument map rather than defaulted getters.
func filtersFromRequest(request mcp.CallToolRequest) (models.FilterSet, error) {
	args := request.GetArguments()
	f := models.FilterSet{}

	if st := request.GetString("scan_type", ""); st != "" {
		scanType := models.ScanType(strings.ToUpper(st))
		if !scanType.Valid() {
			return f, fmt.Errorf("invalid scan_type %q (expected STATIC, DYNAMIC, MANUAL or SCA)", st)
		}
		f.ScanType = scanType
	}

	if v, ok := intArg(args, "severity"); ok {
		f.Severity = &v
	}
	if v, ok := intArg(args, "severity_gte"); ok {
		f.SeverityGTE = &v
	}
	if v, ok := floatArg(args, "cvss"); ok {
		f.CVSS = &v
	}
	if v, ok := floatArg(args, "cvss_gte"); ok {
		f.CVSSGTE = &v
	}

	if raw := request.GetString("cwe", ""); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return f, fmt.Errorf("invalid CWE id %q", part)
			}
			f.CWE = append(f.CWE, id)
		}
	}

	f.CVE = request.GetString("cve", "")
	f.Context = request.GetString("context", "")
	f.IncludeAnnotations = request.GetBool("include_annotations", false)
	f.IncludeExpired = request.GetBool("include_expired", false)
	f.NewOnly = request.GetBool("new_only", false)
	f.PolicyViolation = request.GetBool("policy_violation_only", false)
	f.SCADependencyMode = strings.ToUpper(request.GetString("sca_dependency_mode", ""))
	f.SCAScanMode = strings.ToUpper(request.GetString("sca_scan_mode", ""))

	return f, nil
}

func intArg(args map[string]interface{}, key string) (int, bool) {
	v, ok := args[key]
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return int(x), true
	case int:
		return x, true
	case string:
		n, err := strconv.Atoi(x)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func floatArg(args map[string]interface{}, key string) (float64, bool) {
	v, ok := args[key]
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case string:
		n, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
