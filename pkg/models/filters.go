package models

import (
	"net/url"
	"strconv"
	"strings"
)

// FilterSet is the caller-supplied findings query. Every field is optional;
// an absent field means "do not filter on this dimension" and is omitted
// from the request entirely, never sent as an empty or default value.
type FilterSet struct {
	ScanType           ScanType `json:"scan_type,omitempty"`
	Severity           *int     `json:"severity,omitempty"`
	SeverityGTE        *int     `json:"severity_gte,omitempty"`
	CWE                []int    `json:"cwe,omitempty"`
	CVSS               *float64 `json:"cvss,omitempty"`
	CVSSGTE            *float64 `json:"cvss_gte,omitempty"`
	CVE                string   `json:"cve,omitempty"`
	Context            string   `json:"context,omitempty"`
	IncludeAnnotations bool     `json:"include_annot,omitempty"`
	IncludeExpired     bool     `json:"include_exp_date,omitempty"`
	NewOnly            bool     `json:"new,omitempty"`
	PolicyViolation    bool     `json:"violates_policy,omitempty"`
	SCADependencyMode  string   `json:"sca_dep_mode,omitempty"`
	SCAScanMode        string   `json:"sca_scan_mode,omitempty"`
}

// Values serializes the present fields into request query parameters.
// Page and size cursors are appended by the fetcher, not here.
func (f FilterSet) Values() url.Values {
	q := url.Values{}
	if f.ScanType != "" {
		q.Set("scan_type", string(f.ScanType))
	}
	if f.Severity != nil {
		q.Set("severity", strconv.Itoa(*f.Severity))
	}
	if f.SeverityGTE != nil {
		q.Set("severity_gte", strconv.Itoa(*f.SeverityGTE))
	}
	if len(f.CWE) > 0 {
		ids := make([]string, len(f.CWE))
		for i, id := range f.CWE {
			ids[i] = strconv.Itoa(id)
		}
		q.Set("cwe", strings.Join(ids, ","))
	}
	if f.CVSS != nil {
		q.Set("cvss", strconv.FormatFloat(*f.CVSS, 'f', -1, 64))
	}
	if f.CVSSGTE != nil {
		q.Set("cvss_gte", strconv.FormatFloat(*f.CVSSGTE, 'f', -1, 64))
	}
	if f.CVE != "" {
		q.Set("cve", f.CVE)
	}
	if f.Context != "" {
		q.Set("context", f.Context)
	}
	if f.IncludeAnnotations {
		q.Set("include_annot", "true")
	}
	if f.IncludeExpired {
		q.Set("include_exp_date", "true")
	}
	if f.NewOnly {
		q.Set("new", "true")
	}
	if f.PolicyViolation {
		q.Set("violates_policy", "true")
	}
	if f.SCADependencyMode != "" {
		q.Set("sca_dep_mode", f.SCADependencyMode)
	}
	if f.SCAScanMode != "" {
		q.Set("sca_scan_mode", f.SCAScanMode)
	}
	return q
}
