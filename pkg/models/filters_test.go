package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSetValuesOmitsAbsentFields(t *testing.T) {
	q := FilterSet{}.Values()
	assert.Empty(t, q, "an empty filter set serializes to no parameters")
}

func TestFilterSetValuesZeroIsNotAbsent(t *testing.T) {
	sev := 0
	q := FilterSet{Severity: &sev}.Values()
	assert.Equal(t, "0", q.Get("severity"), "an explicit zero severity must be sent")
}

func TestFilterSetValues(t *testing.T) {
	sevGTE := 4
	cvssGTE := 7.5
	q := FilterSet{
		ScanType:          ScanSCA,
		SeverityGTE:       &sevGTE,
		CWE:               []int{89, 79},
		CVSSGTE:           &cvssGTE,
		CVE:               "CVE-2021-44228",
		Context:           "sandbox-guid",
		NewOnly:           true,
		PolicyViolation:   true,
		SCADependencyMode: "DIRECT",
	}.Values()

	assert.Equal(t, "SCA", q.Get("scan_type"))
	assert.Equal(t, "4", q.Get("severity_gte"))
	assert.Equal(t, "89,79", q.Get("cwe"))
	assert.Equal(t, "7.5", q.Get("cvss_gte"))
	assert.Equal(t, "CVE-2021-44228", q.Get("cve"))
	assert.Equal(t, "sandbox-guid", q.Get("context"))
	assert.Equal(t, "true", q.Get("new"))
	assert.Equal(t, "true", q.Get("violates_policy"))
	assert.Equal(t, "DIRECT", q.Get("sca_dep_mode"))

	assert.False(t, q.Has("severity"))
	assert.False(t, q.Has("include_annot"))
}

func TestPageNavigation(t *testing.T) {
	tests := []struct {
		name     string
		page     Page
		hasNext  bool
		hasPrev  bool
	}{
		{"first of three", Page{PageIndex: 0, TotalPages: 3}, true, false},
		{"middle", Page{PageIndex: 1, TotalPages: 3}, true, true},
		{"last", Page{PageIndex: 2, TotalPages: 3}, false, true},
		{"empty result", Page{PageIndex: 0, TotalPages: 0}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hasNext, tt.page.HasNext())
			assert.Equal(t, tt.hasPrev, tt.page.HasPrevious())
		})
	}
}
