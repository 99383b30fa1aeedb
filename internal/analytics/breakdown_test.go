package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bl4ck0w1/seclynx/pkg/models"
)

func TestSeverityLabel(t *testing.T) {
	tests := []struct {
		severity int
		want     string
	}{
		{0, "Informational"},
		{1, "Very Low"},
		{2, "Low"},
		{3, "Medium"},
		{4, "High"},
		{5, "Very High"},
		{-1, SeverityLabelUnknown},
		{6, SeverityLabelUnknown},
		{99, SeverityLabelUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SeverityLabel(tt.severity), "severity %d", tt.severity)
	}
}

func TestSeverityBreakdownSumsToInput(t *testing.T) {
	items := []models.Finding{
		{Severity: 5}, {Severity: 5}, {Severity: 3}, {Severity: 0}, {Severity: 9},
	}

	got := SeverityBreakdown(items)

	assert.Equal(t, 2, got["Very High"])
	assert.Equal(t, 1, got["Medium"])
	assert.Equal(t, 1, got["Informational"])
	assert.Equal(t, 1, got[SeverityLabelUnknown], "out-of-range severities land in the catch-all")

	sum := 0
	for _, n := range got {
		sum += n
	}
	assert.Equal(t, len(items), sum)
}

func TestSeverityBreakdownEmpty(t *testing.T) {
	got := SeverityBreakdown(nil)
	assert.Empty(t, got)
}

func TestScanTypeBreakdown(t *testing.T) {
	items := []models.Finding{
		{ScanType: models.ScanStatic},
		{ScanType: models.ScanStatic},
		{ScanType: models.ScanSCA},
	}

	got := ScanTypeBreakdown(items)
	assert.Equal(t, map[string]int{"STATIC": 2, "SCA": 1}, got)
}

func TestStatusBreakdown(t *testing.T) {
	items := []models.Finding{
		{Status: "OPEN"}, {Status: "OPEN"}, {Status: "CLOSED"}, {Status: ""},
	}

	got := StatusBreakdown(items)
	assert.Equal(t, map[string]int{"OPEN": 2, "CLOSED": 1, "UNKNOWN": 1}, got)
}

func TestPolicyViolationCount(t *testing.T) {
	items := []models.Finding{
		{ViolatesPolicy: true}, {ViolatesPolicy: false}, {ViolatesPolicy: true},
	}
	assert.Equal(t, 2, PolicyViolationCount(items))
	assert.Equal(t, 0, PolicyViolationCount(nil))
}

func TestNewCount(t *testing.T) {
	items := []models.Finding{{IsNew: true}, {IsNew: false}}
	assert.Equal(t, 1, NewCount(items))
}
