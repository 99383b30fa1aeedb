package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bl4ck0w1/seclynx/pkg/models"
)

func scaFinding(severity int, cvss float64, cve, component string, exploited bool) models.Finding {
	return models.Finding{
		ScanType: models.ScanSCA,
		Severity: severity,
		SCA: &models.SCADetail{
			ComponentFilename: component,
			CVE: &models.CVEInfo{
				Name: cve,
				CVSS: cvss,
				Exploitability: &models.Exploitability{
					ExploitObserved: exploited,
				},
			},
		},
	}
}

func highSeverityFindings(n int) []models.Finding {
	out := make([]models.Finding, n)
	for i := range out {
		out[i] = models.Finding{ScanType: models.ScanStatic, Severity: 4}
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		items []models.Finding
		want  string
	}{
		{"empty", nil, RiskLow},
		{"five high severity stays low", highSeverityFindings(5), RiskLow},
		{"six high severity is medium", highSeverityFindings(6), RiskMedium},
		{"single exploited finding is high", []models.Finding{
			scaFinding(2, 5.0, "CVE-2024-0001", "lib.jar", true),
		}, RiskHigh},
		{"exploit outranks severity count", append(highSeverityFindings(20),
			scaFinding(1, 3.1, "CVE-2024-0002", "lib.jar", true)), RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.items))
		})
	}
}

func TestExploitableCount(t *testing.T) {
	items := []models.Finding{
		scaFinding(5, 9.8, "CVE-2024-0001", "a.jar", true),
		scaFinding(5, 9.8, "CVE-2024-0002", "b.jar", false),
		{ScanType: models.ScanStatic, Severity: 5}, // non-SCA never counts
	}
	assert.Equal(t, 1, ExploitableCount(items))
}

func TestHighRiskCountBoundary(t *testing.T) {
	items := []models.Finding{
		{Severity: 3}, {Severity: 4}, {Severity: 5},
	}
	assert.Equal(t, 2, HighRiskCount(items))
}

func TestFilterExploitable(t *testing.T) {
	a := scaFinding(5, 9.8, "CVE-2024-0001", "a.jar", true)
	b := scaFinding(4, 7.5, "CVE-2024-0002", "b.jar", false)
	c := scaFinding(3, 6.1, "CVE-2024-0003", "c.jar", true)

	got := FilterExploitable([]models.Finding{a, b, c})

	assert.Len(t, got, 2)
	assert.Equal(t, "CVE-2024-0001", got[0].CVEName())
	assert.Equal(t, "CVE-2024-0003", got[1].CVEName(), "input order is preserved")

	assert.NotNil(t, FilterExploitable(nil))
}

func TestTopVulnerabilities(t *testing.T) {
	items := []models.Finding{
		scaFinding(3, 6.1, "CVE-2024-0003", "c.jar", false),
		scaFinding(5, 9.8, "CVE-2024-0001", "a.jar", true),
		{ScanType: models.ScanStatic, Severity: 5}, // no CVSS, filtered out
		scaFinding(4, 7.5, "CVE-2024-0002", "b.jar", false),
	}

	got := TopVulnerabilities(items, 2)

	assert.Len(t, got, 2)
	assert.Equal(t, "CVE-2024-0001", got[0].CVE)
	assert.Equal(t, 9.8, got[0].CVSS)
	assert.True(t, got[0].ExploitObserved)
	assert.Equal(t, "CVE-2024-0002", got[1].CVE)
	assert.Equal(t, "Very High", got[0].SeverityLabel)
}

func TestTopVulnerabilitiesFewerThanRequested(t *testing.T) {
	items := []models.Finding{
		scaFinding(4, 7.5, "CVE-2024-0002", "b.jar", false),
	}

	got := TopVulnerabilities(items, 10)
	assert.Len(t, got, 1)

	assert.Empty(t, TopVulnerabilities(nil, 10))
	assert.NotNil(t, TopVulnerabilities(nil, 10))
}

func TestTopVulnerabilitiesIncludesManual(t *testing.T) {
	items := []models.Finding{
		{ScanType: models.ScanManual, Severity: 4, Manual: &models.ManualDetail{CVSS: 8.2}},
		scaFinding(3, 6.1, "CVE-2024-0003", "c.jar", false),
	}

	got := TopVulnerabilities(items, 10)
	assert.Len(t, got, 2)
	assert.Equal(t, 8.2, got[0].CVSS)
	assert.Empty(t, got[0].CVE, "manual findings carry a score but no CVE")
}
