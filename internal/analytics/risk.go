package analytics

import (
	"sort"

	"github.com/bl4ck0w1/seclynx/pkg/models"
)

// Risk level labels produced by Classify.
const (
	RiskHigh   = "HIGH"
	RiskMedium = "MEDIUM"
	RiskLow    = "LOW"
)

// highRiskThreshold is the fixed business rule for the MEDIUM tier: more
// than this many high-severity findings without an observed exploit.
const highRiskThreshold = 5

// ExploitableCount counts findings with an exploit observed in the wild.
// Only SCA findings ever match.
func ExploitableCount(items []models.Finding) int {
	n := 0
	for _, f := range items {
		if f.ExploitObserved() {
			n++
		}
	}
	return n
}

// HighRiskCount counts findings of severity High or Very High.
func HighRiskCount(items []models.Finding) int {
	n := 0
	for _, f := range items {
		if f.Severity >= 4 {
			n++
		}
	}
	return n
}

// Classify maps a finding set to a coarse risk level: HIGH when any
// exploit has been observed, MEDIUM when more than five high-severity
// findings exist, LOW otherwise.
func Classify(items []models.Finding) string {
	if ExploitableCount(items) > 0 {
		return RiskHigh
	}
	if HighRiskCount(items) > highRiskThreshold {
		return RiskMedium
	}
	return RiskLow
}

// FilterExploitable returns only the findings with an observed exploit,
// preserving input order.
func FilterExploitable(items []models.Finding) []models.Finding {
	out := []models.Finding{}
	for _, f := range items {
		if f.ExploitObserved() {
			out = append(out, f)
		}
	}
	return out
}

// Vulnerability is one entry of the top-vulnerabilities list.
type Vulnerability struct {
	CVE             string  `json:"cve,omitempty"`
	CVSS            float64 `json:"cvss"`
	Severity        int     `json:"severity"`
	SeverityLabel   string  `json:"severity_label"`
	Component       string  `json:"component,omitempty"`
	ExploitObserved bool    `json:"exploit_observed"`
}

// TopVulnerabilities returns the n highest-CVSS findings. Findings without
// a CVSS score are filtered out first, then the rest are stably sorted
// descending and truncated; tie order follows input order and is not
// contractual.
func TopVulnerabilities(items []models.Finding, n int) []Vulnerability {
	scored := []Vulnerability{}
	for i := range items {
		f := &items[i]
		cvss, ok := f.CVSS()
		if !ok {
			continue
		}
		scored = append(scored, Vulnerability{
			CVE:             f.CVEName(),
			CVSS:            cvss,
			Severity:        f.Severity,
			SeverityLabel:   SeverityLabel(f.Severity),
			Component:       f.ComponentName(),
			ExploitObserved: f.ExploitObserved(),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].CVSS > scored[j].CVSS })

	if n > 0 && len(scored) > n {
		scored = scored[:n]
	}
	return scored
}
