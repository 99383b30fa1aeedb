// Package analytics computes derived statistics over finding sets: pure
// functions, no I/O, always computed fresh over the given items.
package analytics

import (
	"github.com/bl4ck0w1/seclynx/pkg/models"
)

// Severity tier labels, indexed by the platform's 0-5 severity scale.
var severityLabels = [...]string{
	0: "Informational",
	1: "Very Low",
	2: "Low",
	3: "Medium",
	4: "High",
	5: "Very High",
}

// SeverityLabelUnknown catches out-of-range severities instead of panicking
// on malformed backend data.
const SeverityLabelUnknown = "Unknown"

func SeverityLabel(severity int) string {
	if severity < 0 || severity >= len(severityLabels) {
		return SeverityLabelUnknown
	}
	return severityLabels[severity]
}

// SeverityBreakdown counts findings per severity tier. The counts always
// sum to len(items).
func SeverityBreakdown(items []models.Finding) map[string]int {
	out := make(map[string]int)
	for _, f := range items {
		out[SeverityLabel(f.Severity)]++
	}
	return out
}

// ScanTypeBreakdown counts findings per scan type.
func ScanTypeBreakdown(items []models.Finding) map[string]int {
	out := make(map[string]int)
	for _, f := range items {
		out[string(f.ScanType)]++
	}
	return out
}

// StatusBreakdown counts findings per lifecycle status. Findings without a
// status are grouped under "UNKNOWN".
func StatusBreakdown(items []models.Finding) map[string]int {
	out := make(map[string]int)
	for _, f := range items {
		status := f.Status
		if status == "" {
			status = "UNKNOWN"
		}
		out[status]++
	}
	return out
}

// PolicyViolationCount counts findings flagged as breaching policy.
func PolicyViolationCount(items []models.Finding) int {
	n := 0
	for _, f := range items {
		if f.ViolatesPolicy {
			n++
		}
	}
	return n
}

// NewCount counts findings first seen in the latest scan.
func NewCount(items []models.Finding) int {
	n := 0
	for _, f := range items {
		if f.IsNew {
			n++
		}
	}
	return n
}
