package analytics

import (
	"github.com/Masterminds/semver/v3"

	"github.com/bl4ck0w1/seclynx/pkg/models"
)

// ComponentUpgrade is one third-party component running a version older
// than the version carrying the fix.
type ComponentUpgrade struct {
	Component      string `json:"component"`
	CurrentVersion string `json:"current_version"`
	FixedVersion   string `json:"fixed_version"`
	CVE            string `json:"cve,omitempty"`
	Severity       int    `json:"severity"`
}

// OutdatedComponents returns the SCA findings whose component version is
// semver-older than the reported fixed version. Versions that do not parse
// as semver are skipped rather than guessed at; one entry per distinct
// component keeps the list readable.
func OutdatedComponents(items []models.Finding) []ComponentUpgrade {
	seen := make(map[string]bool)
	out := []ComponentUpgrade{}

	for i := range items {
		f := &items[i]
		if f.SCA == nil || f.SCA.Version == "" || f.SCA.FixedVersion == "" {
			continue
		}

		current, err := semver.NewVersion(f.SCA.Version)
		if err != nil {
			continue
		}
		fixed, err := semver.NewVersion(f.SCA.FixedVersion)
		if err != nil {
			continue
		}
		if !current.LessThan(fixed) {
			continue
		}

		name := f.ComponentName()
		if seen[name] {
			continue
		}
		seen[name] = true

		out = append(out, ComponentUpgrade{
			Component:      name,
			CurrentVersion: f.SCA.Version,
			FixedVersion:   f.SCA.FixedVersion,
			CVE:            f.CVEName(),
			Severity:       f.Severity,
		})
	}
	return out
}

// LicenseRiskCount counts SCA findings whose component reports no license
// information, a supply-chain review flag.
func LicenseRiskCount(items []models.Finding) int {
	n := 0
	for _, f := range items {
		if f.SCA != nil && len(f.SCA.Licenses) == 0 {
			n++
		}
	}
	return n
}
