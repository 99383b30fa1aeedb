package models

import (
	"encoding/json"
	"fmt"
)

type ScanType string

const (
	ScanStatic  ScanType = "STATIC"
	ScanDynamic ScanType = "DYNAMIC"
	ScanManual  ScanType = "MANUAL"
	ScanSCA     ScanType = "SCA"
)

func (s ScanType) Valid() bool {
	switch s {
	case ScanStatic, ScanDynamic, ScanManual, ScanSCA:
		return true
	}
	return false
}

// Finding is one reported issue instance. The detail payload is a variant
// keyed by ScanType: exactly one of Static/Dynamic/Manual/SCA is set, and
// only for the matching scan type. Access type-specific fields through the
// accessor methods, never by assuming a variant is populated.
type Finding struct {
	IssueID        string   `json:"issue_id,omitempty"`
	ScanType       ScanType `json:"scan_type"`
	Description    string   `json:"description,omitempty"`
	Severity       int      `json:"severity"`
	ViolatesPolicy bool     `json:"violates_policy"`
	Status         string   `json:"status,omitempty"`
	Resolution     string   `json:"resolution,omitempty"`
	IsNew          bool     `json:"is_new,omitempty"`
	Count          int      `json:"count,omitempty"`

	Static  *StaticDetail  `json:"-"`
	Dynamic *DynamicDetail `json:"-"`
	Manual  *ManualDetail  `json:"-"`
	SCA     *SCADetail     `json:"-"`
}

type CWERef struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

type StaticDetail struct {
	FilePath        string  `json:"file_path,omitempty"`
	FileName        string  `json:"file_name,omitempty"`
	FileLineNumber  int     `json:"file_line_number,omitempty"`
	Module          string  `json:"module,omitempty"`
	Procedure       string  `json:"procedure,omitempty"`
	AttackVector    string  `json:"attack_vector,omitempty"`
	FindingCategory string  `json:"finding_category,omitempty"`
	CWE             *CWERef `json:"cwe,omitempty"`
}

type DynamicDetail struct {
	URL                 string  `json:"url,omitempty"`
	Hostname            string  `json:"hostname,omitempty"`
	Port                int     `json:"port,omitempty"`
	Path                string  `json:"path,omitempty"`
	VulnerableParameter string  `json:"vulnerable_parameter,omitempty"`
	FindingCategory     string  `json:"finding_category,omitempty"`
	CWE                 *CWERef `json:"cwe,omitempty"`
}

type ManualDetail struct {
	CAPECID            int     `json:"capec_id,omitempty"`
	ExploitDescription string  `json:"exploit_desc,omitempty"`
	ExploitDifficulty  string  `json:"exploit_difficulty,omitempty"`
	InputVector        string  `json:"input_vector,omitempty"`
	Location           string  `json:"location,omitempty"`
	ModuleName         string  `json:"module,omitempty"`
	RemediationDesc    string  `json:"remediation_desc,omitempty"`
	CVSS               float64 `json:"cvss,omitempty"`
	CWE                *CWERef `json:"cwe,omitempty"`
}

type SCADetail struct {
	ComponentID       string   `json:"component_id,omitempty"`
	ComponentFilename string   `json:"component_filename,omitempty"`
	ComponentPath     string   `json:"component_path,omitempty"`
	Version           string   `json:"version,omitempty"`
	FixedVersion      string   `json:"fixed_version,omitempty"`
	Language          string   `json:"language,omitempty"`
	Licenses          []string `json:"licenses,omitempty"`
	CVE               *CVEInfo `json:"cve,omitempty"`
}

type CVEInfo struct {
	Name           string          `json:"name"`
	CVSS           float64         `json:"cvss"`
	Severity       string          `json:"severity,omitempty"`
	Href           string          `json:"href,omitempty"`
	Exploitability *Exploitability `json:"exploitability,omitempty"`
}

type Exploitability struct {
	ExploitObserved bool    `json:"exploit_observed"`
	EPSSScore       float64 `json:"epss_score,omitempty"`
	EPSSPercentile  float64 `json:"epss_percentile,omitempty"`
	EPSSModelDate   string  `json:"epss_model_date,omitempty"`
}

func (f *Finding) UnmarshalJSON(data []byte) error {
	type alias Finding
	aux := struct {
		*alias
		Details json.RawMessage `json:"finding_details"`
	}{alias: (*alias)(f)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Details) == 0 || string(aux.Details) == "null" {
		return nil
	}

	switch f.ScanType {
	case ScanStatic:
		f.Static = &StaticDetail{}
		return json.Unmarshal(aux.Details, f.Static)
	case ScanDynamic:
		f.Dynamic = &DynamicDetail{}
		return json.Unmarshal(aux.Details, f.Dynamic)
	case ScanManual:
		f.Manual = &ManualDetail{}
		return json.Unmarshal(aux.Details, f.Manual)
	case ScanSCA:
		f.SCA = &SCADetail{}
		return json.Unmarshal(aux.Details, f.SCA)
	default:
		// Unknown scan type: keep the common fields, drop the detail payload.
		return nil
	}
}

func (f Finding) MarshalJSON() ([]byte, error) {
	type alias Finding
	aux := struct {
		alias
		Details interface{} `json:"finding_details,omitempty"`
	}{alias: alias(f)}

	switch {
	case f.Static != nil:
		aux.Details = f.Static
	case f.Dynamic != nil:
		aux.Details = f.Dynamic
	case f.Manual != nil:
		aux.Details = f.Manual
	case f.SCA != nil:
		aux.Details = f.SCA
	}
	return json.Marshal(aux)
}

// CVSS returns the finding's CVSS score and whether one is present.
// Only SCA findings with a CVE record and manual findings with a scored
// assessment carry a CVSS score.
func (f *Finding) CVSS() (float64, bool) {
	switch {
	case f.SCA != nil && f.SCA.CVE != nil:
		return f.SCA.CVE.CVSS, true
	case f.Manual != nil && f.Manual.CVSS > 0:
		return f.Manual.CVSS, true
	}
	return 0, false
}

// CVEName returns the CVE identifier for SCA findings, or "".
func (f *Finding) CVEName() string {
	if f.SCA != nil && f.SCA.CVE != nil {
		return f.SCA.CVE.Name
	}
	return ""
}

// ExploitObserved reports whether an exploit has been observed in the wild
// for this finding. Only SCA findings ever match.
func (f *Finding) ExploitObserved() bool {
	return f.SCA != nil && f.SCA.CVE != nil &&
		f.SCA.CVE.Exploitability != nil &&
		f.SCA.CVE.Exploitability.ExploitObserved
}

// ComponentName returns the affected component filename for SCA findings.
func (f *Finding) ComponentName() string {
	if f.SCA == nil {
		return ""
	}
	if f.SCA.ComponentFilename != "" {
		return f.SCA.ComponentFilename
	}
	return f.SCA.ComponentID
}

func (f *Finding) Validate() error {
	if !f.ScanType.Valid() {
		return fmt.Errorf("invalid scan type: %s", f.ScanType)
	}
	if f.Severity < 0 || f.Severity > 5 {
		return fmt.Errorf("severity out of range: %d", f.Severity)
	}
	return nil
}
