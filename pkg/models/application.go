package models

import "time"

// Application is one application profile as reported by the platform.
type Application struct {
	GUID                string    `json:"guid"`
	Name                string    `json:"name"`
	BusinessCriticality string    `json:"business_criticality,omitempty"`
	BusinessUnit        string    `json:"business_unit,omitempty"`
	Tags                []string  `json:"tags,omitempty"`
	Policies            []Policy  `json:"policies,omitempty"`
	Teams               []string  `json:"teams,omitempty"`
	Created             time.Time `json:"created,omitempty"`
	Modified            time.Time `json:"modified,omitempty"`
	LastCompletedScan   time.Time `json:"last_completed_scan_date,omitempty"`
}

// Policy is a compliance policy attached to an application profile.
type Policy struct {
	GUID             string `json:"guid,omitempty"`
	Name             string `json:"name"`
	ComplianceStatus string `json:"policy_compliance_status,omitempty"`
	IsDefault        bool   `json:"is_default,omitempty"`
}

// PolicyStatus is the full compliance document for one application.
type PolicyStatus struct {
	PolicyName       string       `json:"policy_name"`
	ComplianceStatus string       `json:"policy_compliance_status"`
	GracePeriodDays  int          `json:"grace_period_days,omitempty"`
	Rules            []PolicyRule `json:"rules,omitempty"`
}

type PolicyRule struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Passed      bool   `json:"passed"`
}

// Scan is one analysis run recorded against an application.
type Scan struct {
	ScanID       string    `json:"scan_id,omitempty"`
	ScanType     ScanType  `json:"scan_type"`
	Status       string    `json:"status,omitempty"`
	ScanURL      string    `json:"scan_url,omitempty"`
	ModifiedDate time.Time `json:"modified_date,omitempty"`
}

// Sandbox is a development sandbox (non-policy scan context). Its GUID is
// accepted as the Context field of a FilterSet.
type Sandbox struct {
	GUID         string    `json:"guid"`
	Name         string    `json:"name"`
	OwnerUser    string    `json:"owner_username,omitempty"`
	Created      time.Time `json:"created,omitempty"`
	LastModified time.Time `json:"modified,omitempty"`
}
