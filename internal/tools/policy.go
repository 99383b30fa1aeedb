package tools

import (
	"context"
	"fmt"

	"github.com/bl4ck0w1/seclynx/internal/analytics"
	"github.com/bl4ck0w1/seclynx/pkg/models"
)

type policyDocument struct {
	Application       applicationRef      `json:"application"`
	PolicyName        string              `json:"policy_name"`
	ComplianceStatus  string              `json:"compliance_status"`
	Rules             []models.PolicyRule `json:"rules,omitempty"`
	ViolatingFindings int                 `json:"violating_findings"`
	SeverityBreakdown map[string]int      `json:"violation_severity_breakdown"`
	SampleNotice      string              `json:"sample_notice,omitempty"`
}

// GetPolicyCompliance returns the compliance document for an application's
// policy, enriched with a breakdown of the policy-violating findings
// (sampled from the first page of up to 500).
func (t *Toolset) GetPolicyCompliance(ctx context.Context, identifier string) Result {
	log := t.begin("get_policy_compliance")

	res, err := t.resolver.Resolve(ctx, identifier)
	if err != nil {
		log.Warnf("Resolution failed: %v", err)
		return failErr(err)
	}

	status, err := t.backend.GetPolicyStatus(ctx, res.GUID)
	if err != nil {
		log.Errorf("Policy status fetch failed: %v", err)
		return failErr(err)
	}

	filters := models.FilterSet{PolicyViolation: true}
	p, err := t.fetcher.FetchPage(ctx, res.GUID, filters, 0, summaryPageSize)
	if err != nil {
		log.Errorf("Violation fetch failed: %v", err)
		return failErr(err)
	}

	doc := policyDocument{
		Application:       appRef(res),
		PolicyName:        status.PolicyName,
		ComplianceStatus:  status.ComplianceStatus,
		Rules:             status.Rules,
		ViolatingFindings: p.TotalElements,
		SeverityBreakdown: analytics.SeverityBreakdown(p.Items),
	}
	if p.TotalElements > len(p.Items) {
		doc.SampleNotice = fmt.Sprintf(
			"severity breakdown based on a sample of the first %d of %d violating findings",
			len(p.Items), p.TotalElements)
	}
	return ok(doc)
}
