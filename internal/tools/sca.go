package tools

import (
	"context"
	"fmt"

	"github.com/bl4ck0w1/seclynx/internal/analytics"
	"github.com/bl4ck0w1/seclynx/pkg/models"
)

type scaFindingsDocument struct {
	Application       applicationRef   `json:"application"`
	Page              pageInfo         `json:"page"`
	ExploitableOnly   bool             `json:"exploitable_only,omitempty"`
	Exploitable       int              `json:"exploitable"`
	SeverityBreakdown map[string]int   `json:"severity_breakdown"`
	Findings          []models.Finding `json:"findings"`
}

// GetSCAFindings fetches one page of software-composition findings. With
// exploitableOnly set, findings without an observed exploit are filtered
// out client-side after the fetch; the page metadata still describes the
// unfiltered backend page.
func (t *Toolset) GetSCAFindings(ctx context.Context, identifier string, filters models.FilterSet, exploitableOnly bool, page, size int) Result {
	log := t.begin("get_sca_findings")

	res, err := t.resolver.Resolve(ctx, identifier)
	if err != nil {
		log.Warnf("Resolution failed: %v", err)
		return failErr(err)
	}

	filters.ScanType = models.ScanSCA
	p, err := t.fetcher.FetchPage(ctx, res.GUID, filters, page, size)
	if err != nil {
		log.Errorf("Page fetch failed: %v", err)
		return failErr(err)
	}

	items := p.Items
	if exploitableOnly {
		items = analytics.FilterExploitable(items)
	}

	return ok(scaFindingsDocument{
		Application:       appRef(res),
		Page:              pageInfoFrom(p),
		ExploitableOnly:   exploitableOnly,
		Exploitable:       analytics.ExploitableCount(items),
		SeverityBreakdown: analytics.SeverityBreakdown(items),
		Findings:          items,
	})
}

type scaSummaryDocument struct {
	Application        applicationRef               `json:"application"`
	RiskLevel          string                       `json:"risk_level"`
	AnalyzedFindings   int                          `json:"analyzed_findings"`
	TotalElements      int                          `json:"total_elements"`
	Exploitable        int                          `json:"exploitable"`
	HighRiskComponents int                          `json:"high_risk_components"`
	PolicyViolations   int                          `json:"policy_violations"`
	LicenseRisk        int                          `json:"license_risk"`
	SeverityBreakdown  map[string]int               `json:"severity_breakdown"`
	TopVulnerabilities []analytics.Vulnerability    `json:"top_vulnerabilities"`
	OutdatedComponents []analytics.ComponentUpgrade `json:"outdated_components"`
	SampleNotice       string                       `json:"sample_notice,omitempty"`
}

// GetSCASummary produces the composition-analysis risk document over a
// sample of at most the first 1000 SCA findings. Risk level is HIGH with
// any observed exploit, MEDIUM with more than five high-severity
// components, LOW otherwise.
func (t *Toolset) GetSCASummary(ctx context.Context, identifier string) Result {
	log := t.begin("get_sca_summary")

	res, err := t.resolver.Resolve(ctx, identifier)
	if err != nil {
		log.Warnf("Resolution failed: %v", err)
		return failErr(err)
	}

	filters := models.FilterSet{ScanType: models.ScanSCA}
	agg, err := t.pager.FetchAll(ctx, res.GUID, filters, summaryMaxPages, summaryPageSize)
	if err != nil {
		log.Errorf("Aggregation failed: %v", err)
		return failErr(err)
	}

	doc := scaSummaryDocument{
		Application:        appRef(res),
		RiskLevel:          analytics.Classify(agg.Items),
		AnalyzedFindings:   len(agg.Items),
		TotalElements:      agg.TotalElements,
		Exploitable:        analytics.ExploitableCount(agg.Items),
		HighRiskComponents: analytics.HighRiskCount(agg.Items),
		PolicyViolations:   analytics.PolicyViolationCount(agg.Items),
		LicenseRisk:        analytics.LicenseRiskCount(agg.Items),
		SeverityBreakdown:  analytics.SeverityBreakdown(agg.Items),
		TopVulnerabilities: analytics.TopVulnerabilities(agg.Items, topVulnerabilityCount),
		OutdatedComponents: analytics.OutdatedComponents(agg.Items),
	}
	if agg.Truncated {
		doc.SampleNotice = fmt.Sprintf(
			"analysis based on a sample of the first %d of %d SCA findings",
			len(agg.Items), agg.TotalElements)
	}
	return ok(doc)
}
