package tools

import (
	"context"
	"fmt"

	"github.com/bl4ck0w1/seclynx/internal/analytics"
	"github.com/bl4ck0w1/seclynx/internal/resolver"
	"github.com/bl4ck0w1/seclynx/pkg/models"
)

type applicationRef struct {
	GUID         string `json:"guid"`
	Name         string `json:"name"`
	MatchWarning string `json:"match_warning,omitempty"`
}

func appRef(res resolver.Resolution) applicationRef {
	ref := applicationRef{GUID: res.GUID, Name: res.Name}
	if res.WasNameLookup && !res.ExactMatch {
		ref.MatchWarning = fmt.Sprintf("no exact name match; using closest result %q", res.Name)
	}
	return ref
}

type pageInfo struct {
	Page          int  `json:"page"`
	Size          int  `json:"size"`
	TotalPages    int  `json:"total_pages"`
	TotalElements int  `json:"total_elements"`
	HasNext       bool `json:"has_next"`
	HasPrevious   bool `json:"has_previous"`
}

func pageInfoFrom(p models.Page) pageInfo {
	return pageInfo{
		Page:          p.PageIndex,
		Size:          p.PageSize,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
		HasNext:       p.HasNext(),
		HasPrevious:   p.HasPrevious(),
	}
}

type findingsDocument struct {
	Application       applicationRef   `json:"application"`
	Page              pageInfo         `json:"page"`
	SeverityBreakdown map[string]int   `json:"severity_breakdown"`
	PolicyViolations  int              `json:"policy_violations"`
	Findings          []models.Finding `json:"findings"`
}

// GetFindings fetches one page of findings for an application.
func (t *Toolset) GetFindings(ctx context.Context, identifier string, filters models.FilterSet, page, size int) Result {
	log := t.begin("get_findings")

	res, err := t.resolver.Resolve(ctx, identifier)
	if err != nil {
		log.Warnf("Resolution failed: %v", err)
		return failErr(err)
	}

	p, err := t.fetcher.FetchPage(ctx, res.GUID, filters, page, size)
	if err != nil {
		log.Errorf("Page fetch failed: %v", err)
		return failErr(err)
	}

	return ok(findingsDocument{
		Application:       appRef(res),
		Page:              pageInfoFrom(p),
		SeverityBreakdown: analytics.SeverityBreakdown(p.Items),
		PolicyViolations:  analytics.PolicyViolationCount(p.Items),
		Findings:          p.Items,
	})
}

type paginatedDocument struct {
	Application       applicationRef   `json:"application"`
	TotalFindings     int              `json:"total_findings"`
	PagesRetrieved    int              `json:"pages_retrieved"`
	TotalPages        int              `json:"total_pages"`
	TotalElements     int              `json:"total_elements"`
	Complete          bool             `json:"complete"`
	TruncationNotice  string           `json:"truncation_notice,omitempty"`
	SeverityBreakdown map[string]int   `json:"severity_breakdown"`
	ScanTypeBreakdown map[string]int   `json:"scan_type_breakdown"`
	PolicyViolations  int              `json:"policy_violations"`
	Findings          []models.Finding `json:"findings"`
}

// GetFindingsPaginated walks all pages of findings, bounded by maxPages,
// and reports explicitly whether the aggregate is complete. Zero values
// select the aggregator defaults.
func (t *Toolset) GetFindingsPaginated(ctx context.Context, identifier string, filters models.FilterSet, maxPages, pageSize int) Result {
	log := t.begin("get_findings_paginated")

	res, err := t.resolver.Resolve(ctx, identifier)
	if err != nil {
		log.Warnf("Resolution failed: %v", err)
		return failErr(err)
	}

	agg, err := t.pager.FetchAll(ctx, res.GUID, filters, maxPages, pageSize)
	if err != nil {
		log.Errorf("Aggregation failed: %v", err)
		return failErr(err)
	}

	doc := paginatedDocument{
		Application:       appRef(res),
		TotalFindings:     len(agg.Items),
		PagesRetrieved:    agg.PagesRetrieved,
		TotalPages:        agg.TotalPages,
		TotalElements:     agg.TotalElements,
		Complete:          !agg.Truncated,
		SeverityBreakdown: analytics.SeverityBreakdown(agg.Items),
		ScanTypeBreakdown: analytics.ScanTypeBreakdown(agg.Items),
		PolicyViolations:  analytics.PolicyViolationCount(agg.Items),
		Findings:          agg.Items,
	}
	if agg.Truncated {
		doc.TruncationNotice = fmt.Sprintf(
			"results incomplete: stopped after %d of %d pages; narrow your filters to retrieve everything",
			agg.PagesRetrieved, agg.TotalPages)
	}
	return ok(doc)
}

type summaryDocument struct {
	Application       applicationRef `json:"application"`
	AnalyzedFindings  int            `json:"analyzed_findings"`
	TotalElements     int            `json:"total_elements"`
	SeverityBreakdown map[string]int `json:"severity_breakdown"`
	ScanTypeBreakdown map[string]int `json:"scan_type_breakdown"`
	StatusBreakdown   map[string]int `json:"status_breakdown"`
	PolicyViolations  int            `json:"policy_violations"`
	NewFindings       int            `json:"new_findings"`
	SampleNotice      string         `json:"sample_notice,omitempty"`
}

// SummarizeFindings returns breakdowns only, no raw findings, computed
// over a sample of at most the first 1000 findings.
func (t *Toolset) SummarizeFindings(ctx context.Context, identifier string, filters models.FilterSet) Result {
	log := t.begin("summarize_findings")

	res, err := t.resolver.Resolve(ctx, identifier)
	if err != nil {
		log.Warnf("Resolution failed: %v", err)
		return failErr(err)
	}

	agg, err := t.pager.FetchAll(ctx, res.GUID, filters, summaryMaxPages, summaryPageSize)
	if err != nil {
		log.Errorf("Aggregation failed: %v", err)
		return failErr(err)
	}

	doc := summaryDocument{
		Application:       appRef(res),
		AnalyzedFindings:  len(agg.Items),
		TotalElements:     agg.TotalElements,
		SeverityBreakdown: analytics.SeverityBreakdown(agg.Items),
		ScanTypeBreakdown: analytics.ScanTypeBreakdown(agg.Items),
		StatusBreakdown:   analytics.StatusBreakdown(agg.Items),
		PolicyViolations:  analytics.PolicyViolationCount(agg.Items),
		NewFindings:       analytics.NewCount(agg.Items),
	}
	if agg.Truncated {
		doc.SampleNotice = fmt.Sprintf(
			"analysis based on a sample of the first %d of %d findings",
			len(agg.Items), agg.TotalElements)
	}
	return ok(doc)
}
