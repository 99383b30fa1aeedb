package findings

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/bl4ck0w1/seclynx/pkg/models"
	"github.com/bl4ck0w1/seclynx/pkg/utils"
)

// Aggregator walks all pages of a findings result set sequentially. Pages
// must be fetched one at a time: the stop conditions (short page, cursor
// past the reported total, page ceiling) are evaluated between fetches.
type Aggregator struct {
	fetcher *Fetcher
	logger  *logrus.Logger
	metrics *utils.MetricsCollector
}

func NewAggregator(fetcher *Fetcher, logger *logrus.Logger, metrics *utils.MetricsCollector) *Aggregator {
	if logger == nil {
		logger = logrus.New()
	}
	a := &Aggregator{fetcher: fetcher, logger: logger, metrics: metrics}
	if metrics != nil {
		_ = metrics.RegisterCounter("seclynx_pages_fetched_total",
			"Findings pages fetched during aggregation")
		_ = metrics.RegisterCounter("seclynx_aggregations_truncated_total",
			"Aggregations stopped by the page ceiling before exhausting results")
	}
	return a
}

// FetchAll aggregates every page of findings for one filter set, starting
// at page 0, bounded by maxPages. Totals are re-read from every page and
// the last-seen values win; items are concatenated in page order with no
// reordering and no deduplication.
//
// A failed page fetch aborts the whole aggregation with an error: partial
// results are never returned as if they were a complete or deliberately
// truncated answer.
func (a *Aggregator) FetchAll(ctx context.Context, appGUID string, filters models.FilterSet, maxPages, pageSize int) (models.AggregateResult, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	available, err := a.fetcher.scanTypeAvailable(ctx, appGUID, filters.ScanType)
	if err != nil {
		return models.AggregateResult{}, err
	}
	if !available {
		a.logger.Debugf("Application %s has no %s scans, nothing to aggregate", appGUID, scanTypeLabel(filters.ScanType))
		return models.AggregateResult{Items: []models.Finding{}}, nil
	}

	result := models.AggregateResult{Items: []models.Finding{}}
	cursor := 0

	for {
		page, err := a.fetcher.fetch(ctx, appGUID, filters, cursor, pageSize)
		if err != nil {
			return models.AggregateResult{}, err
		}

		result.Items = append(result.Items, page.Items...)
		result.TotalPages = page.TotalPages
		result.TotalElements = page.TotalElements
		result.PagesRetrieved++
		a.countPage()

		// Short page means end of data regardless of what total_pages
		// claims; do not trust the backend total alone.
		if len(page.Items) < pageSize {
			break
		}

		cursor++
		if cursor >= result.TotalPages {
			break
		}
		if result.PagesRetrieved >= maxPages {
			result.Truncated = cursor < result.TotalPages
			break
		}
	}

	if result.Truncated {
		a.logger.Warnf("Aggregation for %s hit the %d-page ceiling with %d of %d pages fetched",
			appGUID, maxPages, result.PagesRetrieved, result.TotalPages)
		if a.metrics != nil {
			a.metrics.IncCounter("seclynx_aggregations_truncated_total", 1, prometheus.Labels{})
		}
	}

	a.logger.WithFields(logrus.Fields{
		"app":       appGUID,
		"items":     len(result.Items),
		"pages":     result.PagesRetrieved,
		"truncated": result.Truncated,
	}).Debug("aggregation complete")

	return result, nil
}

func (a *Aggregator) countPage() {
	if a.metrics != nil {
		a.metrics.IncCounter("seclynx_pages_fetched_total", 1, prometheus.Labels{})
	}
}
