// Package findings implements paginated retrieval of security findings:
// single bounded page fetches and the bounded walk that aggregates every
// page of a result set.
package findings

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/bl4ck0w1/seclynx/pkg/models"
)

const (
	// MaxPageSize is the hard backend maximum; requested sizes are clamped.
	MaxPageSize = 500

	// DefaultPageSize is used by the aggregator when no size is given.
	DefaultPageSize = 500

	// DefaultMaxPages bounds a default aggregation to 25,000 findings.
	DefaultMaxPages = 50
)

// Backend is the slice of the platform API the fetcher needs.
type Backend interface {
	GetFindingsPage(ctx context.Context, appGUID string, query url.Values) (models.Page, error)
	ListScans(ctx context.Context, appGUID string, scanType models.ScanType) ([]models.Scan, error)
}

type Fetcher struct {
	backend Backend
	logger  *logrus.Logger
}

func NewFetcher(backend Backend, logger *logrus.Logger) *Fetcher {
	if logger == nil {
		logger = logrus.New()
	}
	return &Fetcher{backend: backend, logger: logger}
}

// FetchPage fetches one page of findings. Before hitting the findings
// endpoint it checks the application's scan list: when the requested scan
// type has never run, the result is a well-formed empty page rather than a
// misleading "zero findings" answer, and the findings round trip is
// skipped entirely.
func (f *Fetcher) FetchPage(ctx context.Context, appGUID string, filters models.FilterSet, page, size int) (models.Page, error) {
	page, size = clampCursor(page, size)

	available, err := f.scanTypeAvailable(ctx, appGUID, filters.ScanType)
	if err != nil {
		return models.Page{}, err
	}
	if !available {
		f.logger.Debugf("Application %s has no %s scans, returning empty page", appGUID, scanTypeLabel(filters.ScanType))
		return emptyPage(page, size), nil
	}

	return f.fetch(ctx, appGUID, filters, page, size)
}

// fetch is the raw page request, no scan pre-check. The aggregator uses it
// directly after doing its own single pre-check.
func (f *Fetcher) fetch(ctx context.Context, appGUID string, filters models.FilterSet, page, size int) (models.Page, error) {
	q := filters.Values()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	p, err := f.backend.GetFindingsPage(ctx, appGUID, q)
	if err != nil {
		return models.Page{}, fmt.Errorf("fetch page %d: %w", page, err)
	}
	return p, nil
}

// scanTypeAvailable reports whether the application has any scans at all,
// or any scans of the requested type when one is set.
func (f *Fetcher) scanTypeAvailable(ctx context.Context, appGUID string, scanType models.ScanType) (bool, error) {
	scans, err := f.backend.ListScans(ctx, appGUID, scanType)
	if err != nil {
		return false, fmt.Errorf("check scans for %s: %w", appGUID, err)
	}
	return len(scans) > 0, nil
}

func clampCursor(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 1
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

func emptyPage(page, size int) models.Page {
	return models.Page{
		Items:         []models.Finding{},
		PageIndex:     page,
		PageSize:      size,
		TotalPages:    0,
		TotalElements: 0,
	}
}

func scanTypeLabel(s models.ScanType) string {
	if s == "" {
		return "completed"
	}
	return string(s)
}
