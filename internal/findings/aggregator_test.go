package findings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bl4ck0w1/seclynx/pkg/models"
)

func newAggregator(backend *fakeBackend) *Aggregator {
	return NewAggregator(NewFetcher(backend, nil), nil, nil)
}

func TestFetchAllSinglePage(t *testing.T) {
	backend := pagedBackend(10, 50)
	agg := newAggregator(backend)

	result, err := agg.FetchAll(context.Background(), "app-1", models.FilterSet{}, 0, 50)
	require.NoError(t, err)

	assert.Len(t, result.Items, 10)
	assert.Equal(t, 1, result.PagesRetrieved)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 10, result.TotalElements)
	assert.False(t, result.Truncated)
	assert.Equal(t, 1, backend.findingsCalls)
}

func TestFetchAllWalksEveryPage(t *testing.T) {
	// 102 findings at 50 per page: two full pages plus a short tail.
	backend := pagedBackend(102, 50)
	agg := newAggregator(backend)

	result, err := agg.FetchAll(context.Background(), "app-1", models.FilterSet{}, 0, 50)
	require.NoError(t, err)

	assert.Len(t, result.Items, 102)
	assert.Equal(t, 3, result.PagesRetrieved)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 102, result.TotalElements)
	assert.False(t, result.Truncated)
	assert.Equal(t, 3, backend.findingsCalls)

	// concatenation in page order, no reordering
	assert.Equal(t, "0", result.Items[0].IssueID)
	assert.Equal(t, "101", result.Items[101].IssueID)
}

func TestFetchAllStopsAtReportedTotal(t *testing.T) {
	// Exact multiple of the page size: the last page is full, so the walk
	// must stop on the reported total instead of requesting a page past the
	// end.
	backend := pagedBackend(100, 50)
	agg := newAggregator(backend)

	result, err := agg.FetchAll(context.Background(), "app-1", models.FilterSet{}, 0, 50)
	require.NoError(t, err)

	assert.Len(t, result.Items, 100)
	assert.Equal(t, 2, result.PagesRetrieved)
	assert.False(t, result.Truncated)
	assert.Equal(t, 2, backend.findingsCalls)
}

func TestFetchAllShortPageBeatsReportedTotal(t *testing.T) {
	// The backend over-reports total_pages; a short page still means end of
	// data, so the walk stops there without being flagged as truncated.
	backend := pagedBackend(80, 50) // page 0 full, page 1 holds 30
	for i, p := range backend.pages {
		p.TotalPages = 10
		p.TotalElements = 480
		backend.pages[i] = p
	}
	agg := newAggregator(backend)

	result, err := agg.FetchAll(context.Background(), "app-1", models.FilterSet{}, 0, 50)
	require.NoError(t, err)

	assert.Len(t, result.Items, 80)
	assert.Equal(t, 2, result.PagesRetrieved)
	assert.Equal(t, 2, backend.findingsCalls, "short page must end the walk despite the inflated total")
	assert.Equal(t, 10, result.TotalPages, "reported totals are carried through as-is")
	assert.Equal(t, 480, result.TotalElements)
	assert.False(t, result.Truncated)
}

func TestFetchAllTruncatesAtPageCeiling(t *testing.T) {
	backend := pagedBackend(500, 50) // 10 pages
	agg := newAggregator(backend)

	result, err := agg.FetchAll(context.Background(), "app-1", models.FilterSet{}, 3, 50)
	require.NoError(t, err)

	assert.Len(t, result.Items, 150)
	assert.Equal(t, 3, result.PagesRetrieved)
	assert.Equal(t, 10, result.TotalPages)
	assert.Equal(t, 500, result.TotalElements)
	assert.True(t, result.Truncated)
	assert.Equal(t, 3, backend.findingsCalls)
}

func TestFetchAllCeilingOnLastPageIsNotTruncated(t *testing.T) {
	// The ceiling equals the actual page count: everything was fetched, so
	// the result must not be flagged as truncated.
	backend := pagedBackend(102, 50)
	agg := newAggregator(backend)

	result, err := agg.FetchAll(context.Background(), "app-1", models.FilterSet{}, 3, 50)
	require.NoError(t, err)

	assert.Len(t, result.Items, 102)
	assert.Equal(t, 3, result.PagesRetrieved)
	assert.False(t, result.Truncated)
}

func TestFetchAllMidWalkErrorDropsPartialResults(t *testing.T) {
	backend := pagedBackend(500, 50)
	backend.pageErrs = map[int]error{2: errors.New("backend gone")}
	agg := newAggregator(backend)

	result, err := agg.FetchAll(context.Background(), "app-1", models.FilterSet{}, 0, 50)
	require.Error(t, err)

	// no partial answer dressed up as a result
	assert.Empty(t, result.Items)
	assert.Equal(t, 0, result.PagesRetrieved)
}

func TestFetchAllNoScansShortCircuits(t *testing.T) {
	backend := &fakeBackend{scans: nil}
	agg := newAggregator(backend)

	result, err := agg.FetchAll(context.Background(), "app-1", models.FilterSet{ScanType: models.ScanDynamic}, 0, 50)
	require.NoError(t, err)

	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.False(t, result.Truncated)
	assert.Equal(t, 0, backend.findingsCalls, "findings endpoint must not be hit")
	assert.Equal(t, 1, backend.scanCalls, "exactly one scan pre-check")
}

func TestFetchAllLastSeenTotalsWin(t *testing.T) {
	// Totals are re-read from every page; a mid-walk change must be
	// reflected in the result.
	first := pagedBackend(100, 50)
	p0 := first.pages[0]
	p0.TotalElements = 100
	first.pages[0] = p0
	p1 := first.pages[1]
	p1.TotalElements = 103
	first.pages[1] = p1
	agg := newAggregator(first)

	result, err := agg.FetchAll(context.Background(), "app-1", models.FilterSet{}, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, 103, result.TotalElements)
}

func TestFetchAllDefaultsAndClamp(t *testing.T) {
	backend := pagedBackend(10, 500)
	agg := newAggregator(backend)

	_, err := agg.FetchAll(context.Background(), "app-1", models.FilterSet{}, 0, 9999)
	require.NoError(t, err)
	assert.Equal(t, "500", backend.lastQuery.Get("size"), "page size is clamped to the backend maximum")

	_, err = agg.FetchAll(context.Background(), "app-1", models.FilterSet{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "500", backend.lastQuery.Get("size"), "zero selects the default size")
}
