package models

// Page is one fetch result from the findings endpoint. Items preserve
// backend order; TotalPages/TotalElements are the backend-reported totals
// for the current filter set and are advisory only.
type Page struct {
	Items         []Finding `json:"items"`
	PageIndex     int       `json:"page_index"`
	PageSize      int       `json:"page_size"`
	TotalPages    int       `json:"total_pages"`
	TotalElements int       `json:"total_elements"`
}

func (p Page) HasNext() bool {
	return p.PageIndex < p.TotalPages-1
}

func (p Page) HasPrevious() bool {
	return p.PageIndex > 0
}

// AggregateResult is the outcome of walking all pages for one filter set.
// It lives for the duration of a single aggregation call and is never
// cached across calls.
type AggregateResult struct {
	Items          []Finding `json:"items"`
	PagesRetrieved int       `json:"pages_retrieved"`
	TotalPages     int       `json:"total_pages"`
	TotalElements  int       `json:"total_elements"`
	Truncated      bool      `json:"truncated"`
}
