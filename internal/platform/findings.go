package platform

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bl4ck0w1/seclynx/pkg/models"
)

type pageMeta struct {
	Number        int `json:"number"`
	Size          int `json:"size"`
	TotalElements int `json:"total_elements"`
	TotalPages    int `json:"total_pages"`
}

type findingList struct {
	Items []models.Finding `json:"items"`
	Page  pageMeta         `json:"page"`
}

// GetFindingsPage fetches one page of findings for an application. The
// query must already carry the serialized filter set plus page/size; this
// method only does the wire call and the page-shape mapping.
func (c *Client) GetFindingsPage(ctx context.Context, appGUID string, query url.Values) (models.Page, error) {
	path := fmt.Sprintf("%s/%s/findings", findingsBasePath, url.PathEscape(appGUID))

	var list findingList
	if err := c.get(ctx, path, query, &list); err != nil {
		return models.Page{}, fmt.Errorf("fetch findings page for %s: %w", appGUID, err)
	}

	return models.Page{
		Items:         list.Items,
		PageIndex:     list.Page.Number,
		PageSize:      list.Page.Size,
		TotalPages:    list.Page.TotalPages,
		TotalElements: list.Page.TotalElements,
	}, nil
}

const findingsBasePath = "/appsec/v2/applications"
