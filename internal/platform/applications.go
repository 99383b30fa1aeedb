package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bl4ck0w1/seclynx/pkg/models"
)

const applicationsPath = "/appsec/v1/applications"

type applicationList struct {
	Items []models.Application `json:"items"`
	Page  pageMeta             `json:"page"`
}

// SearchApplications returns the application profiles whose name matches
// the given fragment, in backend ranking order.
func (c *Client) SearchApplications(ctx context.Context, name string, page, size int) ([]models.Application, error) {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}

	var list applicationList
	if err := c.get(ctx, applicationsPath, q, &list); err != nil {
		return nil, fmt.Errorf("search applications %q: %w", name, err)
	}
	return list.Items, nil
}

// GetApplication fetches one application profile by GUID. Returns
// ErrNotFound when the platform has no such application.
func (c *Client) GetApplication(ctx context.Context, guid string) (*models.Application, error) {
	var app models.Application
	if err := c.get(ctx, applicationsPath+"/"+url.PathEscape(guid), nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}
