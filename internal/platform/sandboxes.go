package platform

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bl4ck0w1/seclynx/pkg/models"
)

type sandboxList struct {
	Items []models.Sandbox `json:"items"`
}

// ListSandboxes returns an application's development sandboxes. A sandbox
// GUID can be passed as the context filter on any findings query.
func (c *Client) ListSandboxes(ctx context.Context, appGUID string) ([]models.Sandbox, error) {
	path := fmt.Sprintf("%s/%s/sandboxes", applicationsPath, url.PathEscape(appGUID))

	var list sandboxList
	if err := c.get(ctx, path, nil, &list); err != nil {
		return nil, fmt.Errorf("list sandboxes for %s: %w", appGUID, err)
	}
	return list.Items, nil
}
