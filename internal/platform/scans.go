package platform

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bl4ck0w1/seclynx/pkg/models"
)

type scanList struct {
	Items []models.Scan `json:"items"`
}

// ListScans returns the scans recorded against an application, optionally
// restricted to one scan type.
func (c *Client) ListScans(ctx context.Context, appGUID string, scanType models.ScanType) ([]models.Scan, error) {
	q := url.Values{}
	if scanType != "" {
		q.Set("scan_type", string(scanType))
	}

	path := fmt.Sprintf("%s/%s/scans", applicationsPath, url.PathEscape(appGUID))
	var list scanList
	if err := c.get(ctx, path, q, &list); err != nil {
		return nil, fmt.Errorf("list scans for %s: %w", appGUID, err)
	}
	return list.Items, nil
}
