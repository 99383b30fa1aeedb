package platform

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bl4ck0w1/seclynx/pkg/models"
)

// GetPolicyStatus returns the compliance document for the policy attached
// to an application.
func (c *Client) GetPolicyStatus(ctx context.Context, appGUID string) (*models.PolicyStatus, error) {
	path := fmt.Sprintf("%s/%s/policy", applicationsPath, url.PathEscape(appGUID))

	var status models.PolicyStatus
	if err := c.get(ctx, path, nil, &status); err != nil {
		return nil, fmt.Errorf("get policy status for %s: %w", appGUID, err)
	}
	return &status, nil
}
