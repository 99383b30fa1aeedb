package tools

import (
	"context"

	"github.com/bl4ck0w1/seclynx/pkg/models"
)

type applicationListDocument struct {
	Query        string               `json:"query"`
	Count        int                  `json:"count"`
	Applications []models.Application `json:"applications"`
}

// SearchApplications lists application profiles matching a name fragment.
func (t *Toolset) SearchApplications(ctx context.Context, name string, page, size int) Result {
	log := t.begin("search_applications")

	if name == "" {
		return fail("missing required argument: name")
	}

	apps, err := t.backend.SearchApplications(ctx, name, page, size)
	if err != nil {
		log.Errorf("Search failed: %v", err)
		return failErr(err)
	}
	if apps == nil {
		apps = []models.Application{}
	}

	return ok(applicationListDocument{
		Query:        name,
		Count:        len(apps),
		Applications: apps,
	})
}

type applicationProfileDocument struct {
	Application  applicationRef     `json:"application"`
	Profile      models.Application `json:"profile"`
	ScansOnFile  []models.Scan      `json:"scans_on_file"`
	SandboxCount int                `json:"sandbox_count"`
}

// GetApplicationProfile resolves an identifier and returns the full
// profile plus the application's recorded scans and sandbox count.
func (t *Toolset) GetApplicationProfile(ctx context.Context, identifier string) Result {
	log := t.begin("get_application_profile")

	res, err := t.resolver.Resolve(ctx, identifier)
	if err != nil {
		log.Warnf("Resolution failed: %v", err)
		return failErr(err)
	}

	profile, err := t.backend.GetApplication(ctx, res.GUID)
	if err != nil {
		log.Errorf("Profile fetch failed: %v", err)
		return failErr(err)
	}

	scans, err := t.backend.ListScans(ctx, res.GUID, "")
	if err != nil {
		log.Errorf("Scan list failed: %v", err)
		return failErr(err)
	}

	sandboxes, err := t.backend.ListSandboxes(ctx, res.GUID)
	if err != nil {
		log.Errorf("Sandbox list failed: %v", err)
		return failErr(err)
	}

	return ok(applicationProfileDocument{
		Application:  appRef(res),
		Profile:      *profile,
		ScansOnFile:  scans,
		SandboxCount: len(sandboxes),
	})
}
