package tools

import (
	"context"
	"strings"

	"github.com/bl4ck0w1/seclynx/pkg/models"
)

type scanListDocument struct {
	Application applicationRef `json:"application"`
	ScanType    string         `json:"scan_type,omitempty"`
	Count       int            `json:"count"`
	Scans       []models.Scan  `json:"scans"`
}

// ListScans lists the scans recorded against an application, optionally
// restricted to one scan type.
func (t *Toolset) ListScans(ctx context.Context, identifier, scanType string) Result {
	log := t.begin("list_scans")

	st := models.ScanType(strings.ToUpper(strings.TrimSpace(scanType)))
	if st != "" && !st.Valid() {
		return fail("invalid scan type %q (expected STATIC, DYNAMIC, MANUAL or SCA)", scanType)
	}

	res, err := t.resolver.Resolve(ctx, identifier)
	if err != nil {
		log.Warnf("Resolution failed: %v", err)
		return failErr(err)
	}

	scans, err := t.backend.ListScans(ctx, res.GUID, st)
	if err != nil {
		log.Errorf("Scan list failed: %v", err)
		return failErr(err)
	}
	if scans == nil {
		scans = []models.Scan{}
	}

	return ok(scanListDocument{
		Application: appRef(res),
		ScanType:    string(st),
		Count:       len(scans),
		Scans:       scans,
	})
}

type sandboxListDocument struct {
	Application applicationRef   `json:"application"`
	Count       int              `json:"count"`
	Sandboxes   []models.Sandbox `json:"sandboxes"`
}

// ListSandboxes lists an application's development sandboxes. A sandbox
// GUID can be supplied as the context filter on any findings tool.
func (t *Toolset) ListSandboxes(ctx context.Context, identifier string) Result {
	log := t.begin("list_sandboxes")

	res, err := t.resolver.Resolve(ctx, identifier)
	if err != nil {
		log.Warnf("Resolution failed: %v", err)
		return failErr(err)
	}

	sandboxes, err := t.backend.ListSandboxes(ctx, res.GUID)
	if err != nil {
		log.Errorf("Sandbox list failed: %v", err)
		return failErr(err)
	}
	if sandboxes == nil {
		sandboxes = []models.Sandbox{}
	}

	return ok(sandboxListDocument{
		Application: appRef(res),
		Count:       len(sandboxes),
		Sandboxes:   sandboxes,
	})
}
