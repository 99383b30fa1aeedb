// Package tools is the façade invoked by both delivery layers (MCP server
// and CLI). Every tool takes plain arguments, composes the resolver, the
// page fetcher or aggregator, and the analytics calculators, and returns a
// uniform success/error envelope. No error ever crosses this boundary
// unconverted.
package tools

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bl4ck0w1/seclynx/internal/findings"
	"github.com/bl4ck0w1/seclynx/internal/resolver"
	"github.com/bl4ck0w1/seclynx/pkg/models"
	"github.com/bl4ck0w1/seclynx/pkg/utils"
)

// Platform is the full backend surface the tools compose. *platform.Client
// satisfies it; tests substitute fakes.
type Platform interface {
	SearchApplications(ctx context.Context, name string, page, size int) ([]models.Application, error)
	GetApplication(ctx context.Context, guid string) (*models.Application, error)
	GetFindingsPage(ctx context.Context, appGUID string, query url.Values) (models.Page, error)
	ListScans(ctx context.Context, appGUID string, scanType models.ScanType) ([]models.Scan, error)
	ListSandboxes(ctx context.Context, appGUID string) ([]models.Sandbox, error)
	GetPolicyStatus(ctx context.Context, appGUID string) (*models.PolicyStatus, error)
}

// Summary tools deliberately sample at most the first 1000 findings for
// performance; their output is labeled as a sample when more exist.
const (
	summaryMaxPages = 2
	summaryPageSize = 500

	topVulnerabilityCount = 10
)

// Toolset holds the collaborators behind every tool. Constructed once per
// process and shared; it keeps no per-call state.
type Toolset struct {
	backend  Platform
	resolver *resolver.Resolver
	fetcher  *findings.Fetcher
	pager    *findings.Aggregator
	logger   *logrus.Logger
}

func NewToolset(backend Platform, logger *logrus.Logger, metrics *utils.MetricsCollector) *Toolset {
	if logger == nil {
		logger = logrus.New()
	}
	fetcher := findings.NewFetcher(backend, logger)
	return &Toolset{
		backend:  backend,
		resolver: resolver.New(backend, logger),
		fetcher:  fetcher,
		pager:    findings.NewAggregator(fetcher, logger, metrics),
		logger:   logger,
	}
}

// begin tags one tool invocation with a request id for log correlation.
func (t *Toolset) begin(tool string) *logrus.Entry {
	return t.logger.WithFields(logrus.Fields{
		"tool":       tool,
		"request_id": uuid.NewString(),
	})
}
