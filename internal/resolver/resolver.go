// Package resolver turns user-supplied application identifiers (a stable
// GUID or a free-text name) into a canonical application GUID.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bl4ck0w1/seclynx/internal/platform"
	"github.com/bl4ck0w1/seclynx/pkg/models"
)

// ErrNotFound is returned when neither a GUID lookup nor a name search
// produces an application.
var ErrNotFound = errors.New("no application found")

// Directory is the slice of the platform API the resolver needs.
type Directory interface {
	SearchApplications(ctx context.Context, name string, page, size int) ([]models.Application, error)
	GetApplication(ctx context.Context, guid string) (*models.Application, error)
}

// Resolution is the outcome of one identifier lookup. ExactMatch is false
// when a name search fell back to the first backend result; callers decide
// whether to surface that to the user.
type Resolution struct {
	GUID          string
	Name          string
	WasNameLookup bool
	ExactMatch    bool
}

// guidPattern recognizes the platform's opaque ID format. It is a format
// predicate only; nothing else is assumed about GUID contents.
var guidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

type Resolver struct {
	dir    Directory
	logger *logrus.Logger
}

func New(dir Directory, logger *logrus.Logger) *Resolver {
	if logger == nil {
		logger = logrus.New()
	}
	return &Resolver{dir: dir, logger: logger}
}

// Resolve determines the canonical GUID for identifier. A GUID-shaped
// identifier is verified directly; anything else goes through a name
// search. Pure lookup, no caching: repeated calls hit the backend again.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (Resolution, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Resolution{}, fmt.Errorf("%w: empty identifier", ErrNotFound)
	}

	if guidPattern.MatchString(identifier) {
		return r.resolveGUID(ctx, identifier)
	}
	return r.resolveName(ctx, identifier)
}

func (r *Resolver) resolveGUID(ctx context.Context, guid string) (Resolution, error) {
	app, err := r.dir.GetApplication(ctx, guid)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return Resolution{}, fmt.Errorf("%w: no application with GUID %s", ErrNotFound, guid)
		}
		return Resolution{}, fmt.Errorf("lookup application %s: %w", guid, err)
	}
	return Resolution{
		GUID:       app.GUID,
		Name:       app.Name,
		ExactMatch: true,
	}, nil
}

func (r *Resolver) resolveName(ctx context.Context, name string) (Resolution, error) {
	candidates, err := r.dir.SearchApplications(ctx, name, 0, 0)
	if err != nil {
		return Resolution{}, fmt.Errorf("search applications %q: %w", name, err)
	}
	if len(candidates) == 0 {
		return Resolution{}, fmt.Errorf("%w: no application matching %q", ErrNotFound, name)
	}

	for _, app := range candidates {
		if strings.EqualFold(app.Name, name) {
			return Resolution{
				GUID:          app.GUID,
				Name:          app.Name,
				WasNameLookup: true,
				ExactMatch:    true,
			}, nil
		}
	}

	// No exact match: take the first backend result and let the caller
	// surface the ambiguity.
	first := candidates[0]
	r.logger.Warnf("No exact match for %q, using first result %q (%s)", name, first.Name, first.GUID)
	return Resolution{
		GUID:          first.GUID,
		Name:          first.Name,
		WasNameLookup: true,
		ExactMatch:    false,
	}, nil
}
