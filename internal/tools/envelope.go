package tools

import (
	"errors"
	"fmt"

	"github.com/bl4ck0w1/seclynx/internal/resolver"
)

// Result is the uniform envelope returned by every tool: exactly one of
// Data or Error is populated.
type Result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func ok(data interface{}) Result {
	return Result{Success: true, Data: data}
}

func fail(format string, args ...interface{}) Result {
	return Result{Success: false, Error: fmt.Sprintf(format, args...)}
}

// failErr converts a collaborator error into a failure envelope, keeping
// resolution misses distinguishable from upstream failures.
func failErr(err error) Result {
	if errors.Is(err, resolver.ErrNotFound) {
		return fail("no application found: %v", err)
	}
	return fail("%v", err)
}
