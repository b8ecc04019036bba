package resolver

import (
	"fmt"
	"strings"

	"game-data-service/internal/domain"
)

// ResolutionFailure reports that a name could not be mapped to any provider
// id, after trying every generated variation against every adapter.
type ResolutionFailure struct {
	Name       string
	Variations []string
	Causes     map[domain.Provider]error
}

func (e *ResolutionFailure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "could not resolve %q on any provider (tried %s)",
		e.Name, strings.Join(e.Variations, ", "))
	if len(e.Causes) > 0 {
		b.WriteString(":")
		for _, provider := range domain.Providers() {
			if cause, ok := e.Causes[provider]; ok {
				fmt.Fprintf(&b, " %s: %v;", provider, cause)
			}
		}
	}
	return strings.TrimSuffix(b.String(), ";")
}

// Unwrap exposes the per-provider causes so callers can inspect why
// resolution failed with errors.Is, e.g. to tell quota starvation apart
// from a genuinely unknown name. Causes are returned in provider order.
func (e *ResolutionFailure) Unwrap() []error {
	if len(e.Causes) == 0 {
		return nil
	}
	out := make([]error, 0, len(e.Causes))
	for _, provider := range domain.Providers() {
		if cause, ok := e.Causes[provider]; ok {
			out = append(out, cause)
		}
	}
	return out
}
