package aggregate

import (
	"fmt"
	"strings"

	"game-data-service/internal/domain"
)

// Attempt records one source tried for a field and why it did not answer.
type Attempt struct {
	Provider domain.Provider `json:"provider"`
	Reason   string          `json:"reason"`
}

// AllSourcesFailed reports that every source in a field's fallback chain was
// tried and none supplied the value. The attempts preserve chain order.
type AllSourcesFailed struct {
	Field    domain.FieldName
	Attempts []Attempt
}

func (e *AllSourcesFailed) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %s", a.Provider, a.Reason))
	}
	return fmt.Sprintf("no source could supply %s (%s)", e.Field, strings.Join(parts, "; "))
}
