package normalize

import "game-data-service/internal/domain"

// Kind selects how a native value is coerced into its canonical form.
type Kind int

const (
	// Number coerces numeric values (and numeric strings) to float64,
	// multiplied by the entry's Scale.
	Number Kind = iota
	// Text passes strings through unchanged.
	Text
	// Date parses assorted provider date formats into ISO-8601 (YYYY-MM-DD).
	Date
	// OwnerRange collapses SteamSpy-style "1,000,000 .. 2,000,000" ranges to
	// their midpoint.
	OwnerRange
	// StringList passes through a list of strings.
	StringList
)

// Entry translates one provider-native field into a canonical field. Scale of
// zero means 1 (no scaling).
type Entry struct {
	Native string
	Field  domain.FieldName
	Kind   Kind
	Unit   string
	Scale  float64
}

// FieldMap is one adapter's static translation table. Adapters own their map;
// the merge step is the only consumer.
type FieldMap []Entry

// Fields returns the canonical fields this map can produce.
func (m FieldMap) Fields() []domain.FieldName {
	seen := make(map[domain.FieldName]bool)
	var out []domain.FieldName
	for _, e := range m {
		if !seen[e.Field] {
			seen[e.Field] = true
			out = append(out, e.Field)
		}
	}
	return out
}

// Supports reports whether the map has an entry for the canonical field.
func (m FieldMap) Supports(field domain.FieldName) bool {
	for _, e := range m {
		if e.Field == field {
			return true
		}
	}
	return false
}
