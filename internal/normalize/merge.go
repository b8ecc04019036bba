package normalize

import (
	"strconv"
	"strings"
	"time"

	"game-data-service/internal/domain"
)

// Merge maps each provider's raw payload onto the canonical record shape.
// Every provider that supplied a field contributes its own FieldValue, so
// disagreement between sources stays visible; nothing is averaged away.
// Requested fields no provider answered are listed in Missing.
func Merge(key domain.CanonicalGameKey, requested []domain.FieldName, raws []domain.RawRecord, maps map[domain.Provider]FieldMap) domain.CanonicalRecord {
	record := domain.CanonicalRecord{
		Key:    key,
		Fields: make(map[domain.FieldName][]domain.FieldValue),
	}

	want := make(map[domain.FieldName]bool, len(requested))
	for _, f := range requested {
		want[f] = true
	}

	for _, raw := range raws {
		fieldMap, ok := maps[raw.Provider]
		if !ok {
			continue
		}
		for _, entry := range fieldMap {
			if !want[entry.Field] {
				continue
			}
			native, ok := raw.Values[entry.Native]
			if !ok || native == nil {
				continue
			}
			value, ok := convert(entry, native)
			if !ok {
				continue
			}
			record.Fields[entry.Field] = append(record.Fields[entry.Field], domain.FieldValue{
				Value:     value,
				Provider:  raw.Provider,
				Unit:      entry.Unit,
				Timestamp: raw.FetchedAt,
			})
		}
	}

	for _, f := range requested {
		if len(record.Fields[f]) == 0 {
			record.Missing = append(record.Missing, f)
		}
	}

	return record
}

func convert(entry Entry, native any) (any, bool) {
	switch entry.Kind {
	case Number:
		n, ok := toFloat(native)
		if !ok {
			return nil, false
		}
		scale := entry.Scale
		if scale == 0 {
			scale = 1
		}
		return n * scale, true
	case Text:
		s, ok := native.(string)
		if !ok || s == "" {
			return nil, false
		}
		return s, true
	case Date:
		return toISODate(native)
	case OwnerRange:
		return ownerMidpoint(native)
	case StringList:
		return toStringList(native)
	default:
		return nil, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// Provider date shapes seen in the wild: ISO dates (RAWG), RFC3339
// (Twitch), "2 Dec, 2024" store dates (Steam), and unix seconds (Gamalytic).
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2 Jan, 2006",
	"Jan 2, 2006",
}

func toISODate(v any) (any, bool) {
	switch d := v.(type) {
	case string:
		trimmed := strings.TrimSpace(d)
		if trimmed == "" {
			return nil, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return t.Format("2006-01-02"), true
			}
		}
		return nil, false
	case float64:
		return epochToISODate(int64(d))
	case int64:
		return epochToISODate(d)
	default:
		return nil, false
	}
}

// Unix epochs above this are not plausible as seconds (year ~33658) and are
// taken to be milliseconds instead. Gamalytic has shipped both units.
const maxEpochSeconds = 1e12

func epochToISODate(epoch int64) (any, bool) {
	if epoch <= 0 {
		return nil, false
	}
	for epoch > maxEpochSeconds {
		epoch /= 1000
	}
	return time.Unix(epoch, 0).UTC().Format("2006-01-02"), true
}

// ownerMidpoint collapses "1,000,000 .. 2,000,000" to 1500000.
func ownerMidpoint(v any) (any, bool) {
	s, ok := v.(string)
	if !ok {
		n, numOK := toFloat(v)
		return n, numOK
	}
	parts := strings.Split(s, "..")
	if len(parts) != 2 {
		n, numOK := toFloat(strings.ReplaceAll(s, ",", ""))
		return n, numOK
	}
	low, lowOK := toFloat(strings.ReplaceAll(strings.TrimSpace(parts[0]), ",", ""))
	high, highOK := toFloat(strings.ReplaceAll(strings.TrimSpace(parts[1]), ",", ""))
	if !lowOK || !highOK {
		return nil, false
	}
	return (low + high) / 2, true
}

func toStringList(v any) (any, bool) {
	switch list := v.(type) {
	case []string:
		if len(list) == 0 {
			return nil, false
		}
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	default:
		return nil, false
	}
}
