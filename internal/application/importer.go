package application

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

// ErrInvalidImport is returned when an import payload is not a JSON object.
var ErrInvalidImport = errors.New("invalid import format")

// MergeResult is the outcome of merging imported history into current history.
type MergeResult struct {
	Merged    model.History
	Conflicts []string // Date keys present in both histories, sorted.
}

// ParseImport decodes an import payload. The top-level value must be a JSON
// object keyed by date; numbers are kept as their literal text.
func ParseImport(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidImport)
	}
	if rest := bytes.TrimSpace(data[dec.InputOffset():]); len(rest) > 0 {
		return nil, fmt.Errorf("%w: trailing data after JSON object", ErrInvalidImport)
	}

	return raw, nil
}

// Normalize converts a decoded import payload into canonical history form.
// Prayer keys are lowercased. Legacy boolean values map true to
// StatusIndividual and false to StatusMissed. Strings pass through unchanged,
// even when they are not known statuses; null becomes StatusMissed. A day
// whose value is not an object becomes an empty record.
//
// When two prayer keys collide after lowercasing, the lexicographically
// greatest original key wins so that the result is deterministic.
func Normalize(raw map[string]any) model.History {
	out := make(model.History, len(raw))

	for date, v := range raw {
		day := model.DayRecord{}
		out[date] = day

		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}

		keys := make([]string, 0, len(entry))
		for k := range entry {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			day[strings.ToLower(k)] = normalizeStatus(entry[k])
		}
	}

	return out
}

func normalizeStatus(v any) model.PrayerStatus {
	switch val := v.(type) {
	case nil:
		return model.StatusMissed
	case bool:
		if val {
			return model.StatusIndividual
		}
		return model.StatusMissed
	case string:
		return model.PrayerStatus(val)
	case json.Number:
		return model.PrayerStatus(val.String())
	default:
		return model.PrayerStatus(fmt.Sprint(val))
	}
}

// MergeImport merges imported into current with import-wins semantics: each
// imported day replaces the current record for that date wholesale, and
// current days absent from the import are kept. Neither input is modified.
// The caller decides whether to commit when Conflicts is non-empty.
func MergeImport(current, imported model.History) MergeResult {
	merged := current.Clone()
	conflicts := []string{}

	for date, day := range imported {
		if current.Has(date) {
			conflicts = append(conflicts, date)
		}
		merged[date] = day.Clone()
	}
	sort.Strings(conflicts)

	return MergeResult{Merged: merged, Conflicts: conflicts}
}
