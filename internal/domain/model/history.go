package model

import (
	"errors"
	"sort"
)

var (
	// ErrUnknownPrayer is returned when a prayer key is not one of the five prayers.
	ErrUnknownPrayer = errors.New("unknown prayer")

	// ErrInvalidStatus is returned when a status is not one of the known values.
	ErrInvalidStatus = errors.New("invalid prayer status")
)

// DayRecord maps prayer key to status for one calendar day. Missing keys are
// equivalent to StatusMissed.
type DayRecord map[string]PrayerStatus

// History maps date keys (YYYY-MM-DD) to day records. It is the only
// persisted entity.
type History map[string]DayRecord

// Status returns the status recorded for prayerKey, or StatusMissed.
func (r DayRecord) Status(prayerKey string) PrayerStatus {
	return r[prayerKey]
}

// Score returns the weighted day score in [0, MaxDayScore]. A nil record
// scores 0; keys outside the five prayers are ignored.
func (r DayRecord) Score() int {
	score := 0
	for _, p := range Prayers {
		score += r[p.Key].Weight()
	}
	return score
}

// Completed returns how many of the five prayers hold a recognized,
// non-missed status.
func (r DayRecord) Completed() int {
	n := 0
	for _, p := range Prayers {
		if r[p.Key].Completed() {
			n++
		}
	}
	return n
}

// IsComplete reports whether all five prayers were performed.
func (r DayRecord) IsComplete() bool {
	return r != nil && r.Completed() == PrayerCount
}

// Clone returns a copy of r.
func (r DayRecord) Clone() DayRecord {
	out := make(DayRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// EmptyDayRecord returns a record with all five prayers set to StatusMissed.
func EmptyDayRecord() DayRecord {
	r := make(DayRecord, PrayerCount)
	for _, p := range Prayers {
		r[p.Key] = StatusMissed
	}
	return r
}

// Clone returns a deep copy of h.
func (h History) Clone() History {
	out := make(History, len(h))
	for k, r := range h {
		out[k] = r.Clone()
	}
	return out
}

// Has reports whether a record exists for dateKey, even an empty one.
func (h History) Has(dateKey string) bool {
	_, ok := h[dateKey]
	return ok
}

// Day returns the record for dateKey, or nil if none exists.
func (h History) Day(dateKey string) DayRecord {
	return h[dateKey]
}

// SetDayStatus returns a new history in which dateKey exists and prayerKey
// holds status. The receiver is not modified.
func (h History) SetDayStatus(dateKey, prayerKey string, status PrayerStatus) History {
	out := h.Clone()
	day, ok := out[dateKey]
	if !ok {
		day = DayRecord{}
		out[dateKey] = day
	}
	day[prayerKey] = status
	return out
}

// SetDay returns a new history in which dateKey holds a copy of record.
func (h History) SetDay(dateKey string, record DayRecord) History {
	out := h.Clone()
	out[dateKey] = record.Clone()
	return out
}

// ClearDay returns a new history without a record for dateKey.
func (h History) ClearDay(dateKey string) History {
	out := h.Clone()
	delete(out, dateKey)
	return out
}

// EnsureDay returns a new history in which dateKey exists. When the day was
// absent an all-missed record is created and created is true.
func (h History) EnsureDay(dateKey string) (History, bool) {
	if h.Has(dateKey) {
		return h.Clone(), false
	}
	out := h.Clone()
	out[dateKey] = EmptyDayRecord()
	return out, true
}

// Keys returns the date keys in ascending (calendar) order.
func (h History) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KeysDesc returns the date keys newest first.
func (h History) KeysDesc() []string {
	keys := h.Keys()
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

// ValidateEntry checks that dateKey, prayerKey, and status are all well formed.
func ValidateEntry(dateKey, prayerKey string, status PrayerStatus) error {
	if !IsDateKey(dateKey) {
		return ErrInvalidDateKey
	}
	if !IsPrayerKey(prayerKey) {
		return ErrUnknownPrayer
	}
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}
