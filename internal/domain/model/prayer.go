package model

// Prayer describes one of the five daily prayers.
type Prayer struct {
	Key       string
	Name      string
	Arabic    string
	TimeOfDay string
	Ordinal   int // Canonical column position in tables and CSV exports.
}

// Prayers is the fixed, ordered set of daily prayers.
var Prayers = []Prayer{
	{Key: "fajr", Name: "Fajr", Arabic: "الفجر", TimeOfDay: "Dawn", Ordinal: 0},
	{Key: "dhuhr", Name: "Dhuhr", Arabic: "الظهر", TimeOfDay: "Noon", Ordinal: 1},
	{Key: "asr", Name: "Asr", Arabic: "العصر", TimeOfDay: "Afternoon", Ordinal: 2},
	{Key: "maghrib", Name: "Maghrib", Arabic: "المغرب", TimeOfDay: "Sunset", Ordinal: 3},
	{Key: "isha", Name: "Isha", Arabic: "العشاء", TimeOfDay: "Night", Ordinal: 4},
}

// PrayerCount is the number of daily prayers.
const PrayerCount = 5

// MaxDayScore is the best possible day score: every prayer in congregation.
const MaxDayScore = PrayerCount * 3

// PrayerByKey looks up a prayer by its lowercase key.
func PrayerByKey(key string) (Prayer, bool) {
	for _, p := range Prayers {
		if p.Key == key {
			return p, true
		}
	}
	return Prayer{}, false
}

// IsPrayerKey reports whether key names one of the five prayers.
func IsPrayerKey(key string) bool {
	_, ok := PrayerByKey(key)
	return ok
}
