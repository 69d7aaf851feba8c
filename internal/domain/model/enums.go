package model

// PrayerStatus records how a single prayer was performed on a given day.
type PrayerStatus string

const (
	StatusCongregation PrayerStatus = "congregation"
	StatusIndividual   PrayerStatus = "individual"
	StatusQada         PrayerStatus = "qada" // Make-up prayer.
	StatusMissed       PrayerStatus = ""     // Missed or not recorded.
)

// Statuses lists every valid status in display order.
var Statuses = []PrayerStatus{StatusCongregation, StatusIndividual, StatusQada, StatusMissed}

// IsValid reports whether s is one of the four known statuses.
func (s PrayerStatus) IsValid() bool {
	switch s {
	case StatusCongregation, StatusIndividual, StatusQada, StatusMissed:
		return true
	}
	return false
}

// Completed reports whether s counts as a performed prayer. Unknown values
// are treated as missed.
func (s PrayerStatus) Completed() bool {
	return s != StatusMissed && s.IsValid()
}

// Weight returns the score contribution of s: congregation 3, individual 2,
// qada 1, anything else 0.
func (s PrayerStatus) Weight() int {
	switch s {
	case StatusCongregation:
		return 3
	case StatusIndividual:
		return 2
	case StatusQada:
		return 1
	}
	return 0
}

// Label returns the human-readable name of s.
func (s PrayerStatus) Label() string {
	switch s {
	case StatusCongregation:
		return "Congregation"
	case StatusIndividual:
		return "Individual"
	case StatusQada:
		return "Make-up"
	case StatusMissed:
		return "Missed"
	}
	return string(s)
}
