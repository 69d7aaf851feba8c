// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// FlashViewModel is a one-shot message shown at the top of a page.
type FlashViewModel struct {
	Message string
	Kind    string // "success" or "error"
}

// NavViewModel holds the shared page chrome.
type NavViewModel struct {
	Title     string
	Active    string // "tracker", "manage", or "help"
	CSRFToken string
	Flash     *FlashViewModel
}

// DateOptionViewModel is one entry of the tracker date selector.
type DateOptionViewModel struct {
	Key      string
	Label    string // e.g. "2024-01-10 (Today)"
	Selected bool
}

// StatusOptionViewModel is one radio button in a prayer row.
type StatusOptionViewModel struct {
	Value   string
	Label   string
	Icon    string
	InputID string
	Checked bool
}

// PrayerRowViewModel is one prayer of the tracker form.
type PrayerRowViewModel struct {
	Key       string
	Name      string
	Arabic    string
	TimeOfDay string
	Options   []StatusOptionViewModel
}

// TrackerFormViewModel holds the tracker form for one selected date.
type TrackerFormViewModel struct {
	DateKey  string
	Dates    []DateOptionViewModel
	Prayers  []PrayerRowViewModel
	Editable bool
	Exists   bool
	Score    int
	MaxScore int
}

// ProgressViewModel is the progress ring and streak panel.
type ProgressViewModel struct {
	WindowDays int
	Percentage int
	Completed  int
	Possible   int
	Streak     int
	RingDash   string // stroke-dasharray of the completion ring
}

// HeatCellViewModel is one square of the heatmap.
type HeatCellViewModel struct {
	DateKey string
	Day     int
	Level   int
	Title   string // "2024-01-10 - Score: 12/15"
	Link    string
}

// SeriesViewModel is one named data series of a chart.
type SeriesViewModel struct {
	Name   string
	Class  string // CSS class that colours the series
	Values []int
}

// ChartViewModel is the data for one SVG chart. For bar charts with a
// single series, BarClasses optionally colours each bar individually.
type ChartViewModel struct {
	ID         string
	Title      string
	Labels     []string
	Series     []SeriesViewModel
	Max        int
	Stacked    bool
	BarClasses []string
}

// SelectOptionViewModel is one <option> of a data-table cell.
type SelectOptionViewModel struct {
	Value    string
	Label    string
	Selected bool
}

// DataCellViewModel is one editable prayer cell of the data-manager table.
type DataCellViewModel struct {
	PrayerKey string
	Options   []SelectOptionViewModel
}

// DataRowViewModel is one date row of the data-manager table.
type DataRowViewModel struct {
	DateKey string
	Cells   []DataCellViewModel
	Score   int
}

// ImportConfirmViewModel asks the user to confirm an import that would
// overwrite existing dates. Payload carries the uploaded JSON back.
type ImportConfirmViewModel struct {
	Imported  int
	Conflicts []string
	Payload   string
}

// TrackerPageViewModel is everything rendered on the tracker page.
type TrackerPageViewModel struct {
	Nav         NavViewModel
	Form        TrackerFormViewModel
	Progress    ProgressViewModel
	Heatmap     []HeatCellViewModel
	DailyChart  ChartViewModel
	PrayerChart ChartViewModel
}

// ManagePageViewModel is everything rendered on the data-manager page.
type ManagePageViewModel struct {
	Nav          NavViewModel
	TodayKey     string
	ManagerChart ChartViewModel
	MonthlyChart ChartViewModel
	Rows         []DataRowViewModel
	Confirm      *ImportConfirmViewModel
}

// HelpSectionViewModel is one table-of-contents link on the help page.
type HelpSectionViewModel struct {
	Anchor string
	Title  string
}

// HelpPageViewModel holds the rendered help document.
type HelpPageViewModel struct {
	Nav      NavViewModel
	HTML     string
	Sections []HelpSectionViewModel
}
