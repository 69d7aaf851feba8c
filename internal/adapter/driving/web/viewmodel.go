package web

import (
	"fmt"
	"math"
	"strconv"
	"time"

	vm "github.com/ericfisherdev/salahtracker/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/salahtracker/internal/application"
	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

// dateSelectorDays is how many recent dates the tracker selector offers.
const dateSelectorDays = 15

// statusIcons decorates the tracker radio buttons.
var statusIcons = map[model.PrayerStatus]string{
	model.StatusCongregation: "🕌",
	model.StatusIndividual:   "🤲",
	model.StatusQada:         "⏰",
	model.StatusMissed:       "❌",
}

// toDateOptions lists today and the previous dateSelectorDays-1 days, newest
// first. A selected date outside that range is prepended so the selector
// always shows what the form is editing.
func toDateOptions(today time.Time, selected string) []vm.DateOptionViewModel {
	opts := make([]vm.DateOptionViewModel, 0, dateSelectorDays+1)
	found := false

	for i := 0; i < dateSelectorDays; i++ {
		key := model.DateKey(model.AddDays(today, -i))
		label := key
		switch i {
		case 0:
			label += " (Today)"
		case 1:
			label += " (Yesterday)"
		case 2:
			label += " (2 days ago)"
		}
		if key == selected {
			found = true
		}
		opts = append(opts, vm.DateOptionViewModel{Key: key, Label: label, Selected: key == selected})
	}

	if !found {
		opts = append([]vm.DateOptionViewModel{{Key: selected, Label: selected, Selected: true}}, opts...)
	}
	return opts
}

// toTrackerFormViewModel builds the tracker form for day. When prefill is
// set and the day is editable, every prayer is preselected as congregation.
func toTrackerFormViewModel(day application.DayView, today time.Time, prefill model.PrayerStatus) vm.TrackerFormViewModel {
	rows := make([]vm.PrayerRowViewModel, 0, len(model.Prayers))
	for _, p := range model.Prayers {
		current, recorded := day.Record[p.Key]
		if prefill != "" && day.Editable {
			current, recorded = prefill, true
		}

		opts := make([]vm.StatusOptionViewModel, 0, len(model.Statuses))
		for _, s := range model.Statuses {
			suffix := string(s)
			if s == model.StatusMissed {
				suffix = "missed"
			}
			opts = append(opts, vm.StatusOptionViewModel{
				Value:   string(s),
				Label:   s.Label(),
				Icon:    statusIcons[s],
				InputID: p.Key + "_" + suffix,
				Checked: (recorded || day.Exists) && current == s,
			})
		}

		rows = append(rows, vm.PrayerRowViewModel{
			Key:       p.Key,
			Name:      p.Name,
			Arabic:    p.Arabic,
			TimeOfDay: p.TimeOfDay,
			Options:   opts,
		})
	}

	return vm.TrackerFormViewModel{
		DateKey:  day.DateKey,
		Dates:    toDateOptions(today, day.DateKey),
		Prayers:  rows,
		Editable: day.Editable,
		Exists:   day.Exists,
		Score:    day.Score,
		MaxScore: model.MaxDayScore,
	}
}

func toProgressViewModel(s application.Summary) vm.ProgressViewModel {
	return vm.ProgressViewModel{
		WindowDays: s.WindowDays,
		Percentage: s.Totals.Percentage,
		Completed:  s.Totals.Completed,
		Possible:   s.Totals.Possible,
		Streak:     s.Streak,
		RingDash:   ringDash(s.Totals.Percentage),
	}
}

// ringRadius is the radius of the progress ring circle in SVG user units.
const ringRadius = 52.0

func ringDash(percentage int) string {
	circumference := 2 * math.Pi * ringRadius
	filled := circumference * float64(min(max(percentage, 0), 100)) / 100
	return fmt.Sprintf("%.1f %.1f", filled, circumference)
}

func toHeatmap(series []model.DailyScore) []vm.HeatCellViewModel {
	cells := make([]vm.HeatCellViewModel, 0, len(series))
	for _, d := range series {
		day := 0
		if len(d.DateKey) == len(model.DateKeyLayout) {
			day, _ = strconv.Atoi(d.DateKey[8:])
		}
		cells = append(cells, vm.HeatCellViewModel{
			DateKey: d.DateKey,
			Day:     day,
			Level:   d.Level,
			Title:   fmt.Sprintf("%s - Score: %d/%d", d.DateKey, d.Score, model.MaxDayScore),
			Link:    "/?date=" + d.DateKey,
		})
	}
	return cells
}

// shortDateLabel renders a date key as "Jan 2".
func shortDateLabel(key string) string {
	t, err := time.Parse(model.DateKeyLayout, key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2")
}

// monthLabel renders a YYYY-MM month as "Jan 2024".
func monthLabel(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("Jan 2006")
}

func toDailyChart(id, title string, series []model.DailyScore, colourBars bool) vm.ChartViewModel {
	labels := make([]string, 0, len(series))
	values := make([]int, 0, len(series))
	var classes []string
	for _, d := range series {
		labels = append(labels, shortDateLabel(d.DateKey))
		values = append(values, d.Score)
		if colourBars {
			classes = append(classes, "level-"+strconv.Itoa(d.Level))
		}
	}

	return vm.ChartViewModel{
		ID:         id,
		Title:      title,
		Labels:     labels,
		Series:     []vm.SeriesViewModel{{Name: "Daily Score", Class: "series-primary", Values: values}},
		Max:        model.MaxDayScore,
		BarClasses: classes,
	}
}

func toPrayerChart(b application.PrayerBreakdown) vm.ChartViewModel {
	labels := make([]string, 0, len(model.Prayers))
	cong := make([]int, 0, len(model.Prayers))
	ind := make([]int, 0, len(model.Prayers))
	qada := make([]int, 0, len(model.Prayers))
	for _, p := range model.Prayers {
		labels = append(labels, p.Name)
		cong = append(cong, b.Congregation[p.Key])
		ind = append(ind, b.Individual[p.Key])
		qada = append(qada, b.Qada[p.Key])
	}

	return vm.ChartViewModel{
		ID:     "prayer-chart",
		Title:  fmt.Sprintf("Prayers by status (last %d days)", b.WindowDays),
		Labels: labels,
		Series: []vm.SeriesViewModel{
			{Name: model.StatusCongregation.Label(), Class: "series-congregation", Values: cong},
			{Name: model.StatusIndividual.Label(), Class: "series-individual", Values: ind},
			{Name: model.StatusQada.Label(), Class: "series-qada", Values: qada},
		},
		Max:     b.WindowDays,
		Stacked: true,
	}
}

func toMonthlyChart(months []model.MonthAggregate) vm.ChartViewModel {
	labels := make([]string, 0, len(months))
	cong := make([]int, 0, len(months))
	ind := make([]int, 0, len(months))
	qada := make([]int, 0, len(months))
	for _, m := range months {
		labels = append(labels, monthLabel(m.Month))
		cong = append(cong, m.CongregationPct())
		ind = append(ind, m.IndividualPct())
		qada = append(qada, m.QadaPct())
	}

	return vm.ChartViewModel{
		ID:     "monthly-chart",
		Title:  "Monthly share of recorded prayers (%)",
		Labels: labels,
		Series: []vm.SeriesViewModel{
			{Name: model.StatusCongregation.Label() + " %", Class: "series-congregation", Values: cong},
			{Name: model.StatusIndividual.Label() + " %", Class: "series-individual", Values: ind},
			{Name: model.StatusQada.Label() + " %", Class: "series-qada", Values: qada},
		},
		Max: 100,
	}
}

// toDataRows builds the data-manager table, newest date first.
func toDataRows(h model.History) []vm.DataRowViewModel {
	keys := h.KeysDesc()
	rows := make([]vm.DataRowViewModel, 0, len(keys))
	for _, key := range keys {
		record := h[key]
		cells := make([]vm.DataCellViewModel, 0, len(model.Prayers))
		for _, p := range model.Prayers {
			current := record.Status(p.Key)
			opts := make([]vm.SelectOptionViewModel, 0, len(model.Statuses))
			for _, s := range model.Statuses {
				label := s.Label()
				if s == model.StatusMissed {
					label = "Not Prayed"
				}
				opts = append(opts, vm.SelectOptionViewModel{Value: string(s), Label: label, Selected: current == s})
			}
			cells = append(cells, vm.DataCellViewModel{PrayerKey: p.Key, Options: opts})
		}
		rows = append(rows, vm.DataRowViewModel{DateKey: key, Cells: cells, Score: record.Score()})
	}
	return rows
}

func toHelpPageViewModel(nav vm.NavViewModel, doc HelpDocument) vm.HelpPageViewModel {
	sections := make([]vm.HelpSectionViewModel, 0, len(doc.Sections))
	for _, sec := range doc.Sections {
		if sec.ID == "" {
			continue
		}
		sections = append(sections, vm.HelpSectionViewModel{Anchor: "#" + sec.ID, Title: sec.Title})
	}
	return vm.HelpPageViewModel{Nav: nav, HTML: doc.HTML, Sections: sections}
}
