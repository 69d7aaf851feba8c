package application

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

// csvHeader is the first line of every CSV export.
const csvHeader = "Date,Fajr,Dhuhr,Asr,Maghrib,Isha,DailyScore"

// ToJSON renders h as two-space indented JSON. The output is accepted
// unchanged by ParseImport and Normalize.
func ToJSON(h model.History) ([]byte, error) {
	if h == nil {
		h = model.History{}
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal history: %w", err)
	}
	return data, nil
}

// ToCSV renders h as CSV, one row per day, newest first. Prayer columns hold
// the raw status string and the last column holds the day score. Fields are
// not quoted; statuses never contain commas.
func ToCSV(h model.History) []byte {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, date := range h.KeysDesc() {
		day := h[date]
		b.WriteString(date)
		for _, p := range model.Prayers {
			b.WriteByte(',')
			b.WriteString(string(day[p.Key]))
		}
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(day.Score()))
		b.WriteByte('\n')
	}

	return []byte(b.String())
}

// ExportFilename returns the download name for an export taken on today,
// e.g. salah-tracker-2024-01-31.csv.
func ExportFilename(today time.Time, ext string) string {
	return fmt.Sprintf("salah-tracker-%s.%s", model.DateKey(today), ext)
}
