package templates

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vm "github.com/ericfisherdev/salahtracker/internal/adapter/driving/web/viewmodel"
)

func renderString(t *testing.T, chart vm.ChartViewModel, bar bool) string {
	t.Helper()
	var buf bytes.Buffer
	c := LineChart(chart)
	if bar {
		c = BarChart(chart)
	}
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestLineChart(t *testing.T) {
	out := renderString(t, vm.ChartViewModel{
		ID:     "daily",
		Title:  "Daily <score>",
		Labels: []string{"Jan 9", "Jan 10"},
		Series: []vm.SeriesViewModel{{Name: "Daily Score", Class: "series-primary", Values: []int{0, 15}}},
		Max:    15,
	}, false)

	assert.Contains(t, out, `<figure class="chart" id="daily">`)
	assert.Contains(t, out, "Daily &lt;score&gt;")
	assert.Contains(t, out, `points="36.0,200.0 588.0,16.0 "`)
	assert.Equal(t, 2, strings.Count(out, "<circle"))
	assert.Contains(t, out, "<title>Jan 10 Daily Score: 15</title>")
	assert.NotContains(t, out, `class="legend"`)
}

func TestBarChart_Stacked(t *testing.T) {
	out := renderString(t, vm.ChartViewModel{
		ID:     "prayers",
		Labels: []string{"Fajr", "Dhuhr"},
		Series: []vm.SeriesViewModel{
			{Name: "Congregation", Class: "series-congregation", Values: []int{2, 0}},
			{Name: "Individual", Class: "series-individual", Values: []int{1, 0}},
		},
		Max:     3,
		Stacked: true,
	}, true)

	// Zero values draw nothing.
	assert.Equal(t, 2, strings.Count(out, "<rect"))
	assert.Contains(t, out, `class="legend"`)
	assert.Contains(t, out, "<title>Fajr Individual: 1</title>")
	// The individual bar sits on top of the congregation bar, reaching the top.
	assert.Contains(t, out, `y="16.0"`)
}

func TestBarChart_PerBarClasses(t *testing.T) {
	out := renderString(t, vm.ChartViewModel{
		Labels:     []string{"a", "b"},
		Series:     []vm.SeriesViewModel{{Name: "Score", Class: "series-primary", Values: []int{3, 15}}},
		Max:        15,
		BarClasses: []string{"level-1", "level-3"},
	}, true)

	assert.Contains(t, out, `class="bar level-1"`)
	assert.Contains(t, out, `class="bar level-3"`)
	assert.NotContains(t, out, `class="bar series-primary"`)
}

func TestChart_Empty(t *testing.T) {
	out := renderString(t, vm.ChartViewModel{ID: "monthly", Max: 100}, false)

	assert.Contains(t, out, "No data yet")
}

func TestLayout_EscapesFlash(t *testing.T) {
	var buf bytes.Buffer
	nav := vm.NavViewModel{
		Title:  "Tracker",
		Active: "tracker",
		Flash:  &vm.FlashViewModel{Message: "<b>hi</b>", Kind: "success"},
	}

	require.NoError(t, Layout(nav, CSRFField("tok")).Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "&lt;b&gt;hi&lt;/b&gt;")
	assert.Contains(t, out, `<a href="/" class="active" aria-current="page">Tracker</a>`)
	assert.Contains(t, out, `<input type="hidden" name="csrf_token" value="tok">`)
}

func TestBarGeometry_SideBySide(t *testing.T) {
	_, bars := barGeometry(vm.ChartViewModel{
		Labels: []string{"x", "y"},
		Series: []vm.SeriesViewModel{
			{Name: "A", Class: "a", Values: []int{2, 0}},
			{Name: "B", Class: "b", Values: []int{4, 0}},
		},
		Max: 4,
	})

	require.Len(t, bars, 2)
	assert.Equal(t, chartMark{Class: "a", X: "77.4", Y: "108.0", W: "96.6", H: "92.0", Title: "x A: 2"}, bars[0])
	assert.Equal(t, chartMark{Class: "b", X: "174.0", Y: "16.0", W: "96.6", H: "184.0", Title: "x B: 4"}, bars[1])
}

func TestLineGeometry_ClampsAboveMax(t *testing.T) {
	_, lines := lineGeometry(vm.ChartViewModel{
		Labels: []string{"only"},
		Series: []vm.SeriesViewModel{{Name: "S", Values: []int{99}}},
		Max:    10,
	})

	require.Len(t, lines, 1)
	assert.Equal(t, "312.0,16.0 ", lines[0].Points)
}

func TestChartFrame_ThinsAxisLabels(t *testing.T) {
	labels := make([]string, 25)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}

	frame, _ := lineGeometry(vm.ChartViewModel{Labels: labels, Max: 15})

	require.Len(t, frame.XLabels, 9)
	assert.Equal(t, "0", frame.XLabels[0].Text)
	assert.Equal(t, "24", frame.XLabels[8].Text)
	require.Len(t, frame.Grid, 3)
	assert.Equal(t, []string{"0", "7", "15"}, []string{frame.Grid[0].Tick, frame.Grid[1].Tick, frame.Grid[2].Tick})
	assert.False(t, frame.Empty)
}
