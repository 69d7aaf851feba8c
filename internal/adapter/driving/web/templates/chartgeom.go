package templates

import (
	"fmt"
	"math"
	"strconv"

	vm "github.com/ericfisherdev/salahtracker/internal/adapter/driving/web/viewmodel"
)

// Chart canvas geometry in SVG user units.
const (
	chartWidth   = 600.0
	chartHeight  = 240.0
	chartLeft    = 36.0
	chartRight   = 12.0
	chartTop     = 16.0
	chartBottom  = 40.0
	maxAxisTicks = 10
)

type plotArea struct {
	w, h  float64
	limit int
}

func newPlotArea(limit int) plotArea {
	if limit <= 0 {
		limit = 1
	}
	return plotArea{
		w:     chartWidth - chartLeft - chartRight,
		h:     chartHeight - chartTop - chartBottom,
		limit: limit,
	}
}

func (p plotArea) y(v int) float64 {
	if v > p.limit {
		v = p.limit
	}
	return chartTop + p.h*(1-float64(v)/float64(p.limit))
}

// chartFrame is what every chart kind draws around its data: the canvas,
// horizontal grid lines with their value ticks, and the x-axis labels.
type chartFrame struct {
	ViewBox string
	Empty   bool
	Grid    []gridLine
	XLabels []axisLabel
}

type gridLine struct {
	X1, X2, Y    string
	TickX, TickY string
	Tick         string
}

type axisLabel struct {
	X, Y string
	Text string
}

// lineSeries is one polyline plus a marker per point.
type lineSeries struct {
	Class   string
	Points  string
	Markers []chartMark
}

// chartMark is a positioned data mark with a hover title. Circles use X and
// Y as their centre; bars use all four coordinates.
type chartMark struct {
	Class      string
	X, Y, W, H string
	Title      string
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func markTitle(label, series string, v int) string {
	return label + " " + series + ": " + strconv.Itoa(v)
}

func newChartFrame(labels []string, area plotArea, x func(int) float64) chartFrame {
	f := chartFrame{
		ViewBox: fmt.Sprintf("0 0 %.0f %.0f", chartWidth, chartHeight),
		Empty:   len(labels) == 0,
	}

	for _, v := range []int{0, area.limit / 2, area.limit} {
		y := area.y(v)
		f.Grid = append(f.Grid, gridLine{
			X1:    coord(chartLeft),
			X2:    coord(chartWidth - chartRight),
			Y:     coord(y),
			TickX: coord(chartLeft - 6),
			TickY: coord(y + 4),
			Tick:  strconv.Itoa(v),
		})
	}

	step := 1
	if len(labels) > maxAxisTicks {
		step = int(math.Ceil(float64(len(labels)) / maxAxisTicks))
	}
	for i := 0; i < len(labels); i += step {
		f.XLabels = append(f.XLabels, axisLabel{
			X:    coord(x(i)),
			Y:    coord(chartHeight - chartBottom + 18),
			Text: labels[i],
		})
	}

	return f
}

func lineGeometry(c vm.ChartViewModel) (chartFrame, []lineSeries) {
	area := newPlotArea(c.Max)
	n := len(c.Labels)
	x := func(i int) float64 {
		if n <= 1 {
			return chartLeft + area.w/2
		}
		return chartLeft + float64(i)*area.w/float64(n-1)
	}

	lines := make([]lineSeries, 0, len(c.Series))
	for _, s := range c.Series {
		line := lineSeries{Class: s.Class}
		for i, v := range s.Values {
			if i >= n {
				break
			}
			line.Points += coord(x(i)) + "," + coord(area.y(v)) + " "
			line.Markers = append(line.Markers, chartMark{
				Class: s.Class,
				X:     coord(x(i)),
				Y:     coord(area.y(v)),
				Title: markTitle(c.Labels[i], s.Name, v),
			})
		}
		lines = append(lines, line)
	}

	return newChartFrame(c.Labels, area, x), lines
}

// barGeometry lays out one bar slot per label. Multiple series are stacked
// when c.Stacked is set and drawn side by side otherwise; zero values draw
// nothing.
func barGeometry(c vm.ChartViewModel) (chartFrame, []chartMark) {
	area := newPlotArea(c.Max)
	n := len(c.Labels)

	slot := area.w
	if n > 0 {
		slot = area.w / float64(n)
	}
	centre := func(i int) float64 { return chartLeft + slot*(float64(i)+0.5) }
	barWidth := slot * 0.7
	lanes := 1
	if !c.Stacked && len(c.Series) > 1 {
		lanes = len(c.Series)
	}
	laneWidth := barWidth / float64(lanes)

	var bars []chartMark
	for i := 0; i < n; i++ {
		base := 0
		for si, s := range c.Series {
			if i >= len(s.Values) || s.Values[i] <= 0 {
				continue
			}
			v := s.Values[i]
			left := centre(i) - barWidth/2
			bottom := 0
			if c.Stacked {
				bottom = base
				base += v
			} else {
				left += float64(si) * laneWidth
			}

			class := s.Class
			if len(c.Series) == 1 && i < len(c.BarClasses) {
				class = c.BarClasses[i]
			}

			top := area.y(bottom + v)
			bars = append(bars, chartMark{
				Class: class,
				X:     coord(left),
				Y:     coord(top),
				W:     coord(laneWidth),
				H:     coord(math.Max(area.y(bottom)-top, 0)),
				Title: markTitle(c.Labels[i], s.Name, v),
			})
		}
	}

	return newChartFrame(c.Labels, area, centre), bars
}
