// Package chart turns attendance series into chart data, images and a live widget state.
package chart

import (
	"github.com/at-ishikawa/attendchart/internal/series"
)

// View is the chart view requested by the caller.
type View string

const (
	ViewBar        View = "bar"
	ViewCompareBar View = "compareBar"
	ViewLine       View = "line"
)

var AllViews = []View{ViewBar, ViewCompareBar, ViewLine}

// Shape is the Chart.js chart type.
type Shape string

const (
	ShapeBar  Shape = "bar"
	ShapeLine Shape = "line"
)

// ShapeFor returns the bar shape for bar and compareBar, and the line shape for anything else.
func ShapeFor(view View) Shape {
	switch view {
	case ViewBar, ViewCompareBar:
		return ShapeBar
	default:
		return ShapeLine
	}
}

const (
	EnrolledColor = "#8898AA"
	TestedColor   = "#5D5FEF"
	gridColor     = "#C7C7C7"

	EnrolledLabel = "enrolled"
	TestedLabel   = "tested"
)

// Chart is a Chart.js configuration.
type Chart struct {
	Type    Shape   `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label              string  `json:"label"`
	Data               []int   `json:"data"`
	BackgroundColor    string  `json:"backgroundColor"`
	BorderColor        string  `json:"borderColor"`
	BarPercentage      float64 `json:"barPercentage"`
	CategoryPercentage float64 `json:"categoryPercentage"`
}

type Options struct {
	Responsive bool    `json:"responsive"`
	Plugins    Plugins `json:"plugins"`
	Scales     Scales  `json:"scales"`
}

type Plugins struct {
	Legend  Legend  `json:"legend"`
	Tooltip Tooltip `json:"tooltip"`
}

type Legend struct {
	Position string       `json:"position"`
	Align    string       `json:"align"`
	Labels   LegendLabels `json:"labels"`
}

type LegendLabels struct {
	UsePointStyle bool   `json:"usePointStyle"`
	PointStyle    string `json:"pointStyle"`
	Padding       int    `json:"padding"`
}

type Tooltip struct {
	BackgroundColor string `json:"backgroundColor"`
	XAlign          string `json:"xAlign"`
	YAlign          string `json:"yAlign"`
}

type Scales struct {
	XAxes Axis `json:"xAxes"`
	YAxes Axis `json:"yAxes"`
}

type Axis struct {
	Grid  Grid   `json:"grid"`
	Ticks *Ticks `json:"ticks,omitempty"`
}

type Grid struct {
	Display     *bool  `json:"display,omitempty"`
	BorderDash  []int  `json:"borderDash,omitempty"`
	BorderColor string `json:"borderColor,omitempty"`
	DrawBorder  *bool  `json:"drawBorder,omitempty"`
}

type Ticks struct {
	Display bool `json:"display"`
}

func defaultOptions() Options {
	no := false
	return Options{
		Responsive: true,
		Plugins: Plugins{
			Legend: Legend{
				Position: "bottom",
				Align:    "end",
				Labels: LegendLabels{
					UsePointStyle: true,
					PointStyle:    "circle",
					Padding:       20,
				},
			},
			Tooltip: Tooltip{
				BackgroundColor: TestedColor,
				XAlign:          "center",
				YAlign:          "bottom",
			},
		},
		Scales: Scales{
			XAxes: Axis{Grid: Grid{Display: &no}},
			YAxes: Axis{
				Grid: Grid{
					BorderDash:  []int{10},
					BorderColor: gridColor,
					DrawBorder:  &no,
				},
				Ticks: &Ticks{Display: false},
			},
		},
	}
}

// Build projects s into a chart for view. s is not modified.
func Build(s series.Series, view View) Chart {
	return Chart{
		Type: ShapeFor(view),
		Data: Data{
			Labels: append([]string{}, s.Labels...),
			Datasets: []Dataset{
				newDataset(EnrolledLabel, s.Totals, EnrolledColor),
				newDataset(TestedLabel, s.Tested, TestedColor),
			},
		},
		Options: defaultOptions(),
	}
}

func newDataset(label string, values []int, color string) Dataset {
	return Dataset{
		Label:              label,
		Data:               append([]int{}, values...),
		BackgroundColor:    color,
		BorderColor:        color,
		BarPercentage:      0.6,
		CategoryPercentage: 0.5,
	}
}

// ParseView returns the known view named by value.
// An empty or unknown value is drawn as a line chart.
func ParseView(value string) View {
	for _, v := range AllViews {
		if value == string(v) {
			return v
		}
	}
	return ViewLine
}
