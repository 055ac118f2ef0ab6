package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/attendchart/internal/chart"
	"github.com/at-ishikawa/attendchart/internal/cli"
)

type View chart.View

func (v *View) Set(val string) error {
	*v = View(chart.ParseView(val))
	return nil
}

func (v View) String() string {
	return string(v)
}

func (v *View) Type() string {
	return "View"
}

type Output string

const (
	OutputTable Output = Output(cli.OutputTable)
	OutputJSON  Output = Output(cli.OutputJSON)
	OutputYAML  Output = Output(cli.OutputYAML)
	OutputPNG   Output = Output(chart.FormatPNG)
	OutputSVG   Output = Output(chart.FormatSVG)
)

func (o *Output) Set(val string) error {
	for _, output := range allOutputs {
		if val == string(output) {
			*o = output
			return nil
		}
	}
	return fmt.Errorf("invalid output: %s", val)
}

func (o Output) String() string {
	return string(o)
}

func (o *Output) Type() string {
	return "Output"
}

// IsImage reports whether o is rendered as an image instead of text.
func (o Output) IsImage() bool {
	return o == OutputPNG || o == OutputSVG
}

var (
	_          pflag.Value = (*View)(nil)
	_          pflag.Value = (*Output)(nil)
	allOutputs             = []Output{OutputTable, OutputJSON, OutputYAML, OutputPNG, OutputSVG}
)

// chartFlags are the flags selecting the chart of SUBJECT [CLASS].
type chartFlags struct {
	view  View
	start string
	end   string
}

func newChartFlags(flags *pflag.FlagSet) *chartFlags {
	f := &chartFlags{view: View(chart.ViewBar)}
	flags.Var(&f.view, "view", fmt.Sprintf("Chart view. Possible values are %v, any other value draws a line", chart.AllViews))
	flags.StringVar(&f.start, "start", "", "First month compared by compareBar (YYYY-MM or YYYY-MM-DD)")
	flags.StringVar(&f.end, "end", "", "Second month compared by compareBar (YYYY-MM or YYYY-MM-DD)")
	return f
}

// props parses args of the form SUBJECT [CLASS] with the flags.
func (f *chartFlags) props(args []string) (chart.Props, error) {
	var classNumber string
	if len(args) > 1 {
		classNumber = args[1]
	}
	return chart.ParseProps(args[0], classNumber, string(f.view), f.start, f.end)
}
