package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/attendchart/internal/chart"
	"github.com/at-ishikawa/attendchart/internal/series"
)

type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// Attendance is the printable result of a chart command.
type Attendance struct {
	Subject     string        `json:"subject" yaml:"subject"`
	ClassNumber string        `json:"classNumber,omitempty" yaml:"class_number,omitempty"`
	View        chart.View    `json:"view" yaml:"view"`
	Series      series.Series `json:"series" yaml:"series"`
}

// Title is the heading of the attendance table.
func (a Attendance) Title() string {
	title := a.Subject
	if a.ClassNumber != "" {
		title += " class " + a.ClassNumber
	}
	return fmt.Sprintf("%s (%s)", title, a.View)
}

func WriteAttendance(w io.Writer, format OutputFormat, a Attendance) error {
	switch format {
	case OutputTable:
		return WriteTable(w, a.Title(), a.Series)
	case OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(a); err != nil {
			return fmt.Errorf("encoder.Encode > %w", err)
		}
		return nil
	case OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(a); err != nil {
			return fmt.Errorf("encoder.Encode > %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteTable writes one row per bucket of s. Attendance is colored by how high it is.
func WriteTable(w io.Writer, title string, s series.Series) error {
	bold := color.New(color.Bold)
	if _, err := bold.Fprintln(w, title); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MONTH\tPERIOD\tENROLLED\tTESTED\tATTENDANCE")
	for i, b := range s.Buckets {
		res := s.At(i)
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			s.Labels[i],
			b.String(),
			res.TotalStudents,
			res.TestedStudents,
			percentColor(res.TotalStudents, res.AttendPercent).Sprint(res.PercentLabel()),
		)
	}
	return tw.Flush()
}

func percentColor(total int, percent float64) *color.Color {
	switch {
	case total == 0:
		return color.New(color.Faint)
	case percent >= 80:
		return color.New(color.FgGreen)
	case percent >= 50:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
