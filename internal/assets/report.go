package assets

import (
	"fmt"
	htmltemplate "html/template"
	"io"
	"time"
)

// ReportData is the data structure for attendance report templates
type ReportData struct {
	Subject     string
	ClassNumber string
	View        string
	GeneratedAt time.Time
	Rows        []ReportRow
}

// ReportRow is one month of a report
type ReportRow struct {
	Label   string
	Period  string
	Total   int
	Tested  int
	Percent string
}

func WriteReport(output io.Writer, templatePath string, data ReportData) error {
	tmpl, err := ParseReportTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseReportTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// PageData is the data of the chart page. ChartJSON must be a marshaled chart.Chart.
type PageData struct {
	Title     string
	Subject   string
	View      string
	ChartJSON string
}

func WritePage(output io.Writer, data PageData) error {
	tmpl, err := ParsePageTemplate()
	if err != nil {
		return fmt.Errorf("ParsePageTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, struct {
		PageData
		Config htmltemplate.JS
	}{
		PageData: data,
		Config:   htmltemplate.JS(data.ChartJSON),
	}); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
