package assets

import (
	_ "embed"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const (
	reportTemplateName = "report.md.go.tmpl"
	pageTemplateName   = "chart.html.go.tmpl"
)

//go:embed templates/report.md.go.tmpl
var fallbackReportTemplate string

//go:embed templates/chart.html.go.tmpl
var pageTemplate string

func ParseReportTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, reportTemplateName, fallbackReportTemplate)
}

// ParsePageTemplate parses the HTML page that draws a chart with Chart.js.
func ParsePageTemplate() (*htmltemplate.Template, error) {
	tmpl, err := htmltemplate.New(pageTemplateName).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

func parseTemplateWithFallback(templatePath string, fallbackName string, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}

	return tmpl, nil
}
