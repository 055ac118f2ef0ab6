package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/attendchart/internal/assets"
	"github.com/at-ishikawa/attendchart/internal/chart"
	"github.com/at-ishikawa/attendchart/internal/pdf"
	"github.com/at-ishikawa/attendchart/internal/series"
)

func newReportCommand() *cobra.Command {
	var generatePDF bool

	cmd := &cobra.Command{
		Use:   "report SUBJECT [CLASS]",
		Short: "Write a markdown attendance report",
		Args:  cobra.RangeArgs(1, 2),
	}
	flags := newChartFlags(cmd.Flags())
	cmd.Flags().BoolVar(&generatePDF, "pdf", false, "Also convert the report to PDF")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		props, err := flags.props(args)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		assembler, closeClient := newAssembler(cfg)
		defer func() {
			_ = closeClient()
		}()

		now := time.Now()
		s, err := assembler.Assemble(cmd.Context(), props.Request(now))
		if err != nil {
			return fmt.Errorf("assembler.Assemble > %w", err)
		}

		if err := os.MkdirAll(cfg.Outputs.ReportDirectory, 0755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", cfg.Outputs.ReportDirectory, err)
		}
		reportPath := filepath.Join(cfg.Outputs.ReportDirectory, reportFileName(props, now))
		f, err := os.Create(reportPath)
		if err != nil {
			return fmt.Errorf("os.Create(%s) > %w", reportPath, err)
		}
		if err := assets.WriteReport(f, cfg.Templates.ReportTemplate, newReportData(props, s, now)); err != nil {
			_ = f.Close()
			return fmt.Errorf("assets.WriteReport > %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("f.Close > %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), reportPath)

		if generatePDF {
			pdfPath, err := pdf.ConvertMarkdownToPDF(reportPath)
			if err != nil {
				return fmt.Errorf("pdf.ConvertMarkdownToPDF > %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pdfPath)
		}
		return nil
	}
	return cmd
}

func newReportData(props chart.Props, s series.Series, now time.Time) assets.ReportData {
	rows := make([]assets.ReportRow, 0, s.Len())
	for i, b := range s.Buckets {
		res := s.At(i)
		rows = append(rows, assets.ReportRow{
			Label:   s.Labels[i],
			Period:  b.String(),
			Total:   res.TotalStudents,
			Tested:  res.TestedStudents,
			Percent: res.PercentLabel(),
		})
	}
	return assets.ReportData{
		Subject:     props.Subject,
		ClassNumber: props.ClassNumber,
		View:        string(props.View),
		GeneratedAt: now,
		Rows:        rows,
	}
}

var fileNameReplacer = strings.NewReplacer("/", "_", `\`, "_")

// reportFileName is SUBJECT[-CLASS]-VIEW-YYYYMMDD.md, with path separators replaced
// so the report stays in the report directory.
func reportFileName(props chart.Props, now time.Time) string {
	parts := []string{props.Subject}
	if props.ClassNumber != "" {
		parts = append(parts, props.ClassNumber)
	}
	parts = append(parts, string(props.View), now.Format("20060102"))
	return fileNameReplacer.Replace(strings.Join(parts, "-")) + ".md"
}
