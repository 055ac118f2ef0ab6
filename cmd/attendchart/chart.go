package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/attendchart/internal/chart"
	"github.com/at-ishikawa/attendchart/internal/cli"
)

func newChartCommand() *cobra.Command {
	var file string
	output := OutputTable

	cmd := &cobra.Command{
		Use:   "chart SUBJECT [CLASS]",
		Short: "Show the monthly attendance of a subject or a class",
		Args:  cobra.RangeArgs(1, 2),
	}
	flags := newChartFlags(cmd.Flags())
	cmd.Flags().Var(&output, "output", fmt.Sprintf("Output format. Possible values are %v", allOutputs))
	cmd.Flags().StringVar(&file, "file", "", "Image file written by png and svg outputs")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		props, err := flags.props(args)
		if err != nil {
			return err
		}
		if output.IsImage() && file == "" {
			return fmt.Errorf("--file is required for %s output", output)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		assembler, closeClient := newAssembler(cfg)
		defer func() {
			_ = closeClient()
		}()

		s, err := assembler.Assemble(cmd.Context(), props.Request(time.Now()))
		if err != nil {
			return fmt.Errorf("assembler.Assemble > %w", err)
		}

		if output.IsImage() {
			return writeImage(file, chart.Build(s, props.View), chart.ImageFormat(output), chartSize(cfg))
		}
		return cli.WriteAttendance(cmd.OutOrStdout(), cli.OutputFormat(output), cli.Attendance{
			Subject:     props.Subject,
			ClassNumber: props.ClassNumber,
			View:        props.View,
			Series:      s,
		})
	}
	return cmd
}

func writeImage(path string, c chart.Chart, format chart.ImageFormat, size chart.Size) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	if err := chart.Render(f, c, format, size); err != nil {
		_ = f.Close()
		return fmt.Errorf("chart.Render > %w", err)
	}
	return f.Close()
}
