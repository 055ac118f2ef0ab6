package main

import (
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/attendchart/internal/chart"
	"github.com/at-ishikawa/attendchart/internal/cli"
)

func newInteractiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive SUBJECT [CLASS]",
		Short: "Explore the attendance of a subject interactively",
		Args:  cobra.RangeArgs(1, 2),
	}
	flags := newChartFlags(cmd.Flags())

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

		widget := chart.NewWidget(assembler)
		defer widget.Close()

		session := cli.NewChartSession(widget, props, cmd.InOrStdin(), cmd.OutOrStdout())
		session.Start(cmd.Context())
		return cli.Run(cmd.Context(), session, cmd.OutOrStdout())
	}
	return cmd
}
