package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/attendchart/internal/archive"
	"github.com/at-ishikawa/attendchart/internal/chart"
	"github.com/at-ishikawa/attendchart/internal/config"
	"github.com/at-ishikawa/attendchart/internal/database"
	"github.com/at-ishikawa/attendchart/internal/stats"
)

func newArchiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive attendance statistics in MySQL",
	}
	cmd.AddCommand(newArchiveSaveCommand(), newArchiveListCommand())
	return cmd
}

func newArchiveSaveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save SUBJECT [CLASS]",
		Short: "Fetch the statistics of a subject and archive them",
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
		repo, closeDB, err := openArchive(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer func() {
			_ = closeDB()
		}()
		assembler, closeClient := newAssembler(cfg)
		defer func() {
			_ = closeClient()
		}()

		n, err := saveArchive(cmd.Context(), repo, assembler, props, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "archived %d months of %s\n", n, props.Subject)
		return nil
	}
	return cmd
}

func newArchiveListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list SUBJECT [CLASS]",
		Short: "List the archived statistics of a subject",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var classNumber string
			if len(args) > 1 {
				classNumber = args[1]
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			repo, closeDB, err := openArchive(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeDB()
			}()

			records, err := repo.FindBySubject(cmd.Context(), args[0], classNumber)
			if err != nil {
				return fmt.Errorf("repo.FindBySubject > %w", err)
			}
			return writeRecords(cmd.OutOrStdout(), records)
		},
	}
}

func openArchive(ctx context.Context, cfg config.DatabaseConfig) (*archive.DBRepository, func() error, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open > %w", err)
	}
	repo := archive.NewDBRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("repo.EnsureSchema > %w", err)
	}
	return repo, db.Close, nil
}

// saveArchive assembles the series of props and archives every month of it.
func saveArchive(ctx context.Context, repo archive.Repository, builder chart.Builder, props chart.Props, now time.Time) (int, error) {
	s, err := builder.Assemble(ctx, props.Request(now))
	if err != nil {
		return 0, fmt.Errorf("builder.Assemble > %w", err)
	}
	records := archive.RecordsFromSeries(props.Subject, props.ClassNumber, s, now)
	if err := repo.Save(ctx, records); err != nil {
		return 0, fmt.Errorf("repo.Save > %w", err)
	}
	return len(records), nil
}

func writeRecords(w io.Writer, records []archive.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PERIOD\tCLASS\tENROLLED\tTESTED\tATTENDANCE\tFETCHED AT")
	for _, r := range records {
		fmt.Fprintf(tw, "%04d-%02d\t%s\t%d\t%d\t%s\t%s\n",
			r.Year,
			r.Month,
			r.ClassNumber,
			r.TotalStudents,
			r.TestedStudents,
			stats.FormatPercent(r.TotalStudents, r.AttendPercent),
			r.FetchedAt.Format(time.DateTime),
		)
	}
	return tw.Flush()
}
