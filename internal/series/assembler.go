package series

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/attendchart/internal/stats"
	"github.com/at-ishikawa/attendchart/internal/window"
)

// DefaultConcurrency is the number of buckets fetched at the same time.
const DefaultConcurrency = 4

// Request selects what to assemble.
type Request struct {
	Subject     string
	ClassNumber string
	Buckets     []window.Bucket
}

type Assembler struct {
	source      stats.Source
	concurrency int
}

func NewAssembler(source stats.Source, concurrency int) *Assembler {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Assembler{
		source:      source,
		concurrency: concurrency,
	}
}

// Assemble fetches every bucket of req and returns the series in bucket order.
// Buckets are fetched with at most a.concurrency requests in flight; a concurrency
// of 1 fetches them strictly one after another. The first failure cancels the
// remaining fetches and no partial series is returned.
func (a *Assembler) Assemble(ctx context.Context, req Request) (Series, error) {
	result := newSeries(req.Buckets)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, bucket := range req.Buckets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := a.source.FetchMonth(ctx, stats.Query{
				Subject:     req.Subject,
				ClassNumber: req.ClassNumber,
				Bucket:      bucket,
			})
			if err != nil {
				return fmt.Errorf("source.FetchMonth(%s) > %w", bucket, err)
			}
			// each goroutine owns index i
			result.Totals[i] = res.TotalStudents
			result.Tested[i] = res.TestedStudents
			result.Percents[i] = res.AttendPercent
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Series{}, err
	}

	slog.Default().Debug("assembled attendance series",
		"subject", req.Subject,
		"classNumber", req.ClassNumber,
		"buckets", len(req.Buckets),
	)
	return result, nil
}
