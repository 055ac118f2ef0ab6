package chart

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/at-ishikawa/attendchart/internal/series"
)

// Builder assembles a series for a request.
type Builder interface {
	Assemble(ctx context.Context, req series.Request) (series.Series, error)
}

// Props are the inputs of a widget. Start and End are only read by ViewCompareBar.
type Props struct {
	Subject     string
	ClassNumber string
	View        View
	Start       time.Time
	End         time.Time
}

type State int

const (
	// StateStale means the series does not reflect the latest props yet.
	StateStale State = iota
	// StateFresh means the series was assembled for the latest props.
	StateFresh
)

func (s State) String() string {
	if s == StateFresh {
		return "fresh"
	}
	return "stale"
}

// Snapshot is a consistent copy of a widget's state.
type Snapshot struct {
	State  State
	Props  Props
	Series series.Series
	Chart  Chart
	// Err is the failure of the latest assembly, if any.
	Err   error
	Token uint64
}

// Widget owns the series shown for its latest props.
// Every Update supersedes the previous one: the in-flight assembly is
// canceled and, should it still finish, its result is discarded.
type Widget struct {
	builder Builder
	now     func() time.Time

	mu     sync.Mutex
	token  uint64
	cancel context.CancelFunc
	state  State
	props  Props
	series series.Series
	err    error
}

type WidgetOption func(*Widget)

// WithClock replaces time.Now when resolving the trailing window.
func WithClock(now func() time.Time) WidgetOption {
	return func(w *Widget) {
		w.now = now
	}
}

func NewWidget(builder Builder, opts ...WidgetOption) *Widget {
	w := &Widget{
		builder: builder,
		now:     time.Now,
		state:   StateStale,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Update switches the widget to props and starts assembling their series.
// The widget is stale when Update returns. The returned channel is closed
// once this assembly has settled, whether it was applied or discarded.
func (w *Widget) Update(ctx context.Context, props Props) <-chan struct{} {
	ctx, cancel := context.WithCancel(ctx)

	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	w.token++
	token := w.token
	w.cancel = cancel
	w.state = StateStale
	w.props = props
	w.mu.Unlock()

	req := props.Request(w.now())

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()

		s, err := w.builder.Assemble(ctx, req)
		w.apply(token, s, err)
	}()
	return done
}

func (w *Widget) apply(token uint64, s series.Series, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if token != w.token {
		slog.Default().Debug("discarding superseded attendance series",
			"token", token,
			"latest", w.token,
		)
		return
	}
	w.cancel = nil
	if err != nil {
		slog.Default().Warn("failed to assemble attendance series",
			"subject", w.props.Subject,
			"classNumber", w.props.ClassNumber,
			"error", err,
		)
		w.err = err
		return
	}
	w.series = s
	w.err = nil
	w.state = StateFresh
}

func (w *Widget) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.series.Clone()
	return Snapshot{
		State:  w.state,
		Props:  w.props,
		Series: s,
		Chart:  Build(s, w.props.View),
		Err:    w.err,
		Token:  w.token,
	}
}

// Close cancels the in-flight assembly, if any.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}
