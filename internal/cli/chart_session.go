package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/attendchart/internal/chart"
	"github.com/at-ishikawa/attendchart/internal/window"
)

var errEnd = errors.New("end")

const sessionHelp = `commands:
  subject NAME        switch the subject
  class [NUMBER]      narrow to a class, or the whole subject without NUMBER
  view VIEW           bar, compareBar or line
  range START END     months compared by compareBar, e.g. 2024-09 2025-02
  show                print the current series
  wait                wait for the latest update and print it
  quit                exit
`

type Session interface {
	Session(ctx context.Context) error
}

// Run calls session until it ends, fails or the process is interrupted.
func Run(ctx context.Context, session Session, stdout io.Writer) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)
		for ctx.Err() == nil {
			if err := session.Session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(stdout, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// ChartSession edits the props of a widget one command line at a time.
type ChartSession struct {
	widget       *chart.Widget
	props        chart.Props
	pending      <-chan struct{}
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
}

func NewChartSession(widget *chart.Widget, props chart.Props, stdin io.Reader, stdout io.Writer) *ChartSession {
	return &ChartSession{
		widget:       widget,
		props:        props,
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
	}
}

// Start assembles the series of the initial props.
func (s *ChartSession) Start(ctx context.Context) {
	s.pending = s.widget.Update(ctx, s.props)
}

func (s *ChartSession) Session(ctx context.Context) error {
	_, _ = s.bold.Fprint(s.stdoutWriter, "> ")
	line, err := s.stdinReader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("error reading input: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			return errEnd
		}
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	command, args := fields[0], fields[1:]

	switch command {
	case "quit", "exit":
		return errEnd
	case "help":
		fmt.Fprint(s.stdoutWriter, sessionHelp)
		return nil
	case "show":
		return s.show()
	case "wait":
		if s.pending != nil {
			select {
			case <-s.pending:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return s.show()
	}

	props, err := s.apply(command, args)
	if err != nil {
		color.New(color.FgRed).Fprintln(s.stdoutWriter, err)
		return nil
	}
	s.props = props
	s.pending = s.widget.Update(ctx, props)
	return nil
}

// apply returns the props after command. The current props are not modified.
func (s *ChartSession) apply(command string, args []string) (chart.Props, error) {
	props := s.props
	switch command {
	case "subject":
		if len(args) != 1 {
			return props, errors.New("usage: subject NAME")
		}
		props.Subject = args[0]
	case "class":
		if len(args) > 1 {
			return props, errors.New("usage: class [NUMBER]")
		}
		props.ClassNumber = ""
		if len(args) == 1 {
			props.ClassNumber = args[0]
		}
	case "view":
		if len(args) != 1 {
			return props, errors.New("usage: view VIEW")
		}
		view := chart.ParseView(args[0])
		if view == chart.ViewCompareBar && (props.Start.IsZero() || props.End.IsZero()) {
			return props, chart.ErrMissingRange
		}
		props.View = view
	case "range":
		if len(args) != 2 {
			return props, errors.New("usage: range START END")
		}
		start, err := window.ParseDate(args[0])
		if err != nil {
			return props, err
		}
		end, err := window.ParseDate(args[1])
		if err != nil {
			return props, err
		}
		props.Start, props.End = start, end
	default:
		return props, fmt.Errorf("unknown command: %s. Type help for the commands", command)
	}
	return props, nil
}

func (s *ChartSession) show() error {
	snapshot := s.widget.Snapshot()
	if snapshot.Err != nil {
		color.New(color.FgRed).Fprintf(s.stdoutWriter, "latest update failed: %v\n", snapshot.Err)
	}
	a := Attendance{
		Subject:     snapshot.Props.Subject,
		ClassNumber: snapshot.Props.ClassNumber,
		View:        snapshot.Props.View,
		Series:      snapshot.Series,
	}
	return WriteTable(s.stdoutWriter, fmt.Sprintf("%s [%s]", a.Title(), snapshot.State), snapshot.Series)
}
