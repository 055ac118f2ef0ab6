// Package bootstrap runs long-lived processes until they fail or the process is signaled.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// DefaultShutdownTimeout bounds the time all shutdown hooks get together.
const DefaultShutdownTimeout = 10 * time.Second

type hook struct {
	name string
	fn   func(ctx context.Context) error
}

// App runs a process and stops it gracefully.
type App struct {
	shutdownTimeout time.Duration

	mu    sync.Mutex
	hooks []hook
}

func New(shutdownTimeout time.Duration) *App {
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}
	return &App{shutdownTimeout: shutdownTimeout}
}

// AddShutdownHook registers fn under name. Hooks run in reverse order of registration.
func (a *App) AddShutdownHook(name string, fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, hook{name: name, fn: fn})
}

// Run calls run until it returns, or until ctx is done or the process receives SIGINT or SIGTERM.
// In the latter case the shutdown hooks are called and their errors are returned.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		// run may notice the signal before this select does
		if err != nil || ctx.Err() == nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	return a.shutdown(shutdownCtx)
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	for i := len(a.hooks) - 1; i >= 0; i-- {
		h := a.hooks[i]
		slog.Default().Info("shutting down", "hook", h.name)
		if err := h.fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
