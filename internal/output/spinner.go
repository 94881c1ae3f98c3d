package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title  string
	tty    func() bool
	output io.Writer
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// OnStderr draws the spinner on stderr and shows it only when stderr is a
// terminal, leaving stdout free for command output.
func OnStderr() SpinnerOption {
	return func(c *spinnerConfig) {
		c.tty = IsStderrTTY
		c.output = os.Stderr
	}
}

// withTTY overrides terminal detection (tests).
func withTTY(fn func() bool) SpinnerOption {
	return func(c *spinnerConfig) {
		c.tty = fn
	}
}

// RunWithSpinner executes an action while a spinner is shown.
// Without a terminal the action runs directly. Returns the action's error.
func RunWithSpinner(ctx context.Context, action func() error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{
		title: "Working...",
		tty:   IsTTY,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if !cfg.tty() {
		return action()
	}

	done := make(chan struct{})
	var actionErr error
	go func() {
		defer close(done)
		actionErr = action()
	}()

	s := spinner.New().Title(cfg.title)
	if cfg.output != nil {
		s = s.Output(cfg.output)
	}
	spinnerErr := s.
		Context(ctx).
		Action(func() { <-done }).
		Run()

	<-done
	if spinnerErr != nil && actionErr == nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}
	return actionErr
}
