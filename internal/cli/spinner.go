package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a one-line status while serve dials its backends.
// It stops on its own when ctx is done.
type Spinner struct {
	message string
	w       io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	once    sync.Once
	stopped chan struct{}
	mu      sync.Mutex
}

// newSpinner creates a spinner writing to w (os.Stderr when nil).
func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	if w == nil {
		w = os.Stderr
	}
	spinCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		w:       w,
		ctx:     spinCtx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop ends the animation and clears the line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.stopped
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// StopWithSuccess stops the spinner and prints message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints message as an error.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// connect dials a serve backend under a spinner. A cancelled ctx (Ctrl-C
// during the Redis or MongoDB handshake) stops the spinner without a
// failure line and returns the context error.
func connect[T any](ctx context.Context, w io.Writer, backend string, dial func(context.Context) (T, error)) (T, error) {
	spin := newSpinner(ctx, w, "Connecting to "+backend+"...")
	spin.Start()

	v, err := dial(ctx)
	switch {
	case err == nil:
		spin.StopWithSuccess("Connected to " + backend)
		return v, nil
	case ctx.Err() != nil:
		spin.Stop()
		var zero T
		return zero, fmt.Errorf("connect to %s: %w", backend, ctx.Err())
	default:
		spin.StopWithError(backend + " unavailable")
		var zero T
		return zero, err
	}
}
