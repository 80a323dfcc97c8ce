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

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates one status line on stderr until stopped or until its
// context ends.
type Spinner struct {
	message string
	out     io.Writer

	ctx  context.Context
	stop context.CancelFunc

	once sync.Once
	mu   sync.Mutex // guards out
	done chan struct{}
}

func newSpinner(ctx context.Context, message string) *Spinner {
	ctx, stop := context.WithCancel(ctx)
	return &Spinner{message: message, out: os.Stderr, ctx: ctx, stop: stop}
}

// Start draws frames in the background.
func (s *Spinner) Start() {
	s.once.Do(func() {
		s.done = make(chan struct{})
		go s.run()
	})
}

func (s *Spinner) run() {
	defer close(s.done)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()
	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			return
		case <-tick.C:
			s.mu.Lock()
			fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
			s.mu.Unlock()
		}
	}
}

// Stop ends the animation and blanks the line. Calling it again, or on a
// spinner that never started, is harmless.
func (s *Spinner) Stop() {
	s.stop()
	s.once.Do(func() {}) // a later Start must not spin up
	if s.done != nil {
		<-s.done
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// StopWithError stops the spinner and reports message as a failure.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}
