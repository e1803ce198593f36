package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line on w until stopped or ctx is canceled.
type spinner struct {
	w       io.Writer
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	once    sync.Once
}

func newSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &spinner{w: w, message: message, ctx: ctx, cancel: cancel}
}

func (s *spinner) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
			}
		}
	}()
}

// Stop ends the animation and clears the line. It is safe to call twice.
func (s *spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		s.wg.Wait()
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
	})
}
