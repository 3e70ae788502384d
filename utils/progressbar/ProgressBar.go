// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// ProgressBar implements a concurrent progress bar with a status line
// underneath it. The bar is redrawn in place by a uilive writer on a
// separate goroutine so that it runs concurrently with the caller.
type ProgressBar struct {
	mu sync.Mutex

	// width determines the number of characters wide that the progress
	// bar should be
	width int

	// maxProgress determines the number of times Increment() should
	// be called before the progress bar reaches 100%.
	maxProgress     int
	currentProgress int
	status          string

	start       time.Time
	updateEvery time.Duration
	writer      *uilive.Writer
	closeEvent  chan struct{}
	done        chan struct{}
	closed      bool
}

// NewProgressBar returns a new progress bar that is width characters
// wide and reaches 100% capacity after max Increment() calls. The bar
// is redrawn every updateEvery on out.
func NewProgressBar(width, max int, updateEvery time.Duration,
	out io.Writer) *ProgressBar {
	if max <= 0 {
		max = 1
	}
	writer := uilive.New()
	writer.Out = out

	return &ProgressBar{
		width:       width,
		maxProgress: max,
		updateEvery: updateEvery,
		writer:      writer,
		closeEvent:  make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// SetStatus sets the line printed underneath the bar
func (p *ProgressBar) SetStatus(format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = fmt.Sprintf(format, args...)
}

// Progress returns the number of Increment() calls so far
func (p *ProgressBar) Progress() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentProgress
}

// Display displays the progress bar on the screen. It should only be
// called once.
func (p *ProgressBar) Display() {
	p.start = time.Now()
	p.writer.Start()
	go func() {
		tick := time.NewTicker(p.updateEvery)
		defer tick.Stop()
		defer close(p.done)

		for {
			select {
			case <-tick.C:
				p.draw()

			case <-p.closeEvent:
				p.draw()
				p.writer.Stop()
				return
			}
		}
	}()
}

// Close stops redrawing the bar after drawing it one final time
func (p *ProgressBar) Close() {
	if p.closed {
		panic("close: close on closed progress bar")
	}
	p.closed = true
	close(p.closeEvent)
	<-p.done
}

func (p *ProgressBar) draw() {
	p.mu.Lock()
	fmt.Fprintln(p.writer, p.render())
	if p.status != "" {
		fmt.Fprintln(p.writer.Newline(), p.status)
	}
	p.mu.Unlock()
	p.writer.Flush()
}

// render returns the current bar as a string, the caller must hold
// the lock
func (p *ProgressBar) render() string {
	var bar strings.Builder
	bar.WriteString("|")

	filled := p.currentProgress * p.width / p.maxProgress
	bar.WriteString(strings.Repeat("█", filled))
	bar.WriteString(strings.Repeat(" ", p.width-filled))

	percent := float64(p.currentProgress) / float64(p.maxProgress) * 100
	elapsed := time.Since(p.start).Truncate(time.Second)
	bar.WriteString(fmt.Sprintf("| [%.2f%% | elapsed: %v]", percent, elapsed))

	return bar.String()
}
