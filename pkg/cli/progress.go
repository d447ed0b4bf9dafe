package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ProgressReporter follows a command through a batch of files.
type ProgressReporter interface {
	Start(total int64)
	Update(done int64)
	Finish()
	Error(err error)
}

const progressWidth = 30

// fileProgress redraws one status line per update:
//
//	[###############...............]  2/4 files
type fileProgress struct {
	mu      sync.Mutex
	w       io.Writer
	total   int64
	done    int64
	started time.Time
}

// NewProgressReporter returns a reporter writing to w, os.Stderr when nil.
// A batch of zero files prints nothing.
func NewProgressReporter(w io.Writer) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	return &fileProgress{w: w}
}

func (p *fileProgress) Start(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total, p.done, p.started = total, 0, time.Now()
	p.draw()
}

func (p *fileProgress) Update(done int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done = min(done, p.total)
	p.draw()
}

// Finish completes the line and reports the elapsed time.
func (p *fileProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.total == 0 {
		return
	}
	p.done = p.total
	p.draw()
	fmt.Fprintf(p.w, " in %s\n", time.Since(p.started).Round(time.Millisecond))
}

// Error ends the line early with err.
func (p *fileProgress) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.total > 0 {
		fmt.Fprintln(p.w)
	}
	fmt.Fprintf(p.w, "stopped after %d/%d files: %v\n", p.done, p.total, err)
}

func (p *fileProgress) draw() {
	if p.total == 0 {
		return
	}
	filled := int(int64(progressWidth) * p.done / p.total)
	digits := len(fmt.Sprint(p.total))
	fmt.Fprintf(p.w, "\r[%s%s] %*d/%d files",
		strings.Repeat("#", filled), strings.Repeat(".", progressWidth-filled),
		digits, p.done, p.total)
}

// NopProgress discards progress.
type NopProgress struct{}

func (NopProgress) Start(int64)  {}
func (NopProgress) Update(int64) {}
func (NopProgress) Finish()      {}
func (NopProgress) Error(error)  {}
