package renderer

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ProgressFunc receives the completed fraction of a render in [0, 1].
// Calls are serialized and the values never decrease.
type ProgressFunc func(fraction float64)

// Progress is a mutex-guarded row counter shared by all workers of one render
type Progress struct {
	mu       sync.Mutex
	done     int
	total    int
	reported float64
	report   ProgressFunc
}

// NewProgress creates a counter for total rows. report may be nil.
func NewProgress(total int, report ProgressFunc) *Progress {
	return &Progress{total: total, report: report, reported: -1}
}

// Advance records finished rows and reports the new fraction
func (p *Progress) Advance(rows int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done += rows
	if p.done > p.total {
		p.done = p.total
	}
	p.emit(p.fraction())
}

// Finish reports completion
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = p.total
	p.emit(1.0)
}

// Fraction returns the completed fraction
func (p *Progress) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fraction()
}

func (p *Progress) fraction() float64 {
	if p.total <= 0 {
		return 1.0
	}
	return float64(p.done) / float64(p.total)
}

// emit must be called with the lock held
func (p *Progress) emit(fraction float64) {
	if fraction <= p.reported {
		return
	}
	p.reported = fraction
	if p.report != nil {
		p.report(fraction)
	}
}

// ConsoleProgress draws a single-line progress bar, ending with a newline at 100%
func ConsoleProgress(w io.Writer) ProgressFunc {
	const barWidth = 50
	return func(fraction float64) {
		filled := int(fraction * barWidth)
		bar := strings.Repeat("=", filled)
		if filled < barWidth {
			bar += ">" + strings.Repeat(" ", barWidth-filled-1)
		}
		fmt.Fprintf(w, "\r[%s] %d %%", bar, int(fraction*100))
		if fraction >= 1.0 {
			fmt.Fprintln(w)
		}
	}
}

// LoggerProgress logs every time another step (e.g. 0.1) of the render completes
func LoggerProgress(logger core.Logger, step float64) ProgressFunc {
	next := step
	return func(fraction float64) {
		if fraction < next && fraction < 1.0 {
			return
		}
		logger.Printf("Rendered %.0f%%\n", fraction*100)
		for next <= fraction {
			next += step
		}
	}
}
