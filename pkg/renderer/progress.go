package renderer

import "sync/atomic"

// Progress receives pixel completion counts from the render workers.
// Implementations must be safe for concurrent use.
type Progress interface {
	Increment(n int)
}

// ProgressCounter is an atomic Progress with an optional update callback
type ProgressCounter struct {
	done     atomic.Int64
	total    int64
	onUpdate func(done, total int64)
}

// NewProgressCounter creates a counter for total units of work. onUpdate may be nil
// and is called from worker goroutines.
func NewProgressCounter(total int, onUpdate func(done, total int64)) *ProgressCounter {
	return &ProgressCounter{
		total:    int64(total),
		onUpdate: onUpdate,
	}
}

// Increment records n more completed units
func (p *ProgressCounter) Increment(n int) {
	done := p.done.Add(int64(n))
	if p.onUpdate != nil {
		p.onUpdate(done, p.total)
	}
}

// Done returns the number of completed units
func (p *ProgressCounter) Done() int64 {
	return p.done.Load()
}

// Total returns the expected number of units
func (p *ProgressCounter) Total() int64 {
	return p.total
}

// nopProgress discards progress updates
type nopProgress struct{}

func (nopProgress) Increment(int) {}
