package events

import (
	"sync"

	"github.com/hyunwoolee/wonfolio/internal/domain"
)

// ReportBroadcaster fans out consolidated reports to subscribers via buffered
// channels and remembers the latest one for late joiners. Reports are
// immutable after construction, so sharing them across goroutines is safe.
type ReportBroadcaster struct {
	mu     sync.RWMutex
	subs   map[chan domain.Report]struct{}
	latest *domain.Report
	buffer int
}

// NewReportBroadcaster creates a broadcaster with the given per-subscriber
// channel buffer.
func NewReportBroadcaster(buffer int) *ReportBroadcaster {
	if buffer < 1 {
		buffer = 16
	}
	return &ReportBroadcaster{
		subs:   make(map[chan domain.Report]struct{}),
		buffer: buffer,
	}
}

// Publish stores the report as latest and sends it to all subscribers,
// dropping the send if a reader is slow.
func (b *ReportBroadcaster) Publish(r domain.Report) {
	b.mu.Lock()
	b.latest = &r
	for ch := range b.subs {
		select {
		case ch <- r:
		default:
			// drop slow consumer
		}
	}
	b.mu.Unlock()
}

// Latest returns the most recently published report, or nil before the first
// run completes.
func (b *ReportBroadcaster) Latest() *domain.Report {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest
}

// Subscribe returns a channel receiving reports until Unsubscribe is called.
func (b *ReportBroadcaster) Subscribe() chan domain.Report {
	ch := make(chan domain.Report, b.buffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the channel and closes it.
func (b *ReportBroadcaster) Unsubscribe(ch chan domain.Report) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}
