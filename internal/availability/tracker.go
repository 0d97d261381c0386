// Package availability keeps cumulative per-domain probe counters and turns
// them into availability percentages. Counters are never reset or removed.
package availability

import (
	"math"
	"sync"

	"github.com/hamed0406/availcheck/internal/domain"
)

type Tracker struct {
	mu    sync.RWMutex
	order []string
	stats map[string]*domain.DomainStats
}

func New() *Tracker {
	return &Tracker{stats: make(map[string]*domain.DomainStats)}
}

// Record counts one probe outcome, creating the domain entry on first use.
func (t *Tracker) Record(o domain.Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.stats[o.Domain]
	if s == nil {
		s = &domain.DomainStats{}
		t.stats[o.Domain] = s
		t.order = append(t.order, o.Domain)
	}
	s.Total++
	if o.Status == domain.StatusUp {
		s.Up++
	}
}

// Report returns one row per known domain in first-seen order.
func (t *Tracker) Report() []domain.Availability {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.Availability, 0, len(t.order))
	for _, d := range t.order {
		out = append(out, domain.Availability{Domain: d, Percent: Percent(*t.stats[d])})
	}
	return out
}

// Entry is a consistent copy of one domain's counters.
type Entry struct {
	Domain string
	domain.DomainStats
}

// Entries returns all counters in first-seen order under a single lock.
func (t *Tracker) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, 0, len(t.order))
	for _, d := range t.order {
		out = append(out, Entry{Domain: d, DomainStats: *t.stats[d]})
	}
	return out
}

// Stats returns a copy of the counters for dom.
func (t *Tracker) Stats(dom string) (domain.DomainStats, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.stats[dom]
	if !ok {
		return domain.DomainStats{}, false
	}
	return *s, true
}

func (t *Tracker) Domains() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.order...)
}

// Percent is round(100*up/total), or 0 when nothing was recorded.
// Halves round away from zero.
func Percent(s domain.DomainStats) int {
	if s.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(100*s.Up) / float64(s.Total)))
}
