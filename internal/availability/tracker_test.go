package availability

import (
	"math/rand"
	"reflect"
	"sync"
	"testing"

	"github.com/hamed0406/availcheck/internal/domain"
)

func TestTracker_EmptyReport(t *testing.T) {
	tr := New()
	if got := tr.Report(); len(got) != 0 {
		t.Fatalf("want empty report, got %+v", got)
	}
	if _, ok := tr.Stats("a.example"); ok {
		t.Fatalf("unknown domain should be absent")
	}
}

func TestTracker_SingleOutcome(t *testing.T) {
	tr := New()
	tr.Record(domain.Outcome{Domain: "down.example", Status: domain.StatusDown})
	tr.Record(domain.Outcome{Domain: "up.example", Status: domain.StatusUp})

	want := []domain.Availability{
		{Domain: "down.example", Percent: 0},
		{Domain: "up.example", Percent: 100},
	}
	if got := tr.Report(); !reflect.DeepEqual(got, want) {
		t.Fatalf("want %+v, got %+v", want, got)
	}
	s, _ := tr.Stats("down.example")
	if s.Total != 1 || s.Up != 0 {
		t.Fatalf("want {1 0}, got %+v", s)
	}
}

func TestTracker_CumulativeAcrossCycles(t *testing.T) {
	tr := New()
	// cycle 1: UP then DOWN on the same domain
	tr.Record(domain.Outcome{Domain: "api.example.com", Status: domain.StatusUp})
	tr.Record(domain.Outcome{Domain: "api.example.com", Status: domain.StatusDown})
	if got := tr.Report()[0].Percent; got != 50 {
		t.Fatalf("after cycle 1 want 50, got %d", got)
	}
	// cycle 2: both UP
	tr.Record(domain.Outcome{Domain: "api.example.com", Status: domain.StatusUp})
	tr.Record(domain.Outcome{Domain: "api.example.com", Status: domain.StatusUp})
	if got := tr.Report()[0].Percent; got != 75 {
		t.Fatalf("after cycle 2 want 75, got %d", got)
	}
}

func TestTracker_FirstSeenOrder(t *testing.T) {
	tr := New()
	for _, d := range []string{"c", "a", "b", "a", "c"} {
		tr.Record(domain.Outcome{Domain: d, Status: domain.StatusUp})
	}
	if got := tr.Domains(); !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestTracker_ReportIsIdempotent(t *testing.T) {
	tr := New()
	tr.Record(domain.Outcome{Domain: "x", Status: domain.StatusUp})
	tr.Record(domain.Outcome{Domain: "x", Status: domain.StatusDown})
	tr.Record(domain.Outcome{Domain: "y", Status: domain.StatusDown})
	if a, b := tr.Report(), tr.Report(); !reflect.DeepEqual(a, b) {
		t.Fatalf("report changed without record: %v vs %v", a, b)
	}
}

func TestTracker_RandomSequencesHoldInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 50; run++ {
		tr := New()
		up, total := 0, 0
		n := 1 + rng.Intn(200)
		for i := 0; i < n; i++ {
			st := domain.StatusDown
			if rng.Intn(3) > 0 {
				st = domain.StatusUp
				up++
			}
			total++
			tr.Record(domain.Outcome{Domain: "d", Status: st})

			s, _ := tr.Stats("d")
			if s.Total != total || s.Up != up || s.Up > s.Total {
				t.Fatalf("counters drifted: got %+v want total=%d up=%d", s, total, up)
			}
		}
		got := tr.Report()[0].Percent
		if want := Percent(domain.DomainStats{Total: total, Up: up}); got != want {
			t.Fatalf("want %d, got %d", want, got)
		}
		if got < 0 || got > 100 {
			t.Fatalf("percent out of range: %d", got)
		}
	}
}

func TestPercent_Rounding(t *testing.T) {
	cases := []struct {
		up, total, want int
	}{
		{0, 0, 0},
		{1, 8, 13}, // 12.5 rounds away from zero
		{1, 40, 3}, // 2.5
		{2, 3, 67},
		{1, 3, 33},
		{199, 200, 100},
		{1, 201, 0},
	}
	for _, c := range cases {
		if got := Percent(domain.DomainStats{Total: c.total, Up: c.up}); got != c.want {
			t.Fatalf("Percent(%d/%d)=%d want %d", c.up, c.total, got, c.want)
		}
	}
}

func TestTracker_ConcurrentReaders(t *testing.T) {
	tr := New()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = tr.Report()
			}
		}()
	}
	for j := 0; j < 100; j++ {
		tr.Record(domain.Outcome{Domain: "d", Status: domain.StatusUp})
	}
	wg.Wait()
	if s, _ := tr.Stats("d"); s.Total != 100 {
		t.Fatalf("want 100, got %d", s.Total)
	}
}

func TestTracker_Entries(t *testing.T) {
	tr := New()
	tr.Record(domain.Outcome{Domain: "a", Status: domain.StatusUp})
	tr.Record(domain.Outcome{Domain: "b", Status: domain.StatusDown})
	tr.Record(domain.Outcome{Domain: "a", Status: domain.StatusDown})

	want := []Entry{
		{Domain: "a", DomainStats: domain.DomainStats{Total: 2, Up: 1}},
		{Domain: "b", DomainStats: domain.DomainStats{Total: 1, Up: 0}},
	}
	if got := tr.Entries(); !reflect.DeepEqual(got, want) {
		t.Fatalf("want %+v, got %+v", want, got)
	}
}
