package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/availcheck/internal/availability"
	"github.com/hamed0406/availcheck/internal/domain"
	"github.com/hamed0406/availcheck/internal/probe"
)

// DefaultInterval is the pause between the end of one cycle's report and
// the first probe of the next cycle.
const DefaultInterval = 15 * time.Second

type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StateStopping:
		return "STOPPING"
	case StateStopped:
		return "STOPPED"
	default:
		return "IDLE"
	}
}

// Sink receives the observable output of the loop.
type Sink interface {
	ProbeResult(ep domain.Endpoint, st domain.Status)
	Availability(rows []domain.Availability)
	Shutdown()
}

// Observer is notified of every probe and report. Optional.
type Observer interface {
	ObserveProbe(ep domain.Endpoint, dom string, res probe.Result)
	ObserveReport(rows []domain.Availability)
}

type Loop struct {
	Logger    *zap.Logger
	Endpoints []domain.Endpoint
	Prober    probe.Prober
	Tracker   *availability.Tracker
	Sink      Sink
	Observer  Observer
	Interval  time.Duration

	domains []string
	state   atomic.Int32
	cycles  int
}

// NewLoop resolves the domain of every endpoint up front so a bad URL is
// reported before the first cycle.
func NewLoop(
	logger *zap.Logger,
	endpoints []domain.Endpoint,
	prober probe.Prober,
	tracker *availability.Tracker,
	sink Sink,
	interval time.Duration,
) (*Loop, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	domains := make([]string, len(endpoints))
	for i, ep := range endpoints {
		d, err := domain.DomainOf(ep.URL)
		if err != nil {
			return nil, fmt.Errorf("endpoint %q: %w", ep.Name, err)
		}
		domains[i] = d
	}
	return &Loop{
		Logger:    logger,
		Endpoints: endpoints,
		Prober:    prober,
		Tracker:   tracker,
		Sink:      sink,
		Interval:  interval,
		domains:   domains,
	}, nil
}

func (l *Loop) State() State { return State(l.state.Load()) }

// Run probes every endpoint in order, reports, waits Interval and repeats
// until ctx is cancelled. Cancellation is observed before each probe and
// during the wait. A probe already in flight is not cancelled; its outcome
// is recorded. Run always ends with the shutdown notice and one final report.
func (l *Loop) Run(ctx context.Context) {
	l.state.Store(int32(StateRunning))
	l.Logger.Info("loop_started",
		zap.Int("endpoints", len(l.Endpoints)),
		zap.Duration("interval", l.Interval),
	)

	// probes outlive the stop signal; the transport timeout bounds them
	probeCtx := context.WithoutCancel(ctx)

	for {
		if !l.runCycle(ctx, probeCtx) {
			break
		}
		l.emitReport()
		if !l.wait(ctx) {
			break
		}
	}

	l.state.Store(int32(StateStopping))
	l.Logger.Info("loop_stopping", zap.Int("cycles", l.cycles))
	l.Sink.Shutdown()
	l.emitReport()
	l.state.Store(int32(StateStopped))
	l.Logger.Info("loop_stopped")
}

// runCycle reports whether every endpoint was probed.
func (l *Loop) runCycle(ctx, probeCtx context.Context) bool {
	start := time.Now()
	up := 0
	for i, ep := range l.Endpoints {
		if ctx.Err() != nil {
			l.Logger.Info("cycle_interrupted",
				zap.Int("cycle", l.cycles+1),
				zap.Int("probed", i),
				zap.Int("skipped", len(l.Endpoints)-i),
			)
			return false
		}

		res := l.Prober.Probe(probeCtx, ep)
		o := domain.Outcome{Domain: l.domains[i], Status: res.Status()}
		l.Tracker.Record(o)
		l.Sink.ProbeResult(ep, o.Status)
		if l.Observer != nil {
			l.Observer.ObserveProbe(ep, l.domains[i], res)
		}
		if res.Up {
			up++
		}
		l.logProbe(ep, l.domains[i], res)
	}
	l.cycles++
	l.Logger.Info("cycle_done",
		zap.Int("cycle", l.cycles),
		zap.Int("endpoints", len(l.Endpoints)),
		zap.Int("up", up),
		zap.Duration("took", time.Since(start)),
	)
	return true
}

func (l *Loop) logProbe(ep domain.Endpoint, dom string, res probe.Result) {
	fields := []zap.Field{
		zap.String("endpoint", ep.Name),
		zap.String("url", ep.URL),
		zap.String("domain", dom),
		zap.Bool("up", res.Up),
		zap.Int("status", res.StatusCode),
		zap.Int64("latency_ms", res.LatencyMS),
		zap.String("reason", string(res.Reason)),
	}
	if res.Up {
		l.Logger.Debug("probe_done", fields...)
		return
	}
	l.Logger.Warn("probe_down", append(fields, zap.String("detail", res.Detail))...)
}

func (l *Loop) emitReport() {
	rows := l.Tracker.Report()
	l.Sink.Availability(rows)
	if l.Observer != nil {
		l.Observer.ObserveReport(rows)
	}
}

// wait returns false if ctx was cancelled before the interval elapsed.
func (l *Loop) wait(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	t := time.NewTimer(l.Interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
