package probe

import (
	"context"

	"github.com/hamed0406/availcheck/internal/domain"
)

// Reason explains a verdict. Only ReasonOK accompanies an UP result.
type Reason string

const (
	ReasonOK             Reason = "ok"
	ReasonTransportError Reason = "transport_error"
	ReasonBadStatus      Reason = "bad_status"
	ReasonSlowResponse   Reason = "slow_response"
	ReasonBadRequest     Reason = "bad_request"
)

// Result is the outcome of a single probe.
//
// Fields:
//   - StatusCode: HTTP status code when a response arrived; 0 for transport errors.
//   - LatencyMS: whole milliseconds from dispatch until the body was fully read.
//   - Detail: free-form diagnostic text (error message, DNS class).
type Result struct {
	Up         bool
	StatusCode int
	LatencyMS  int64
	Reason     Reason
	Detail     string
}

// Status converts the boolean verdict to its UP/DOWN form.
func (r Result) Status() domain.Status { return domain.StatusOf(r.Up) }

// Prober performs one request against an endpoint and classifies it.
// Implementations never return errors; failures are DOWN results.
type Prober interface {
	Probe(ctx context.Context, ep domain.Endpoint) Result
}
