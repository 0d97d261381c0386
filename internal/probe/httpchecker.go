package probe

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hamed0406/availcheck/internal/domain"
)

// MaxLatency is the exclusive upper bound on round-trip time for an UP verdict.
const MaxLatency = 500 * time.Millisecond

// Doer is the HTTP capability the prober depends on.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type HTTPProber struct {
	Client Doer
	// DNS, when set, is consulted after transport failures to annotate Detail.
	DNS func(ctx context.Context, host string) DNSStatus
	now func() time.Time
}

func NewHTTPProber(timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		Client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

func (h *HTTPProber) clock() time.Time {
	if h.now == nil {
		return time.Now()
	}
	return h.now()
}

// Probe sends the endpoint's request and applies the success policy:
// no transport error, status in [200,300), latency under MaxLatency.
func (h *HTTPProber) Probe(ctx context.Context, ep domain.Endpoint) Result {
	method := strings.ToUpper(strings.TrimSpace(ep.Method))
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if ep.Body != "" {
		body = strings.NewReader(ep.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, ep.URL, body)
	if err != nil {
		return Result{Reason: ReasonBadRequest, Detail: err.Error()}
	}
	for k, v := range ep.Headers {
		// net/http ignores Header["Host"]; the request's Host field wins
		if strings.EqualFold(k, "Host") {
			req.Host = v
			continue
		}
		req.Header.Set(k, v)
	}

	start := h.clock()
	resp, err := h.Client.Do(req)
	if err != nil {
		return h.transportFailure(ctx, ep.URL, start, err)
	}
	_, err = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	latency := h.clock().Sub(start).Milliseconds()
	if err != nil {
		return h.transportFailure(ctx, ep.URL, start, err)
	}

	out := Result{StatusCode: resp.StatusCode, LatencyMS: latency, Detail: resp.Status}
	switch {
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		out.Reason = ReasonBadStatus
	case latency >= MaxLatency.Milliseconds():
		out.Reason = ReasonSlowResponse
	default:
		out.Up = true
		out.Reason = ReasonOK
	}
	return out
}

func (h *HTTPProber) transportFailure(ctx context.Context, raw string, start time.Time, err error) Result {
	out := Result{
		Reason:    ReasonTransportError,
		LatencyMS: h.clock().Sub(start).Milliseconds(),
		Detail:    err.Error(),
	}
	if h.DNS != nil {
		dns := h.DNS(ctx, extractHost(raw))
		out.Detail = strings.TrimSpace(out.Detail + " dns=" + dns.Class)
	}
	return out
}

func extractHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
