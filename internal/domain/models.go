package domain

import (
	"errors"
	"fmt"
	"net/url"
)

// Endpoint is one configured HTTP target. It is never mutated after loading.
type Endpoint struct {
	Name    string            `json:"name" yaml:"name"`
	URL     string            `json:"url" yaml:"url"`
	Method  string            `json:"method,omitempty" yaml:"method"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers"`
	Body    string            `json:"body,omitempty" yaml:"body"`
}

// Status is the verdict of a single probe.
type Status string

const (
	StatusUp   Status = "UP"
	StatusDown Status = "DOWN"
)

// StatusOf maps a boolean verdict to a Status.
func StatusOf(up bool) Status {
	if up {
		return StatusUp
	}
	return StatusDown
}

// Outcome is what the loop hands to the tracker after each probe.
type Outcome struct {
	Domain string `json:"domain"`
	Status Status `json:"status"`
}

// DomainStats holds cumulative counters for one domain. Up <= Total.
type DomainStats struct {
	Total int `json:"total"`
	Up    int `json:"up"`
}

// Availability is one row of an availability report.
type Availability struct {
	Domain  string `json:"domain"`
	Percent int    `json:"percent"`
}

var ErrNoHost = errors.New("url has no host")

// DomainOf returns the aggregation key for an endpoint URL: the authority
// part with scheme and path removed. A port, when present, is kept.
func DomainOf(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("parse url %q: %w", raw, ErrNoHost)
	}
	return u.Host, nil
}
