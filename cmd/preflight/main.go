// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"

	"github.com/hamed0406/availcheck/internal/config"
	"github.com/hamed0406/availcheck/internal/domain"
	"github.com/hamed0406/availcheck/internal/probe"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg := config.FromEnv()

	eps, err := config.LoadEndpoints(cfg.ConfigPath)
	if err != nil {
		fail(err.Error())
	}
	if len(eps) == 0 {
		warn(cfg.ConfigPath + " defines no endpoints; every report will be empty.")
	} else {
		ok(fmt.Sprintf("%s: %d endpoints", cfg.ConfigPath, len(eps)))
	}

	order, counts, err := domainCounts(eps)
	if err != nil {
		fail(err.Error())
	}
	for _, d := range order {
		ok(fmt.Sprintf("domain %s (%d endpoints)", d, counts[d]))
	}

	if cfg.HTTPTimeout < probe.MaxLatency {
		warn("HTTP_TIMEOUT_MS is below the 500ms latency threshold; slow endpoints will show as transport errors.")
	}
	ok("HTTP timeout " + cfg.HTTPTimeout.String())

	if cfg.Addr == "" {
		warn("API_ADDR empty; status API and /metrics are disabled.")
	} else {
		ok("API_ADDR=" + cfg.Addr)
	}

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		fail("LOG_DIR " + cfg.LogDir + " is not writable: " + err.Error())
	}
	ok("LOG_DIR=" + cfg.LogDir)

	ok("preflight passed")
}

// domainCounts returns the endpoint domains in first-seen order, the order
// the availability report prints them in.
func domainCounts(eps []domain.Endpoint) ([]string, map[string]int, error) {
	var order []string
	counts := map[string]int{}
	for _, ep := range eps {
		d, err := domain.DomainOf(ep.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("endpoint %q: %w", ep.Name, err)
		}
		if counts[d] == 0 {
			order = append(order, d)
		}
		counts[d]++
	}
	return order, counts, nil
}
