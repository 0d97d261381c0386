package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/hamed0406/availcheck/internal/domain"
)

// Console writes the operator-facing lines: one per probe, one per domain
// for each report, and the shutdown notice.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) ProbeResult(ep domain.Endpoint, st domain.Status) {
	c.printf("Endpoint %s is %s\n", ep.Name, st)
}

func (c *Console) Availability(rows []domain.Availability) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range rows {
		fmt.Fprintln(c.w, Line(r))
	}
}

func (c *Console) Shutdown() {
	c.printf("\nExiting the program.\n")
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format, args...)
}

// Line formats one availability row.
func Line(r domain.Availability) string {
	return fmt.Sprintf("%s has %d%% availability percentage", r.Domain, r.Percent)
}
