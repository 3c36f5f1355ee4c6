package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/pronounce/component"
)

// Summary prints what the service started with: components, routes and
// live health.
type Summary struct {
	serviceName     string
	version         string
	strategy        string
	policy          string
	startupDuration time.Duration
	routes          []gin.RouteInfo
}

// NewSummary creates a startup summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// SetScoring records the default strategy and the rule policy.
func (s *Summary) SetScoring(strategy, policy string) {
	s.strategy = strategy
	s.policy = policy
}

// TrackRoutes records the registered HTTP routes.
func (s *Summary) TrackRoutes(routes gin.RoutesInfo) {
	s.routes = append(s.routes, routes...)
}

// Write renders the summary with live health from the registry.
func (s *Summary) Write(ctx context.Context, w io.Writer, registry *component.Registry) {
	names := registry.Names()
	fmt.Fprintf(w, "\n%s %s started in %.2fs\n", s.serviceName, s.version, s.startupDuration.Seconds())
	if s.strategy != "" {
		fmt.Fprintf(w, "scoring: strategy=%s policy=%s\n", s.strategy, s.policy)
	}

	if len(names) > 0 {
		fmt.Fprintf(w, "\nComponents\n")
		for i, name := range names {
			c := registry.Get(name)
			if c == nil {
				continue
			}
			details := ""
			if d, ok := c.(component.Describable); ok {
				desc := d.Describe()
				details = fmt.Sprintf(" [%s] %s", desc.Type, desc.Details)
			}
			fmt.Fprintf(w, "   %s %s%s\n", branch(i, len(names)), name, details)
		}
	}

	if len(s.routes) > 0 {
		fmt.Fprintf(w, "\nRoutes (%d)\n", len(s.routes))
		for i, r := range s.routes {
			fmt.Fprintf(w, "   %s %-7s %s\n", branch(i, len(s.routes)), r.Method, r.Path)
		}
	}

	healths := registry.HealthAll(ctx)
	if len(healths) > 0 {
		fmt.Fprintf(w, "\nHealth: %s\n", component.Overall(healths))
		for i, h := range healths {
			msg := ""
			if h.Message != "" {
				msg = " (" + h.Message + ")"
			}
			fmt.Fprintf(w, "   %s %s %s: %s%s\n", branch(i, len(healths)), healthIcon(h.Status), h.Name, strings.ToLower(string(h.Status)), msg)
		}
	}
	fmt.Fprintln(w)
}

func branch(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
