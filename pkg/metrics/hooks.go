package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/matzehuels/topolayout/pkg/errors"
	"github.com/matzehuels/topolayout/pkg/observability"
)

var (
	_ observability.LayoutHooks = (*Registry)(nil)
	_ observability.RouteHooks  = (*Registry)(nil)
	_ observability.HTTPHooks   = (*Registry)(nil)
)

// OnLayoutStart implements observability.LayoutHooks.
func (r *Registry) OnLayoutStart(_ context.Context, strategy string, nodeCount, _ int) {
	r.LayoutsInFlight.Inc()
	r.LayoutNodes.WithLabelValues(strategy).Observe(float64(nodeCount))
}

// OnLayoutComplete implements observability.LayoutHooks.
func (r *Registry) OnLayoutComplete(_ context.Context, strategy string, duration time.Duration, err error) {
	r.LayoutsInFlight.Dec()
	r.LayoutRunsTotal.WithLabelValues(strategy, outcome(err)).Inc()
	if err == nil {
		r.LayoutDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	}
}

// OnLayoutSuperseded implements observability.LayoutHooks.
func (r *Registry) OnLayoutSuperseded(_ context.Context, strategy string) {
	r.LayoutSupersededTotal.WithLabelValues(strategy).Inc()
}

// OnRoute implements observability.RouteHooks.
func (r *Registry) OnRoute(algorithm string, points int, fallback bool) {
	r.RoutesTotal.WithLabelValues(algorithm, strconv.FormatBool(fallback)).Inc()
	r.RoutePoints.WithLabelValues(algorithm).Observe(float64(points))
}

// OnRequest implements observability.HTTPHooks.
func (r *Registry) OnRequest(_ context.Context, method, route string, statusCode int, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errors.ErrCodeCancelled):
		return "cancelled"
	default:
		return "error"
	}
}
