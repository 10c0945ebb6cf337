package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	l := NoopLayoutHooks{}
	l.OnLayoutStart(ctx, "force", 10, 12)
	l.OnLayoutComplete(ctx, "force", time.Second, nil)
	l.OnLayoutSuperseded(ctx, "force")

	r := NoopRouteHooks{}
	r.OnRoute("astar", 5, false)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/layouts/{strategy}", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}
	if _, ok := Route().(NoopRouteHooks); !ok {
		t.Error("Route() should return NoopRouteHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customLayout := &testLayoutHooks{}
	SetLayoutHooks(customLayout)
	if Layout() != customLayout {
		t.Error("SetLayoutHooks should set custom hooks")
	}

	customRoute := &testRouteHooks{}
	SetRouteHooks(customRoute)
	if Route() != customRoute {
		t.Error("SetRouteHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// nil is ignored
	SetLayoutHooks(nil)
	if Layout() != customLayout {
		t.Error("SetLayoutHooks(nil) should keep existing hooks")
	}

	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	l := &testLayoutHooks{}
	SetLayoutHooks(l)
	r := &testRouteHooks{}
	SetRouteHooks(r)

	ctx := context.Background()
	Layout().OnLayoutStart(ctx, "hierarchical", 3, 2)
	Layout().OnLayoutComplete(ctx, "hierarchical", time.Millisecond, nil)
	Layout().OnLayoutSuperseded(ctx, "force")
	Route().OnRoute("curved", 11, false)
	Route().OnRoute("astar", 2, true)

	if l.starts != 1 || l.completes != 1 || l.superseded != 1 {
		t.Errorf("layout events = %d/%d/%d, want 1/1/1", l.starts, l.completes, l.superseded)
	}
	if r.routes != 2 || r.fallbacks != 1 {
		t.Errorf("route events = %d routes %d fallbacks, want 2/1", r.routes, r.fallbacks)
	}
}

type testLayoutHooks struct {
	starts, completes, superseded int
}

func (h *testLayoutHooks) OnLayoutStart(context.Context, string, int, int) { h.starts++ }
func (h *testLayoutHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {
	h.completes++
}
func (h *testLayoutHooks) OnLayoutSuperseded(context.Context, string) { h.superseded++ }

type testRouteHooks struct {
	routes, fallbacks int
}

func (h *testRouteHooks) OnRoute(_ string, _ int, fallback bool) {
	h.routes++
	if fallback {
		h.fallbacks++
	}
}

type testHTTPHooks struct{}

func (testHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}
