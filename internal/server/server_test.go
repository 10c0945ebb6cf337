package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/topolayout/pkg/config"
	"github.com/matzehuels/topolayout/pkg/layout"
	"github.com/matzehuels/topolayout/pkg/metrics"
	"github.com/matzehuels/topolayout/pkg/observability"
	"github.com/matzehuels/topolayout/pkg/pipeline"
)

const topologyBody = `{
  "nodes": [
    {"id": "ctrl", "type": "controller", "width": 100, "height": 50},
    {"id": "gw", "type": "gateway", "width": 100, "height": 50},
    {"id": "cam", "type": "sensor", "width": 60, "height": 40}
  ],
  "edges": [
    {"id": "e1", "source": "ctrl", "target": "gw"},
    {"id": "e2", "source": "gw", "target": "cam"}
  ]
}`

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Force.Seed = 1
	cfg.Force.Iterations = 30
	srv := httptest.NewServer(New(cfg, opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := srv.Client().Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestStrategies(t *testing.T) {
	srv := newTestServer(t)
	resp, err := srv.Client().Get(srv.URL + "/v1/strategies")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Default    string   `json:"default"`
		Strategies []string `json:"strategies"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "hierarchical", body.Default)
	assert.Equal(t, []string{"force", "hierarchical"}, body.Strategies)
}

func TestLayout(t *testing.T) {
	srv := newTestServer(t)

	for _, strategy := range []string{"hierarchical", "force"} {
		t.Run(strategy, func(t *testing.T) {
			resp, data := post(t, srv, "/v1/layouts/"+strategy, topologyBody)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

			var body LayoutResponse
			require.NoError(t, json.Unmarshal(data, &body))
			assert.Equal(t, strategy, body.Strategy)
			assert.NotEmpty(t, body.Canvas)
			assert.Len(t, body.Nodes, 3)
			assert.Len(t, body.Edges, 2)
			for _, p := range body.Edges {
				assert.True(t, p.Path.Valid(), "edge %s has invalid path", p.ID)
			}
		})
	}
}

func TestLayoutArtifacts(t *testing.T) {
	srv := newTestServer(t)
	body := strings.Replace(topologyBody, `"edges"`, `"formats": ["dot"], "edges"`, 1)

	resp, data := post(t, srv, "/v1/layouts/hierarchical", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out LayoutResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Contains(t, out.Artifacts["dot"], "digraph G {")
}

func TestLayoutErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"UnknownStrategy", "/v1/layouts/radial", topologyBody, http.StatusNotFound, "UNKNOWN_STRATEGY"},
		{"MalformedBody", "/v1/layouts/force", `{"nodes": [`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"InvalidNode", "/v1/layouts/force", `{"nodes": [{"id": "a", "width": -1, "height": 1}]}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"UnsupportedFormat", "/v1/layouts/force", `{"nodes": [], "formats": ["png"]}`, http.StatusBadRequest, "UNSUPPORTED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := post(t, srv, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode, string(data))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(data, &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxBodyBytes = 16
	srv := httptest.NewServer(New(cfg).Handler())
	defer srv.Close()

	resp, _ := post(t, srv, "/v1/layouts/force", topologyBody)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestRoute(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantPoints int
	}{
		{"DefaultDirect", `{"source": {"x": 0, "y": 0}, "target": {"x": 100, "y": 50}}`, http.StatusOK, 2},
		{"PartialOptions", `{"source": {"x": 0, "y": 0}, "target": {"x": 100, "y": 50}, "options": {"algorithm": "orthogonal"}}`, http.StatusOK, 3},
		{"InvalidOptions", `{"source": {"x": 0, "y": 0}, "target": {"x": 1, "y": 1}, "options": {"algorithm": "spline"}}`, http.StatusBadRequest, 0},
		{"Malformed", `{"source": `, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := post(t, srv, "/v1/routes", tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode, string(data))
			if tt.wantStatus != http.StatusOK {
				return
			}
			var body RouteResponse
			require.NoError(t, json.Unmarshal(data, &body))
			assert.Len(t, body.Path, tt.wantPoints)
		})
	}
}

func TestCanvasName(t *testing.T) {
	srv := newTestServer(t)
	long := strings.Repeat("x", 65)
	resp, data := post(t, srv, "/v1/canvases/"+long+"/layouts/force", topologyBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(data))
	assert.Contains(t, string(data), "INVALID_NAME")
}

// =============================================================================
// Supersede
// =============================================================================

// blockingStrategy holds Execute until Stop is called.
type blockingStrategy struct {
	started chan struct{}
	stop    chan struct{}
	once    sync.Once
}

func newBlockingStrategy() *blockingStrategy {
	return &blockingStrategy{started: make(chan struct{}, 1), stop: make(chan struct{})}
}

func (b *blockingStrategy) Execute(context.Context, []layout.Node, []layout.Edge) (layout.Result, error) {
	b.started <- struct{}{}
	<-b.stop
	return layout.Result{}, nil
}

func (b *blockingStrategy) Stop()           { b.once.Do(func() { close(b.stop) }) }
func (b *blockingStrategy) IsRunning() bool { return false }

func withRunnerFactory(fn func() *pipeline.Runner) Option {
	return func(s *Server) { s.newRunner = fn }
}

func TestCanvasSupersede(t *testing.T) {
	blocking := newBlockingStrategy()
	var srvRef *Server
	cfg := config.Default()

	factory := func() *pipeline.Runner {
		r := pipeline.NewRunner(cfg, nil)
		require.NoError(t, r.Service.Register("slow", blocking))
		return r
	}
	srvRef = New(cfg, withRunnerFactory(factory))
	srv := httptest.NewServer(srvRef.Handler())
	defer srv.Close()

	type answer struct {
		status int
		body   []byte
	}
	first := make(chan answer, 1)
	go func() {
		resp, err := srv.Client().Post(srv.URL+"/v1/canvases/dash/layouts/slow", "application/json", strings.NewReader(topologyBody))
		if err != nil {
			first <- answer{}
			return
		}
		defer resp.Body.Close()
		data, _ := io.ReadAll(resp.Body)
		first <- answer{resp.StatusCode, data}
	}()

	select {
	case <-blocking.started:
	case <-time.After(5 * time.Second):
		t.Fatal("slow layout never started")
	}
	assert.Equal(t, 1, srvRef.canvasCount())

	resp, data := post(t, srv, "/v1/canvases/dash/layouts/hierarchical", topologyBody)
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var got answer
	select {
	case got = <-first:
	case <-time.After(5 * time.Second):
		t.Fatal("superseded request never answered")
	}
	assert.Equal(t, http.StatusConflict, got.status, string(got.body))
	assert.Contains(t, string(got.body), `"code":"CANCELLED"`)

	assert.Eventually(t, func() bool { return srvRef.canvasCount() == 0 }, time.Second, 10*time.Millisecond,
		"canvas should be released once no request references it")
}

func TestCanvasStop(t *testing.T) {
	blocking := newBlockingStrategy()
	cfg := config.Default()
	s := New(cfg, withRunnerFactory(func() *pipeline.Runner {
		r := pipeline.NewRunner(cfg, nil)
		require.NoError(t, r.Service.Register("slow", blocking))
		return r
	}))
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/canvases/idle/run", nil)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	done := make(chan int, 1)
	go func() {
		resp, err := srv.Client().Post(srv.URL+"/v1/canvases/busy/layouts/slow", "application/json", bytes.NewBufferString(topologyBody))
		if err != nil {
			done <- 0
			return
		}
		resp.Body.Close()
		done <- resp.StatusCode
	}()
	<-blocking.started

	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/v1/canvases/busy/run", nil)
	resp, err = srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	select {
	case status := <-done:
		assert.Equal(t, http.StatusConflict, status)
	case <-time.After(5 * time.Second):
		t.Fatal("stopped request never answered")
	}
}

// =============================================================================
// Metrics
// =============================================================================

func TestMetricsEndpoint(t *testing.T) {
	reg := metrics.NewRegistry()
	observability.SetHTTPHooks(reg)
	observability.SetLayoutHooks(reg)
	t.Cleanup(observability.Reset)

	srv := newTestServer(t, WithMetrics(reg))
	resp, _ := post(t, srv, "/v1/layouts/hierarchical", topologyBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	mresp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer mresp.Body.Close()
	data, _ := io.ReadAll(mresp.Body)

	text := string(data)
	assert.Contains(t, text, `topolayout_http_requests_total{method="POST",route="/v1/layouts/{strategy}",status="200"} 1`)
	assert.Contains(t, text, `topolayout_layout_runs_total{status="ok",strategy="hierarchical"} 1`)
}
