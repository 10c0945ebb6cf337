package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/topolayout/pkg/buildinfo"
	"github.com/matzehuels/topolayout/pkg/errors"
	"github.com/matzehuels/topolayout/pkg/geom"
	"github.com/matzehuels/topolayout/pkg/graph"
	"github.com/matzehuels/topolayout/pkg/layout"
	"github.com/matzehuels/topolayout/pkg/pipeline"
	"github.com/matzehuels/topolayout/pkg/route"
)

// =============================================================================
// Request & response bodies
// =============================================================================

// LayoutRequest is the body of the layout endpoints.
type LayoutRequest struct {
	Nodes []layout.Node `json:"nodes"`
	Edges []layout.Edge `json:"edges"`

	// Formats lists extra artifacts (dot, svg) to return alongside the result.
	Formats []string `json:"formats,omitempty"`
}

// LayoutResponse carries the computed layout.
type LayoutResponse struct {
	Canvas    string                `json:"canvas"`
	Strategy  string                `json:"strategy"`
	Nodes     []layout.NodePosition `json:"nodes"`
	Edges     []layout.EdgePath     `json:"edges"`
	Artifacts map[string]string     `json:"artifacts,omitempty"`
	Duration  float64               `json:"duration_ms"`
}

// RouteRequest asks for a single edge path.
type RouteRequest struct {
	Source    geom.Position    `json:"source"`
	Target    geom.Position    `json:"target"`
	Obstacles []geom.Rectangle `json:"obstacles,omitempty"`
	Options   *route.Options   `json:"options,omitempty"`
}

// RouteResponse carries the computed path.
type RouteResponse struct {
	Path geom.Path `json:"path"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  buildinfo.Get().Version,
		"canvases": s.canvasCount(),
	})
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	runner := s.newRunner()
	s.respondJSON(w, http.StatusOK, map[string]any{
		"default":    s.cfg.Strategy,
		"strategies": runner.Strategies(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.runLayout(w, r, uuid.NewString())
}

func (s *Server) handleCanvasLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "canvas")
	if err := errors.ValidateCanvasName(id); err != nil {
		s.respondError(w, err)
		return
	}
	s.runLayout(w, r, id)
}

func (s *Server) handleCanvasStop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "canvas")
	if !s.stop(id) {
		s.respondJSON(w, http.StatusNotFound, ErrorResponse{
			Error:   http.StatusText(http.StatusNotFound),
			Code:    string(errors.ErrCodeInvalidInput),
			Message: "no layout running on canvas " + id,
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) runLayout(w http.ResponseWriter, r *http.Request, canvasID string) {
	strategy := chi.URLParam(r, "strategy")
	if err := errors.ValidateStrategyName(strategy); err != nil {
		s.respondError(w, err)
		return
	}

	var req LayoutRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	runner := s.acquire(canvasID)
	defer s.release(canvasID)

	res, err := runner.Execute(r.Context(), pipeline.Options{
		Topology: graph.Topology{Nodes: req.Nodes, Edges: req.Edges},
		Strategy: strategy,
		Formats:  append([]string{pipeline.FormatJSON}, req.Formats...),
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	resp := LayoutResponse{
		Canvas:   canvasID,
		Strategy: res.Strategy,
		Nodes:    res.Layout.NodePositions,
		Edges:    res.Layout.EdgePaths,
		Duration: float64(res.Stats.LayoutTime) / float64(time.Millisecond),
	}
	for _, f := range req.Formats {
		if f == pipeline.FormatJSON {
			continue
		}
		if resp.Artifacts == nil {
			resp.Artifacts = make(map[string]string)
		}
		resp.Artifacts[f] = string(res.Artifacts[f])
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	// Options decode on top of the defaults so clients can send a subset.
	opts := route.DefaultOptions()
	req := RouteRequest{Options: &opts}
	if err := decode(r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	if req.Options == nil {
		req.Options = &opts
	}
	if err := req.Options.Validate(); err != nil {
		s.respondError(w, err)
		return
	}

	path := s.calc.CalculatePath(req.Source, req.Target, req.Obstacles, *req.Options)
	s.respondJSON(w, http.StatusOK, RouteResponse{Path: path})
}
