package layout

import (
	"context"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/topolayout/pkg/errors"
	"github.com/matzehuels/topolayout/pkg/observability"
)

// Service is a registry of named strategies that runs at most one layout at
// a time. It is safe for concurrent use.
type Service struct {
	mu         sync.Mutex
	strategies map[string]Strategy
	current    *run
	logger     *log.Logger
}

// run is the bookkeeping for one in-flight Apply call.
type run struct {
	id         string
	name       string
	strategy   Strategy
	cancel     context.CancelFunc
	superseded bool
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger. The default discards output.
func WithLogger(l *log.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates an empty Service.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		strategies: make(map[string]Strategy),
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a strategy under name. Names must pass
// [errors.ValidateStrategyName] and may be registered once.
func (s *Service) Register(name string, st Strategy) error {
	if err := errors.ValidateStrategyName(name); err != nil {
		return err
	}
	if st == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "strategy %q is nil", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.strategies[name]; exists {
		return errors.New(errors.ErrCodeInvalidConfig, "strategy %q already registered", name)
	}
	s.strategies[name] = st
	return nil
}

// Strategies returns the registered names in sorted order.
func (s *Service) Strategies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.strategies))
	for name := range s.strategies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Strategy returns the strategy registered under name.
func (s *Service) Strategy(name string) (Strategy, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.strategies[name]
	return st, ok
}

// Apply runs the named strategy. An unregistered name fails with
// UNKNOWN_STRATEGY and invalid nodes with INVALID_INPUT; neither disturbs a
// run in flight. Otherwise any run in flight is stopped first and returns
// CANCELLED, even if its strategy had already finished computing.
func (s *Service) Apply(ctx context.Context, name string, nodes []Node, edges []Edge) (Result, error) {
	st, ok := s.Strategy(name)
	if !ok {
		return Result{}, errors.New(errors.ErrCodeUnknownStrategy, "unknown layout strategy %q", name)
	}
	if err := ValidateNodes(nodes); err != nil {
		return Result{}, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	r := &run{id: uuid.NewString(), name: name, strategy: st, cancel: cancel}
	defer cancel()

	s.mu.Lock()
	if prev := s.current; prev != nil {
		s.supersede(ctx, prev, r)
	}
	s.current = r
	s.mu.Unlock()

	logger := s.logger.With("run", r.id, "strategy", name)
	logger.Debug("layout started", "nodes", len(nodes), "edges", len(edges))
	observability.Layout().OnLayoutStart(ctx, name, len(nodes), len(edges))

	start := time.Now()
	res, err := st.Execute(runCtx, nodes, edges)

	s.mu.Lock()
	superseded := r.superseded
	if s.current == r {
		s.current = nil
	}
	s.mu.Unlock()

	if superseded && !errors.Is(err, errors.ErrCodeCancelled) {
		cause := err
		if cause == nil {
			cause = context.Canceled
		}
		err = errors.Wrap(errors.ErrCodeCancelled, cause, "layout %s superseded", r.id)
	}

	elapsed := time.Since(start)
	observability.Layout().OnLayoutComplete(ctx, name, elapsed, err)
	if err != nil {
		logger.Debug("layout ended", "duration", elapsed, "err", err)
		return Result{}, err
	}
	logger.Debug("layout finished", "duration", elapsed, "positions", len(res.NodePositions), "paths", len(res.EdgePaths))
	return res, nil
}

// supersede stops prev in favour of next. Callers hold s.mu.
func (s *Service) supersede(ctx context.Context, prev, next *run) {
	prev.superseded = true
	prev.strategy.Stop()
	prev.cancel()
	s.logger.Info("layout superseded", "run", prev.id, "strategy", prev.name, "by", next.id)
	observability.Layout().OnLayoutSuperseded(ctx, prev.name)
}

// StopCurrent stops the run in flight, if any.
func (s *Service) StopCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r := s.current; r != nil {
		r.superseded = true
		r.strategy.Stop()
		r.cancel()
		s.current = nil
		s.logger.Info("layout stopped", "run", r.id, "strategy", r.name)
	}
}

// IsRunning reports whether a run is in flight.
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}
