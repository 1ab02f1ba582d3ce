// Package search implements the local-search strategies of §4.F (CBNS,
// CHNS, DLAS, BCLS) plus the Search dispatcher of §4.I that instantiates
// one by name against a parameter bag.
package search

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/critnode/critnode/graph"
)

// ErrEmptyGraph is the one truly-impossible precondition for a strategy
// run: an instance with zero vertices (§4.F "Failure semantics").
var ErrEmptyGraph = errors.New("search: graph has no vertices")

// ErrUnknownStrategy is returned by SetStrategy for an unrecognized name
// (§6 "unknown search strategy").
var ErrUnknownStrategy = errors.New("search: unknown search strategy")

// ErrStrategyNotSet is returned by Run before SetStrategy has been called.
var ErrStrategyNotSet = errors.New("search: no strategy set")

// Result is a strategy's best (solutionSet, objValue) pair (§4.F).
type Result struct {
	Solution []int
	ObjValue int64
}

// Strategy is the common interface every local-search algorithm
// implements; it mutates g in place and returns the best state observed.
type Strategy interface {
	Run(g *graph.Graph) (Result, error)
}

// snapshotSolution copies the current removed set so it can be restored
// or reported without aliasing the engine's internal storage.
func snapshotSolution(g *graph.Graph) []int {
	removed := g.GetRemovedNodes()
	out := make([]int, len(removed))
	copy(out, removed)
	return out
}

// factory maps strategy names to constructors taking a ParamBag, mirroring
// the original's strategyFactory_ map (§4.I).
var factory = map[string]func(ParamBag) Strategy{
	"CBNS": func(p ParamBag) Strategy { return NewCBNS(p) },
	"CHNS": func(p ParamBag) Strategy { return NewCHNS(p) },
	"DLAS": func(p ParamBag) Strategy { return NewDLAS(p) },
	"BCLS": func(p ParamBag) Strategy { return NewBCLS(p) },
}

// Search holds the current graph, the selected strategy, and ambient
// logging/metrics (§4.I, SPEC_FULL §3/§4.F).
type Search struct {
	g        *graph.Graph
	strategy Strategy
	runID    string
	logger   *logrus.Logger
	metrics  *Metrics
}

// Option configures a Search at construction.
type Option func(*Search)

// WithLogger overrides the default logrus.StandardLogger().
func WithLogger(l *logrus.Logger) Option {
	return func(s *Search) { s.logger = l }
}

// WithMetrics enables prometheus counters for this Search's moves and
// idle steps (SPEC_FULL §4.F). Callers running many independent Searches
// (e.g. in tests, or a multi-start ensemble per §5) should pass distinct
// registries to avoid duplicate-registration panics.
func WithMetrics(m *Metrics) Option {
	return func(s *Search) { s.metrics = m }
}

// New constructs a Search bound to g, tagging all subsequent log lines
// with the caller-supplied correlation id runID (SPEC_FULL §3 "RunID").
func New(g *graph.Graph, runID string, opts ...Option) *Search {
	s := &Search{g: g, runID: runID, logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// metricsAware is implemented by strategies that can publish move/idle-step
// counters; SetStrategy wires s.metrics through when both are present.
type metricsAware interface {
	SetMetrics(*Metrics)
}

// SetStrategy instantiates the named strategy with params, or fails with
// ErrUnknownStrategy (§4.I, §6).
func (s *Search) SetStrategy(name string, params ParamBag) error {
	ctor, ok := factory[name]
	if !ok {
		return ErrUnknownStrategy
	}
	params = params.withDefaults(name)
	s.strategy = ctor(params)
	if s.metrics != nil {
		if ma, ok := s.strategy.(metricsAware); ok {
			ma.SetMetrics(s.metrics)
		}
	}
	return nil
}

// Run executes the configured strategy and returns its SearchResult
// (§4.I, §6).
func (s *Search) Run() (Result, error) {
	if s.strategy == nil {
		return Result{}, ErrStrategyNotSet
	}
	s.logger.WithField("run_id", s.runID).Debug("search: run starting")
	res, err := s.strategy.Run(s.g)
	if err != nil {
		s.logger.WithFields(logrus.Fields{"run_id": s.runID, "error": err}).Warn("search: run failed")
		return res, err
	}
	if s.metrics != nil {
		s.metrics.Moves.Add(0) // strategies account their own moves; this keeps the series registered even for zero-move runs
	}
	s.logger.WithFields(logrus.Fields{"run_id": s.runID, "objective": res.ObjValue}).Debug("search: run finished")
	return res, nil
}
