// Package graph provides Graph, a discriminated handle hiding whether the
// underlying residual engine is a cnp.Engine or a dcnp.Engine (§4.E).
// Search strategies and recombination operators are written against this
// facade so the same code drives either problem variant.
package graph

import (
	"errors"
	"fmt"

	"github.com/critnode/critnode/cnp"
	"github.com/critnode/critnode/dcnp"
	"github.com/critnode/critnode/rgraph"
	"github.com/critnode/critnode/rng"
)

// Kind discriminates which concrete engine a Graph wraps.
type Kind int

const (
	CNP Kind = iota
	DCNP
)

func (k Kind) String() string {
	if k == CNP {
		return "CNP"
	}
	return "DCNP"
}

// ErrWrongVariant is returned when a CNP-only or DCNP-only primitive is
// invoked on a Graph of the other kind (§4.I, §6 "Errors signalled").
var ErrWrongVariant = errors.New("graph: operation not supported for this graph variant")

// Graph is a handle over exactly one of a cnp.Engine or a dcnp.Engine.
type Graph struct {
	kind Kind
	cnp  *cnp.Engine
	dcnp *dcnp.Engine
}

// NewCNP wraps a CNP engine.
func NewCNP(e *cnp.Engine) *Graph { return &Graph{kind: CNP, cnp: e} }

// NewDCNP wraps a DCNP engine.
func NewDCNP(e *dcnp.Engine) *Graph { return &Graph{kind: DCNP, dcnp: e} }

// Kind reports which variant this Graph wraps.
func (g *Graph) Kind() Kind { return g.kind }

// IsCNP reports whether this Graph wraps a CNP engine.
func (g *Graph) IsCNP() bool { return g.kind == CNP }

// IsDCNP reports whether this Graph wraps a DCNP engine.
func (g *Graph) IsDCNP() bool { return g.kind == DCNP }

// AsCNP returns the underlying CNP engine, or nil if this Graph wraps a
// DCNP engine.
func (g *Graph) AsCNP() *cnp.Engine { return g.cnp }

// AsDCNP returns the underlying DCNP engine, or nil if this Graph wraps a
// CNP engine.
func (g *Graph) AsDCNP() *dcnp.Engine { return g.dcnp }

// RNG returns the wrapped engine's random source, so strategies written
// against the facade can draw randomness without caring which variant
// they hold (§4.I).
func (g *Graph) RNG() *rng.RNG {
	if g.IsCNP() {
		return g.cnp.RNG()
	}
	return g.dcnp.RNG()
}

// Clone deep-copies the wrapped engine.
func (g *Graph) Clone() *Graph {
	if g.IsCNP() {
		return NewCNP(g.cnp.Clone())
	}
	return NewDCNP(g.dcnp.Clone())
}

// UpdateByRemovedSet replaces removed with s and recomputes derived state.
func (g *Graph) UpdateByRemovedSet(s []int) error {
	if g.IsCNP() {
		return g.cnp.UpdateByRemovedSet(s)
	}
	return g.dcnp.UpdateByRemovedSet(s)
}

// ReducedGraphByRemovedSet permanently shrinks the instance by s.
func (g *Graph) ReducedGraphByRemovedSet(s []int) error {
	if g.IsCNP() {
		return g.cnp.ReducedGraphByRemovedSet(s)
	}
	return g.dcnp.ReducedGraphByRemovedSet(s)
}

// RemoveNode moves v into S.
func (g *Graph) RemoveNode(v int) error {
	if g.IsCNP() {
		return g.cnp.RemoveNode(v)
	}
	return g.dcnp.RemoveNode(v)
}

// AddNode moves v out of S.
func (g *Graph) AddNode(v int) error {
	if g.IsCNP() {
		return g.cnp.AddNode(v)
	}
	return g.dcnp.AddNode(v)
}

// SetNodeAge tags v with age.
func (g *Graph) SetNodeAge(v int, age rgraph.Age) {
	if g.IsCNP() {
		g.cnp.SetNodeAge(v, age)
		return
	}
	g.dcnp.SetNodeAge(v, age)
}

// Age returns v's move-timestamp.
func (g *Graph) Age(v int) rgraph.Age {
	if g.IsCNP() {
		return g.cnp.Age(v)
	}
	return g.dcnp.Age(v)
}

// GetObjectiveValue returns the current objective.
func (g *Graph) GetObjectiveValue() int64 {
	if g.IsCNP() {
		return g.cnp.ObjectiveValue()
	}
	return g.dcnp.ObjectiveValue()
}

// IsNodeRemoved reports whether v is in S.
func (g *Graph) IsNodeRemoved(v int) bool {
	if g.IsCNP() {
		return g.cnp.IsNodeRemoved(v)
	}
	return g.dcnp.IsNodeRemoved(v)
}

// GetRemovedNodes returns S in ascending order.
func (g *Graph) GetRemovedNodes() []int {
	if g.IsCNP() {
		return g.cnp.RemovedNodes()
	}
	return g.dcnp.RemovedNodes()
}

// GetNumNodes returns n.
func (g *Graph) GetNumNodes() int {
	if g.IsCNP() {
		return g.cnp.NumNodes()
	}
	return g.dcnp.NumNodes()
}

// Budget returns the current removal budget.
func (g *Graph) Budget() int {
	if g.IsCNP() {
		return g.cnp.Budget()
	}
	return g.dcnp.Budget()
}

// GetRandomFeasibleGraph returns a fresh clone with a random budget-sized
// removed set applied.
func (g *Graph) GetRandomFeasibleGraph() (*Graph, error) {
	if g.IsCNP() {
		e, err := g.cnp.RandomFeasibleGraph()
		if err != nil {
			return nil, err
		}
		return NewCNP(e), nil
	}
	e, err := g.dcnp.RandomFeasibleGraph()
	if err != nil {
		return nil, err
	}
	return NewDCNP(e), nil
}

// SelectComponent is CNP-only (§4.C.5).
func (g *Graph) SelectComponent() (int, error) {
	if !g.IsCNP() {
		return 0, fmt.Errorf("graph: SelectComponent: %w", ErrWrongVariant)
	}
	return g.cnp.SelectComponent()
}

// RandomSelectNodeFromComponent is CNP-only (§4.C.5).
func (g *Graph) RandomSelectNodeFromComponent(c int) (int, error) {
	if !g.IsCNP() {
		return 0, fmt.Errorf("graph: RandomSelectNodeFromComponent: %w", ErrWrongVariant)
	}
	return g.cnp.RandomSelectNodeFromComponent(c)
}

// AgeSelectNodeFromComponent is CNP-only (§4.C.5).
func (g *Graph) AgeSelectNodeFromComponent(c int) (int, error) {
	if !g.IsCNP() {
		return 0, fmt.Errorf("graph: AgeSelectNodeFromComponent: %w", ErrWrongVariant)
	}
	return g.cnp.AgeSelectNodeFromComponent(c)
}

// ImpactSelectNodeFromComponent is CNP-only (§4.C.4, §4.C.5).
func (g *Graph) ImpactSelectNodeFromComponent(c int) (int, error) {
	if !g.IsCNP() {
		return 0, fmt.Errorf("graph: ImpactSelectNodeFromComponent: %w", ErrWrongVariant)
	}
	return g.cnp.ImpactSelectNodeFromComponent(c)
}

// CalculateConnectionGain is CNP-only (§4.C.5).
func (g *Graph) CalculateConnectionGain(v int) (int64, error) {
	if !g.IsCNP() {
		return 0, fmt.Errorf("graph: CalculateConnectionGain: %w", ErrWrongVariant)
	}
	return g.cnp.CalculateConnectionGain(v), nil
}

// GreedySelectNodeToAdd transparently dispatches to FindBestNodeToAdd for
// DCNP graphs (§4.I's one explicitly-noted exception to the
// variant-mismatch error rule).
func (g *Graph) GreedySelectNodeToAdd() (int, error) {
	if g.IsCNP() {
		return g.cnp.GreedySelectNodeToAdd()
	}
	return g.dcnp.FindBestNodeToAdd()
}

// RandomSelectNodeToRemove is defined for both variants (SPEC_FULL §6) and
// dispatches transparently rather than erroring.
func (g *Graph) RandomSelectNodeToRemove() (int, error) {
	if g.IsCNP() {
		return g.cnp.RandomSelectNodeToRemove()
	}
	return g.dcnp.RandomSelectNodeToRemove()
}

// BuildTree is DCNP-only (§4.D.2).
func (g *Graph) BuildTree() error {
	if !g.IsDCNP() {
		return fmt.Errorf("graph: BuildTree: %w", ErrWrongVariant)
	}
	g.dcnp.BuildTree()
	return nil
}

// CalculateKhopTreeSize is DCNP-only; an alias over GetObjectiveValue
// named to mirror the original's accessor (§4.D.4).
func (g *Graph) CalculateKhopTreeSize() (int64, error) {
	if !g.IsDCNP() {
		return 0, fmt.Errorf("graph: CalculateKhopTreeSize: %w", ErrWrongVariant)
	}
	return g.dcnp.ObjectiveValue(), nil
}

// CalculateBetweennessCentrality is DCNP-only (§4.D.5).
func (g *Graph) CalculateBetweennessCentrality() ([]float64, error) {
	if !g.IsDCNP() {
		return nil, fmt.Errorf("graph: CalculateBetweennessCentrality: %w", ErrWrongVariant)
	}
	return g.dcnp.BetweennessCentrality(), nil
}

// FindBestNodeToRemove is DCNP-only (§4.D.6).
func (g *Graph) FindBestNodeToRemove() (int, error) {
	if !g.IsDCNP() {
		return 0, fmt.Errorf("graph: FindBestNodeToRemove: %w", ErrWrongVariant)
	}
	return g.dcnp.FindBestNodeToRemove()
}

// FindBestNodeToAdd is DCNP-only (§4.D.6).
func (g *Graph) FindBestNodeToAdd() (int, error) {
	if !g.IsDCNP() {
		return 0, fmt.Errorf("graph: FindBestNodeToAdd: %w", ErrWrongVariant)
	}
	return g.dcnp.FindBestNodeToAdd()
}
