// Package dcnp implements the incremental K-hop tree engine for the
// Distance-Based Critical Node Problem: for every unremoved vertex v it
// maintains the set of vertices reachable from v within K hops in the
// residual graph, and the aggregate objective ½·Σ treeSize(v).
package dcnp

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/critnode/critnode/rgraph"
	"github.com/critnode/critnode/rng"
)

var (
	ErrNodeAlreadyRemoved = errors.New("dcnp: node is already removed")
	ErrNodeNotRemoved     = errors.New("dcnp: node is not removed")
	ErrNodeOutOfRange     = errors.New("dcnp: node id out of range")
	ErrNonPositiveHop     = errors.New("dcnp: hop distance must be positive")
)

// Engine is the incrementally maintained DCNP residual-graph state (§3,
// §4.D). Single-threaded and synchronous, as cnp.Engine is (§5).
type Engine struct {
	n      int
	budget int
	k      int

	originalAdj []rgraph.AdjacencySet
	currentAdj  []rgraph.AdjacencySet
	removedMask []bool
	numRemoved  int
	age         []rgraph.Age

	intree   []rgraph.AdjacencySet
	treeSize []int

	rng *rng.RNG

	bfsQueue []int
	bfsLevel []int
}

// New builds a DCNP Engine from an edge list over n vertices, a removal
// budget, and a hop distance K.
func New(n, budget, k int, edges [][2]int, seed uint32) (*Engine, error) {
	if budget > n {
		return nil, rgraph.ErrBudgetExceedsVertexCount
	}
	if k <= 0 {
		return nil, ErrNonPositiveHop
	}
	adj := make([]rgraph.AdjacencySet, n)
	for i := range adj {
		adj[i] = rgraph.NewAdjacencySet()
	}
	for _, e := range edges {
		u, v := e[0], e[1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, rgraph.ErrVertexOutOfRange
		}
		if u == v {
			return nil, rgraph.ErrSelfLoop
		}
		adj[u].Add(v)
		adj[v].Add(u)
	}
	if err := rgraph.ValidateAdjacency(n, adj); err != nil {
		return nil, err
	}

	e := &Engine{
		n:           n,
		budget:      budget,
		k:           k,
		originalAdj: adj,
		currentAdj:  make([]rgraph.AdjacencySet, n),
		removedMask: make([]bool, n),
		age:         make([]rgraph.Age, n),
		intree:      make([]rgraph.AdjacencySet, n),
		treeSize:    make([]int, n),
		rng:         rng.New(seed),
		bfsLevel:    make([]int, n),
	}
	for i := range e.currentAdj {
		e.currentAdj[i] = adj[i].Clone()
		e.intree[i] = rgraph.NewAdjacencySet()
	}
	e.BuildTree()
	return e, nil
}

// NumNodes returns n.
func (e *Engine) NumNodes() int { return e.n }

// Budget returns the current removal budget.
func (e *Engine) Budget() int { return e.budget }

// HopDistance returns K.
func (e *Engine) HopDistance() int { return e.k }

// RNG exposes the engine's deterministic generator.
func (e *Engine) RNG() *rng.RNG { return e.rng }

// IsNodeRemoved reports whether v is currently in S.
func (e *Engine) IsNodeRemoved(v int) bool { return e.removedMask[v] }

// RemovedNodes returns S in ascending vertex-id order.
func (e *Engine) RemovedNodes() []int {
	out := make([]int, 0, e.numRemoved)
	for v := 0; v < e.n; v++ {
		if e.removedMask[v] {
			out = append(out, v)
		}
	}
	return out
}

// Age returns the move-timestamp of v.
func (e *Engine) Age(v int) rgraph.Age { return e.age[v] }

// SetNodeAge tags v with age.
func (e *Engine) SetNodeAge(v int, age rgraph.Age) { e.age[v] = age }

// TreeSize returns treeSize[v].
func (e *Engine) TreeSize(v int) int { return e.treeSize[v] }

// ObjectiveValue returns ⌊Σ_{v∉S} treeSize[v] / 2⌋ (§4.D.4).
func (e *Engine) ObjectiveValue() int64 {
	var sum int64
	for v := 0; v < e.n; v++ {
		if !e.removedMask[v] {
			sum += int64(e.treeSize[v])
		}
	}
	return sum / 2
}

// bfsKTree recomputes intree[v] and treeSize[v] from currentAdj (§4.D.1).
func (e *Engine) bfsKTree(v int) {
	e.intree[v].Clear()
	if e.removedMask[v] {
		e.treeSize[v] = 0
		return
	}

	for i := range e.bfsLevel {
		e.bfsLevel[i] = -1
	}
	e.bfsQueue = e.bfsQueue[:0]
	e.bfsQueue = append(e.bfsQueue, v)
	e.bfsLevel[v] = 0
	e.intree[v].Add(v)

	head := 0
	for head < len(e.bfsQueue) {
		u := e.bfsQueue[head]
		head++
		depth := e.bfsLevel[u]
		if depth >= e.k {
			continue
		}
		e.currentAdj[u].Range(func(w int) {
			if e.bfsLevel[w] == -1 {
				e.bfsLevel[w] = depth + 1
				e.intree[v].Add(w)
				e.bfsQueue = append(e.bfsQueue, w)
			}
		})
	}
	e.treeSize[v] = e.intree[v].Len() - 1
}

// BuildTree runs bfsKTree(v) for every vertex (§4.D.2).
func (e *Engine) BuildTree() {
	for v := 0; v < e.n; v++ {
		e.bfsKTree(v)
	}
}

// recomputeCurrentAdj rebuilds currentAdj from originalAdj and removedMask.
func (e *Engine) recomputeCurrentAdj() {
	for v := 0; v < e.n; v++ {
		e.currentAdj[v].Clear()
	}
	for v := 0; v < e.n; v++ {
		if e.removedMask[v] {
			continue
		}
		e.originalAdj[v].Range(func(u int) {
			if !e.removedMask[u] {
				e.currentAdj[v].Add(u)
			}
		})
	}
}

// UpdateByRemovedSet replaces removed with S and rebuilds every tree from
// scratch.
func (e *Engine) UpdateByRemovedSet(s []int) error {
	for v := range e.removedMask {
		e.removedMask[v] = false
	}
	e.numRemoved = 0
	for _, v := range s {
		if v < 0 || v >= e.n {
			return ErrNodeOutOfRange
		}
		if !e.removedMask[v] {
			e.removedMask[v] = true
			e.numRemoved++
		}
	}
	e.recomputeCurrentAdj()
	e.BuildTree()
	return nil
}

// ReducedGraphByRemovedSet permanently erases s from originalAdj and
// decrements budget by len(s) (SPEC_FULL §6).
func (e *Engine) ReducedGraphByRemovedSet(s []int) error {
	for _, v := range s {
		if v < 0 || v >= e.n {
			return ErrNodeOutOfRange
		}
	}
	for _, v := range s {
		neighbors := e.originalAdj[v].Slice()
		for _, u := range neighbors {
			e.originalAdj[u].Remove(v)
		}
		e.originalAdj[v].Clear()
	}
	e.budget -= len(s)
	if e.budget < 0 {
		e.budget = 0
	}
	return e.UpdateByRemovedSet(s)
}

// RemoveNode adds v to S and refreshes every tree that reached through v
// (§4.D.3).
func (e *Engine) RemoveNode(v int) error {
	if v < 0 || v >= e.n {
		return ErrNodeOutOfRange
	}
	if e.removedMask[v] {
		return ErrNodeAlreadyRemoved
	}
	affected := make([]int, 0)
	for u := 0; u < e.n; u++ {
		if u != v && !e.removedMask[u] && e.intree[u].Has(v) {
			affected = append(affected, u)
		}
	}

	e.removedMask[v] = true
	e.numRemoved++
	e.currentAdj[v].Range(func(u int) { e.currentAdj[u].Remove(v) })
	e.currentAdj[v].Clear()

	for _, u := range affected {
		e.bfsKTree(u)
	}
	e.intree[v].Clear()
	e.treeSize[v] = 0
	return nil
}

// AddNode removes v from S and refreshes v's tree plus every tree it now
// reaches into (§4.D.3).
func (e *Engine) AddNode(v int) error {
	if v < 0 || v >= e.n {
		return ErrNodeOutOfRange
	}
	if !e.removedMask[v] {
		return ErrNodeNotRemoved
	}
	e.removedMask[v] = false
	e.numRemoved--
	e.originalAdj[v].Range(func(u int) {
		if !e.removedMask[u] {
			e.currentAdj[v].Add(u)
			e.currentAdj[u].Add(v)
		}
	})

	e.bfsKTree(v)
	for _, u := range e.intree[v].Slice() {
		e.bfsKTree(u)
	}
	return nil
}

// BetweennessCentrality computes Brandes' algorithm over the current
// residual graph via gonum's graph/network package (§4.D.5, SPEC_FULL
// §4.C/D), returning a slice indexed by vertex id (0 for removed
// vertices).
func (e *Engine) BetweennessCentrality() []float64 {
	g := simple.NewUndirectedGraph()
	for v := 0; v < e.n; v++ {
		if !e.removedMask[v] {
			g.AddNode(simple.Node(v))
		}
	}
	for v := 0; v < e.n; v++ {
		if e.removedMask[v] {
			continue
		}
		e.currentAdj[v].Range(func(u int) {
			if u > v && !e.removedMask[u] {
				g.SetEdge(g.NewEdge(simple.Node(v), simple.Node(u)))
			}
		})
	}
	bc := network.Betweenness(g)
	out := make([]float64, e.n)
	for id, val := range bc {
		out[int(id)] = val
	}
	return out
}

// FindBestNodeToRemove speculatively removes each unremoved vertex,
// measures the objective drop, rolls back, and returns the vertex giving
// the largest drop with uniform tie-break (§4.D.6).
func (e *Engine) FindBestNodeToRemove() (int, error) {
	candidates := make([]int, 0, e.n-e.numRemoved)
	for v := 0; v < e.n; v++ {
		if !e.removedMask[v] {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return -1, nil
	}
	before := e.ObjectiveValue()

	bestDrop := int64(-1) << 62
	drops := make(map[int]int64, len(candidates))
	for _, v := range candidates {
		if err := e.RemoveNode(v); err != nil {
			return 0, fmt.Errorf("dcnp: find best node to remove: %w", err)
		}
		drop := before - e.ObjectiveValue()
		drops[v] = drop
		if err := e.AddNode(v); err != nil {
			return 0, fmt.Errorf("dcnp: find best node to remove: %w", err)
		}
		if drop > bestDrop {
			bestDrop = drop
		}
	}
	var ties []int
	for _, v := range candidates {
		if drops[v] == bestDrop {
			ties = append(ties, v)
		}
	}
	i, err := e.rng.Index(len(ties))
	if err != nil {
		return 0, err
	}
	return ties[i], nil
}

// FindBestNodeToAdd speculatively adds each removed vertex, measures the
// objective increase, rolls back, and returns the vertex giving the
// smallest increase with uniform tie-break (§4.D.6).
func (e *Engine) FindBestNodeToAdd() (int, error) {
	candidates := e.RemovedNodes()
	if len(candidates) == 0 {
		return -1, nil
	}
	before := e.ObjectiveValue()

	bestIncrease := int64(1) << 62
	increases := make(map[int]int64, len(candidates))
	for _, v := range candidates {
		if err := e.AddNode(v); err != nil {
			return 0, fmt.Errorf("dcnp: find best node to add: %w", err)
		}
		increase := e.ObjectiveValue() - before
		increases[v] = increase
		if err := e.RemoveNode(v); err != nil {
			return 0, fmt.Errorf("dcnp: find best node to add: %w", err)
		}
		if increase < bestIncrease {
			bestIncrease = increase
		}
	}
	var ties []int
	for _, v := range candidates {
		if increases[v] == bestIncrease {
			ties = append(ties, v)
		}
	}
	i, err := e.rng.Index(len(ties))
	if err != nil {
		return 0, err
	}
	return ties[i], nil
}

// RandomSelectNodeToRemove resamples a uniformly random non-removed vertex
// (SPEC_FULL §6, restored from the original).
func (e *Engine) RandomSelectNodeToRemove() (int, error) {
	candidates := make([]int, 0, e.n-e.numRemoved)
	for v := 0; v < e.n; v++ {
		if !e.removedMask[v] {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return 0, ErrNodeNotRemoved
	}
	i, err := e.rng.Index(len(candidates))
	if err != nil {
		return 0, err
	}
	return candidates[i], nil
}

// Clone returns a deep copy of the residual state, including an
// independent RNG stream.
func (e *Engine) Clone() *Engine {
	out := &Engine{
		n:           e.n,
		budget:      e.budget,
		k:           e.k,
		originalAdj: make([]rgraph.AdjacencySet, e.n),
		currentAdj:  make([]rgraph.AdjacencySet, e.n),
		removedMask: append([]bool(nil), e.removedMask...),
		numRemoved:  e.numRemoved,
		age:         append([]rgraph.Age(nil), e.age...),
		intree:      make([]rgraph.AdjacencySet, e.n),
		treeSize:    append([]int(nil), e.treeSize...),
		rng:         e.rng.Clone(),
		bfsLevel:    make([]int, e.n),
	}
	for v := 0; v < e.n; v++ {
		out.originalAdj[v] = e.originalAdj[v].Clone()
		out.currentAdj[v] = e.currentAdj[v].Clone()
		out.intree[v] = e.intree[v].Clone()
	}
	return out
}

// RandomFeasibleGraph returns a fresh clone with a uniformly random
// budget-sized removed set applied.
func (e *Engine) RandomFeasibleGraph() (*Engine, error) {
	out := e.Clone()
	sample, err := out.rng.SamplePairwiseDistinct(e.n, e.budget)
	if err != nil {
		return nil, fmt.Errorf("dcnp: random feasible graph: %w", err)
	}
	if err := out.UpdateByRemovedSet(sample); err != nil {
		return nil, err
	}
	return out, nil
}
