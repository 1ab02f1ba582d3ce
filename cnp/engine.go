// Package cnp implements the incremental connected-components engine for
// the Critical Node Problem: given a residual graph G[V\S], it maintains
// per-component membership, a component index per vertex, and the running
// objective Σ|C|·(|C|-1)/2, supporting fast single-vertex add/remove as
// well as bulk recomputation.
package cnp

import (
	"errors"
	"fmt"
	"sort"

	"github.com/critnode/critnode/rgraph"
	"github.com/critnode/critnode/rng"
)

// Sentinel errors, surfaced synchronously per precondition violations
// rather than caught or retried internally.
var (
	ErrNoComponents        = errors.New("cnp: no components available")
	ErrComponentEmpty      = errors.New("cnp: component is empty")
	ErrComponentOutOfRange = errors.New("cnp: component index out of range")
	ErrNodeAlreadyRemoved  = errors.New("cnp: node is already removed")
	ErrNodeNotRemoved      = errors.New("cnp: node is not removed")
	ErrNodeOutOfRange      = errors.New("cnp: node id out of range")
)

// Engine is the incrementally maintained CNP residual-graph state (§3).
// It is single-threaded and synchronous (§5); callers needing concurrent
// exploration must Clone one Engine per worker.
type Engine struct {
	n      int
	budget int

	originalAdj []rgraph.AdjacencySet
	currentAdj  []rgraph.AdjacencySet
	removedMask []bool
	numRemoved  int
	age         []rgraph.Age

	components      []rgraph.Component
	nodeToComponent []int
	connectedPairs  int64

	rng *rng.RNG

	// scratch, reused across calls (§5 "Resource discipline")
	visitEpoch []int
	epoch      int
	dfsStack   []int
}

// New builds an Engine from an edge list over n vertices and a removal
// budget. Edges are undirected pairs (u,v); self-loops are rejected. The
// engine starts with every vertex present (removed == ∅).
func New(n, budget int, edges [][2]int, seed uint32) (*Engine, error) {
	if budget > n {
		return nil, rgraph.ErrBudgetExceedsVertexCount
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
		originalAdj: adj,
		currentAdj:  make([]rgraph.AdjacencySet, n),
		removedMask: make([]bool, n),
		age:         make([]rgraph.Age, n),
		rng:         rng.New(seed),
		visitEpoch:  make([]int, n),
	}
	for i := range e.visitEpoch {
		e.visitEpoch[i] = -1
	}
	for i := range e.currentAdj {
		e.currentAdj[i] = adj[i].Clone()
	}
	e.recomputeFromScratch()
	return e, nil
}

func pairs(size int) int64 {
	s := int64(size)
	return s * (s - 1) / 2
}

// NumNodes returns n, the immutable vertex count.
func (e *Engine) NumNodes() int { return e.n }

// Budget returns the required |S| at solution boundary.
func (e *Engine) Budget() int { return e.budget }

// RNG exposes the engine's deterministic generator to callers that drive
// higher-level search loops directly against this engine.
func (e *Engine) RNG() *rng.RNG { return e.rng }

// IsNodeRemoved reports whether v is currently in S.
func (e *Engine) IsNodeRemoved(v int) bool {
	return e.removedMask[v]
}

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

// ObjectiveValue returns the current connectedPairs accumulator.
func (e *Engine) ObjectiveValue() int64 { return e.connectedPairs }

// Age returns the move-timestamp of v.
func (e *Engine) Age(v int) rgraph.Age { return e.age[v] }

// SetNodeAge tags v with age, as the search strategies do after every move.
func (e *Engine) SetNodeAge(v int, age rgraph.Age) { e.age[v] = age }

// NumComponents returns the number of components in the current partition.
func (e *Engine) NumComponents() int { return len(e.components) }

// Component returns a copy of components[c].
func (e *Engine) Component(c int) (rgraph.Component, error) {
	if c < 0 || c >= len(e.components) {
		return rgraph.Component{}, ErrComponentOutOfRange
	}
	comp := e.components[c]
	nodes := make([]int, len(comp.Nodes))
	copy(nodes, comp.Nodes)
	return rgraph.Component{Nodes: nodes, Size: comp.Size}, nil
}

func (e *Engine) nextEpoch() int {
	e.epoch++
	if e.epoch == 0 {
		for i := range e.visitEpoch {
			e.visitEpoch[i] = -1
		}
		e.epoch = 1
	}
	return e.epoch
}

// dfsComponent runs an iterative DFS from start over currentAdj and
// returns every vertex reached, including start, in ascending vertex-id
// order. Iterative rather than recursive so components spanning
// arbitrarily long paths never overflow the call stack (§9 Design Notes).
// The result is sorted because rgraph.AdjacencySet.Range iterates a map in
// unspecified order (rgraph/types.go): leaving Nodes in that order would
// make every RNG-indexed draw over a component (RandomSelectNodeFromComponent,
// AgeSelectNodeFromComponent, ImpactSelectNodeFromComponent) depend on Go's
// randomized map iteration instead of only on (seed, moves), breaking
// RNG-DET.
func (e *Engine) dfsComponent(start int) []int {
	epoch := e.nextEpoch()
	e.dfsStack = e.dfsStack[:0]
	e.dfsStack = append(e.dfsStack, start)
	e.visitEpoch[start] = epoch

	out := make([]int, 0, 8)
	for len(e.dfsStack) > 0 {
		u := e.dfsStack[len(e.dfsStack)-1]
		e.dfsStack = e.dfsStack[:len(e.dfsStack)-1]
		out = append(out, u)
		e.currentAdj[u].Range(func(w int) {
			if e.visitEpoch[w] != epoch {
				e.visitEpoch[w] = epoch
				e.dfsStack = append(e.dfsStack, w)
			}
		})
	}
	sort.Ints(out)
	return out
}

// recomputeFromScratch rebuilds currentAdj, components, nodeToComponent
// and connectedPairs from originalAdj and removedMask (§4.C.1).
func (e *Engine) recomputeFromScratch() {
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

	e.components = e.components[:0]
	e.nodeToComponent = make([]int, e.n)
	for v := range e.nodeToComponent {
		e.nodeToComponent[v] = -1
	}
	e.connectedPairs = 0

	for v := 0; v < e.n; v++ {
		if e.removedMask[v] || e.nodeToComponent[v] != -1 {
			continue
		}
		nodes := e.dfsComponent(v)
		idx := len(e.components)
		for _, w := range nodes {
			e.nodeToComponent[w] = idx
		}
		e.components = append(e.components, rgraph.Component{Nodes: nodes, Size: len(nodes)})
		e.connectedPairs += pairs(len(nodes))
	}
}

// UpdateByRemovedSet replaces removed with S and recomputes all derived
// state from scratch (§4.C.1).
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
	e.recomputeFromScratch()
	return nil
}

// ReducedGraphByRemovedSet permanently erases the given vertices from
// originalAdj (not just currentAdj) and decrements the remaining budget by
// len(s); it is the basis for RSC's reduced subproblem (SPEC_FULL §6,
// grounded on CNP_Graph::getReducedGraphByRemovedNodes).
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

func (e *Engine) removeComponentAt(c int) {
	e.components = append(e.components[:c], e.components[c+1:]...)
	for v := range e.nodeToComponent {
		if e.nodeToComponent[v] > c {
			e.nodeToComponent[v]--
		}
	}
}

// RemoveNode moves v into S, splitting its component if necessary
// (§4.C.2).
func (e *Engine) RemoveNode(v int) error {
	if v < 0 || v >= e.n {
		return ErrNodeOutOfRange
	}
	if e.removedMask[v] {
		return ErrNodeAlreadyRemoved
	}
	c := e.nodeToComponent[v]
	oldSize := e.components[c].Size
	origNodes := append([]int(nil), e.components[c].Nodes...)

	e.removedMask[v] = true
	e.numRemoved++
	e.nodeToComponent[v] = -1
	e.currentAdj[v].Range(func(u int) { e.currentAdj[u].Remove(v) })
	e.currentAdj[v].Clear()

	if oldSize == 1 {
		e.removeComponentAt(c)
		return nil
	}

	var pivot int
	for _, w := range origNodes {
		if w != v {
			pivot = w
			break
		}
	}
	cPrime := e.dfsComponent(pivot)
	inCPrime := make(map[int]struct{}, len(cPrime))
	for _, w := range cPrime {
		inCPrime[w] = struct{}{}
		e.nodeToComponent[w] = c
	}
	e.components[c] = rgraph.Component{Nodes: cPrime, Size: len(cPrime)}

	newTotal := pairs(len(cPrime))
	for _, w := range origNodes {
		if w == v {
			continue
		}
		if _, ok := inCPrime[w]; ok {
			continue
		}
		if e.nodeToComponent[w] != c {
			continue // already claimed by an earlier split piece this call
		}
		piece := e.dfsComponent(w)
		idx := len(e.components)
		for _, x := range piece {
			e.nodeToComponent[x] = idx
		}
		e.components = append(e.components, rgraph.Component{Nodes: piece, Size: len(piece)})
		newTotal += pairs(len(piece))
	}

	e.connectedPairs += newTotal - pairs(oldSize)
	return nil
}

// AddNode moves v out of S, merging components touched by its restored
// edges if necessary (§4.C.3).
func (e *Engine) AddNode(v int) error {
	if v < 0 || v >= e.n {
		return ErrNodeOutOfRange
	}
	if !e.removedMask[v] {
		return ErrNodeNotRemoved
	}
	e.removedMask[v] = false
	e.numRemoved--

	neighborFound := false
	c0 := -1
	e.originalAdj[v].Range(func(u int) {
		if !e.removedMask[u] {
			e.currentAdj[v].Add(u)
			e.currentAdj[u].Add(v)
			neighborFound = true
			if c0 == -1 {
				c0 = e.nodeToComponent[u]
			}
		}
	})

	if !neighborFound {
		idx := len(e.components)
		e.nodeToComponent[v] = idx
		e.components = append(e.components, rgraph.Component{Nodes: []int{v}, Size: 1})
		return nil
	}

	cStar := e.dfsComponent(v)
	touched := make(map[int]struct{})
	for _, w := range cStar {
		if w == v {
			continue
		}
		touched[e.nodeToComponent[w]] = struct{}{}
	}

	if len(touched) <= 1 {
		oldSize := e.components[c0].Size
		e.components[c0] = rgraph.Component{Nodes: cStar, Size: len(cStar)}
		for _, w := range cStar {
			e.nodeToComponent[w] = c0
		}
		e.connectedPairs += pairs(len(cStar)) - pairs(oldSize)
		return nil
	}

	m := make([]int, 0, len(touched))
	for idx := range touched {
		m = append(m, idx)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(m)))

	var oldPairsSum int64
	for _, idx := range m {
		oldPairsSum += pairs(e.components[idx].Size)
	}
	for _, idx := range m {
		e.removeComponentAt(idx)
	}

	newIdx := len(e.components)
	e.components = append(e.components, rgraph.Component{Nodes: cStar, Size: len(cStar)})
	for _, w := range cStar {
		e.nodeToComponent[w] = newIdx
	}
	e.connectedPairs += pairs(len(cStar)) - oldPairsSum
	return nil
}

// CalculateConnectionGain computes Δ(v) for a removed vertex v: the pair
// count that would result from adding v back minus the pair counts of the
// distinct components its restored edges would touch (§4.C.5).
func (e *Engine) CalculateConnectionGain(v int) int64 {
	touched := make(map[int]int) // component index -> size
	e.originalAdj[v].Range(func(u int) {
		if !e.removedMask[u] {
			touched[e.nodeToComponent[u]] = e.components[e.nodeToComponent[u]].Size
		}
	})
	var sumPairs int64
	total := 1
	for _, size := range touched {
		sumPairs += pairs(size)
		total += size
	}
	return pairs(total) - sumPairs
}

// Clone returns a deep copy of the entire residual state, with an
// independent RNG from rng.RNG.Clone (a fresh seed-0 stream for the
// default source, not a continuation of e's stream) (§3 "Lifecycle").
func (e *Engine) Clone() *Engine {
	out := &Engine{
		n:              e.n,
		budget:         e.budget,
		originalAdj:    make([]rgraph.AdjacencySet, e.n),
		currentAdj:     make([]rgraph.AdjacencySet, e.n),
		removedMask:    append([]bool(nil), e.removedMask...),
		numRemoved:     e.numRemoved,
		age:            append([]rgraph.Age(nil), e.age...),
		nodeToComponent: append([]int(nil), e.nodeToComponent...),
		connectedPairs: e.connectedPairs,
		rng:            e.rng.Clone(),
		visitEpoch:     make([]int, e.n),
	}
	for i := range out.visitEpoch {
		out.visitEpoch[i] = -1
	}
	for v := 0; v < e.n; v++ {
		out.originalAdj[v] = e.originalAdj[v].Clone()
		out.currentAdj[v] = e.currentAdj[v].Clone()
	}
	out.components = make([]rgraph.Component, len(e.components))
	for i, c := range e.components {
		out.components[i] = rgraph.Component{Nodes: append([]int(nil), c.Nodes...), Size: c.Size}
	}
	return out
}

// RandomFeasibleGraph returns a fresh clone with a uniformly random
// budget-sized removed set applied (SPEC_FULL §6).
func (e *Engine) RandomFeasibleGraph() (*Engine, error) {
	out := e.Clone()
	sample, err := out.rng.SamplePairwiseDistinct(e.n, e.budget)
	if err != nil {
		return nil, fmt.Errorf("cnp: random feasible graph: %w", err)
	}
	if err := out.UpdateByRemovedSet(sample); err != nil {
		return nil, err
	}
	return out, nil
}
