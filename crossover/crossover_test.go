package crossover_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/critnode/critnode/cnp"
	"github.com/critnode/critnode/crossover"
	"github.com/critnode/critnode/dcnp"
	"github.com/critnode/critnode/graph"
)

func pathEdges(n int) [][2]int {
	edges := make([][2]int, 0, n-1)
	for i := 0; i < n-1; i++ {
		edges = append(edges, [2]int{i, i + 1})
	}
	return edges
}

func newCNPGraph(t *testing.T, n, budget int, edges [][2]int, seed uint32) *graph.Graph {
	t.Helper()
	e, err := cnp.New(n, budget, edges, seed)
	require.NoError(t, err)
	return graph.NewCNP(e)
}

func newDCNPGraph(t *testing.T, n, budget, k int, edges [][2]int, seed uint32) *graph.Graph {
	t.Helper()
	e, err := dcnp.New(n, budget, k, edges, seed)
	require.NoError(t, err)
	return graph.NewDCNP(e)
}

func TestDBXRejectsWrongParentCount(t *testing.T) {
	g := newCNPGraph(t, 6, 2, pathEdges(6), 1)
	err := crossover.DBX(g, [][]int{{0, 1}})
	require.ErrorIs(t, err, crossover.ErrWrongParentCount)
}

func TestDBXProducesBudgetSizedOffspring(t *testing.T) {
	g := newCNPGraph(t, 9, 3, pathEdges(9), 5)
	m := []int{1, 4, 7}
	f := []int{1, 4, 6}
	err := crossover.DBX(g, [][]int{m, f})
	require.NoError(t, err)
	require.Len(t, g.GetRemovedNodes(), len(m))
}

func TestRSCRejectsInvalidBeta(t *testing.T) {
	g := newCNPGraph(t, 9, 3, pathEdges(9), 2)
	err := crossover.RSC(g, [][]int{{1}, {1}}, 1.5, "run-1")
	require.ErrorIs(t, err, crossover.ErrInvalidBeta)
}

func TestRSCRunsOnCNPGraph(t *testing.T) {
	g := newCNPGraph(t, 9, 3, pathEdges(9), 9)
	m := []int{1, 4, 7}
	f := []int{1, 4, 6}
	err := crossover.RSC(g, [][]int{m, f}, crossover.RSCBeta, "run-rsc")
	require.NoError(t, err)
	require.LessOrEqual(t, len(g.GetRemovedNodes()), g.GetNumNodes())
}

func TestRSCRunsOnDCNPGraph(t *testing.T) {
	g := newDCNPGraph(t, 9, 3, 2, pathEdges(9), 9)
	m := []int{1, 4, 7}
	f := []int{1, 4, 6}
	err := crossover.RSC(g, [][]int{m, f}, crossover.RSCBeta, "run-rsc-dcnp")
	require.NoError(t, err)
}

func TestIRRRejectsWrongParentCount(t *testing.T) {
	g := newCNPGraph(t, 9, 3, pathEdges(9), 1)
	err := crossover.IRR(g, [][]int{{1, 2, 3}})
	require.ErrorIs(t, err, crossover.ErrWrongParentCount)
}

func TestIRRProducesBudgetSizedOffspring(t *testing.T) {
	g := newCNPGraph(t, 12, 3, pathEdges(12), 3)
	p1 := []int{1, 4, 7}
	p2 := []int{1, 4, 8}
	p3 := []int{1, 5, 7}
	err := crossover.IRR(g, [][]int{p1, p2, p3})
	require.NoError(t, err)
	require.Len(t, g.GetRemovedNodes(), len(p1))
}
