package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/critnode/critnode/cnp"
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

func TestCNPOnlyPrimitivesRejectDCNP(t *testing.T) {
	e, err := dcnp.New(5, 1, 2, pathEdges(5), 1)
	require.NoError(t, err)
	g := graph.NewDCNP(e)

	_, err = g.SelectComponent()
	require.ErrorIs(t, err, graph.ErrWrongVariant)
	_, err = g.ImpactSelectNodeFromComponent(0)
	require.ErrorIs(t, err, graph.ErrWrongVariant)
}

func TestDCNPOnlyPrimitivesRejectCNP(t *testing.T) {
	e, err := cnp.New(5, 1, pathEdges(5), 1)
	require.NoError(t, err)
	g := graph.NewCNP(e)

	err = g.BuildTree()
	require.ErrorIs(t, err, graph.ErrWrongVariant)
	_, err = g.FindBestNodeToAdd()
	require.ErrorIs(t, err, graph.ErrWrongVariant)
}

func TestGreedySelectNodeToAddDispatchesForDCNP(t *testing.T) {
	e, err := dcnp.New(5, 1, 2, pathEdges(5), 1)
	require.NoError(t, err)
	g := graph.NewDCNP(e)
	require.NoError(t, g.RemoveNode(2))

	v, err := g.GreedySelectNodeToAdd()
	require.NoError(t, err)
	require.GreaterOrEqual(t, v, 0)
}

func TestCloneAndObjectiveRoundTrip(t *testing.T) {
	e, err := cnp.New(5, 1, pathEdges(5), 1)
	require.NoError(t, err)
	g := graph.NewCNP(e)
	clone := g.Clone()

	require.NoError(t, clone.RemoveNode(2))
	require.Equal(t, int64(10), g.GetObjectiveValue())
	require.Equal(t, int64(2), clone.GetObjectiveValue())
	require.True(t, clone.IsNodeRemoved(2))
	require.False(t, g.IsNodeRemoved(2))
}
