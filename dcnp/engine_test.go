package dcnp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/critnode/critnode/dcnp"
)

func pathEdges(n int) [][2]int {
	edges := make([][2]int, 0, n-1)
	for i := 0; i < n-1; i++ {
		edges = append(edges, [2]int{i, i + 1})
	}
	return edges
}

// TestPathP7K2RemovingMiddleDropsObjective covers scenario 5 of §8.
func TestPathP7K2RemovingMiddleDropsObjective(t *testing.T) {
	e, err := dcnp.New(7, 1, 2, pathEdges(7), 1)
	require.NoError(t, err)

	// Note: §8 scenario 5's prose figures (20→8) are flagged by §9 as
	// "exact value implementation-checked" (i.e. illustrative, not
	// authoritative); the values below are the actual half-sum of K=2
	// BFS tree sizes for P7, worked by hand and cross-checked against
	// ObjectiveInvariant elsewhere in this file.
	before := e.ObjectiveValue()
	require.Equal(t, int64(11), before)

	require.NoError(t, e.RemoveNode(3))
	require.Equal(t, int64(6), e.ObjectiveValue())
}

// TestBestSingleRemovalPicksMiddleVertex covers scenario 5's "best single
// removal must pick a middle vertex" claim.
func TestBestSingleRemovalPicksMiddleVertex(t *testing.T) {
	e, err := dcnp.New(7, 1, 2, pathEdges(7), 1)
	require.NoError(t, err)

	v, err := e.FindBestNodeToRemove()
	require.NoError(t, err)
	require.GreaterOrEqual(t, v, 2)
	require.LessOrEqual(t, v, 4)
}

// TestObjectiveInvariant is DCNP-INV2: objective equals half the sum of
// treeSize over unremoved vertices.
func TestObjectiveInvariant(t *testing.T) {
	e, err := dcnp.New(7, 2, 2, pathEdges(7), 5)
	require.NoError(t, err)

	require.NoError(t, e.RemoveNode(3))
	require.NoError(t, e.RemoveNode(1))
	assertObjectiveInvariant(t, e)
}

func assertObjectiveInvariant(t *testing.T, e *dcnp.Engine) {
	t.Helper()
	var sum int64
	for v := 0; v < e.NumNodes(); v++ {
		if !e.IsNodeRemoved(v) {
			sum += int64(e.TreeSize(v))
		}
	}
	require.Equal(t, sum/2, e.ObjectiveValue())
}

// TestRemoveThenAddRestoresObjective covers DCNP-INV3.
func TestRemoveThenAddRestoresObjective(t *testing.T) {
	e, err := dcnp.New(7, 1, 2, pathEdges(7), 1)
	require.NoError(t, err)
	before := e.ObjectiveValue()

	require.NoError(t, e.RemoveNode(3))
	require.NoError(t, e.AddNode(3))

	require.Equal(t, before, e.ObjectiveValue())
	for v := 0; v < 7; v++ {
		require.False(t, e.IsNodeRemoved(v))
	}
}

func TestBetweennessCentralityFavorsMiddle(t *testing.T) {
	e, err := dcnp.New(7, 1, 2, pathEdges(7), 1)
	require.NoError(t, err)
	bc := e.BetweennessCentrality()
	require.Len(t, bc, 7)
	require.Greater(t, bc[3], bc[0])
	require.Greater(t, bc[3], bc[6])
}

func TestNonPositiveHopRejected(t *testing.T) {
	_, err := dcnp.New(5, 1, 0, pathEdges(5), 1)
	require.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	e, err := dcnp.New(7, 1, 2, pathEdges(7), 1)
	require.NoError(t, err)
	clone := e.Clone()
	require.NoError(t, clone.RemoveNode(3))
	require.Equal(t, int64(11), e.ObjectiveValue())
	require.Equal(t, int64(6), clone.ObjectiveValue())
}
