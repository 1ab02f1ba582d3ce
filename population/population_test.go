package population_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/critnode/critnode/cnp"
	"github.com/critnode/critnode/graph"
	"github.com/critnode/critnode/population"
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

func TestInitializeGrowsToRequestedSize(t *testing.T) {
	g := newCNPGraph(t, 12, 3, pathEdges(12), 42)
	pop := population.New(g, "CBNS", false, 10, 2, 5, 42)
	require.NoError(t, pop.Initialize(5, nil))
	require.Equal(t, 5, pop.GetSize())
}

func TestInitializeIsDeterministic(t *testing.T) {
	g1 := newCNPGraph(t, 12, 3, pathEdges(12), 42)
	pop1 := population.New(g1, "CBNS", false, 10, 2, 5, 42)
	require.NoError(t, pop1.Initialize(5, nil))

	g2 := newCNPGraph(t, 12, 3, pathEdges(12), 42)
	pop2 := population.New(g2, "CBNS", false, 10, 2, 5, 42)
	require.NoError(t, pop2.Initialize(5, nil))

	_, err := pop1.GetAllThreeSolutions()
	require.ErrorIs(t, err, population.ErrWrongSize)

	require.Equal(t, pop1.GetSize(), pop2.GetSize())
	for i := 0; i < pop1.GetSize(); i++ {
		it1, it2 := pop1.Items()[i], pop2.Items()[i]
		require.Equal(t, it1.ObjValue, it2.ObjValue, "member %d objective mismatch", i)
		require.Equal(t, it1.Solution, it2.Solution, "member %d solution mismatch", i)
	}
}

func TestGetAllThreeSolutionsRequiresExactlyThree(t *testing.T) {
	g := newCNPGraph(t, 9, 2, pathEdges(9), 1)
	pop := population.New(g, "CBNS", false, 10, 2, 5, 1)
	require.NoError(t, pop.Initialize(3, nil))
	require.Equal(t, 3, pop.GetSize())
	three, err := pop.GetAllThreeSolutions()
	require.NoError(t, err)
	require.NotNil(t, three[0])
	require.NotNil(t, three[1])
	require.NotNil(t, three[2])
}

func TestGetBestItemReturnsMinimumObjective(t *testing.T) {
	g := newCNPGraph(t, 12, 3, pathEdges(12), 7)
	pop := population.New(g, "CBNS", false, 10, 2, 5, 7)
	require.NoError(t, pop.Initialize(4, nil))
	best, err := pop.GetBestItem()
	require.NoError(t, err)
	require.NotNil(t, best)
	for _, it := range pop.Items() {
		require.LessOrEqual(t, best.ObjValue, it.ObjValue)
	}
}

func TestTournamentSelectReturnsDistinctParents(t *testing.T) {
	g := newCNPGraph(t, 12, 3, pathEdges(12), 3)
	pop := population.New(g, "CBNS", false, 10, 2, 5, 3)
	require.NoError(t, pop.Initialize(4, nil))
	p1, p2, err := pop.TournamentSelectTwoSolutions()
	require.NoError(t, err)
	require.NotEqual(t, p1.ID, p2.ID)
}

func TestUpdateEvictsWorstAndKeepsSizeBounded(t *testing.T) {
	g := newCNPGraph(t, 12, 3, pathEdges(12), 9)
	pop := population.New(g, "CBNS", false, 10, 2, 5, 9)
	require.NoError(t, pop.Initialize(4, nil))
	sizeBefore := pop.GetSize()
	require.NoError(t, pop.Update([]int{1, 5, 9}, 1, 1, false))
	require.Equal(t, sizeBefore, pop.GetSize())
}
