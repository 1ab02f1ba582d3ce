package problem_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/critnode/critnode/problem"
)

func TestCreateOriginalGraphCNP(t *testing.T) {
	p := problem.NewProblemData(5)
	for i := 0; i < 4; i++ {
		require.NoError(t, p.AddEdge(i, i+1))
	}
	g, err := p.CreateOriginalGraph(problem.TypeCNP, 1, 1, 0)
	require.NoError(t, err)
	require.True(t, g.IsCNP())
	require.Equal(t, 5, g.GetNumNodes())
}

func TestCreateOriginalGraphDCNP(t *testing.T) {
	p := problem.NewProblemData(7)
	for i := 0; i < 6; i++ {
		require.NoError(t, p.AddEdge(i, i+1))
	}
	g, err := p.CreateOriginalGraph(problem.TypeDCNP, 1, 1, 2)
	require.NoError(t, err)
	require.True(t, g.IsDCNP())
}

func TestCreateOriginalGraphUnknownType(t *testing.T) {
	p := problem.NewProblemData(3)
	_, err := p.CreateOriginalGraph(problem.ProblemType(99), 1, 1, 0)
	require.ErrorIs(t, err, problem.ErrUnknownProblemType)
}

func TestAddEdgeOutOfRange(t *testing.T) {
	p := problem.NewProblemData(3)
	err := p.AddEdge(0, 5)
	require.ErrorIs(t, err, problem.ErrEdgeOutOfRange)
}

func TestAddNodeGrowsCount(t *testing.T) {
	p := problem.NewProblemData(2)
	p.AddNode(5)
	require.Equal(t, 6, p.NumNodes())
}
