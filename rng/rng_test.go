package rng_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/critnode/critnode/rng"
)

func TestDeterminism(t *testing.T) {
	g1 := rng.New(42)
	g2 := rng.New(42)

	for i := 0; i < 100; i++ {
		a := g1.Probability()
		b := g2.Probability()
		require.Equal(t, a, b)
	}

	for i := 0; i < 100; i++ {
		a := g1.IntInclusive(0, 99)
		b := g2.IntInclusive(0, 99)
		require.Equal(t, a, b)
	}
}

func TestIndexRejectsNonPositive(t *testing.T) {
	g := rng.New(1)
	_, err := g.Index(0)
	require.ErrorIs(t, err, rng.ErrNonPositiveBound)
	_, err = g.Index(-3)
	require.ErrorIs(t, err, rng.ErrNonPositiveBound)
}

func TestIndexInBounds(t *testing.T) {
	g := rng.New(7)
	for i := 0; i < 500; i++ {
		v, err := g.Index(5)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 5)
	}
}

func TestIntInclusiveBounds(t *testing.T) {
	g := rng.New(3)
	for i := 0; i < 500; i++ {
		v := g.IntInclusive(10, 12)
		require.GreaterOrEqual(t, v, 10)
		require.LessOrEqual(t, v, 12)
	}
	require.Equal(t, 5, g.IntInclusive(5, 5))
}

func TestBoolRespectsExtremes(t *testing.T) {
	g := rng.New(9)
	for i := 0; i < 50; i++ {
		require.False(t, g.Bool(0))
	}
	for i := 0; i < 50; i++ {
		require.True(t, g.Bool(1))
	}
}

func TestSamplePairwiseDistinct(t *testing.T) {
	g := rng.New(11)
	out, err := g.SamplePairwiseDistinct(10, 4)
	require.NoError(t, err)
	require.Len(t, out, 4)
	seen := make(map[int]bool)
	for _, v := range out {
		require.False(t, seen[v], "duplicate sampled value")
		seen[v] = true
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 10)
	}

	_, err = g.SamplePairwiseDistinct(3, 4)
	require.Error(t, err)
}

func TestChoice(t *testing.T) {
	g := rng.New(5)
	xs := []string{"a", "b", "c"}
	v, idx, err := rng.Choice(g, xs)
	require.NoError(t, err)
	require.Equal(t, xs[idx], v)

	_, _, err = rng.Choice(g, []string{})
	require.ErrorIs(t, err, rng.ErrEmptyBackingSlice)
}
