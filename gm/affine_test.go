package gm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func requireVecInDelta(t *testing.T, expected, actual Vec) {
	t.Helper()

	require.InDelta(t, expected.X, actual.X, 1e-9)
	require.InDelta(t, expected.Y, actual.Y, 1e-9)
}

func TestAffine_Transform(t *testing.T) {
	t.Run("translate", func(t *testing.T) {
		tr := IdentityAffine().Translate(Vec{X: 2, Y: 1})
		require.Equal(t, Vec{X: 12, Y: 11}, tr.Transform(Vec{X: 10, Y: 10}))
	})

	t.Run("rotate in local space", func(t *testing.T) {
		tr := IdentityAffine().Rotate(DegToRad(90)).Translate(Vec{X: 10})
		requireVecInDelta(t, Vec{X: 0, Y: 11}, tr.Transform(Vec{X: 1}))
	})

	t.Run("scale then translate", func(t *testing.T) {
		tr := IdentityAffine().Scale(VecSplat(2)).Translate(Vec{X: 5})
		requireVecInDelta(t, Vec{X: 30}, tr.Transform(Vec{X: 10}))
	})

	t.Run("parent and child", func(t *testing.T) {
		parent := AffineFromTRS(Vec{X: 100}, 0, VecSplat(2))
		child := AffineFromTRS(Vec{X: 10}, 0, VecOne)

		global := parent.Mul(child)
		requireVecInDelta(t, Vec{X: 120}, global.Transform(VecZero))
	})
}

func TestAffine_TryInverse(t *testing.T) {
	tr := AffineFromTRS(Vec{X: 3, Y: -4}, DegToRad(30), Vec{X: 2, Y: 0.5})

	inverse, ok := tr.TryInverse()
	require.True(t, ok)

	point := Vec{X: 7, Y: 9}
	requireVecInDelta(t, point, inverse.Transform(tr.Transform(point)))

	_, ok = AffineFromTRS(VecZero, 0, VecZero).TryInverse()
	require.False(t, ok)
}
