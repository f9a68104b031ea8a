package bykebiten

import (
	"testing"

	"github.com/oliverbestmann/glowmenu/gm"
	"github.com/stretchr/testify/require"
)

func TestRegularPolygonMesh(t *testing.T) {
	hexagon := RegularPolygonMesh(100, 6)

	require.Len(t, hexagon.Vertices, 6)
	require.Len(t, hexagon.Indices, 4*3)

	// the first vertex points up
	require.InDelta(t, 0, hexagon.Vertices[0].X, 1e-9)
	require.InDelta(t, -100, hexagon.Vertices[0].Y, 1e-9)

	for _, vertex := range hexagon.Vertices {
		require.InDelta(t, 100, vertex.Length(), 1e-9)
	}

	for _, index := range hexagon.Indices {
		require.Less(t, int(index), len(hexagon.Vertices))
	}

	require.Panics(t, func() {
		RegularPolygonMesh(100, 2)
	})
}

func TestCircleMesh(t *testing.T) {
	circle := CircleMesh(100, DefaultCircleResolution)

	require.Len(t, circle.Vertices, DefaultCircleResolution)
	require.Len(t, circle.Indices, (DefaultCircleResolution-2)*3)

	bounds := circle.Bounds()
	require.InDelta(t, -100, bounds.Min.X, 1e-9)
	require.InDelta(t, 100, bounds.Max.X, 1e-9)
	require.InDelta(t, -100, bounds.Min.Y, 1e-9)
	require.InDelta(t, 100, bounds.Max.Y, 1e-9)
}

func TestEllipseMesh(t *testing.T) {
	ellipse := EllipseMesh(gm.Vec{X: 50, Y: 20}, 4)

	require.Equal(t, []uint16{0, 1, 2, 0, 2, 3}, ellipse.Indices)

	bounds := ellipse.Bounds()
	require.InDelta(t, 100, bounds.Width(), 1e-9)
	require.InDelta(t, 40, bounds.Height(), 1e-9)

	// resolution is at least three
	require.Len(t, EllipseMesh(gm.VecOne, 1).Vertices, 3)
}
