package bykebiten

import (
	"math"

	"github.com/oliverbestmann/glowmenu/byke"
	"github.com/oliverbestmann/glowmenu/gm"
)

var _ = byke.ValidateComponent[Mesh]()

// DefaultCircleResolution is the number of vertices used for circles by default.
const DefaultCircleResolution = 32

// Mesh is a 2d triangle mesh in local coordinates, filled with its ColorTint.
type Mesh struct {
	byke.Component[Mesh]

	Vertices []gm.Vec

	// Three indices per triangle
	Indices []uint16
}

func (Mesh) RequireComponents() []byke.ErasedComponent {
	return commonRenderComponents
}

// CircleMesh builds a circle centered at the origin using the given
// number of vertices along the edge.
func CircleMesh(radius float64, resolution int) Mesh {
	return EllipseMesh(gm.VecSplat(radius), resolution)
}

// EllipseMesh builds an ellipse centered at the origin with the given half size.
func EllipseMesh(halfSize gm.Vec, resolution int) Mesh {
	resolution = max(resolution, 3)

	step := 2 * math.Pi / float64(resolution)

	vertices := make([]gm.Vec, 0, resolution)
	for idx := range resolution {
		dir := gm.VecFromAngle(gm.Rad(float64(idx) * step))
		vertices = append(vertices, dir.MulEach(halfSize))
	}

	return Mesh{
		Vertices: vertices,
		Indices:  triangleFanIndices(resolution),
	}
}

// RegularPolygonMesh builds a regular polygon with the given circumradius.
// The first vertex points up.
func RegularPolygonMesh(circumradius float64, sides int) Mesh {
	if sides < 3 {
		panic("a regular polygon needs at least three sides")
	}

	step := 2 * math.Pi / float64(sides)

	vertices := make([]gm.Vec, 0, sides)
	for idx := range sides {
		// y points down, so up is at -pi/2
		angle := -math.Pi/2 + float64(idx)*step
		vertices = append(vertices, gm.VecFromAngle(gm.Rad(angle)).Mul(circumradius))
	}

	return Mesh{
		Vertices: vertices,
		Indices:  triangleFanIndices(sides),
	}
}

// Bounds returns the axis aligned bounding box of all vertices.
func (m Mesh) Bounds() gm.Rect {
	if len(m.Vertices) == 0 {
		return gm.Rect{}
	}

	bounds := gm.Rect{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, vertex := range m.Vertices[1:] {
		bounds.Min = bounds.Min.Min(vertex)
		bounds.Max = bounds.Max.Max(vertex)
	}

	return bounds
}

// triangleFanIndices triangulates a convex polygon with n vertices.
func triangleFanIndices(n int) []uint16 {
	indices := make([]uint16, 0, (n-2)*3)

	for idx := 1; idx < n-1; idx++ {
		indices = append(indices, 0, uint16(idx), uint16(idx+1))
	}

	return indices
}
