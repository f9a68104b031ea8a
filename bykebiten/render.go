package bykebiten

import (
	"cmp"
	"image"
	"log/slog"
	"slices"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oliverbestmann/glowmenu/byke"
	"github.com/oliverbestmann/glowmenu/bykebiten/color"
	"github.com/oliverbestmann/glowmenu/gm"
)

// HDRHeadroom is the factor colors are divided by when rendering into the
// offscreen target of an HDR camera. Colors up to this value survive until tonemapping.
const HDRHeadroom = 10

var whiteImage = sync.OnceValue(func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
})

var _ = byke.ValidateComponent[Layer]()
var _ = byke.ValidateComponent[ColorTint]()

// Layer orders sprites and meshes, higher values are drawn on top.
type Layer struct {
	byke.ComparableComponent[Layer]
	Z float64
}

// ColorTint is multiplied with the color of a sprite or mesh. Values above
// one are allowed and result in a glow when rendered by an HDR camera with Bloom.
type ColorTint struct {
	byke.ComparableComponent[ColorTint]
	color.Color
}

type screenRenderTarget struct {
	Image *ebiten.Image
}

var commonRenderComponents = []byke.ErasedComponent{
	NewTransform(),
	Layer{},
	ColorTint{Color: color.White},
	Inherited,
}

type renderSpriteValue struct {
	Sprite     Sprite
	Anchor     Anchor
	ColorTint  ColorTint
	Layer      Layer
	Transform  GlobalTransform
	Visibility InheritedVisibility
}

type renderMeshValue struct {
	Mesh       Mesh
	ColorTint  ColorTint
	Layer      Layer
	Transform  GlobalTransform
	Visibility InheritedVisibility
}

// renderItem points to either a sprite or a mesh in the renderCache.
type renderItem struct {
	Z      float64
	Sprite *renderSpriteValue
	Mesh   *renderMeshValue
}

type cameraValue struct {
	EntityId    byke.EntityId
	Camera      Camera
	Transform   GlobalTransform
	Projection  OrthographicProjection
	Tonemapping Tonemapping
	Bloom       byke.Option[Bloom]
}

type renderCache struct {
	Cameras []cameraValue
	Sprites []renderSpriteValue
	Meshes  []renderMeshValue

	items []renderItem

	// scratch space for vertex transformations
	vertices []ebiten.Vertex

	// offscreen targets of the hdr cameras
	bloomTargets map[byke.EntityId]*bloomTargets
}

func renderSystem(
	screen screenRenderTarget,
	camerasQuery byke.Query[cameraValue],
	spritesQuery byke.Query[renderSpriteValue],
	meshesQuery byke.Query[renderMeshValue],
	cache *byke.Local[renderCache],
) {
	c := &cache.Value

	defer func() {
		clear(c.Sprites)
		clear(c.Meshes)
		clear(c.items)
	}()

	// re-use the slices and collect all values
	c.Cameras = camerasQuery.AppendTo(c.Cameras[:0])
	c.Sprites = spritesQuery.AppendTo(c.Sprites[:0])
	c.Meshes = meshesQuery.AppendTo(c.Meshes[:0])

	items := c.Items()

	slices.SortStableFunc(items, func(a, b renderItem) int {
		return cmp.Compare(a.Z, b.Z)
	})

	slices.SortStableFunc(c.Cameras, func(a, b cameraValue) int {
		return cmp.Compare(a.Camera.Order, b.Camera.Order)
	})

	if c.bloomTargets == nil {
		c.bloomTargets = map[byke.EntityId]*bloomTargets{}
	}

	screenSize := imageSizeOf(screen.Image)

	for _, camera := range c.Cameras {
		if camera.Camera.Inactive {
			continue
		}

		if !camera.Camera.HDR {
			screen.Image.Fill(camera.Camera.clearColor())
			renderItems(c, screen.Image, camera, items, 1)
			continue
		}

		targets, ok := c.bloomTargets[camera.EntityId]
		if !ok {
			slog.Debug("Create hdr render target", slog.String("camera", camera.EntityId.String()))

			targets = &bloomTargets{}
			c.bloomTargets[camera.EntityId] = targets
		}

		bloom, hasBloom := camera.Bloom.Get()
		if hasBloom && bloom.MaxMipDimension == 0 {
			hasBloom = false
		}

		targets.ensure(screenSize, max(bloom.MaxMipDimension, 2))

		targets.hdr.Fill(camera.Camera.clearColor().Scale(1.0 / HDRHeadroom))
		renderItems(c, targets.hdr, camera, items, HDRHeadroom)

		if hasBloom {
			targets.applyBloom(bloom)
			targets.composite(screen.Image, &bloom, camera.Tonemapping.Method)
		} else {
			targets.composite(screen.Image, nil, camera.Tonemapping.Method)
		}
	}

	// release the targets of cameras that are gone
	for entityId, targets := range c.bloomTargets {
		if !slices.ContainsFunc(c.Cameras, func(camera cameraValue) bool { return camera.EntityId == entityId && camera.Camera.HDR }) {
			targets.dispose()
			delete(c.bloomTargets, entityId)
		}
	}
}

func renderItems(c *renderCache, target *ebiten.Image, camera cameraValue, items []renderItem, headroom float32) {
	toScreen := CalculateWorldToScreenTransform(camera.Projection, camera.Transform, imageSizeOf(target))

	for _, item := range items {
		switch {
		case item.Sprite != nil:
			if !item.Sprite.Visibility.Visible || item.Sprite.Sprite.Image == nil {
				continue
			}

			drawSprite(target, toScreen, item.Sprite, headroom)

		case item.Mesh != nil:
			if !item.Mesh.Visibility.Visible {
				continue
			}

			c.vertices = drawMesh(target, toScreen, item.Mesh, headroom, c.vertices[:0])
		}
	}
}

func drawSprite(target *ebiten.Image, toScreen gm.Affine, item *renderSpriteValue, headroom float32) {
	tr := toScreen.
		Mul(item.Transform.Affine).
		Mul(item.Sprite.localTransform(item.Anchor))

	var op ebiten.DrawImageOptions
	op.GeoM = geoMOf(tr)
	op.ColorScale.Scale(item.ColorTint.Scale(1 / headroom).PremultipliedValues())
	op.Filter = ebiten.FilterLinear

	target.DrawImage(item.Sprite.Image, &op)
}

func drawMesh(target *ebiten.Image, toScreen gm.Affine, item *renderMeshValue, headroom float32, vertices []ebiten.Vertex) []ebiten.Vertex {
	mesh := item.Mesh
	if len(mesh.Indices) == 0 {
		return vertices
	}

	tr := toScreen.Mul(item.Transform.Affine)

	r, g, b, a := item.ColorTint.Scale(1 / headroom).PremultipliedValues()

	for _, vertex := range mesh.Vertices {
		pos := tr.Transform(vertex)

		vertices = append(vertices, ebiten.Vertex{
			DstX:   float32(pos.X),
			DstY:   float32(pos.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}

	target.DrawTriangles(vertices, mesh.Indices, whiteImage(), &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		AntiAlias:      true,
	})

	return vertices
}

func (c *renderCache) Items() []renderItem {
	c.items = c.items[:0]

	for idx := range c.Sprites {
		item := &c.Sprites[idx]
		c.items = append(c.items, renderItem{Z: item.Layer.Z, Sprite: item})
	}

	for idx := range c.Meshes {
		item := &c.Meshes[idx]
		c.items = append(c.items, renderItem{Z: item.Layer.Z, Mesh: item})
	}

	return c.items
}
