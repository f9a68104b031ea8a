package game

import (
	"image/color"
	"log/slog"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/oliverbestmann/glowmenu/byke"
	. "github.com/oliverbestmann/glowmenu/bykebiten"
)

var _ = byke.ValidateComponent[loadingIcon]()

// loadingIcon holds the image of a sprite until it is loaded.
type loadingIcon struct {
	byke.Component[loadingIcon]
	Image AsyncAsset[*ebiten.Image]
}

// PlaceholderIcon is used if the icon can not be loaded from the assets.
var PlaceholderIcon = sync.OnceValue(func() *ebiten.Image {
	const size = 128

	img := ebiten.NewImage(size, size)

	var ring vector.Path
	ring.Arc(size/2, size/2, size/2-8, 0, 2*math.Pi, vector.Clockwise)
	ring.Close()

	dpo := &vector.DrawPathOptions{AntiAlias: true}
	dpo.ColorScale.ScaleWithColor(color.Gray{Y: 200})
	vector.StrokePath(img, &ring, &vector.StrokeOptions{Width: 10}, dpo)

	// a triangle pointing to the right, like a play button
	var triangle vector.Path
	triangle.MoveTo(size*0.40, size*0.30)
	triangle.LineTo(size*0.72, size*0.50)
	triangle.LineTo(size*0.40, size*0.70)
	triangle.Close()

	dpo = &vector.DrawPathOptions{AntiAlias: true}
	dpo.ColorScale.ScaleWithColor(color.White)
	vector.FillPath(img, &triangle, &vector.FillOptions{}, dpo)

	return img
})

type loadingIconItem struct {
	EntityId byke.EntityId
	Icon     loadingIcon
	Sprite   *Sprite
}

func loadIconSystem(commands *byke.Commands, query byke.Query[loadingIconItem]) {
	for item := range query.Items() {
		image, err, ok := item.Icon.Image.Poll()
		if !ok {
			continue
		}

		if err != nil {
			slog.Warn("Icon not available, using placeholder", slog.String("error", err.Error()))
			image = PlaceholderIcon()
		}

		item.Sprite.Image = image

		commands.Entity(item.EntityId).Update(byke.RemoveComponent[loadingIcon]())
	}
}
