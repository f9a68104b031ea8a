package bykebiten

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/oliverbestmann/glowmenu/byke"
	"github.com/oliverbestmann/glowmenu/bykebiten/assets"
	"github.com/oliverbestmann/glowmenu/bykebiten/color"
	"github.com/oliverbestmann/glowmenu/gm"
)

var _ = byke.ValidateComponent[Text]()
var _ = byke.ValidateComponent[TextFont]()
var _ = byke.ValidateComponent[TextColor]()

// DefaultFontSize is the font size of text without a TextFont.
const DefaultFontSize = 24

// Text is a ui node that shows a single line of text. The layout
// sizes the node to fit the text.
type Text struct {
	byke.ComparableComponent[Text]
	Text string
}

func (Text) RequireComponents() []byke.ErasedComponent {
	return []byke.ErasedComponent{
		Node{},
		TextFont{Size: DefaultFontSize},
		TextColor{Color: color.White},
	}
}

type TextFont struct {
	byke.ComparableComponent[TextFont]
	Size float64
}

func (f TextFont) face() text.Face {
	size := f.Size
	if size <= 0 {
		size = DefaultFontSize
	}

	return &text.GoTextFace{
		Source: assets.GoRegular(),
		Size:   size,
	}
}

type TextColor struct {
	byke.ComparableComponent[TextColor]
	color.Color
}

func measureText(value Text, font TextFont) gm.Vec {
	face := font.face()

	width, height := text.Measure(value.Text, face, lineSpacingOf(face))
	return gm.Vec{X: width, Y: height}
}

func lineSpacingOf(face text.Face) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}
