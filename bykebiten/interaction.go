package bykebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oliverbestmann/glowmenu/byke"
)

var _ = byke.ValidateComponent[Button]()
var _ = byke.ValidateComponent[Interaction]()

// Button marks a ui node that reacts to the mouse.
type Button struct {
	byke.ComparableComponent[Button]
}

func (Button) RequireComponents() []byke.ErasedComponent {
	return []byke.ErasedComponent{
		Node{},
		InteractionNone,
	}
}

type interactionState uint8

const (
	interactionNone interactionState = iota
	interactionHovered
	interactionPressed
)

// Interaction describes how the mouse currently interacts with a ui node.
// The value is only written when it changes, so byke.Changed[Interaction]
// matches exactly in the frames the interaction changed.
type Interaction struct {
	byke.ComparableComponent[Interaction]
	state interactionState
}

var (
	InteractionNone    = Interaction{state: interactionNone}
	InteractionHovered = Interaction{state: interactionHovered}
	InteractionPressed = Interaction{state: interactionPressed}
)

func (i Interaction) String() string {
	switch i.state {
	case interactionHovered:
		return "Hovered"
	case interactionPressed:
		return "Pressed"
	default:
		return "None"
	}
}

type interactionItem struct {
	EntityId    byke.EntityId
	Computed    ComputedNode
	Visibility  InheritedVisibility
	Interaction *Interaction
}

func interactionSystem(
	cursor MouseCursor,
	buttons MouseButtons,
	query byke.Query[interactionItem],
	queryCache *byke.Local[[]interactionItem],
) {
	queryCache.Value = query.AppendTo(queryCache.Value[:0])
	defer clear(queryCache.Value)

	items := queryCache.Value

	justPressed := buttons.IsJustPressed(ebiten.MouseButtonLeft)
	justReleased := buttons.IsJustReleased(ebiten.MouseButtonLeft)

	if justReleased {
		for _, item := range items {
			if *item.Interaction == InteractionPressed {
				*item.Interaction = InteractionNone
			}
		}
	}

	// the top most node below the cursor is hovered, nodes drawn later are on top
	hovered := byke.NoEntityId
	topStack := -1

	for _, item := range items {
		if !item.Visibility.Visible || !item.Computed.Rect.Contains(cursor.Vec) {
			continue
		}

		if item.Computed.Stack > topStack {
			hovered = item.EntityId
			topStack = item.Computed.Stack
		}
	}

	for _, item := range items {
		if item.EntityId != hovered {
			// pressed nodes stay pressed until the button is released
			if *item.Interaction == InteractionHovered {
				*item.Interaction = InteractionNone
			}

			continue
		}

		switch {
		case justPressed:
			*item.Interaction = InteractionPressed

		case *item.Interaction == InteractionNone:
			*item.Interaction = InteractionHovered
		}
	}
}
