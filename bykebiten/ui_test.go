package bykebiten

import (
	"testing"

	"github.com/oliverbestmann/glowmenu/byke"
	"github.com/oliverbestmann/glowmenu/gm"
	"github.com/stretchr/testify/require"
)

func computedNodeOf(t *testing.T, w *byke.World, entityId byke.EntityId) ComputedNode {
	t.Helper()

	var result ComputedNode
	w.RunSystem(func(q byke.Query[ComputedNode]) {
		node, ok := q.Get(entityId)
		require.True(t, ok, "entity %s has no ComputedNode", entityId)
		result = node
	})

	return result
}

func menuButtonStyle() Style {
	return Style{
		Width:          Px(150),
		Height:         Px(50),
		Border:         UiRectAll(Px(5)),
		Margin:         UiRectAll(Px(5)),
		JustifyContent: JustifyContentCenter,
		AlignItems:     AlignItemsCenter,
	}
}

func TestVal(t *testing.T) {
	value, ok := Px(12).resolve(100)
	require.True(t, ok)
	require.Equal(t, 12.0, value)

	value, ok = Percent(25).resolve(200)
	require.True(t, ok)
	require.Equal(t, 50.0, value)

	_, ok = Auto.resolve(200)
	require.False(t, ok)

	require.Equal(t, "auto", Auto.String())
	require.Equal(t, "50%", Percent(50).String())
	require.Equal(t, "5px", Px(5).String())
}

func TestLayout(t *testing.T) {
	w := byke.NewWorld()
	w.InsertResource(ScreenSize{Vec: gm.Vec{X: 800, Y: 600}})

	root := w.Spawn(
		Node{
			Style: Style{
				Width:          Percent(100),
				FlexDirection:  FlexDirectionColumn,
				JustifyContent: JustifyContentCenter,
				AlignItems:     AlignItemsCenter,
			},
		},
	)

	first := w.Spawn(Node{Style: menuButtonStyle()}, byke.ChildOf{Parent: root})
	second := w.Spawn(Node{Style: menuButtonStyle()}, byke.ChildOf{Parent: root})

	w.RunSystem(layoutSystem)

	t.Run("root fills the window", func(t *testing.T) {
		node := computedNodeOf(t, w, root)
		require.Equal(t, gm.Rect{Max: gm.Vec{X: 800, Y: 600}}, node.Rect)
	})

	t.Run("children are centered in a column", func(t *testing.T) {
		node := computedNodeOf(t, w, first)
		require.Equal(t, gm.RectWithOriginAndSize(gm.Vec{X: 325, Y: 245}, gm.Vec{X: 150, Y: 50}), node.Rect)
		require.Equal(t, Insets{Left: 5, Top: 5, Right: 5, Bottom: 5}, node.Border)

		node = computedNodeOf(t, w, second)
		require.Equal(t, gm.RectWithOriginAndSize(gm.Vec{X: 325, Y: 305}, gm.Vec{X: 150, Y: 50}), node.Rect)
	})

	t.Run("children are stacked above their parent", func(t *testing.T) {
		rootStack := computedNodeOf(t, w, root).Stack
		require.Greater(t, computedNodeOf(t, w, first).Stack, rootStack)
		require.Greater(t, computedNodeOf(t, w, second).Stack, computedNodeOf(t, w, first).Stack)
	})
}

func TestLayout_AutoSize(t *testing.T) {
	w := byke.NewWorld()
	w.InsertResource(ScreenSize{Vec: gm.Vec{X: 800, Y: 600}})

	root := w.Spawn(
		Node{Style: Style{Padding: UiRectAll(Px(10))}},
		byke.SpawnChild(Node{Style: Style{Width: Px(100), Height: Px(20)}}),
		byke.SpawnChild(Node{Style: Style{Width: Px(50), Margin: UiRect{Left: Px(5)}}}),
	)

	w.RunSystem(layoutSystem)

	// width fits the children, height stretches to the window
	node := computedNodeOf(t, w, root)
	require.Equal(t, gm.Rect{Max: gm.Vec{X: 10 + 100 + 5 + 50 + 10, Y: 600}}, node.Rect)

	w.RunSystem(func(q byke.Query[struct {
		Node     Node
		Computed ComputedNode
		ChildOf  byke.ChildOf
	}]) {
		for item := range q.Items() {
			switch item.Node.Width {
			case Px(100):
				require.Equal(t, gm.RectWithOriginAndSize(gm.Vec{X: 10, Y: 10}, gm.Vec{X: 100, Y: 20}), item.Computed.Rect)

			case Px(50):
				// the auto height is stretched to the content height of the parent
				require.Equal(t, gm.RectWithOriginAndSize(gm.Vec{X: 115, Y: 10}, gm.Vec{X: 50, Y: 580}), item.Computed.Rect)

			default:
				t.Fatalf("unexpected node %v", item.Node)
			}
		}
	})
}

func TestLayout_JustifySpaceBetween(t *testing.T) {
	offset, gap := justify(JustifyContentSpaceBetween, 90, 4)
	require.Equal(t, 0.0, offset)
	require.Equal(t, 30.0, gap)

	offset, gap = justify(JustifyContentSpaceBetween, 90, 1)
	require.Equal(t, 0.0, offset)
	require.Equal(t, 0.0, gap)

	offset, _ = justify(JustifyContentEnd, 90, 4)
	require.Equal(t, 90.0, offset)
}

func TestLayout_TextIsCentered(t *testing.T) {
	w := byke.NewWorld()
	w.InsertResource(ScreenSize{Vec: gm.Vec{X: 800, Y: 600}})

	button := w.Spawn(
		Node{Style: menuButtonStyle()},
		byke.SpawnChild(Text{Text: "Start"}),
	)

	w.RunSystem(layoutSystem)

	var label byke.EntityId
	w.RunSystem(func(q byke.Query[byke.Children]) {
		children, ok := q.Get(button)
		require.True(t, ok)

		label, _ = children.First()
	})

	buttonRect := computedNodeOf(t, w, button).Rect
	labelRect := computedNodeOf(t, w, label).Rect

	require.False(t, labelRect.IsEmpty())
	require.InDelta(t, buttonRect.Center().X, labelRect.Center().X, 1e-6)
	require.InDelta(t, buttonRect.Center().Y, labelRect.Center().Y, 1e-6)
}
