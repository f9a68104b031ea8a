package bykebiten

import (
	"testing"

	"github.com/oliverbestmann/glowmenu/byke"
	"github.com/stretchr/testify/require"
)

func TestPropagateVisibility(t *testing.T) {
	w := byke.NewWorld()

	hidden := w.Spawn(Hidden)
	inheritsHidden := w.Spawn(Inherited, byke.ChildOf{Parent: hidden})
	forcedVisible := w.Spawn(Visible, byke.ChildOf{Parent: hidden})
	grandChild := w.Spawn(Inherited, byke.ChildOf{Parent: forcedVisible})
	root := w.Spawn(Inherited)

	w.RunSystem(propagateVisibilitySystem)

	expected := map[byke.EntityId]bool{
		hidden:         false,
		inheritsHidden: false,
		forcedVisible:  true,
		grandChild:     true,
		root:           true,
	}

	w.RunSystem(func(q byke.Query[struct {
		EntityId            byke.EntityId
		InheritedVisibility InheritedVisibility
	}]) {
		require.Equal(t, len(expected), q.Count())

		for item := range q.Items() {
			require.Equal(t, expected[item.EntityId], item.InheritedVisibility.Visible, "entity %s", item.EntityId)
		}
	})
}
