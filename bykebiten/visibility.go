package bykebiten

import (
	"github.com/oliverbestmann/glowmenu/byke"
)

var _ = byke.ValidateComponent[Visibility]()
var _ = byke.ValidateComponent[InheritedVisibility]()

type Visibility struct {
	byke.ComparableComponent[Visibility]
	Mode VisibilityMode
}

type VisibilityMode uint8

const (
	// VisibilityInherited takes the visibility of the parent, roots are visible.
	VisibilityInherited VisibilityMode = iota
	VisibilityVisible
	VisibilityHidden
)

var (
	Inherited = Visibility{Mode: VisibilityInherited}
	Visible   = Visibility{Mode: VisibilityVisible}
	Hidden    = Visibility{Mode: VisibilityHidden}
)

func (Visibility) RequireComponents() []byke.ErasedComponent {
	return []byke.ErasedComponent{InheritedVisibility{Visible: true}}
}

func (v Visibility) resolve(parentVisible bool) bool {
	switch v.Mode {
	case VisibilityVisible:
		return true
	case VisibilityHidden:
		return false
	default:
		return parentVisible
	}
}

// InheritedVisibility is computed from the Visibility hierarchy. Entities
// that are not visible are neither drawn nor interactive.
type InheritedVisibility struct {
	byke.ComparableComponent[InheritedVisibility]
	Visible bool
}

type visibilityItem struct {
	Visibility          Visibility
	InheritedVisibility *InheritedVisibility
	Children            byke.Option[byke.Children]
}

type rootVisibilityItem struct {
	_ byke.Without[byke.ChildOf]
	_ byke.With[Visibility]

	EntityId byke.EntityId
}

func propagateVisibilitySystem(
	roots byke.Query[rootVisibilityItem],
	nodes byke.Query[visibilityItem],
) {
	var propagate func(item visibilityItem, parentVisible bool)

	propagate = func(item visibilityItem, parentVisible bool) {
		item.InheritedVisibility.Visible = item.Visibility.resolve(parentVisible)

		children, ok := item.Children.Get()
		if !ok {
			return
		}

		for _, childId := range children.Children() {
			child, ok := nodes.Get(childId)
			if !ok {
				continue
			}

			propagate(child, item.InheritedVisibility.Visible)
		}
	}

	for root := range roots.Items() {
		if item, ok := nodes.Get(root.EntityId); ok {
			propagate(item, true)
		}
	}
}
