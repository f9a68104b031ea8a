package bykebiten

import (
	"log/slog"

	"github.com/oliverbestmann/glowmenu/byke"
	"github.com/oliverbestmann/glowmenu/gm"
)

var _ = byke.ValidateComponent[Transform]()
var _ = byke.ValidateComponent[GlobalTransform]()

// Transform places an entity relative to its parent, or in world space if
// the entity has no parent.
type Transform struct {
	byke.ComparableComponent[Transform]
	Translation gm.Vec
	Scale       gm.Vec
	Rotation    gm.Rad
}

func NewTransform() Transform {
	return Transform{Scale: gm.VecOne}
}

func TransformFromXY(x, y float64) Transform {
	return Transform{
		Scale:       gm.VecOne,
		Translation: gm.Vec{X: x, Y: y},
	}
}

func (t Transform) WithTranslation(translation gm.Vec) Transform {
	t.Translation = translation
	return t
}

func (t Transform) WithRotation(rotation gm.Rad) Transform {
	t.Rotation = rotation
	return t
}

func (t Transform) WithScale(scale gm.Vec) Transform {
	t.Scale = scale
	return t
}

func (t Transform) AsAffine() gm.Affine {
	return gm.AffineFromTRS(t.Translation, t.Rotation, t.Scale)
}

func (Transform) RequireComponents() []byke.ErasedComponent {
	return []byke.ErasedComponent{
		GlobalTransform{Affine: gm.IdentityAffine()},
	}
}

// GlobalTransform is the transform of an entity in world space. It is computed
// from the Transform hierarchy during PostUpdate.
type GlobalTransform struct {
	byke.ComparableComponent[GlobalTransform]
	gm.Affine
}

func (t GlobalTransform) Position() gm.Vec {
	return t.Affine.Translation
}

type rootTransformItem struct {
	_ byke.Without[byke.ChildOf]

	Children        byke.Option[byke.Children]
	Transform       Transform
	GlobalTransform *GlobalTransform
}

type childTransformItem struct {
	Children        byke.Option[byke.Children]
	Transform       Transform
	GlobalTransform *GlobalTransform
}

func propagateTransformSystem(
	roots byke.Query[rootTransformItem],
	childItems byke.Query[childTransformItem],
) {
	var recurse func(entityId byke.EntityId, parent gm.Affine)

	recurse = func(entityId byke.EntityId, parent gm.Affine) {
		item, ok := childItems.Get(entityId)
		if !ok {
			// children without a transform, e.g. ui nodes, break the chain
			slog.Debug("Transform hierarchy interrupted", slog.String("entity", entityId.String()))
			return
		}

		item.GlobalTransform.Affine = parent.Mul(item.Transform.AsAffine())

		if children, ok := item.Children.Get(); ok {
			for _, child := range children.Children() {
				recurse(child, item.GlobalTransform.Affine)
			}
		}
	}

	for root := range roots.Items() {
		root.GlobalTransform.Affine = root.Transform.AsAffine()

		if children, ok := root.Children.Get(); ok {
			for _, child := range children.Children() {
				recurse(child, root.GlobalTransform.Affine)
			}
		}
	}
}
