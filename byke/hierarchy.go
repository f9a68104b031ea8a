package byke

import "slices"

var _ = ValidateComponent[ChildOf]()
var _ = ValidateComponent[Children]()

// ChildOf points to the parent of an entity. The world keeps
// the Children component of the parent in sync.
type ChildOf struct {
	ComparableComponent[ChildOf]
	Parent EntityId
}

// Children lists the children of an entity in spawn order.
// It is maintained by the world and must not be inserted manually.
type Children struct {
	Component[Children]
	ids []EntityId
}

// Children returns the children of the entity.
// You must not modify the returned slice.
func (c Children) Children() []EntityId {
	return c.ids
}

// First returns the first child, if any.
func (c Children) First() (EntityId, bool) {
	if len(c.ids) == 0 {
		return NoEntityId, false
	}

	return c.ids[0], true
}

func (c Children) Len() int {
	return len(c.ids)
}

func (c Children) with(child EntityId) Children {
	if slices.Contains(c.ids, child) {
		return c
	}

	return Children{ids: append(slices.Clone(c.ids), child)}
}

func (c Children) without(child EntityId) Children {
	return Children{ids: slices.DeleteFunc(slices.Clone(c.ids), func(id EntityId) bool {
		return id == child
	})}
}
