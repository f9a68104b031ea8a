package byke

import (
	"fmt"
	"reflect"
	"slices"
)

// EntityId identifies an entity within a World.
type EntityId uint32

const NoEntityId = EntityId(0)

func (e EntityId) String() string {
	return fmt.Sprintf("Entity(%d)", uint32(e))
}

// Tick is a monotonic counter that is incremented for every system run.
// It is used to detect changes to components.
type Tick uint64

type componentValue struct {
	// pointer to the component value
	Ptr reflect.Value

	Added   Tick
	Changed Tick
}

type entity struct {
	Id         EntityId
	Components map[*ComponentType]*componentValue
}

func (e *entity) Get(componentType *ComponentType) (*componentValue, bool) {
	value, ok := e.Components[componentType]
	return value, ok
}

func (e *entity) Has(componentType *ComponentType) bool {
	_, ok := e.Components[componentType]
	return ok
}

// storage keeps entities ordered by their id, so iteration order is the spawn order.
type storage struct {
	entities []*entity
	lookup   map[EntityId]*entity
}

func newStorage() *storage {
	return &storage{lookup: map[EntityId]*entity{}}
}

func (s *storage) Get(entityId EntityId) (*entity, bool) {
	e, ok := s.lookup[entityId]
	return e, ok
}

func (s *storage) Spawn(entityId EntityId) *entity {
	if _, exists := s.lookup[entityId]; exists {
		panic(fmt.Sprintf("entity %s already exists", entityId))
	}

	e := &entity{
		Id:         entityId,
		Components: map[*ComponentType]*componentValue{},
	}

	idx, _ := slices.BinarySearchFunc(s.entities, entityId, func(e *entity, id EntityId) int {
		return int(e.Id) - int(id)
	})

	s.entities = slices.Insert(s.entities, idx, e)
	s.lookup[entityId] = e

	return e
}

func (s *storage) Despawn(entityId EntityId) bool {
	if _, ok := s.lookup[entityId]; !ok {
		return false
	}

	delete(s.lookup, entityId)

	s.entities = slices.DeleteFunc(s.entities, func(e *entity) bool {
		return e.Id == entityId
	})

	return true
}

func (s *storage) Insert(tick Tick, e *entity, component ErasedComponent) {
	componentType := component.ComponentType()

	value := reflect.ValueOf(component)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}

	if existing, ok := e.Components[componentType]; ok {
		existing.Ptr.Elem().Set(value)
		existing.Changed = tick
		return
	}

	ptr := componentType.New()
	ptr.Elem().Set(value)

	e.Components[componentType] = &componentValue{
		Ptr:     ptr,
		Added:   tick,
		Changed: tick,
	}
}

func (s *storage) Remove(e *entity, componentType *ComponentType) (ErasedComponent, bool) {
	value, ok := e.Components[componentType]
	if !ok {
		return nil, false
	}

	delete(e.Components, componentType)

	return value.Ptr.Elem().Interface().(ErasedComponent), true
}

func (s *storage) Len() int {
	return len(s.entities)
}
