package byke

import (
	"fmt"
	"reflect"
)

type resourceSystemParamState struct {
	typ   reflect.Type
	world *World

	// true if the system wants the pointer type
	mutable bool
}

func makeResourceSystemParamState(world *World, typ reflect.Type) SystemParamState {
	r := resourceSystemParamState{
		world:   world,
		mutable: typ.Kind() == reflect.Pointer,
		typ:     typ,
	}

	if r.mutable {
		// if typ is a pointer, we reduce it to the type itself.
		r.typ = r.typ.Elem()
	}

	return r
}

func (r resourceSystemParamState) getValue(systemContext) reflect.Value {
	ptrToValue, ok := r.world.Resource(r.typ)
	if !ok {
		panic(fmt.Sprintf("Resource of type %s does not exist in world", r.typ))
	}

	if r.mutable {
		return reflect.ValueOf(ptrToValue)
	}

	return reflect.ValueOf(ptrToValue).Elem()
}

func (r resourceSystemParamState) cleanupValue(systemContext) {
}

func (r resourceSystemParamState) valueType() reflect.Type {
	if r.mutable {
		return reflect.PointerTo(r.typ)
	}

	return r.typ
}

// ResOption allows to inject a resource as a system param if it exists in the world.
// If the resource does not exist, the system will still run but a zero ResOption is injected.
type ResOption[T any] struct {
	Value *T
	world *World
}

func (r *ResOption[T]) init(world *World) SystemParamState {
	r.world = world
	return r
}

func (r *ResOption[T]) getValue(systemContext) reflect.Value {
	r.Value, _ = ResourceOf[T](r.world)
	return reflect.ValueOf(r).Elem()
}

func (r *ResOption[T]) cleanupValue(systemContext) {
}

func (r *ResOption[T]) valueType() reflect.Type {
	return reflect.TypeFor[ResOption[T]]()
}

// Local provides a value local to the system.
// It must be injected into a system as a pointer.
type Local[T any] struct {
	Value T
}

func (l *Local[T]) init(*World) SystemParamState {
	return l
}

func (l *Local[T]) getValue(systemContext) reflect.Value {
	return reflect.ValueOf(l)
}

func (l *Local[T]) cleanupValue(systemContext) {
	// no cleanup needed
}

func (*Local[T]) valueType() reflect.Type {
	return reflect.TypeFor[*Local[T]]()
}

// ResourceExists is a predicate that returns true if the resource exists.
func ResourceExists[T any](res ResOption[T]) bool {
	return res.Value != nil
}
