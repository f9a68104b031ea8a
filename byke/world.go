package byke

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/oliverbestmann/glowmenu/byke/internal/set"
)

type AnyPtr = any

// World holds all entities and resources, schedules, systems, etc.
// While an empty World can be created using NewWorld, it is normally created and configured
// by using the App api.
type World struct {
	storage     *storage
	entityIdSeq EntityId
	resources   map[reflect.Type]reflect.Value
	schedules   map[ScheduleId]*schedule
	currentTick Tick

	// systems prepared by RunSystem, reused between calls
	systems map[systemCacheKey]*preparedSystem
}

type systemCacheKey struct {
	Id   SystemId
	Type reflect.Type
}

// NewWorld creates a new empty world.
// You probably want to use the App api instead.
func NewWorld() *World {
	return &World{
		storage:     newStorage(),
		resources:   map[reflect.Type]reflect.Value{},
		schedules:   map[ScheduleId]*schedule{},
		systems:     map[systemCacheKey]*preparedSystem{},
		currentTick: 1,
	}
}

// AddSystems adds systems to a schedule within the world.
func (w *World) AddSystems(scheduleId ScheduleId, firstSystem AnySystem, systems ...AnySystem) {
	schedule := w.scheduleOf(scheduleId)

	systems = append([]AnySystem{firstSystem}, systems...)

	for _, config := range asSystemConfigs(systems...) {
		schedule.AddSystem(w.prepareSystem(config))
	}

	if err := schedule.UpdateSystemOrdering(); err != nil {
		panic(fmt.Sprintf("schedule %s: %s", scheduleId, err))
	}
}

// RunSystem runs a system once. It returns the systems return value, or nil,
// if the system does not return anything.
//
// The system is prepared on first use and its state, like Local values or the tick
// of its last run, is kept for later calls.
func (w *World) RunSystem(system AnySystem) any {
	configs := asSystemConfigs(system)
	if len(configs) != 1 {
		panic("RunSystem expects exactly one system")
	}

	config := configs[0]
	key := systemCacheKey{Id: config.Id, Type: config.Fn.Type()}

	prepared, ok := w.systems[key]
	if !ok {
		prepared = w.prepareSystem(config)
		w.systems[key] = prepared
	}

	// closures created by the same function literal share the same id,
	// always call the function we were given
	prepared.Fn = config.Fn

	return w.runSystem(prepared)
}

func (w *World) scheduleOf(scheduleId ScheduleId) *schedule {
	schedule, ok := w.schedules[scheduleId]
	if !ok {
		schedule = newSchedule(scheduleId)
		w.schedules[scheduleId] = schedule
	}

	return schedule
}

// RunSchedule runs the schedule identified by the given ScheduleId.
// If no schedule with this id exists, no action is performed.
func (w *World) RunSchedule(scheduleId ScheduleId) {
	schedule, ok := w.schedules[scheduleId]
	if !ok {
		return
	}

	// remove the schedule while it is executed
	delete(w.schedules, scheduleId)

	// add the schedule back once it has finished executing
	defer func() {
		if _, exists := w.schedules[scheduleId]; exists {
			panic(fmt.Sprintf("The schedule %q was modified while it is being executed", scheduleId))
		}

		w.schedules[scheduleId] = schedule
	}()

	for _, system := range schedule.systems {
		w.runSystem(system)
	}
}

func (w *World) runSystem(system *preparedSystem) any {
	for _, predicate := range system.Predicates {
		result := w.runSystem(predicate)

		shouldRun, _ := result.(bool)
		if !shouldRun {
			// predicate evaluated to "do not run", stop execution here
			return nil
		}
	}

	w.currentTick += 1

	ctx := systemContext{
		LastRun: system.LastRun,
		Tick:    w.currentTick,
	}

	result := system.Run(ctx)

	// update last run so we can calculate changed components
	// at the next run
	system.LastRun = ctx.Tick

	return result
}

// Spawn spawns a new entity with the given components.
func (w *World) Spawn(components ...ErasedComponent) EntityId {
	return w.spawnWithEntityId(w.reserveEntityId(), components)
}

func (w *World) reserveEntityId() EntityId {
	w.entityIdSeq += 1
	return w.entityIdSeq
}

func (w *World) spawnWithEntityId(entityId EntityId, components []ErasedComponent) EntityId {
	w.storage.Spawn(entityId)
	w.insertComponents(entityId, components)
	return entityId
}

func (w *World) insertComponents(entityId EntityId, components []ErasedComponent) {
	e, ok := w.storage.Get(entityId)
	if !ok {
		slog.Warn("Cannot insert components, entity does not exist", slog.String("entity", entityId.String()))
		return
	}

	components, spawnChildren := w.prepareComponents(e, components)

	for _, component := range components {
		if childOf, ok := component.(ChildOf); ok {
			if previous, ok := e.Get(ComponentTypeOf[ChildOf]()); ok {
				w.detachFromParent(entityId, previous.Ptr.Elem().Interface().(ChildOf).Parent)
			}

			w.attachToParent(entityId, childOf.Parent)
		}

		w.storage.Insert(w.currentTick, e, component)
	}

	// now spawn all children as necessary
	for _, spawnChild := range spawnChildren {
		childComponents := append(slices.Clone(spawnChild.Components), ChildOf{Parent: entityId})
		w.spawnWithEntityId(w.reserveEntityId(), childComponents)
	}
}

func (w *World) prepareComponents(e *entity, components []ErasedComponent) (collected []ErasedComponent, spawnChildren []*spawnChildComponent) {
	queue := flattenComponents(nil, components...)

	// number of components that were given explicitly
	explicit := len(queue)

	var inserted set.Set[*ComponentType]

	for idx := 0; idx < len(queue); idx++ {
		component := queue[idx]

		// special handling for spawn child components. do not add them to
		// the entity, but put them into a list that we go through at the
		// end to spawn children
		if spawnChild, ok := component.(*spawnChildComponent); ok {
			spawnChildren = append(spawnChildren, spawnChild)
			continue
		}

		// required components may themselves be bundles
		if bundle, ok := component.(*bundleComponent); ok {
			queue = flattenComponents(queue, bundle.Components...)
			continue
		}

		componentType := component.ComponentType()

		// skip if we've already added the component type
		if !inserted.Insert(componentType) {
			continue
		}

		if componentType == ComponentTypeOf[Children]() {
			panic("you may not insert byke.Children yourself")
		}

		// required components do not overwrite existing ones
		if idx >= explicit && e.Has(componentType) {
			continue
		}

		collected = append(collected, derefComponent(component))

		// enqueue all required components
		queue = append(queue, componentType.RequiredComponents()...)
	}

	return collected, spawnChildren
}

func derefComponent(component ErasedComponent) ErasedComponent {
	value := reflect.ValueOf(component)
	if value.Kind() == reflect.Pointer {
		return value.Elem().Interface().(ErasedComponent)
	}

	return component
}

func (w *World) attachToParent(childId, parentId EntityId) {
	parent, ok := w.storage.Get(parentId)
	if !ok {
		panic(fmt.Sprintf("parent entity %s does not exist", parentId))
	}

	var children Children
	if value, ok := parent.Get(ComponentTypeOf[Children]()); ok {
		children = value.Ptr.Elem().Interface().(Children)
	}

	w.storage.Insert(w.currentTick, parent, children.with(childId))
}

func (w *World) detachFromParent(childId, parentId EntityId) {
	parent, ok := w.storage.Get(parentId)
	if !ok {
		return
	}

	value, ok := parent.Get(ComponentTypeOf[Children]())
	if !ok {
		return
	}

	children := value.Ptr.Elem().Interface().(Children).without(childId)
	if children.Len() == 0 {
		w.storage.Remove(parent, ComponentTypeOf[Children]())
		return
	}

	w.storage.Insert(w.currentTick, parent, children)
}

// Despawn recursively despawns the given entity following Children relations.
func (w *World) Despawn(entityId EntityId) {
	e, ok := w.storage.Get(entityId)
	if !ok {
		slog.Debug("Cannot despawn entity, does not exist", slog.String("entity", entityId.String()))
		return
	}

	if value, ok := e.Get(ComponentTypeOf[ChildOf]()); ok {
		w.detachFromParent(entityId, value.Ptr.Elem().Interface().(ChildOf).Parent)
	}

	queue := []EntityId{entityId}

	for idx := 0; idx < len(queue); idx++ {
		e, ok := w.storage.Get(queue[idx])
		if !ok {
			continue
		}

		if value, ok := e.Get(ComponentTypeOf[Children]()); ok {
			queue = append(queue, value.Ptr.Elem().Interface().(Children).Children()...)
		}
	}

	for _, entityId := range queue {
		w.storage.Despawn(entityId)
	}
}

// Exists returns true, if the entity exists in the world.
func (w *World) Exists(entityId EntityId) bool {
	_, ok := w.storage.Get(entityId)
	return ok
}

func (w *World) removeComponent(entityId EntityId, componentType *ComponentType) {
	e, ok := w.storage.Get(entityId)
	if !ok {
		return
	}

	component, ok := w.storage.Remove(e, componentType)
	if !ok {
		return
	}

	if childOf, ok := component.(ChildOf); ok {
		w.detachFromParent(entityId, childOf.Parent)
	}
}

// InsertResource inserts a new resource into the world.
// The resource should be provided as a non-pointer type.
//
// If the resource does not yet exist, a new value of the resources type will
// be allocated on the heap and the value provided will be copied into that memory location.
//
// If the world already contains a resource of the same type, this value will
// just be updated with the newly provided one.
func (w *World) InsertResource(resource any) {
	value := reflect.ValueOf(resource)
	if value.Kind() == reflect.Pointer {
		panic(fmt.Sprintf("resource must not be a pointer: %s", value.Type()))
	}

	if existing, ok := w.resources[value.Type()]; ok {
		// update existing value in place
		existing.Elem().Set(value)
		return
	}

	// allocate the resource on the heap and copy the provided value to it
	ptr := reflect.New(value.Type())
	ptr.Elem().Set(value)

	w.resources[value.Type()] = ptr
}

// RemoveResource removes a resource previously added with InsertResource.
func (w *World) RemoveResource(resourceType reflect.Type) {
	delete(w.resources, resourceType)
}

// Resource returns a pointer to the resource of the given reflect type.
// The type must be the non-pointer type of the resource, i.e. the type of the resource
// as it was passed to InsertResource.
func (w *World) Resource(ty reflect.Type) (AnyPtr, bool) {
	ptr, ok := w.resources[ty]
	if !ok {
		return nil, false
	}

	return ptr.Interface(), true
}

// ResourceOf is a typed version of World.Resource.
func ResourceOf[T any](w *World) (*T, bool) {
	value, ok := w.Resource(reflect.TypeFor[T]())
	if !ok {
		return nil, false
	}

	return value.(*T), true
}
