package byke

import (
	"fmt"
	"iter"
	"reflect"
)

// Query is a SystemParam that gives access to entities and their components.
//
// T is either a component type, a pointer to a component type or a struct. Each field
// of the struct describes one part of the query:
//
//   - EntityId: the id of the matched entity
//   - a component value C: the entity must have C, the value is a copy
//   - a component pointer *C: the entity must have C, changes are tracked
//   - Option[C] or OptionMut[C]: the component is fetched if present
//   - With[C], Without[C], Changed[C], Added[C]: filters, usually declared as blank fields
type Query[T any] struct {
	inner *queryState
}

func (*Query[T]) init(world *World) SystemParamState {
	plan, err := parseQuery(reflect.TypeFor[T]())
	if err != nil {
		panic(fmt.Sprintf("failed to parse query of type %s: %s", reflect.TypeFor[T](), err))
	}

	return &queryState{
		world:     world,
		plan:      plan,
		queryType: reflect.TypeFor[Query[T]](),
		tracked:   map[*componentValue]any{},
		makeValue: func(inner *queryState) reflect.Value {
			return reflect.ValueOf(Query[T]{inner: inner})
		},
	}
}

// Items iterates over all entities matching the query in spawn order.
func (q Query[T]) Items() iter.Seq[T] {
	return func(yield func(T) bool) {
		entities := q.inner.world.storage.entities

		for _, e := range entities {
			if !q.inner.matches(e) {
				continue
			}

			var target T
			q.inner.fill(reflect.ValueOf(&target).Elem(), e)

			if !yield(target) {
				return
			}
		}
	}
}

// Get returns the query item for the given entity, if the entity matches the query.
func (q Query[T]) Get(entityId EntityId) (T, bool) {
	var target T

	e, ok := q.inner.world.storage.Get(entityId)
	if !ok || !q.inner.matches(e) {
		return target, false
	}

	q.inner.fill(reflect.ValueOf(&target).Elem(), e)
	return target, true
}

// Single returns the only item of the query. It returns false if the query
// matches no entity or more than one.
func (q Query[T]) Single() (T, bool) {
	var result T
	var count int

	for item := range q.Items() {
		count++
		if count > 1 {
			var zero T
			return zero, false
		}

		result = item
	}

	return result, count == 1
}

// MustGet returns the first item of the query. It panics if the query is empty.
func (q Query[T]) MustGet() T {
	for value := range q.Items() {
		return value
	}

	panic(fmt.Sprintf("no values in query for type %s", reflect.TypeFor[T]()))
}

// Count returns the number of entities matching the query.
func (q Query[T]) Count() int {
	var count int

	for _, e := range q.inner.world.storage.entities {
		if q.inner.matches(e) {
			count++
		}
	}

	return count
}

// AppendTo appends all items of the query to the given slice.
func (q Query[T]) AppendTo(target []T) []T {
	for item := range q.Items() {
		target = append(target, item)
	}

	return target
}

type fieldKind uint8

const (
	fieldEntityId fieldKind = iota
	fieldValue
	fieldPointer
	fieldOption
)

type queryField struct {
	// index of the field within the query struct, or -1 if the query
	// type itself is the target
	index         int
	kind          fieldKind
	componentType *ComponentType
}

type filterKind uint8

const (
	filterWith filterKind = iota
	filterWithout
	filterChanged
	filterAdded
)

type queryFilter struct {
	kind          filterKind
	componentType *ComponentType
}

type queryPlan struct {
	fields  []queryField
	filters []queryFilter
}

func parseQuery(ty reflect.Type) (queryPlan, error) {
	var plan queryPlan

	if field, ok, err := parseQueryTarget(ty); ok || err != nil {
		field.index = -1
		plan.fields = append(plan.fields, field)
		return plan, err
	}

	if ty.Kind() != reflect.Struct {
		return plan, fmt.Errorf("type %s is neither a component nor a struct", ty)
	}

	for idx := range ty.NumField() {
		structField := ty.Field(idx)

		if filter, ok := asQueryFilter(structField.Type); ok {
			plan.filters = append(plan.filters, filter)
			continue
		}

		field, ok, err := parseQueryTarget(structField.Type)
		if err != nil {
			return plan, fmt.Errorf("field %q: %w", structField.Name, err)
		}

		if !ok {
			return plan, fmt.Errorf("field %q has unsupported type %s", structField.Name, structField.Type)
		}

		if !structField.IsExported() {
			return plan, fmt.Errorf("field %q must be exported", structField.Name)
		}

		field.index = idx
		plan.fields = append(plan.fields, field)
	}

	return plan, nil
}

func parseQueryTarget(ty reflect.Type) (queryField, bool, error) {
	switch {
	case ty == reflect.TypeFor[EntityId]():
		return queryField{kind: fieldEntityId}, true, nil

	case isComponentType(ty):
		return queryField{kind: fieldValue, componentType: componentTypeOf(ty)}, true, nil

	case ty.Kind() == reflect.Pointer && isComponentType(ty.Elem()):
		return queryField{kind: fieldPointer, componentType: componentTypeOf(ty.Elem())}, true, nil

	case reflect.PointerTo(ty).Implements(reflect.TypeFor[optionField]()):
		option := reflect.New(ty).Interface().(optionField)
		return queryField{kind: fieldOption, componentType: option.optionComponentType()}, true, nil
	}

	return queryField{}, false, nil
}

func asQueryFilter(ty reflect.Type) (queryFilter, bool) {
	provider, ok := reflect.Zero(ty).Interface().(queryFilterProvider)
	if !ok {
		return queryFilter{}, false
	}

	return provider.queryFilter(), true
}

type queryState struct {
	world     *World
	plan      queryPlan
	queryType reflect.Type

	lastRun Tick
	tick    Tick

	// snapshots of comparable components handed out as pointers
	tracked map[*componentValue]any

	makeValue func(inner *queryState) reflect.Value
}

func (q *queryState) getValue(sc systemContext) reflect.Value {
	q.lastRun = sc.LastRun
	q.tick = sc.Tick

	return q.makeValue(q)
}

func (q *queryState) cleanupValue(sc systemContext) {
	for value, snapshot := range q.tracked {
		if value.Ptr.Elem().Interface() != snapshot {
			value.Changed = sc.Tick
		}
	}

	clear(q.tracked)
}

func (q *queryState) valueType() reflect.Type {
	return q.queryType
}

func (q *queryState) matches(e *entity) bool {
	for _, field := range q.plan.fields {
		if field.kind != fieldValue && field.kind != fieldPointer {
			continue
		}

		if !e.Has(field.componentType) {
			return false
		}
	}

	for _, filter := range q.plan.filters {
		value, ok := e.Get(filter.componentType)

		switch filter.kind {
		case filterWith:
			if !ok {
				return false
			}

		case filterWithout:
			if ok {
				return false
			}

		case filterChanged:
			if !ok || value.Changed <= q.lastRun {
				return false
			}

		case filterAdded:
			if !ok || value.Added <= q.lastRun {
				return false
			}
		}
	}

	return true
}

func (q *queryState) fill(target reflect.Value, e *entity) {
	for _, field := range q.plan.fields {
		dst := target
		if field.index >= 0 {
			dst = target.Field(field.index)
		}

		switch field.kind {
		case fieldEntityId:
			dst.Set(reflect.ValueOf(e.Id))

		case fieldValue:
			value, _ := e.Get(field.componentType)
			dst.Set(value.Ptr.Elem())

		case fieldPointer:
			value, _ := e.Get(field.componentType)
			q.track(value)
			dst.Set(value.Ptr)

		case fieldOption:
			option := dst.Addr().Interface().(optionField)

			value, ok := e.Get(field.componentType)
			if !ok {
				option.setOption(reflect.Value{})
				continue
			}

			if option.mutableOption() {
				q.track(value)
			}

			option.setOption(value.Ptr)
		}
	}
}

// track records mutable access to a component value.
func (q *queryState) track(value *componentValue) {
	if !value.Ptr.Elem().Type().Comparable() {
		// can not compare later, assume the value was changed
		value.Changed = q.tick
		return
	}

	if _, ok := q.tracked[value]; !ok {
		q.tracked[value] = value.Ptr.Elem().Interface()
	}
}

type optionField interface {
	optionComponentType() *ComponentType
	mutableOption() bool
	setOption(ptr reflect.Value)
}

// Option fetches a copy of the component C, if the entity has one.
type Option[C IsComponent[C]] struct {
	value *C
}

func (o Option[C]) Get() (C, bool) {
	if o.value == nil {
		var zero C
		return zero, false
	}

	return *o.value, true
}

func (o Option[C]) OrZero() C {
	value, _ := o.Get()
	return value
}

func (o Option[C]) IsSome() bool {
	return o.value != nil
}

func (*Option[C]) optionComponentType() *ComponentType {
	return ComponentTypeOf[C]()
}

func (*Option[C]) mutableOption() bool {
	return false
}

func (o *Option[C]) setOption(ptr reflect.Value) {
	o.value = nil
	if ptr.IsValid() {
		o.value = ptr.Interface().(*C)
	}
}

// OptionMut fetches a pointer to the component C, if the entity has one.
type OptionMut[C IsComponent[C]] struct {
	value *C
}

func (o OptionMut[C]) Get() (*C, bool) {
	return o.value, o.value != nil
}

func (*OptionMut[C]) optionComponentType() *ComponentType {
	return ComponentTypeOf[C]()
}

func (*OptionMut[C]) mutableOption() bool {
	return true
}

func (o *OptionMut[C]) setOption(ptr reflect.Value) {
	o.value = nil
	if ptr.IsValid() {
		o.value = ptr.Interface().(*C)
	}
}

type queryFilterProvider interface {
	queryFilter() queryFilter
}

// With requires the entity to have the component C.
type With[C IsComponent[C]] struct{}

func (With[C]) queryFilter() queryFilter {
	return queryFilter{kind: filterWith, componentType: ComponentTypeOf[C]()}
}

// Without requires the entity to not have the component C.
type Without[C IsComponent[C]] struct{}

func (Without[C]) queryFilter() queryFilter {
	return queryFilter{kind: filterWithout, componentType: ComponentTypeOf[C]()}
}

// Changed matches entities whose component C was added or changed since
// the system ran the last time.
type Changed[C IsComponent[C]] struct{}

func (Changed[C]) queryFilter() queryFilter {
	return queryFilter{kind: filterChanged, componentType: ComponentTypeOf[C]()}
}

// Added matches entities whose component C was added since the system ran the last time.
type Added[C IsComponent[C]] struct{}

func (Added[C]) queryFilter() queryFilter {
	return queryFilter{kind: filterAdded, componentType: ComponentTypeOf[C]()}
}
