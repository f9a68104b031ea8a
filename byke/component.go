package byke

import (
	"fmt"
	"reflect"
	"sync"
)

// ErasedComponent is the type erased view of a component value.
// All components embed either Component or ComparableComponent which
// implement this interface.
type ErasedComponent interface {
	ComponentType() *ComponentType
}

// IsComponent is the constraint satisfied by types embedding Component[C] or ComparableComponent[C].
type IsComponent[C any] interface {
	ErasedComponent
	isComponent(C)
}

// Component must be embedded into a struct to turn it into a component type:
//
//	type Velocity struct {
//		byke.Component[Velocity]
//		X, Y float64
//	}
type Component[C IsComponent[C]] struct{}

func (Component[C]) ComponentType() *ComponentType {
	return ComponentTypeOf[C]()
}

func (Component[C]) isComponent(C) {}

// ComparableComponent works like Component, but also asserts that the type is comparable.
// Changes to comparable components are detected by comparing values, so writing
// the same value again does not mark the component as changed.
type ComparableComponent[C IsComponent[C]] struct{}

func (ComparableComponent[C]) ComponentType() *ComponentType {
	return ComponentTypeOf[C]()
}

func (ComparableComponent[C]) isComponent(C) {}

func (ComparableComponent[C]) isComparableComponent() {}

type isComparableComponent interface {
	isComparableComponent()
}

// ComponentType describes a component type known to byke.
type ComponentType struct {
	Type reflect.Type
	Name string

	// true if values of this component can be compared using ==
	comparable bool

	requiredOnce sync.Once
	required     []ErasedComponent
}

func (c *ComponentType) String() string {
	return c.Name
}

// RequiredComponents returns the components that must exist on an entity
// together with a component of this type.
func (c *ComponentType) RequiredComponents() []ErasedComponent {
	c.requiredOnce.Do(func() {
		value := reflect.New(c.Type).Interface()
		if req, ok := value.(requireComponents); ok {
			c.required = req.RequireComponents()
		}
	})

	return c.required
}

// New allocates a new zero value of the component and returns a pointer to it.
func (c *ComponentType) New() reflect.Value {
	return reflect.New(c.Type)
}

type requireComponents interface {
	RequireComponents() []ErasedComponent
}

var componentTypes sync.Map

// ComponentTypeOf returns the ComponentType for C.
func ComponentTypeOf[C any]() *ComponentType {
	return componentTypeOf(reflect.TypeFor[C]())
}

func componentTypeOf(ty reflect.Type) *ComponentType {
	if cached, ok := componentTypes.Load(ty); ok {
		return cached.(*ComponentType)
	}

	componentType := &ComponentType{
		Type:       ty,
		Name:       ty.String(),
		comparable: ty.Comparable(),
	}

	actual, _ := componentTypes.LoadOrStore(ty, componentType)
	return actual.(*ComponentType)
}

// ValidateComponent checks that C is a well formed component type. It panics
// if it is not. The return value is always true, so the function can be used
// at package level:
//
//	var _ = byke.ValidateComponent[Velocity]()
func ValidateComponent[C IsComponent[C]]() bool {
	ty := reflect.TypeFor[C]()

	if ty.Kind() != reflect.Struct {
		panic(fmt.Sprintf("component %s must be a struct", ty))
	}

	var zero C
	if _, ok := any(zero).(isComparableComponent); ok && !ty.Comparable() {
		panic(fmt.Sprintf("component %s embeds ComparableComponent but is not comparable", ty))
	}

	componentTypeOf(ty)

	return true
}

func isComponentType(ty reflect.Type) bool {
	return ty.Kind() == reflect.Struct && ty.Implements(reflect.TypeFor[ErasedComponent]())
}

// Bundle groups multiple components into one value. Bundles are flattened
// when spawning an entity.
func Bundle(components ...ErasedComponent) ErasedComponent {
	return &bundleComponent{Components: components}
}

type bundleComponent struct {
	Component[bundleComponent]
	Components []ErasedComponent
}

// SpawnChild spawns a new child entity with the given components
// when the component is added to an entity.
func SpawnChild(components ...ErasedComponent) ErasedComponent {
	return &spawnChildComponent{Components: components}
}

type spawnChildComponent struct {
	Component[spawnChildComponent]
	Components []ErasedComponent
}

func flattenComponents(target []ErasedComponent, components ...ErasedComponent) []ErasedComponent {
	for _, component := range components {
		if bundle, ok := component.(*bundleComponent); ok {
			// recurse into the bundle and flatten its components
			target = flattenComponents(target, bundle.Components...)
		} else {
			target = append(target, component)
		}
	}

	return target
}
