package byke

import (
	"reflect"
	"runtime"

	"github.com/oliverbestmann/glowmenu/byke/internal/set"
)

// SystemId identifies a system function. Systems that are built from the same
// function share the same id.
type SystemId uint64

// AnySystem is either a function or a value returned by System.
type AnySystem any

type asSystemConfigsProvider interface {
	asSystemConfigs() []*systemConfig
}

type systemConfig struct {
	Id   SystemId
	Name string

	// the actual fn, must be a function
	Fn reflect.Value

	Before     set.Set[SystemId]
	After      set.Set[SystemId]
	Predicates []AnySystem
}

func asSystemConfig(value AnySystem) *systemConfig {
	if config, ok := value.(*systemConfig); ok {
		return config
	}

	fn := reflect.ValueOf(value)
	if fn.Kind() != reflect.Func {
		panic("system is not a function: " + fn.Type().String())
	}

	return &systemConfig{
		Id:   systemIdOf(fn),
		Name: systemNameOf(fn),
		Fn:   fn,
	}
}

func asSystemConfigs(values ...AnySystem) []*systemConfig {
	var configs []*systemConfig

	for _, value := range values {
		switch value := value.(type) {
		case asSystemConfigsProvider:
			configs = append(configs, value.asSystemConfigs()...)

		default:
			configs = append(configs, asSystemConfig(value))
		}
	}

	return configs
}

func systemIdOf(fn reflect.Value) SystemId {
	return SystemId(uintptr(fn.UnsafePointer()))
}

func systemNameOf(fn reflect.Value) string {
	if f := runtime.FuncForPC(uintptr(fn.UnsafePointer())); f != nil {
		return f.Name()
	}

	return fn.Type().String()
}

// Systems configures one or more systems. Use System to create a new value.
type Systems struct {
	systems []AnySystem

	chain      bool
	after      set.Set[SystemId]
	before     set.Set[SystemId]
	predicates []AnySystem
}

// System groups the given systems so they can be configured together.
func System(systems ...AnySystem) Systems {
	return Systems{systems: systems}
}

func (s Systems) asSystemConfigs() []*systemConfig {
	configs := asSystemConfigs(s.systems...)

	for idx, config := range configs {
		// configs might be shared with other Systems values, take a copy
		copied := *config
		copied.Before = config.Before.Clone()
		copied.After = config.After.Clone()
		copied.Predicates = append([]AnySystem(nil), config.Predicates...)

		copied.After.InsertAll(s.after.Values())
		copied.Before.InsertAll(s.before.Values())
		copied.Predicates = append(copied.Predicates, s.predicates...)

		configs[idx] = &copied
	}

	if s.chain {
		for idx := 0; idx < len(configs)-1; idx++ {
			configs[idx].Before.Insert(configs[idx+1].Id)
		}
	}

	return configs
}

// Chain runs the systems in the order they were given.
func (s Systems) Chain() Systems {
	s.chain = true
	return s
}

// After runs the systems after the other systems.
func (s Systems) After(other AnySystem) Systems {
	s.after = s.after.Clone()
	for _, system := range asSystemConfigs(other) {
		s.after.Insert(system.Id)
	}

	return s
}

// Before runs the systems before the other systems.
func (s Systems) Before(other AnySystem) Systems {
	s.before = s.before.Clone()
	for _, system := range asSystemConfigs(other) {
		s.before.Insert(system.Id)
	}

	return s
}

// RunIf adds a predicate. The predicate is a system returning a bool. The systems
// only run if all of their predicates return true.
func (s Systems) RunIf(predicate AnySystem) Systems {
	s.predicates = append(append([]AnySystem(nil), s.predicates...), predicate)
	return s
}
