package byke

import (
	"fmt"
	"reflect"
)

// SystemParam is an interface to give a type special behaviour when it is used
// as a parameter to a system.
//
// While a system is being prepared, byke will check each parameter if it fulfills
// the SystemParam interface. If a parameter type does, a new instance will be allocated
// and the init method will be called.
//
// See Local, ResOption or Query for some implementations of SystemParam.
type SystemParam interface {
	init(world *World) SystemParamState
}

// SystemParamState is the state produced by SystemParam.
type SystemParamState interface {
	// getValue returns the value that should be passed to the system.
	getValue(sc systemContext) reflect.Value

	// cleanupValue will be called once the system is executed. It is used
	// to e.g. apply a Commands object against the world
	cleanupValue(sc systemContext)

	// valueType returns the exact type that getValue will return. This is used
	// while preparing
	valueType() reflect.Type
}

type systemContext struct {
	// tick of the previous run of the system
	LastRun Tick

	// tick of the current run of the system
	Tick Tick
}

// valueSystemParamState is a simple implementation of SystemParamState
// that just returns a constant value
type valueSystemParamState reflect.Value

func (s valueSystemParamState) getValue(systemContext) reflect.Value {
	return reflect.Value(s)
}

func (s valueSystemParamState) valueType() reflect.Type {
	return reflect.Value(s).Type()
}

func (valueSystemParamState) cleanupValue(systemContext) {
	// do nothing
}

type preparedSystem struct {
	*systemConfig

	LastRun    Tick
	Predicates []*preparedSystem

	params []SystemParamState
}

func (w *World) prepareSystem(config *systemConfig) *preparedSystem {
	fn := config.Fn
	fnType := fn.Type()

	system := &preparedSystem{systemConfig: config}

	for idx := range fnType.NumIn() {
		system.params = append(system.params, w.makeSystemParamState(fnType.In(idx)))
	}

	// verify that all the param types match their actual types
	for idx, param := range system.params {
		inType := fnType.In(idx)
		if !param.valueType().AssignableTo(inType) {
			panic(fmt.Sprintf("argument %d of %s is not assignable to param value of type %s", idx, config.Name, inType))
		}
	}

	for _, predicate := range config.Predicates {
		for _, predicateConfig := range asSystemConfigs(predicate) {
			predicateType := predicateConfig.Fn.Type()
			if predicateType.NumOut() != 1 || predicateType.Out(0).Kind() != reflect.Bool {
				panic(fmt.Sprintf("predicate %s must return a single bool", predicateConfig.Name))
			}

			system.Predicates = append(system.Predicates, w.prepareSystem(predicateConfig))
		}
	}

	return system
}

func (w *World) makeSystemParamState(inType reflect.Type) SystemParamState {
	tySystemParam := reflect.TypeFor[SystemParam]()

	switch {
	case inType == reflect.TypeFor[*World]():
		return valueSystemParamState(reflect.ValueOf(w))

	case inType.Implements(tySystemParam), reflect.PointerTo(inType).Implements(tySystemParam):
		ty := inType
		for ty.Kind() == reflect.Pointer {
			ty = ty.Elem()
		}

		// allocate a new instance on the heap and initialize it using the world
		param := reflect.New(ty).Interface().(SystemParam)
		return param.init(w)

	default:
		// everything else is treated as a resource
		return makeResourceSystemParamState(w, inType)
	}
}

// Run executes the system and returns its result, if any.
func (s *preparedSystem) Run(sc systemContext) any {
	paramValues := make([]reflect.Value, len(s.params))
	for idx, param := range s.params {
		paramValues[idx] = param.getValue(sc)
	}

	results := s.Fn.Call(paramValues)

	for _, param := range s.params {
		param.cleanupValue(sc)
	}

	if len(results) == 0 {
		return nil
	}

	return results[0].Interface()
}
