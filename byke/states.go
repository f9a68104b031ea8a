package byke

import (
	"fmt"
	"log/slog"
	"reflect"
)

// StateType registers a state of type S with the App using App.InitState.
type StateType[S comparable] struct {
	InitialValue S
}

func (r StateType[S]) configureStateIn(app *App) {
	ValidateComponent[DespawnOnExitStateComponent[S]]()

	app.InsertResource(State[S]{current: r.InitialValue})
	app.InsertResource(NextState[S]{})

	app.AddSystems(StateTransition, performStateTransition[S])
	app.AddSystems(OnChange[S](), despawnOnExitStateSystem[S])
}

type stateConfigurer interface {
	configureStateIn(app *App)
}

// DespawnOnExitState marks an entity to be despawned once the state S is exited.
func DespawnOnExitState[S comparable](state S) DespawnOnExitStateComponent[S] {
	return DespawnOnExitStateComponent[S]{state: state}
}

type stateChangedScheduleId[S comparable] struct {
	value S

	enter  bool
	exit   bool
	change bool
}

func (stateChangedScheduleId[S]) isSchedule() {}

func (s stateChangedScheduleId[S]) String() string {
	stateType := reflect.TypeFor[S]()

	switch {
	case s.enter:
		return fmt.Sprintf("OnEnter[%s](%v)", stateType, s.value)
	case s.exit:
		return fmt.Sprintf("OnExit[%s](%v)", stateType, s.value)
	default:
		return fmt.Sprintf("OnChange[%s]", stateType)
	}
}

// OnEnter returns the schedule that runs when the state changes to the given value.
// For the initial state value, the schedule runs during the first StateTransition.
func OnEnter[S comparable](stateValue S) ScheduleId {
	return stateChangedScheduleId[S]{value: stateValue, enter: true}
}

// OnExit returns the schedule that runs when the state changes away from the given value.
func OnExit[S comparable](stateValue S) ScheduleId {
	return stateChangedScheduleId[S]{value: stateValue, exit: true}
}

// OnChange returns the schedule that runs on every transition of state S.
// It runs before OnExit and OnEnter.
func OnChange[S comparable]() ScheduleId {
	return stateChangedScheduleId[S]{change: true}
}

// State holds the current value of state S.
type State[S comparable] struct {
	current     S
	initialized bool
}

func (s State[S]) Current() S {
	return s.current
}

// NextState queues a state transition that is applied in the next StateTransition schedule.
type NextState[S comparable] struct {
	isSet bool
	next  S
}

func (n *NextState[S]) Set(nextState S) {
	n.isSet = true
	n.next = nextState
}

func (n *NextState[S]) Clear() {
	var zeroState S

	n.isSet = false
	n.next = zeroState
}

// Pending returns the queued state, if any.
func (n NextState[S]) Pending() (S, bool) {
	return n.next, n.isSet
}

type DespawnOnExitStateComponent[S comparable] struct {
	Component[DespawnOnExitStateComponent[S]]
	state S
}

func performStateTransition[S comparable](world *World, state *State[S], nextState *NextState[S]) {
	if !state.initialized {
		// we need to run the OnEnter schedule once
		state.initialized = true
		world.RunSchedule(OnEnter(state.current))
		return
	}

	if !nextState.isSet {
		return
	}

	next := nextState.next
	nextState.Clear()

	if next == state.current {
		return
	}

	// keep the previous state value so we can trigger OnExit
	previousState := state.current
	state.current = next

	slog.Debug(
		"State transition",
		slog.String("type", reflect.TypeFor[S]().String()),
		slog.Any("from", previousState),
		slog.Any("to", next),
	)

	world.RunSchedule(OnChange[S]())
	world.RunSchedule(OnExit(previousState))
	world.RunSchedule(OnEnter(state.current))
}

type despawnStateScopedItem[S comparable] struct {
	EntityId    EntityId
	StateScoped DespawnOnExitStateComponent[S]
}

func despawnOnExitStateSystem[S comparable](
	commands *Commands,
	state State[S],
	query Query[despawnStateScopedItem[S]],
) {
	for item := range query.Items() {
		if item.StateScoped.state != state.Current() {
			commands.Entity(item.EntityId).Despawn()
		}
	}
}

// InState returns a predicate that is true while the state S has the given value.
func InState[S comparable](stateValue S) func(State[S]) bool {
	return func(state State[S]) bool {
		return state.current == stateValue
	}
}
