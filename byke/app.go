package byke

import (
	"fmt"
	"reflect"
)

// App is the entry point to configure and run a World.
// The zero value is ready to use.
type App struct {
	world *World
	run   RunWorld
}

// World returns the world of the app, creating it on first use.
func (a *App) World() *World {
	if a.world == nil {
		a.world = NewWorld()

		configureSchedules(a)
	}

	return a.world
}

func (a *App) AddPlugin(plugin Plugin) {
	plugin.ApplyTo(a)
}

func (a *App) AddSystems(scheduleId ScheduleId, system AnySystem, systems ...AnySystem) {
	if !reflect.ValueOf(scheduleId).Comparable() {
		panic(fmt.Sprintf("scheduleId must be comparable: %s", scheduleId))
	}

	a.World().AddSystems(scheduleId, system, systems...)
}

func (a *App) InsertResource(res any) {
	a.World().InsertResource(res)
}

// InitState registers a state type, e.g. byke.StateType[MyState]{InitialValue: MyStateMenu}
func (a *App) InitState(state stateConfigurer) {
	state.configureStateIn(a)
}

// AddMessage registers a message type, e.g. byke.MessageType[MyMessage]()
func (a *App) AddMessage(message AddMessageType) {
	message.configureMessageIn(a)
}

// RunWorld sets the function that drives the world. Plugins that own
// the main loop, like a game engine integration, use this to take over.
func (a *App) RunWorld(run RunWorld) {
	a.run = run
}

// Run runs the app until the RunWorld function returns.
func (a *App) Run() error {
	if a.run == nil {
		a.run = func(world *World) error {
			for {
				world.RunSchedule(Main)
			}
		}
	}

	return a.run(a.World())
}

type Plugin interface {
	ApplyTo(app *App)
}

type PluginFunc func(app *App)

func (plugin PluginFunc) ApplyTo(app *App) {
	plugin(app)
}

type RunWorld func(world *World) error
