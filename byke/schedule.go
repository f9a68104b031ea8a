package byke

import (
	"errors"
	"fmt"
	"time"
)

// ScheduleId identifies a schedule. All implementing types must be comparable.
type ScheduleId interface {
	fmt.Stringer
	isSchedule()
}

type scheduleId struct {
	name string
}

func (*scheduleId) isSchedule() {}

func (s *scheduleId) String() string {
	return s.name
}

// MakeScheduleId creates a new unique ScheduleId.
// The name passed to the schedule is used for debugging
func MakeScheduleId(name string) ScheduleId {
	return &scheduleId{name: name}
}

var (
	// Main is the main schedule that executes all other schedules in the correct order.
	Main = MakeScheduleId("Main")

	PreStartup      = MakeScheduleId("PreStartup")
	Startup         = MakeScheduleId("Startup")
	PostStartup     = MakeScheduleId("PostStartup")
	First           = MakeScheduleId("First")
	PreUpdate       = MakeScheduleId("PreUpdate")
	StateTransition = MakeScheduleId("StateTransition")
	Update          = MakeScheduleId("Update")
	PostUpdate      = MakeScheduleId("PostUpdate")
	PreRender       = MakeScheduleId("PreRender")
	Render          = MakeScheduleId("Render")
	PostRender      = MakeScheduleId("PostRender")
	Last            = MakeScheduleId("Last")
)

func configureSchedules(app *App) {
	app.InsertResource(VirtualTime{Scale: 1.0})

	app.AddSystems(Main, System(updateVirtualTime, runMainSchedule).Chain())
}

func runMainSchedule(world *World, initialized *Local[bool]) {
	if !initialized.Value {
		initialized.Value = true

		// initialize once
		world.RunSchedule(PreStartup)
		world.RunSchedule(StateTransition)
		world.RunSchedule(Startup)
		world.RunSchedule(PostStartup)
	}

	// start the new frame
	world.RunSchedule(First)

	// the update schedule
	world.RunSchedule(PreUpdate)
	world.RunSchedule(StateTransition)
	world.RunSchedule(Update)
	world.RunSchedule(PostUpdate)

	world.RunSchedule(PreRender)
	world.RunSchedule(Render)
	world.RunSchedule(PostRender)

	// end the frame
	world.RunSchedule(Last)
}

type schedule struct {
	id      ScheduleId
	added   []*preparedSystem
	systems []*preparedSystem
}

func newSchedule(id ScheduleId) *schedule {
	return &schedule{id: id}
}

func (s *schedule) AddSystem(system *preparedSystem) {
	s.added = append(s.added, system)
}

func (s *schedule) UpdateSystemOrdering() error {
	ordering, err := topologicalSystemOrder(s.added)
	if err != nil {
		return err
	}

	s.systems = ordering
	return nil
}

// topologicalSystemOrder sorts the systems using Kahn's algorithm. Systems without
// constraints between them keep the order in which they were added.
func topologicalSystemOrder(systems []*preparedSystem) ([]*preparedSystem, error) {
	byId := map[SystemId][]int{}
	for idx, system := range systems {
		byId[system.Id] = append(byId[system.Id], idx)
	}

	edges := make([][]int, len(systems))
	inDegree := make([]int, len(systems))

	addEdge := func(from, to int) {
		if from == to {
			return
		}

		edges[from] = append(edges[from], to)
		inDegree[to]++
	}

	for idx, system := range systems {
		for before := range system.Before.Values() {
			for _, other := range byId[before] {
				addEdge(idx, other)
			}
		}

		for after := range system.After.Values() {
			for _, other := range byId[after] {
				addEdge(other, idx)
			}
		}
	}

	var result []*preparedSystem

	done := make([]bool, len(systems))

	for len(result) < len(systems) {
		// pick the first system in insertion order that has no open dependencies
		next := -1
		for idx := range systems {
			if !done[idx] && inDegree[idx] == 0 {
				next = idx
				break
			}
		}

		if next < 0 {
			return nil, errors.New("cycle detected in system ordering")
		}

		done[next] = true
		result = append(result, systems[next])

		for _, other := range edges[next] {
			inDegree[other]--
		}
	}

	return result, nil
}

// VirtualTime tracks time.
//
// The progression of time can be scaled by setting the Scale field.
// This will scale the Delta and DeltaSecs values starting at the next frame.
type VirtualTime struct {
	Elapsed   time.Duration
	Delta     time.Duration
	DeltaSecs float64

	Scale float64
}

func updateVirtualTime(v *VirtualTime, lastTime *Local[time.Time]) {
	now := time.Now()

	if lastTime.Value.IsZero() {
		lastTime.Value = now
		return
	}

	delta := time.Duration(float64(now.Sub(lastTime.Value)) * v.Scale)
	lastTime.Value = now

	v.Delta = delta
	v.DeltaSecs = v.Delta.Seconds()
	v.Elapsed += v.Delta
}
