package byke

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type systemTrace struct {
	calls []string
}

func (s *systemTrace) system(name string) func() {
	return func() {
		s.calls = append(s.calls, name)
	}
}

func a() {}
func b() {}
func c() {}

func TestSystemOrdering(t *testing.T) {
	t.Run("insertion order", func(t *testing.T) {
		var calls []string

		w := NewWorld()
		w.AddSystems(Update,
			func() { calls = append(calls, "first") },
			func() { calls = append(calls, "second") },
		)

		w.RunSchedule(Update)
		require.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("after", func(t *testing.T) {
		var calls []string

		first := func() { calls = append(calls, "first") }
		second := func() { calls = append(calls, "second") }

		w := NewWorld()
		w.AddSystems(Update, System(first).After(second), second)

		w.RunSchedule(Update)
		require.Equal(t, []string{"second", "first"}, calls)
	})

	t.Run("before", func(t *testing.T) {
		var calls []string

		first := func() { calls = append(calls, "first") }
		second := func() { calls = append(calls, "second") }

		w := NewWorld()
		w.AddSystems(Update, first)
		w.AddSystems(Update, System(second).Before(first))

		w.RunSchedule(Update)
		require.Equal(t, []string{"second", "first"}, calls)
	})

	t.Run("chain", func(t *testing.T) {
		var calls []string

		first := func() { calls = append(calls, "first") }
		second := func() { calls = append(calls, "second") }
		third := func() { calls = append(calls, "third") }

		w := NewWorld()
		w.AddSystems(Update, System(third).After(second))
		w.AddSystems(Update, System(first, second).Chain())

		w.RunSchedule(Update)
		require.Equal(t, []string{"first", "second", "third"}, calls)
	})

	t.Run("cycle panics", func(t *testing.T) {
		w := NewWorld()

		require.Panics(t, func() {
			w.AddSystems(Update, System(a).After(b), System(b).After(a))
		})
	})
}

func TestTopologicalSystemOrder(t *testing.T) {
	w := NewWorld()

	prepare := func(system AnySystem) *preparedSystem {
		return w.prepareSystem(asSystemConfigs(system)[0])
	}

	systems := []*preparedSystem{
		prepare(System(c).After(b)),
		prepare(System(b).After(a)),
		prepare(a),
	}

	ordered, err := topologicalSystemOrder(systems)
	require.NoError(t, err)

	var ids []SystemId
	for _, system := range ordered {
		ids = append(ids, system.Id)
	}

	require.Equal(t, []SystemId{systems[2].Id, systems[1].Id, systems[0].Id}, ids)
}

func TestMainSchedule(t *testing.T) {
	var trace systemTrace

	var app App
	app.AddSystems(PreStartup, trace.system("PreStartup"))
	app.AddSystems(Startup, trace.system("Startup"))
	app.AddSystems(PostStartup, trace.system("PostStartup"))
	app.AddSystems(First, trace.system("First"))
	app.AddSystems(Update, trace.system("Update"))
	app.AddSystems(Render, trace.system("Render"))
	app.AddSystems(Last, trace.system("Last"))

	w := app.World()
	w.RunSchedule(Main)
	w.RunSchedule(Main)

	require.Equal(t, []string{
		"PreStartup", "Startup", "PostStartup",
		"First", "Update", "Render", "Last",
		"First", "Update", "Render", "Last",
	}, trace.calls)
}

func TestVirtualTime(t *testing.T) {
	var app App

	w := app.World()
	w.RunSchedule(Main)
	w.RunSchedule(Main)

	vt, ok := ResourceOf[VirtualTime](w)
	require.True(t, ok)
	require.Equal(t, 1.0, vt.Scale)
	require.GreaterOrEqual(t, vt.Elapsed, vt.Delta)
}
