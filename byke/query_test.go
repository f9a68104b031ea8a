package byke

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunSystemWithQuery(t *testing.T) {
	w := buildSimpleWorld()

	t.Run("query with immutable component", func(t *testing.T) {
		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[Position]) {
				allGood()
				require.Len(t, slices.Collect(q.Items()), 3)
			})
		})
	})

	t.Run("query with mutable component", func(t *testing.T) {
		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[*Position]) {
				allGood()
				require.Len(t, slices.Collect(q.Items()), 3)
			})
		})
	})

	t.Run("query with optional component", func(t *testing.T) {
		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[Option[Player]]) {
				allGood()

				var players int
				for item := range q.Items() {
					if item.IsSome() {
						players++
					}
				}

				require.Equal(t, 3, q.Count())
				require.Equal(t, 1, players)
			})
		})
	})

	t.Run("query with struct", func(t *testing.T) {
		type MoveableItem struct {
			Position Position
			Velocity Velocity
		}

		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[MoveableItem]) {
				allGood()
				require.Len(t, slices.Collect(q.Items()), 2)
			})
		})
	})

	t.Run("query with struct and filters", func(t *testing.T) {
		type PlayerItem struct {
			_        With[Player]
			_        Without[Enemy]
			EntityId EntityId
			Name     Name
		}

		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[PlayerItem]) {
				allGood()

				item, ok := q.Single()
				require.True(t, ok)
				require.Equal(t, "Player", item.Name.Value)
				require.Equal(t, EntityId(1), item.EntityId)
			})
		})
	})

	t.Run("query with OptionMut", func(t *testing.T) {
		type MoveableItem struct {
			Position Position
			Velocity OptionMut[Velocity]
		}

		w.RunSystem(func(q Query[MoveableItem]) {
			require.Equal(t, 3, q.Count())

			for item := range q.Items() {
				if value, ok := item.Velocity.Get(); ok {
					value.X = 1
				}
			}
		})

		w.RunSystem(func(q Query[Velocity]) {
			for item := range q.Items() {
				require.Equal(t, 1.0, item.X, "velocity must have been updated")
			}
		})
	})

	t.Run("get by entity id", func(t *testing.T) {
		w.RunSystem(func(q Query[Velocity]) {
			_, ok := q.Get(1)
			require.True(t, ok)

			// the tree has no velocity
			_, ok = q.Get(2)
			require.False(t, ok)

			// does not exist
			_, ok = q.Get(100)
			require.False(t, ok)
		})
	})

	t.Run("invalid query panics", func(t *testing.T) {
		type Invalid struct {
			Value int
		}

		require.Panics(t, func() {
			w.RunSystem(func(q Query[Invalid]) {})
		})
	})
}

func TestChangeDetection(t *testing.T) {
	type ChangedPositions struct {
		_        Changed[Position]
		EntityId EntityId
	}

	w := buildSimpleWorld()

	var changed []EntityId
	observe := func(q Query[ChangedPositions]) {
		changed = changed[:0]
		for item := range q.Items() {
			changed = append(changed, item.EntityId)
		}
	}

	// everything was added before the first run
	w.RunSystem(observe)
	require.Equal(t, []EntityId{1, 2, 3}, changed)

	// nothing changed since then
	w.RunSystem(observe)
	require.Empty(t, changed)

	t.Run("mutable access without modification", func(t *testing.T) {
		w.RunSystem(func(q Query[*Position]) {
			for range q.Items() {
			}
		})

		w.RunSystem(observe)
		require.Empty(t, changed)
	})

	t.Run("writing the same value", func(t *testing.T) {
		w.RunSystem(func(q Query[*Position]) {
			for pos := range q.Items() {
				pos.X = 0
			}
		})

		w.RunSystem(observe)
		require.Empty(t, changed)
	})

	t.Run("modification", func(t *testing.T) {
		w.RunSystem(func(q Query[*Position]) {
			pos, ok := q.Get(3)
			require.True(t, ok)
			pos.X = 42
		})

		w.RunSystem(observe)
		require.Equal(t, []EntityId{3}, changed)

		w.RunSystem(observe)
		require.Empty(t, changed)
	})

	t.Run("insert via commands", func(t *testing.T) {
		w.RunSystem(func(commands *Commands) {
			commands.Entity(2).Insert(Position{X: 5})
		})

		w.RunSystem(observe)
		require.Equal(t, []EntityId{2}, changed)
	})

	t.Run("non comparable components are changed on mutable access", func(t *testing.T) {
		w := NewWorld()
		w.Spawn(Inventory{})

		type ChangedInventory struct {
			_         Changed[Inventory]
			Inventory Inventory
		}

		var count int
		observe := func(q Query[ChangedInventory]) {
			count = q.Count()
		}

		w.RunSystem(observe)
		require.Equal(t, 1, count)

		w.RunSystem(observe)
		require.Equal(t, 0, count)

		w.RunSystem(func(q Query[*Inventory]) {
			for range q.Items() {
			}
		})

		w.RunSystem(observe)
		require.Equal(t, 1, count)
	})
}

func TestAddedFilter(t *testing.T) {
	type AddedHealth struct {
		_        Added[Health]
		EntityId EntityId
	}

	w := NewWorld()

	var added []EntityId
	observe := func(q Query[AddedHealth]) {
		added = added[:0]
		for item := range q.Items() {
			added = append(added, item.EntityId)
		}
	}

	first := w.Spawn(Health{Value: 1})

	w.RunSystem(observe)
	require.Equal(t, []EntityId{first}, added)

	// modification is not an addition
	w.RunSystem(func(q Query[*Health]) {
		for health := range q.Items() {
			health.Value = 2
		}
	})

	w.RunSystem(observe)
	require.Empty(t, added)
}
