package byke

import (
	"reflect"
)

type Command func(world *World)

type EntityCommand func(world *World, entityId EntityId)

// Commands is a SystemParam that allows you to send commands to a world.
// It allows you to spawn and despawn entities and to add and remove components.
// It must be injected as a pointer into a system.
//
// Commands are applied to the world once the system has finished.
type Commands struct {
	world *World
	queue []Command
}

func (c *Commands) applyToWorld() {
	// the world must observe the changes made by the commands in a new tick
	c.world.currentTick += 1

	for idx := 0; idx < len(c.queue); idx++ {
		c.queue[idx](c.world)
	}

	// reset the queue after applying it
	clear(c.queue)
	c.queue = c.queue[:0]
}

func (*Commands) init(world *World) SystemParamState {
	return (*commandSystemParamState)(&Commands{world: world})
}

// Queue adds a custom command to the queue.
func (c *Commands) Queue(command Command) *Commands {
	c.queue = append(c.queue, command)
	return c
}

// Spawn reserves a new entity id and enqueues spawning the entity with the given components.
func (c *Commands) Spawn(components ...ErasedComponent) EntityCommands {
	entityId := c.world.reserveEntityId()

	c.Queue(func(world *World) {
		world.spawnWithEntityId(entityId, components)
	})

	return EntityCommands{
		entityId: entityId,
		commands: c,
	}
}

// Entity returns an EntityCommands value to modify an existing entity.
func (c *Commands) Entity(entityId EntityId) EntityCommands {
	return EntityCommands{
		entityId: entityId,
		commands: c,
	}
}

// InsertResource enqueues inserting or updating a resource.
func (c *Commands) InsertResource(resource any) *Commands {
	return c.Queue(func(world *World) {
		world.InsertResource(resource)
	})
}

type EntityCommands struct {
	entityId EntityId
	commands *Commands
}

func (e EntityCommands) Id() EntityId {
	return e.entityId
}

func (e EntityCommands) Update(commands ...EntityCommand) EntityCommands {
	e.commands.Queue(func(world *World) {
		for _, command := range commands {
			command(world, e.entityId)
		}
	})

	return e
}

// Insert enqueues inserting the given components. Existing components are replaced.
func (e EntityCommands) Insert(components ...ErasedComponent) EntityCommands {
	return e.Update(func(world *World, entityId EntityId) {
		world.insertComponents(entityId, components)
	})
}

// Despawn enqueues despawning the entity and all of its children.
func (e EntityCommands) Despawn() {
	e.commands.Queue(func(world *World) {
		world.Despawn(e.entityId)
	})
}

// RemoveComponent returns an EntityCommand that removes the component of type C.
func RemoveComponent[C IsComponent[C]]() EntityCommand {
	componentType := ComponentTypeOf[C]()

	return func(world *World, entityId EntityId) {
		world.removeComponent(entityId, componentType)
	}
}

type commandSystemParamState Commands

func (c *commandSystemParamState) getValue(systemContext) reflect.Value {
	return reflect.ValueOf((*Commands)(c))
}

func (c *commandSystemParamState) cleanupValue(systemContext) {
	(*Commands)(c).applyToWorld()
}

func (*commandSystemParamState) valueType() reflect.Type {
	return reflect.TypeFor[*Commands]()
}
