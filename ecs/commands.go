package ecs

import (
	"reflect"
	"sync"
)

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to the ECS storage during system execution.
// Commands is safe for use by systems running concurrently within one wave.
type Commands struct {
	mu      sync.Mutex
	storage *Storage
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

// NewCommands returns an empty buffer that reserves spawned ids from storage.
func NewCommands(storage *Storage) *Commands {
	return &Commands{storage: storage}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	entity     EntityId
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues a function to run after all structural changes have been applied.
func (c *Commands) Defer(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
// The returned id is reserved immediately but is not alive until the buffer is flushed.
func (c *Commands) Spawn(components ...any) EntityId {
	c.mu.Lock()
	defer c.mu.Unlock()

	var id EntityId
	if c.storage != nil {
		id = c.storage.reserve()
	}
	c.spawns = append(c.spawns, spawnCommand{entity: id, components: components})
	return id
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Pending reports whether any operation is queued.
func (c *Commands) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.spawns)+len(c.deletes)+len(c.adds)+len(c.removes)+len(c.defers) > 0
}

// Flush applies all queued commands to the provided storage, resetting the buffer state.
// Order: deletes, spawns, removes, adds, deferred functions, so component changes queued
// for an entity spawned in the same frame apply to it. Operations that target an entity
// deleted in the same flush are dropped.
func (c *Commands) Flush(storage *Storage) {
	c.mu.Lock()
	spawns, deletes, adds, removes, defers := c.spawns, c.deletes, c.adds, c.removes, c.defers
	c.spawns, c.deletes, c.adds, c.removes, c.defers = nil, nil, nil, nil, nil
	c.mu.Unlock()

	deletedEntities := make(map[EntityId]bool, len(deletes))

	for _, id := range deletes {
		storage.Delete(id)
		deletedEntities[id] = true
	}

	for _, cmd := range spawns {
		switch {
		case cmd.entity.IsZero():
			storage.Spawn(cmd.components...)
		case deletedEntities[cmd.entity]:
			storage.release(cmd.entity)
		default:
			storage.spawnReserved(cmd.entity, cmd.components)
		}
	}

	for _, cmd := range removes {
		if !deletedEntities[cmd.entity] {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range adds {
		if !deletedEntities[cmd.entity] {
			storage.AddComponent(cmd.entity, cmd.component)
		}
	}

	// Deferred functions may queue more commands; those wait for the next flush.
	for _, df := range defers {
		df.fn()
	}
}
