package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/reaperrun/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3.0, Y: 4.0}, Name{Value: "Test Entity"})
	assert.True(t, storage.Alive(id))
	assert.Equal(t, 1, storage.Len())

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, float32(3.0), pos.X)
	assert.Equal(t, float32(4.0), pos.Y)

	name := ecs.ReadComponent[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, "Test Entity", name.Value)

	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Velocity{})))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
}

func TestSpawnPrimitiveComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Score(42), Tag("player"))

	score, ok := ecs.Get[Score](storage, id)
	require.True(t, ok)
	assert.Equal(t, Score(42), *score)
	assert.True(t, storage.HasComponent(id, reflect.TypeOf(Tag(""))))
}

func TestSpawnUnregisteredComponentPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	type unregistered struct{ V int }
	assert.Panics(t, func() {
		storage.Spawn(unregistered{V: 1})
	})
}

func TestSpawnRejectsPointerAndMapComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() {
		storage.Spawn(map[string]int{})
	})
}

func TestComponentMutationThroughPointer(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1, Y: 1})
	pos := ecs.ReadComponent[Position](storage, id)
	pos.X = 10

	assert.Equal(t, float32(10), ecs.ReadComponent[Position](storage, id).X)
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 7, Y: 7})
	pos := ecs.ReadComponent[Position](storage, first)

	for i := 0; i < 500; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	pos.Y = 99
	assert.Equal(t, float32(99), ecs.ReadComponent[Position](storage, first).Y)
	assert.Equal(t, float32(7), ecs.ReadComponent[Position](storage, first).X)
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1})
	b := storage.Spawn(Position{X: 2})

	storage.Delete(a)

	assert.False(t, storage.Alive(a))
	assert.True(t, storage.Alive(b))
	assert.Equal(t, 1, storage.Len())
	assert.Nil(t, ecs.ReadComponent[Position](storage, a))
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, b).X)

	// Deleting twice is harmless
	storage.Delete(a)
	assert.Equal(t, 1, storage.Len())
}

func TestAddComponentKeepsEntityId(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 5, Y: 6})
	before := storage.GetArchetype(Position{})
	require.NotNil(t, before)

	storage.AddComponent(id, Velocity{DX: 1, DY: 2})

	assert.True(t, storage.Alive(id))
	vel := ecs.ReadComponent[Velocity](storage, id)
	require.NotNil(t, vel)
	assert.Equal(t, float32(2), vel.DY)

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, float32(5), pos.X)

	assert.Equal(t, 0, before.Len())
	after := storage.GetArchetype(Position{}, Velocity{})
	require.NotNil(t, after)
	assert.Equal(t, 1, after.Len())
}

func TestAddComponentOverwritesInPlace(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1}, Health{Current: 10, Max: 10})
	health := ecs.ReadComponent[Health](storage, id)

	ecs.Insert(storage, id, Health{Current: 3, Max: 10})

	assert.Equal(t, 3, health.Current, "existing pointer sees the new value")
	assert.Len(t, storage.Archetypes(), 1)
}

func TestRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
	ecs.Remove[Velocity](storage, id)

	assert.True(t, storage.Alive(id))
	assert.False(t, storage.HasComponent(id, reflect.TypeOf(Velocity{})))
	assert.Equal(t, float32(1), ecs.ReadComponent[Position](storage, id).X)

	// Removing a missing component is a no-op
	ecs.Remove[Velocity](storage, id)
	assert.True(t, storage.Alive(id))
}

func TestRemoveLastComponentKeepsEntityAlive(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1})
	ecs.Remove[Position](storage, id)

	assert.True(t, storage.Alive(id))
	assert.Nil(t, ecs.ReadComponent[Position](storage, id))

	ecs.Insert(storage, id, Name{Value: "back"})
	assert.Equal(t, "back", ecs.ReadComponent[Name](storage, id).Value)
}

func TestOperationsOnDeadEntitiesAreIgnored(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1})
	storage.Delete(id)

	storage.AddComponent(id, Velocity{})
	storage.RemoveComponent(id, reflect.TypeOf(Position{}))

	assert.False(t, storage.Alive(id))
	assert.Equal(t, 0, storage.Len())
}

func TestArchetypeTypeOrderIsIrrelevant(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Velocity{}, Position{})

	assert.Len(t, storage.Archetypes(), 1)
	byTypes := storage.GetArchetypeByTypes([]reflect.Type{reflect.TypeOf(Velocity{}), reflect.TypeOf(Position{})})
	require.NotNil(t, byTypes)
	assert.Equal(t, 2, byTypes.Len())
}

func TestArchetypesAreSortedById(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{})
	storage.Spawn(Velocity{})
	storage.Spawn(Name{})
	storage.Spawn(Position{}, Name{})

	archetypes := storage.Archetypes()
	require.Len(t, archetypes, 4)
	for i := 1; i < len(archetypes); i++ {
		assert.Less(t, archetypes[i-1].ID(), archetypes[i].ID())
	}
}

func TestCompactKeepsIds(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var ids []ecs.EntityId
	for i := 0; i < 10; i++ {
		ids = append(ids, storage.Spawn(Position{X: float32(i)}))
	}
	for i := 0; i < 10; i += 2 {
		storage.Delete(ids[i])
	}

	storage.Compact()

	for i := 1; i < 10; i += 2 {
		pos := ecs.ReadComponent[Position](storage, ids[i])
		require.NotNil(t, pos, "entity %d", i)
		assert.Equal(t, float32(i), pos.X)
	}
	assert.Equal(t, 5, storage.Len())
	assert.Equal(t, 5, storage.GetArchetype(Position{}).Len())
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	counter := ecs.NewSingleton[Score](storage, 5)
	assert.True(t, counter.Exists())
	assert.Equal(t, Score(5), *counter.Get())

	// A second accessor shares the value
	other := ecs.NewSingleton[Score](storage, 100)
	assert.Equal(t, Score(5), *other.Get())

	other.Set(9)
	assert.Equal(t, Score(9), *counter.Get())

	storage.AddSingleton(Score(11))
	assert.Equal(t, Score(11), *counter.Get())

	var direct *Score
	require.True(t, storage.ReadSingleton(&direct))
	assert.Equal(t, Score(11), *direct)

	var missing *Tag
	assert.False(t, storage.ReadSingleton(&missing))
}
