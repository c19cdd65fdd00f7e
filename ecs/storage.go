package ecs

import (
	"reflect"
	"slices"
	"sort"

	"github.com/kamstrup/intmap"
)

// entityLocation points at the archetype row holding an entity's components.
// A live entity without components has a nil archetype.
type entityLocation struct {
	archetype *Archetype
	row       int
}

// Storage is the main ECS storage interface
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry
	pool       *entityPool
	locations  *intmap.Map[EntityId, entityLocation]
	singletons map[reflect.Type]*singletonEntry
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		pool:       newEntityPool(),
		locations:  intmap.New[EntityId, entityLocation](256),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Alive reports whether id refers to an entity that has been spawned and not deleted.
// Ids reserved through Commands.Spawn become alive at the next flush.
func (s *Storage) Alive(id EntityId) bool {
	_, ok := s.locations.Get(id)
	return ok
}

// Len returns the number of live entities
func (s *Storage) Len() int {
	return s.locations.Len()
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	return s.findArchetype(extractComponentTypes(components))
}

// GetArchetypeByTypes returns an archetype storage (if one exists) based on reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := slices.Clone(types)
	sort.Sort(byTypeName(sorted))
	return s.findArchetype(sorted)
}

// Archetypes returns every archetype currently known to the storage
func (s *Storage) Archetypes() []*Archetype {
	out := make([]*Archetype, 0, len(s.archetypes))
	for _, a := range s.archetypes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (s *Storage) findArchetype(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	for {
		a, ok := s.archetypes[id]
		if !ok {
			return nil
		}
		if slices.Equal(a.types, types) {
			return a
		}
		id++
	}
}

// archetypeFor returns the archetype for the sorted types, creating it on first use.
// Hash collisions between different type sets probe to the next free id.
func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	for {
		a, ok := s.archetypes[id]
		if !ok {
			a = NewArchetype(id, types, s.registry)
			s.archetypes[id] = a
			return a
		}
		if slices.Equal(a.types, types) {
			return a
		}
		id++
	}
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	id := s.pool.create()
	s.spawnReserved(id, components)
	return id
}

// reserve allocates an id that is not alive until spawnReserved is called.
func (s *Storage) reserve() EntityId {
	return s.pool.create()
}

func (s *Storage) spawnReserved(id EntityId, components []any) {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)
	row := archetype.spawn(id, components)
	s.locations.Put(id, entityLocation{archetype: archetype, row: row})
}

// release returns a reserved id that never became alive.
func (s *Storage) release(id EntityId) {
	if !s.Alive(id) {
		s.pool.destroy(id)
	}
}

// Delete removes the entity and all of its components. Stale ids are ignored.
func (s *Storage) Delete(id EntityId) {
	loc, ok := s.locations.Get(id)
	if !ok {
		return
	}
	if loc.archetype != nil {
		loc.archetype.delete(loc.row)
	}
	s.locations.Del(id)
	s.pool.destroy(id)
}

// AddComponent attaches component to the entity. An existing component of the
// same type is overwritten in place; otherwise the entity moves to the archetype
// that includes the new type. The entity id never changes.
func (s *Storage) AddComponent(id EntityId, component any) {
	loc, ok := s.locations.Get(id)
	if !ok {
		return
	}

	compType := componentType(component)
	validateComponentType(compType)

	if loc.archetype != nil && loc.archetype.HasComponent(compType) {
		loc.archetype.setComponent(loc.row, component)
		return
	}

	var oldTypes []reflect.Type
	if loc.archetype != nil {
		oldTypes = loc.archetype.types
	}
	newTypes := make([]reflect.Type, 0, len(oldTypes)+1)
	newTypes = append(newTypes, oldTypes...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, loc.archetype.GetComponent(loc.row, typ))
		}
	}

	s.move(id, loc, newTypes, components)
}

// RemoveComponent detaches the component type from the entity. Missing components are ignored.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) {
	loc, ok := s.locations.Get(id)
	if !ok || loc.archetype == nil || !loc.archetype.HasComponent(compType) {
		return
	}

	newTypes := make([]reflect.Type, 0, len(loc.archetype.types)-1)
	components := make([]any, 0, len(loc.archetype.types)-1)
	for _, typ := range loc.archetype.types {
		if typ == compType {
			continue
		}
		newTypes = append(newTypes, typ)
		components = append(components, loc.archetype.GetComponent(loc.row, typ))
	}

	if len(newTypes) == 0 {
		loc.archetype.delete(loc.row)
		s.locations.Put(id, entityLocation{})
		return
	}

	s.move(id, loc, newTypes, components)
}

// move copies the entity's components into the archetype for newTypes and frees the old row.
// components holds pointers into the old archetype, so the copy happens before the delete.
func (s *Storage) move(id EntityId, loc entityLocation, newTypes []reflect.Type, components []any) {
	newArchetype := s.archetypeFor(newTypes)
	newRow := newArchetype.spawn(id, components)
	if loc.archetype != nil {
		loc.archetype.delete(loc.row)
	}
	s.locations.Put(id, entityLocation{archetype: newArchetype, row: newRow})
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	loc, ok := s.locations.Get(id)
	if !ok || loc.archetype == nil {
		return nil
	}
	return loc.archetype.GetComponent(loc.row, compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	loc, ok := s.locations.Get(id)
	if !ok || loc.archetype == nil {
		return false
	}
	return loc.archetype.HasComponent(compType)
}

// Compact packs every archetype's rows. Entity ids are unaffected.
func (s *Storage) Compact() {
	for _, archetype := range s.archetypes {
		indexMap := archetype.compact()
		for _, newRow := range indexMap {
			id := archetype.owners[newRow]
			s.locations.Put(id, entityLocation{archetype: archetype, row: newRow})
		}
	}
}

func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType
}

func validateComponentType(compType reflect.Type) {
	// Components can be structs or primitives (int, string, etc.)
	// But not pointers, maps, channels, or functions (those aren't value types)
	switch compType.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)
		validateComponentType(compType)
		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's component of type T, or nil when absent.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

// Insert attaches or overwrites the entity's component of type T.
func Insert[T any](s *Storage, id EntityId, component T) {
	s.AddComponent(id, component)
}

// Remove detaches the entity's component of type T.
func Remove[T any](s *Storage, id EntityId) {
	s.RemoveComponent(id, reflect.TypeFor[T]())
}

// Get returns the entity's component of type T.
func Get[T any](s *Storage, id EntityId) (*T, bool) {
	comp := ReadComponent[T](s, id)
	return comp, comp != nil
}
