package ecs

import (
	"reflect"
	"slices"

	"github.com/cespare/xxhash/v2"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int      { return len(a) }
func (a byTypeName) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool {
	return qualifiedName(a[i]) < qualifiedName(a[j])
}

func qualifiedName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// hashTypes derives an archetype id from a sorted slice of component types.
func hashTypes(types []reflect.Type) uint32 {
	d := xxhash.New()
	for _, t := range types {
		_, _ = d.WriteString(qualifiedName(t))
		_, _ = d.WriteString(";")
	}
	sum := d.Sum64()
	return uint32(sum) ^ uint32(sum>>32)
}

// Archetype represents a unique combination of component types
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	owners   []EntityId
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// spawn stores the components for entity and returns the row they occupy.
// Every storage in an archetype appends and deletes in lockstep, so the row
// is the same index in each of them.
func (a *Archetype) spawn(entity EntityId, components []any) int {
	row := -1
	for _, comp := range components {
		idx := a.storageIndex(componentType(comp))
		if idx == -1 {
			panic("component type " + componentType(comp).String() + " not part of archetype")
		}
		row = a.storages[idx].Append(comp)
	}

	for len(a.owners) <= row {
		a.owners = append(a.owners, 0)
	}
	a.owners[row] = entity
	return row
}

func (a *Archetype) storageIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// GetComponent returns the component of the given type stored at row
func (a *Archetype) GetComponent(row int, compType reflect.Type) any {
	idx := a.storageIndex(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(row)
}

// setComponent overwrites the component of the given type stored at row
func (a *Archetype) setComponent(row int, component any) bool {
	idx := a.storageIndex(componentType(component))
	if idx == -1 {
		return false
	}
	return a.storages[idx].Set(row, component)
}

// delete frees the row in every storage
func (a *Archetype) delete(row int) {
	for _, storage := range a.storages {
		storage.Delete(row)
	}
	if row >= 0 && row < len(a.owners) {
		a.owners[row] = 0
	}
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of entities stored in this archetype
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// compact packs all storages and returns the old row -> new row mapping.
func (a *Archetype) compact() map[int]int {
	if len(a.storages) == 0 {
		return nil
	}

	indexMap := a.storages[0].Compact()
	for i := 1; i < len(a.storages); i++ {
		a.storages[i].Compact()
	}

	owners := make([]EntityId, len(indexMap))
	for oldRow, newRow := range indexMap {
		owners[newRow] = a.owners[oldRow]
	}
	a.owners = owners
	return indexMap
}

// Iter returns an iterator over the ids of all entities stored in this archetype
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}

		for row := range a.storages[0].Iter() {
			if !yield(a.owners[row]) {
				return
			}
		}
	}
}
