package ecs

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes a single archetype.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks the storage and summarizes its archetypes and singletons.
// Archetypes are listed in id order.
func (s *Storage) CollectStats() *StorageStats {
	archetypes := s.Archetypes()
	stats := &StorageStats{
		ArchetypeCount:     len(archetypes),
		TotalEntityCount:   s.Len(),
		SingletonCount:     len(s.singletons),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, len(archetypes)),
		SingletonTypes:     s.singletonTypeNames(),
	}

	for _, a := range archetypes {
		names := make([]string, len(a.types))
		for i, t := range a.types {
			names[i] = t.String()
		}
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             a.id,
			ComponentTypes: names,
			EntityCount:    a.Len(),
		})
	}
	return stats
}
