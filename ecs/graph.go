package ecs

import (
	"fmt"
	"strings"
)

// dependencyNode is one vertex of the system graph: a name and the names it must run after.
type dependencyNode struct {
	name string
	deps []string
}

// sortWaves orders nodes into waves with Kahn's algorithm. Every node in a wave
// depends only on nodes of earlier waves, so nodes within one wave may run in any
// order or concurrently. Ties keep input order, which makes the result deterministic.
// The returned waves hold indices into nodes.
func sortWaves(nodes []dependencyNode) ([][]int, error) {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, dup := index[n.name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSystem, n.name)
		}
		index[n.name] = i
	}

	indegree := make([]int, len(nodes))
	dependents := make([][]int, len(nodes))
	for i, n := range nodes {
		seen := make(map[string]bool, len(n.deps))
		for _, dep := range n.deps {
			if seen[dep] {
				continue
			}
			seen[dep] = true

			j, ok := index[dep]
			if !ok {
				return nil, fmt.Errorf("%w: %q depends on %q", ErrUnknownDependency, n.name, dep)
			}
			if j == i {
				return nil, fmt.Errorf("%w: %q depends on itself", ErrDependencyCycle, n.name)
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	var waves [][]int
	placed := 0
	ready := make([]int, 0, len(nodes))
	for i := range nodes {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	for len(ready) > 0 {
		wave := ready
		waves = append(waves, wave)
		placed += len(wave)

		next := make([]bool, len(nodes))
		for _, i := range wave {
			for _, d := range dependents[i] {
				indegree[d]--
				if indegree[d] == 0 {
					next[d] = true
				}
			}
		}

		ready = make([]int, 0, len(nodes)-placed)
		for i, ok := range next {
			if ok {
				ready = append(ready, i)
			}
		}
	}

	if placed != len(nodes) {
		stuck := make([]string, 0, len(nodes)-placed)
		for i, n := range nodes {
			if indegree[i] > 0 {
				stuck = append(stuck, n.name)
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrDependencyCycle, strings.Join(stuck, ", "))
	}

	return waves, nil
}
