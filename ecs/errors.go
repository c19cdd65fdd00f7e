package ecs

import "errors"

var (
	// ErrDependencyCycle is returned by Scheduler.Build when system dependencies form a cycle.
	ErrDependencyCycle = errors.New("ecs: system dependency cycle")
	// ErrUnknownDependency is returned by Scheduler.Build when a system depends on a name that was never added.
	ErrUnknownDependency = errors.New("ecs: unknown system dependency")
	// ErrDuplicateSystem is returned by Scheduler.Build when two systems share a name.
	ErrDuplicateSystem = errors.New("ecs: duplicate system name")
)
