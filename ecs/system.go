package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems should implement this interface and can include Query and
// Singleton fields for accessing entities and shared resources, as well as custom
// state fields that persist between frames. The fields are the system's declared
// data view: the scheduler initializes them on registration and refreshes the
// queries once per frame before any system runs.
type System interface {
	Execute(frame *UpdateFrame)
}
