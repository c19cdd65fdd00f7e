// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/reaperrun/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// Overlay owns a small storage of ImGui panels and the scheduler that draws them.
// It is kept apart from the storage it inspects so panels never show up in game queries.
type Overlay struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[ImguiInputState]
}

// NewOverlay creates an empty overlay. Call Add for each panel.
func NewOverlay() *Overlay {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[ImguiItem](registry)
	storage := ecs.NewStorage(registry)

	o := &Overlay{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		input:     ecs.NewSingleton[ImguiInputState](storage, ImguiInputState{}),
	}
	o.scheduler.Register(&ImguiSystem{})
	return o
}

// Add attaches a panel render function.
func (o *Overlay) Add(render func()) ecs.EntityId {
	return o.storage.Spawn(ImguiItem{Render: render})
}

// Update runs the overlay systems. It must be called between the backend's
// BeginFrame and EndFrame.
func (o *Overlay) Update(dt time.Duration) {
	o.scheduler.Once(dt)
}

// InputState reports whether ImGui wanted the mouse or keyboard last update.
func (o *Overlay) InputState() ImguiInputState {
	return *o.input.Get()
}
