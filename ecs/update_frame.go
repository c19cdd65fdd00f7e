package ecs

import "time"

// UpdateFrame is the per-frame data handed to every system. Its values are
// fixed before dispatch and shared by all systems of the frame.
type UpdateFrame struct {
	Number    uint64
	Elapsed   time.Duration
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(number uint64, dt time.Duration, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		Number:    number,
		Elapsed:   dt,
		DeltaTime: dt.Seconds(),
		Commands:  NewCommands(storage),
		Storage:   storage,
	}
}
