package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plus3/reaperrun/ecs"
)

// FrameDuration is the fixed simulated time of one frame.
const FrameDuration = time.Second / 60

// System names, also used as scheduler dependency names.
const (
	SystemInput     = "input"
	SystemAutonomy  = "autonomy"
	SystemMovement  = "movement"
	SystemAnimation = "animation"
	SystemWinLose   = "winlose"
)

// Settings configures a Session.
type Settings struct {
	CanvasWidth  int32
	CanvasHeight int32
	// Seed drives world layout and autonomy. Zero picks a random seed.
	Seed          uint64
	FrameDuration time.Duration
	Parallel      bool
	Layout        WorldLayout
}

// DefaultSettings returns the stock 800x600 game.
func DefaultSettings() Settings {
	return Settings{
		CanvasWidth:   800,
		CanvasHeight:  600,
		FrameDuration: FrameDuration,
		Layout: WorldLayout{
			PlayerSpeed:          200,
			EnemySpeed:           200,
			EnemyColumns:         3,
			EnemyRows:            2,
			DirectionChangeDelay: 200 * time.Millisecond,
			Sprites:              DefaultSprites(),
		},
	}
}

// Validate checks the settings for values the simulation cannot run with.
func (s Settings) Validate() error {
	switch {
	case s.CanvasWidth <= 0 || s.CanvasHeight <= 0:
		return fmt.Errorf("canvas size %dx%d must be positive", s.CanvasWidth, s.CanvasHeight)
	case s.FrameDuration <= 0:
		return fmt.Errorf("frame duration %s must be positive", s.FrameDuration)
	case s.Layout.PlayerSpeed < 0 || s.Layout.EnemySpeed < 0:
		return fmt.Errorf("speeds must not be negative")
	case s.Layout.EnemyColumns < 0 || s.Layout.EnemyRows < 0:
		return fmt.Errorf("enemy grid %dx%d must not be negative", s.Layout.EnemyColumns, s.Layout.EnemyRows)
	case s.Layout.DirectionChangeDelay < 0:
		return fmt.Errorf("direction change delay must not be negative")
	}
	return nil
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	logger    *zap.Logger
	populate  bool
	schedOpts []ecs.SchedulerOption
}

// WithLogger sets the session logger. The scheduler logs through it too.
func WithLogger(logger *zap.Logger) SessionOption {
	return func(o *sessionOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithoutWorld skips populating the world, leaving an empty storage for the caller to fill.
func WithoutWorld() SessionOption {
	return func(o *sessionOptions) {
		o.populate = false
	}
}

// WithSchedulerOptions passes extra options to the session's scheduler.
func WithSchedulerOptions(opts ...ecs.SchedulerOption) SessionOption {
	return func(o *sessionOptions) {
		o.schedOpts = append(o.schedOpts, opts...)
	}
}

// Session is one run of the game: its world, its systems and the frame loop state.
// A Session is driven from a single goroutine.
type Session struct {
	RunID      uuid.UUID
	Seed       uint64
	Population Population

	settings  Settings
	logger    *zap.Logger
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	intent      *ecs.Singleton[InputIntent]
	status      *ecs.Singleton[GameStatus]
	renderables *ecs.View[renderRow]
}

// NewSession registers the components, resources and systems, builds the
// schedule and populates the world.
func NewSession(settings Settings, opts ...SessionOption) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	o := sessionOptions{logger: zap.NewNop(), populate: true}
	for _, opt := range opts {
		opt(&o)
	}

	seed := settings.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	rng := NewRandom(seed)
	ecs.NewSingleton[Random](storage, rng)
	ecs.NewSingleton[WorldBounds](storage, BoundsForCanvas(settings.CanvasWidth, settings.CanvasHeight))

	s := &Session{
		RunID:    uuid.New(),
		Seed:     seed,
		settings: settings,
		logger:   o.logger,
		storage:  storage,
		intent:   ecs.NewSingleton[InputIntent](storage, NoIntent),
		status:   ecs.NewSingleton[GameStatus](storage, Running),
	}
	s.renderables = ecs.NewView[renderRow](storage)

	schedOpts := []ecs.SchedulerOption{ecs.WithLogger(o.logger)}
	if settings.Parallel {
		schedOpts = append(schedOpts, ecs.WithParallelWaves())
	}
	schedOpts = append(schedOpts, o.schedOpts...)
	s.scheduler = ecs.NewScheduler(storage, schedOpts...)
	AddSystems(s.scheduler)

	if err := s.scheduler.Build(); err != nil {
		o.logger.Error("schedule rejected", zap.Error(err))
		return nil, fmt.Errorf("new session: %w", err)
	}

	if o.populate {
		s.Population = Populate(storage, rng, settings.Layout)
	}

	o.logger.Info("session started",
		zap.Stringer("run_id", s.RunID),
		zap.Uint64("seed", seed),
		zap.Int("entities", storage.Len()),
		zap.Int("enemies", len(s.Population.Enemies)),
	)
	return s, nil
}

// AddSystems registers the gameplay systems with their ordering constraints.
func AddSystems(scheduler *ecs.Scheduler) {
	scheduler.Add(SystemInput, &InputSystem{})
	scheduler.Add(SystemAutonomy, &AutonomySystem{})
	scheduler.Add(SystemMovement, &MovementSystem{}, SystemInput, SystemAutonomy)
	scheduler.Add(SystemWinLose, &WinLoseSystem{}, SystemMovement)
	scheduler.Add(SystemAnimation, &AnimationSystem{}, SystemInput, SystemAutonomy)
}

// Step runs one frame with the given intent and returns the resulting status.
// Once the status is terminal further steps do nothing.
func (s *Session) Step(intent InputIntent) GameStatus {
	status := *s.status.Get()
	if status.Over() {
		return status
	}

	s.intent.Set(intent)
	s.scheduler.Once(s.settings.FrameDuration)
	s.intent.Set(NoIntent)

	status = *s.status.Get()
	if status.Over() {
		s.logger.Info("game over",
			zap.Stringer("run_id", s.RunID),
			zap.Stringer("status", status),
			zap.Uint64("frames", s.scheduler.Frames()),
		)
	}
	return status
}

// Status returns the current game status.
func (s *Session) Status() GameStatus {
	return *s.status.Get()
}

// Frames returns the number of frames stepped so far.
func (s *Session) Frames() uint64 {
	return s.scheduler.Frames()
}

// Settings returns the settings the session was created with.
func (s *Session) Settings() Settings {
	return s.settings
}

// Storage exposes the session's entity storage, for debugging tools and tests.
func (s *Session) Storage() *ecs.Storage {
	return s.storage
}

// Scheduler exposes the session's scheduler, for debugging tools and tests.
func (s *Session) Scheduler() *ecs.Scheduler {
	return s.scheduler
}
