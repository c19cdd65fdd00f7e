package ecs

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          uint64
	Waves           [][]string
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Dependencies   []string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (st *systemStatsInternal) record(d time.Duration) {
	st.executionCount++
	st.lastDuration = d
	st.totalDuration += d
	if d < st.minDuration {
		st.minDuration = d
	}
	if d > st.maxDuration {
		st.maxDuration = d
	}
}

// storageBinder is implemented by Query and Singleton fields of a system.
type storageBinder interface {
	Init(storage *Storage)
}

// frameQuery is implemented by Query fields; Execute refreshes their per-frame cache.
type frameQuery interface {
	Execute()
	Types() []reflect.Type
}

type systemEntry struct {
	name    string
	system  System
	deps    []string
	queries []frameQuery
	stats   systemStatsInternal
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger sets the logger used for build and frame diagnostics.
func WithLogger(logger *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParallelWaves runs the systems of each wave on separate goroutines.
// Systems in one wave must then touch disjoint data or synchronize themselves.
func WithParallelWaves() SchedulerOption {
	return func(s *Scheduler) {
		s.parallel = true
	}
}

// WithHalt stops Run once halt returns true after a frame.
func WithHalt(halt func() bool) SchedulerOption {
	return func(s *Scheduler) {
		s.halt = halt
	}
}

// Scheduler runs named systems once per frame. A system runs only after every
// system it depends on has finished; independent systems share a wave.
type Scheduler struct {
	storage  *Storage
	logger   *zap.Logger
	parallel bool
	halt     func() bool

	systems []*systemEntry
	waves   [][]*systemEntry
	built   bool
	frames  uint64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		storage: storage,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add registers system under name. It runs after every system named in deps.
// Query and Singleton fields of the system are bound to the storage here.
// Dependency errors surface from Build.
func (s *Scheduler) Add(name string, system System, deps ...string) {
	entry := &systemEntry{
		name:   name,
		system: system,
		deps:   deps,
		stats:  systemStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	}
	entry.queries = s.bindFields(system)
	s.systems = append(s.systems, entry)
	s.built = false
}

// Register adds a system named after its type with no dependencies.
func (s *Scheduler) Register(system System) {
	s.Add(systemName(system), system)
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// bindFields initializes every Query and Singleton field of a struct system
// and returns the queries that must be refreshed each frame.
func (s *Scheduler) bindFields(system System) []frameQuery {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []frameQuery
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct || !field.CanAddr() {
			continue
		}

		binder, ok := field.Addr().Interface().(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if q, ok := binder.(frameQuery); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Build validates the dependency graph and groups systems into waves.
// It returns ErrDuplicateSystem, ErrUnknownDependency or ErrDependencyCycle
// wrapped with the offending names.
func (s *Scheduler) Build() error {
	nodes := make([]dependencyNode, len(s.systems))
	for i, entry := range s.systems {
		nodes[i] = dependencyNode{name: entry.name, deps: entry.deps}
	}

	order, err := sortWaves(nodes)
	if err != nil {
		return fmt.Errorf("build schedule: %w", err)
	}

	s.waves = make([][]*systemEntry, len(order))
	for w, wave := range order {
		s.waves[w] = make([]*systemEntry, len(wave))
		for i, idx := range wave {
			s.waves[w][i] = s.systems[idx]
		}
	}
	s.built = true

	s.logger.Debug("schedule built",
		zap.Int("systems", len(s.systems)),
		zap.Any("waves", s.Waves()),
		zap.Bool("parallel", s.parallel),
	)
	return nil
}

// Waves returns the system names of each wave in execution order.
// The result is nil until Build succeeds.
func (s *Scheduler) Waves() [][]string {
	if !s.built {
		return nil
	}
	out := make([][]string, len(s.waves))
	for w, wave := range s.waves {
		out[w] = make([]string, len(wave))
		for i, entry := range wave {
			out[w][i] = entry.name
		}
	}
	return out
}

// Frames returns the number of frames executed so far.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// Once executes one frame: queries are refreshed, every wave runs in order, and
// the frame's deferred commands are applied. Once panics if the schedule is invalid;
// call Build first to handle the error.
func (s *Scheduler) Once(dt time.Duration) {
	if !s.built {
		if err := s.Build(); err != nil {
			panic(err)
		}
	}

	for _, entry := range s.systems {
		for _, q := range entry.queries {
			q.Execute()
		}
	}

	frame := newUpdateFrame(s.frames, dt, s.storage)
	for _, wave := range s.waves {
		if s.parallel && len(wave) > 1 {
			s.runParallel(wave, frame)
			continue
		}
		for _, entry := range wave {
			s.runSystem(entry, frame)
		}
	}

	frame.Commands.Flush(s.storage)
	s.frames++
}

func (s *Scheduler) runSystem(entry *systemEntry, frame *UpdateFrame) {
	start := time.Now()
	entry.system.Execute(frame)
	entry.stats.record(time.Since(start))
}

func (s *Scheduler) runParallel(wave []*systemEntry, frame *UpdateFrame) {
	var g errgroup.Group
	for _, entry := range wave {
		g.Go(func() error {
			s.runSystem(entry, frame)
			return nil
		})
	}
	_ = g.Wait()
}

// Run executes a frame every step until the context is cancelled or the halt
// function reports true. Each frame receives the wall time since the previous one.
func (s *Scheduler) Run(ctx context.Context, step time.Duration) error {
	if !s.built {
		if err := s.Build(); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(step)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(lastTime)
			lastTime = now
			s.Once(dt)
			if s.halt != nil && s.halt() {
				s.logger.Info("scheduler halted", zap.Uint64("frames", s.frames))
				return nil
			}
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Waves:       s.Waves(),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	var totalExecs int64
	for i, entry := range s.systems {
		internal := entry.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           entry.name,
			Dependencies:   append([]string(nil), entry.deps...),
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
