package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/plus3/reaperrun/config"
	"github.com/plus3/reaperrun/game"
	"github.com/plus3/reaperrun/internal/logging"
)

func main() {
	sessions := flag.Int("sessions", 20, "number of seeded sessions to run")
	frames := flag.Int("frames", 3600, "frame limit per session")
	columns := flag.Int("enemies-columns", 3, "enemy grid columns")
	rows := flag.Int("enemies-rows", 2, "enemy grid rows")
	parallel := flag.Bool("parallel", false, "run the systems of a wave concurrently")
	workers := flag.Int("workers", 1, "sessions run at the same time")
	seed := flag.Uint64("seed", 1, "seed of the first session; session i uses seed+i")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	logger, err := logging.New(config.LoggingConfig{Level: *logLevel, Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	settings := game.DefaultSettings()
	settings.Parallel = *parallel
	settings.Layout.EnemyColumns = *columns
	settings.Layout.EnemyRows = *rows

	report, err := soak(settings, soakOptions{
		sessions: *sessions,
		frames:   *frames,
		workers:  *workers,
		seed:     *seed,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}

	if err := report.Generate(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

type soakOptions struct {
	sessions int
	frames   int
	workers  int
	seed     uint64
}

// soak runs every session to completion or the frame limit and gathers a report.
func soak(settings game.Settings, opts soakOptions, logger *zap.Logger) (*Report, error) {
	if opts.sessions <= 0 || opts.frames <= 0 {
		return nil, fmt.Errorf("sessions and frames must be positive")
	}

	report := &Report{
		Sessions:      opts.sessions,
		FrameLimit:    opts.frames,
		EnemyColumns:  settings.Layout.EnemyColumns,
		EnemyRows:     settings.Layout.EnemyRows,
		Parallel:      settings.Parallel,
		Workers:       max(opts.workers, 1),
		Results:       make([]SessionResult, opts.sessions),
		systemTotals:  make(map[string]time.Duration),
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(report.Workers)

	start := time.Now()
	for i := range opts.sessions {
		g.Go(func() error {
			s := settings
			s.Seed = opts.seed + uint64(i)
			result, samples, err := runSession(s, opts.frames, logger)
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}

			mu.Lock()
			defer mu.Unlock()
			report.Results[i] = result.SessionResult
			report.FrameTime.Samples = append(report.FrameTime.Samples, samples...)
			for _, sys := range result.systems {
				report.systemTotals[sys.Name] += sys.TotalDuration
			}
			if report.Waves == nil {
				report.Waves = result.waves
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.finalize()
	return report, nil
}

type sessionRun struct {
	SessionResult
	systems []systemTiming
	waves   [][]string
}

type systemTiming struct {
	Name          string
	TotalDuration time.Duration
}

func runSession(settings game.Settings, frames int, logger *zap.Logger) (sessionRun, []time.Duration, error) {
	session, err := game.NewSession(settings, game.WithLogger(logger))
	if err != nil {
		return sessionRun{}, nil, err
	}

	script := newWalkScript(settings.Seed)
	samples := make([]time.Duration, 0, frames)
	status := session.Status()
	for range frames {
		begin := time.Now()
		status = session.Step(script.Next())
		samples = append(samples, time.Since(begin))
		if status.Over() {
			break
		}
	}

	stats := session.Scheduler().GetStats()
	run := sessionRun{
		SessionResult: SessionResult{
			RunID:   session.RunID.String(),
			Seed:    session.Seed,
			Status:  status.String(),
			Frames:  session.Frames(),
			Enemies: len(session.Population.Enemies),
		},
		waves: stats.Waves,
	}
	for _, sys := range stats.Systems {
		run.systems = append(run.systems, systemTiming{Name: sys.Name, TotalDuration: sys.TotalDuration})
	}
	return run, samples, nil
}
