package main

import (
	"cmp"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Sessions     int
	FrameLimit   int
	EnemyColumns int
	EnemyRows    int
	Parallel     bool
	Workers      int

	// Results
	Results       []SessionResult
	Wins          int
	Losses        int
	Unfinished    int
	TotalFrames   uint64
	TotalTime     time.Duration
	FrameTime     Stats
	Waves         [][]string
	Systems       []SystemTotal
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats

	systemTotals map[string]time.Duration
}

type SessionResult struct {
	RunID   string
	Seed    uint64
	Status  string
	Frames  uint64
	Enemies int
}

type SystemTotal struct {
	Name  string
	Total time.Duration
	Share float64
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

func (r *Report) finalize() {
	r.FrameTime.Finalize()

	for _, res := range r.Results {
		r.TotalFrames += res.Frames
		switch res.Status {
		case "win":
			r.Wins++
		case "lose":
			r.Losses++
		default:
			r.Unfinished++
		}
	}

	var all time.Duration
	for _, d := range r.systemTotals {
		all += d
	}
	r.Systems = r.Systems[:0]
	for name, d := range r.systemTotals {
		share := 0.0
		if all > 0 {
			share = float64(d) / float64(all) * 100
		}
		r.Systems = append(r.Systems, SystemTotal{Name: name, Total: d, Share: share})
	}
	slices.SortFunc(r.Systems, func(a, b SystemTotal) int {
		return cmp.Or(cmp.Compare(b.Total, a.Total), cmp.Compare(a.Name, b.Name))
	})
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Headless Soak Report

## Configuration
- **Sessions:** {{.Sessions}} ({{.Workers}} at a time)
- **Frame Limit:** {{.FrameLimit}}
- **Enemy Grid:** {{.EnemyColumns}} x {{.EnemyRows}}
- **Parallel Waves:** {{.Parallel}}

## Outcomes
- **Wins:** {{.Wins}}
- **Losses:** {{.Losses}}
- **Unfinished:** {{.Unfinished}}

| Seed | Run | Status | Frames | Enemies |
|---|---|---|---|---|
{{range .Results}}| {{.Seed}} | {{.RunID}} | {{.Status}} | {{.Frames}} | {{.Enemies}} |
{{end}}
## Performance
- **Total Frames:** {{.TotalFrames}}
- **Total Time:** {{.TotalTime}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **P99:** {{.FrameTime.P99}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}

## Schedule
{{range $i, $wave := .Waves}}- wave {{$i}}: {{join $wave}}
{{end}}
| System | Total | Share |
|---|---|---|
{{range .Systems}}| {{.Name}} | {{.Total}} | {{pct .Share}} |
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- Total GC Pause: {{.MemStatsEnd.PauseTotalNs | ns}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v)
		},
		"join": func(names []string) string {
			return strings.Join(names, ", ")
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
