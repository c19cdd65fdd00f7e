package debugui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/reaperrun/ecs"
)

func TestPerformanceStatsHistoryWraps(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	ps := NewPerformanceStats(4, storage, ecs.NewScheduler(storage))

	assert.Zero(t, ps.AverageFrameTime())

	ps.Record(10 * time.Millisecond)
	ps.Record(20 * time.Millisecond)
	assert.InDelta(t, 7.5, ps.AverageFrameTime(), 1e-4)

	for i := 0; i < 4; i++ {
		ps.Record(16 * time.Millisecond)
	}
	assert.InDelta(t, 16, ps.AverageFrameTime(), 1e-4)
	assert.Equal(t, 2, ps.frameIndex)
}

func TestFrameTimerDelta(t *testing.T) {
	ft := NewFrameTimer()
	ft.lastFrameTime = ft.lastFrameTime.Add(-time.Second)

	assert.GreaterOrEqual(t, ft.Delta(), time.Second)
	assert.Less(t, ft.Delta(), time.Second)
}
