package sweeper

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/ninotmecheast-source/trivia/internal/models"
)

func countingTarget(name string, calls *atomic.Int64) Target {
	return Target{
		Name: name,
		Sweep: func() int {
			calls.Add(1)
			return 1
		},
		Stats: func() models.CacheStats {
			return models.CacheStats{}
		},
	}
}

func TestSweeper_RunsPeriodically(t *testing.T) {
	var calls atomic.Int64
	s := New(10*time.Millisecond, zaptest.NewLogger(t), countingTarget("questions", &calls))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, time.Second, 5*time.Millisecond, "sweep should run on every tick")
}

func TestSweeper_StopHaltsSweeping(t *testing.T) {
	var calls atomic.Int64
	s := New(10*time.Millisecond, zaptest.NewLogger(t), countingTarget("questions", &calls))

	s.Start()
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 5*time.Millisecond)

	s.Stop()
	assert.False(t, s.IsRunning())

	settled := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, calls.Load(), "no sweeps after Stop")
}

func TestSweeper_StartIsIdempotent(t *testing.T) {
	var calls atomic.Int64
	s := New(time.Hour, zaptest.NewLogger(t), countingTarget("questions", &calls))

	s.Start()
	s.Start()
	assert.True(t, s.IsRunning())

	s.Stop()
	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestSweeper_SweepNowCoversAllTargets(t *testing.T) {
	var first, second atomic.Int64
	s := New(time.Hour, zaptest.NewLogger(t),
		countingTarget("questions", &first),
		countingTarget("quotes", &second))

	s.SweepNow()

	assert.Equal(t, int64(1), first.Load())
	assert.Equal(t, int64(1), second.Load())
}
