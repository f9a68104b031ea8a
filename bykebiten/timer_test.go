package bykebiten

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimer(t *testing.T) {
	t.Run("once", func(t *testing.T) {
		timer := NewTimer(100*time.Millisecond, TimerModeOnce)

		timer.Tick(60 * time.Millisecond)
		require.False(t, timer.Finished())
		require.InDelta(t, 0.6, timer.Fraction(), 1e-9)

		timer.Tick(60 * time.Millisecond)
		require.True(t, timer.JustFinished())
		require.Equal(t, 100*time.Millisecond, timer.Elapsed())

		timer.Tick(60 * time.Millisecond)
		require.True(t, timer.Finished())
		require.False(t, timer.JustFinished())

		timer.Reset()
		require.False(t, timer.Finished())
		require.Zero(t, timer.Elapsed())
	})

	t.Run("repeating", func(t *testing.T) {
		timer := NewTimer(100*time.Millisecond, TimerModeRepeating)

		timer.Tick(250 * time.Millisecond)
		require.True(t, timer.JustFinished())
		require.Equal(t, 2, timer.TimesFinishedThisTick())
		require.Equal(t, 50*time.Millisecond, timer.Elapsed())

		timer.Tick(10 * time.Millisecond)
		require.False(t, timer.JustFinished())
	})
}
