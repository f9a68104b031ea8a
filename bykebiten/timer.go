package bykebiten

import (
	"time"
)

type TimerMode uint8

const (
	TimerModeOnce TimerMode = iota
	TimerModeRepeating
)

// Timer counts time passed in using Tick. Timers are plain values and are
// usually kept in a component, a resource or a byke.Local.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
	mode     TimerMode

	finished     bool
	justFinished int
}

func NewTimer(duration time.Duration, mode TimerMode) Timer {
	return Timer{duration: duration, mode: mode}
}

// Tick advances the timer by delta.
func (t *Timer) Tick(delta time.Duration) {
	t.justFinished = 0

	if t.duration <= 0 || (t.finished && t.mode == TimerModeOnce) {
		return
	}

	t.elapsed += delta
	if t.elapsed < t.duration {
		return
	}

	t.finished = true

	switch t.mode {
	case TimerModeRepeating:
		t.justFinished = int(t.elapsed / t.duration)
		t.elapsed %= t.duration

	default:
		t.justFinished = 1
		t.elapsed = t.duration
	}
}

func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

func (t *Timer) Fraction() float64 {
	if t.duration <= 0 {
		return 1
	}

	return float64(t.elapsed) / float64(t.duration)
}

func (t *Timer) Finished() bool {
	return t.finished
}

// JustFinished reports whether the timer finished during the last Tick.
func (t *Timer) JustFinished() bool {
	return t.justFinished > 0
}

// TimesFinishedThisTick counts how often a repeating timer elapsed during the last Tick.
func (t *Timer) TimesFinishedThisTick() int {
	return t.justFinished
}

// Reset restarts the timer.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.justFinished = 0
}
