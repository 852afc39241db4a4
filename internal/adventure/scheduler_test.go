package adventure

import (
	"testing"
	"time"
)

func TestSchedulerOneShot(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(TimerTrapWarning, 2*time.Second, func() { fired++ })

	s.Advance(1999 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired early")
	}
	if !s.Active(TimerTrapWarning) {
		t.Fatal("timer should be pending")
	}

	s.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	if s.Active(TimerTrapWarning) || s.Pending() != 0 {
		t.Error("one-shot timer should be gone after firing")
	}

	s.Advance(10 * time.Second)
	if fired != 1 {
		t.Errorf("one-shot fired again: %d", fired)
	}
}

func TestSchedulerRepeating(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration
	s.Every(TimerPatrol, 1500*time.Millisecond, func() { at = append(at, s.Now()) })

	s.Advance(5 * time.Second)

	want := []time.Duration{1500 * time.Millisecond, 3 * time.Second, 4500 * time.Millisecond}
	if len(at) != len(want) {
		t.Fatalf("fired %d times, want %d", len(at), len(want))
	}
	for i := range want {
		if at[i] != want[i] {
			t.Errorf("firing %d at %v, want %v", i, at[i], want[i])
		}
	}
	if s.Now() != 5*time.Second {
		t.Errorf("Now = %v, want 5s", s.Now())
	}
}

func TestSchedulerSmallSteps(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.Every(TimerManaRegen, time.Second, func() { fired++ })

	// 100 ticks per second for three seconds.
	for range 300 {
		s.Advance(10 * time.Millisecond)
	}
	if fired != 3 {
		t.Errorf("fired = %d, want 3", fired)
	}
}

func TestSchedulerRearmReplaces(t *testing.T) {
	s := NewScheduler()
	first, second := 0, 0
	s.After(TimerTrapWarning, 2*time.Second, func() { first++ })
	s.Advance(time.Second)
	s.After(TimerTrapWarning, 2*time.Second, func() { second++ })

	if s.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", s.Pending())
	}

	s.Advance(1500 * time.Millisecond)
	if first != 0 || second != 0 {
		t.Fatalf("replaced timer fired: first=%d second=%d", first, second)
	}
	s.Advance(500 * time.Millisecond)
	if first != 0 || second != 1 {
		t.Errorf("first=%d second=%d, want 0 and 1", first, second)
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.Every(TimerCooldown, time.Second, func() { fired = true })
	s.Every(TimerPatrol, time.Second, func() {})
	s.Cancel(TimerCooldown)
	s.Cancel(TimerDeathReset) // Not armed

	s.Advance(3 * time.Second)
	if fired {
		t.Error("cancelled timer fired")
	}
	if !s.Active(TimerPatrol) {
		t.Error("other timers must survive Cancel")
	}

	s.CancelAll()
	if s.Pending() != 0 {
		t.Errorf("Pending = %d after CancelAll", s.Pending())
	}
}

func TestSchedulerSelfCancel(t *testing.T) {
	s := NewScheduler()
	count := 3
	s.Every(TimerCooldown, time.Second, func() {
		count--
		if count == 0 {
			s.Cancel(TimerCooldown)
		}
	})

	s.Advance(10 * time.Second)
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
	if s.Active(TimerCooldown) {
		t.Error("timer should have cancelled itself")
	}
}

func TestSchedulerOrder(t *testing.T) {
	s := NewScheduler()
	var order []TimerKind
	s.After(TimerDeathReset, 2*time.Second, func() { order = append(order, TimerDeathReset) })
	s.After(TimerTrapWarning, time.Second, func() { order = append(order, TimerTrapWarning) })
	s.After(TimerCooldown, time.Second, func() { order = append(order, TimerCooldown) })

	s.Advance(5 * time.Second)

	want := []TimerKind{TimerTrapWarning, TimerCooldown, TimerDeathReset}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %v, want %v", i, order[i], want[i])
		}
	}
}

func TestSchedulerCallbackArmsTimer(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(TimerTrapWarning, time.Second, func() {
		s.After(TimerDeathReset, 500*time.Millisecond, func() { fired = true })
	})

	s.Advance(2 * time.Second)
	if !fired {
		t.Error("timer armed from a callback should fire within the same Advance")
	}
}

func TestSchedulerCancelAllFromCallback(t *testing.T) {
	s := NewScheduler()
	other := false
	s.After(TimerTrapWarning, time.Second, func() { s.CancelAll() })
	s.After(TimerPatrol, 2*time.Second, func() { other = true })

	s.Advance(3 * time.Second)
	if other {
		t.Error("timer cancelled by a callback fired")
	}
}
