package reactive

import "testing"

func TestEffectRunsImmediately(t *testing.T) {
	runs := 0
	NewEffect(func() { runs++ })
	if runs != 1 {
		t.Errorf("expected immediate run, got %d", runs)
	}
}

func TestEffectReRunsOnChange(t *testing.T) {
	obj := Wrap(map[string]any{"n": 0}).(*Object)

	var got any
	NewEffect(func() {
		got = obj.Get("n")
	})

	obj.Set("n", 7)
	if got != 7 {
		t.Errorf("expected effect to observe 7, got %v", got)
	}
}

func TestConditionalDependencyResubscription(t *testing.T) {
	obj := Wrap(map[string]any{"cond": true, "b": "B", "c": "C"}).(*Object)

	runs := 0
	var got any
	NewEffect(func() {
		runs++
		if obj.Get("cond").(bool) {
			got = obj.Get("b")
		} else {
			got = obj.Get("c")
		}
	})
	if runs != 1 || got != "B" {
		t.Fatalf("expected initial B, got %v after %d runs", got, runs)
	}

	// While cond is true, c is not a dependency.
	obj.Set("c", "C2")
	if runs != 1 {
		t.Errorf("untaken branch must not be a dependency, got %d runs", runs)
	}

	obj.Set("cond", false)
	if runs != 2 || got != "C2" {
		t.Fatalf("expected C2 after flip, got %v after %d runs", got, runs)
	}

	// After the flip, b is no longer a dependency.
	obj.Set("b", "B2")
	if runs != 2 {
		t.Errorf("stale dependency on b survived re-subscription, got %d runs", runs)
	}

	obj.Set("c", "C3")
	if runs != 3 || got != "C3" {
		t.Errorf("expected C3, got %v after %d runs", got, runs)
	}
}

func TestNestedEffectsRestoreOuter(t *testing.T) {
	obj := Wrap(map[string]any{"inner": 1, "outer": 1}).(*Object)

	innerRuns := 0
	outerRuns := 0
	first := true
	NewEffect(func() {
		outerRuns++
		if first {
			first = false
			NewEffect(func() {
				innerRuns++
				_ = obj.Get("inner")
			})
		}
		// Read after the nested effect completes: must track to the
		// outer effect, not the inner one.
		_ = obj.Get("outer")
	})

	obj.Set("outer", 2)
	if outerRuns != 2 {
		t.Errorf("outer effect should re-run after stack restore, got %d", outerRuns)
	}
	if innerRuns != 1 {
		t.Errorf("inner effect should not depend on outer key, got %d", innerRuns)
	}

	obj.Set("inner", 2)
	if innerRuns != 2 {
		t.Errorf("inner effect should re-run, got %d", innerRuns)
	}
	if outerRuns != 2 {
		t.Errorf("outer effect should not depend on inner key, got %d", outerRuns)
	}
}

func TestEffectStop(t *testing.T) {
	obj := Wrap(map[string]any{"n": 0}).(*Object)

	runs := 0
	e := NewEffect(func() {
		runs++
		_ = obj.Get("n")
	})

	e.Stop()
	e.Stop() // idempotent

	obj.Set("n", 1)
	if runs != 1 {
		t.Errorf("stopped effect must not re-run, got %d", runs)
	}

	// Manual run still executes but performs no tracking.
	e.Run()
	if runs != 2 {
		t.Errorf("manual run of a stopped effect should execute, got %d", runs)
	}
	obj.Set("n", 2)
	if runs != 2 {
		t.Errorf("stopped effect must not resubscribe on manual run, got %d", runs)
	}
}

func TestEffectScheduler(t *testing.T) {
	obj := Wrap(map[string]any{"n": 0}).(*Object)

	runs := 0
	scheduled := 0
	e := NewEffect(func() {
		runs++
		_ = obj.Get("n")
	}, WithScheduler(func() {
		scheduled++
	}))

	if runs != 1 {
		t.Fatalf("initial run bypasses the scheduler, got %d", runs)
	}

	obj.Set("n", 1)
	obj.Set("n", 2)
	if scheduled != 2 {
		t.Errorf("expected 2 scheduler invocations, got %d", scheduled)
	}
	if runs != 1 {
		t.Errorf("triggers must not run the effect directly, got %d runs", runs)
	}

	e.Run()
	if runs != 2 {
		t.Errorf("deferred run should execute, got %d", runs)
	}
}

func TestEffectReentrancyGuard(t *testing.T) {
	obj := Wrap(map[string]any{"n": 0}).(*Object)

	runs := 0
	NewEffect(func() {
		runs++
		if runs > 5 {
			t.Fatal("effect recursed on its own mutation")
		}
		n := obj.Get("n").(int)
		// Mutating our own dependency mid-run must not recurse.
		obj.Set("n", n+1)
	})

	if runs != 1 {
		t.Errorf("expected exactly one run, got %d", runs)
	}
	if obj.Get("n") != 1 {
		t.Errorf("expected n=1, got %v", obj.Get("n"))
	}
}

func TestUntracked(t *testing.T) {
	obj := Wrap(map[string]any{"n": 0}).(*Object)

	runs := 0
	NewEffect(func() {
		runs++
		Untracked(func() {
			_ = obj.Get("n")
		})
	})

	obj.Set("n", 1)
	if runs != 1 {
		t.Errorf("untracked read must not subscribe, got %d runs", runs)
	}
}

func TestTriggerOrderFollowsSubscription(t *testing.T) {
	obj := Wrap(map[string]any{"n": 0}).(*Object)

	var order []string
	NewEffect(func() {
		_ = obj.Get("n")
		order = append(order, "first")
	})
	NewEffect(func() {
		_ = obj.Get("n")
		order = append(order, "second")
	})

	order = nil
	obj.Set("n", 1)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("effects must re-run in subscription order, got %v", order)
	}
}
