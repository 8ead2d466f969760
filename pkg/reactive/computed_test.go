package reactive

import "testing"

func TestComputedLazy(t *testing.T) {
	calls := 0
	c := NewComputed(func() int {
		calls++
		return 42
	})

	if calls != 0 {
		t.Fatalf("computed must not evaluate eagerly, got %d calls", calls)
	}
	if c.Value() != 42 {
		t.Errorf("expected 42, got %d", c.Value())
	}
	if calls != 1 {
		t.Errorf("expected 1 getter call after first read, got %d", calls)
	}
}

func TestComputedCaching(t *testing.T) {
	obj := Wrap(map[string]any{"n": 2}).(*Object)

	calls := 0
	c := NewComputed(func() int {
		calls++
		return obj.Get("n").(int) * 10
	})

	for i := 0; i < 3; i++ {
		if c.Value() != 20 {
			t.Fatalf("expected 20, got %d", c.Value())
		}
	}
	if calls != 1 {
		t.Errorf("getter should be invoked exactly once across reads, got %d", calls)
	}

	obj.Set("n", 3)
	if calls != 1 {
		t.Errorf("a dependency change must not recompute eagerly, got %d", calls)
	}
	if c.Value() != 30 {
		t.Errorf("expected 30 after change, got %d", c.Value())
	}
	if calls != 2 {
		t.Errorf("expected recompute on next read, got %d calls", calls)
	}
}

func TestComputedTrackedBySurroundingEffect(t *testing.T) {
	obj := Wrap(map[string]any{"n": 1}).(*Object)
	c := NewComputed(func() int {
		return obj.Get("n").(int) + 1
	})

	runs := 0
	var got int
	NewEffect(func() {
		runs++
		got = c.Value()
	})
	if runs != 1 || got != 2 {
		t.Fatalf("expected initial 2, got %d after %d runs", got, runs)
	}

	obj.Set("n", 5)
	if runs != 2 {
		t.Errorf("effect reading a computed should re-run on its deps, got %d", runs)
	}
	if got != 6 {
		t.Errorf("expected 6, got %d", got)
	}
}

func TestComputedChain(t *testing.T) {
	obj := Wrap(map[string]any{"n": 1}).(*Object)
	double := NewComputed(func() int {
		return obj.Get("n").(int) * 2
	})
	quad := NewComputed(func() int {
		return double.Value() * 2
	})

	var got int
	NewEffect(func() {
		got = quad.Value()
	})
	if got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}

	obj.Set("n", 3)
	if got != 12 {
		t.Errorf("computed chain should propagate, expected 12, got %d", got)
	}
}

func TestComputedStop(t *testing.T) {
	obj := Wrap(map[string]any{"n": 1}).(*Object)
	calls := 0
	c := NewComputed(func() int {
		calls++
		return obj.Get("n").(int)
	})

	_ = c.Value()
	c.Stop()

	runs := 0
	NewEffect(func() {
		runs++
		_ = c.Value()
	})

	obj.Set("n", 2)
	if runs != 1 {
		t.Errorf("stopped computed must not notify dependents, got %d runs", runs)
	}
}

func TestComputedStopReadsThrough(t *testing.T) {
	obj := Wrap(map[string]any{"n": 1}).(*Object)
	c := NewComputed(func() int {
		return obj.Get("n").(int)
	})

	_ = c.Value()
	c.Stop()

	obj.Set("n", 2)
	if got := c.Value(); got != 2 {
		t.Errorf("stopped computed should evaluate per read, got %d", got)
	}
	obj.Set("n", 3)
	if got := c.Value(); got != 3 {
		t.Errorf("stopped computed served a stale cache, got %d", got)
	}
	if got := c.Peek(); got != 3 {
		t.Errorf("Peek on stopped computed got %d", got)
	}
}
