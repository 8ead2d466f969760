package reactive

// Computed is a lazily evaluated, cached derivation. The getter does
// not run until the first Value read; later reads return the cache
// until a dependency changes, which only flips a dirty flag and
// notifies dependents without recomputing eagerly.
//
// Reading Value inside an effect additionally subscribes that effect
// to the computed itself, so chains of computeds propagate.
type Computed[T any] struct {
	src    source
	effect *Effect
	value  T
	dirty  bool
}

// NewComputed creates a computed backed by getter. No evaluation
// happens until Value is read.
func NewComputed[T any](getter func() T) *Computed[T] {
	c := &Computed[T]{dirty: true}
	c.effect = NewEffect(func() {
		c.value = getter()
	}, lazyEffect(), WithScheduler(func() {
		if !c.dirty {
			c.dirty = true
			c.src.trigger(keyValue)
		}
	}))
	return c
}

// Value returns the cached value, recomputing it if a dependency has
// changed since the last read.
func (c *Computed[T]) Value() T {
	c.src.track(keyValue)
	if c.dirty {
		// A stopped computed has no dependencies left to re-flag it,
		// so it stays dirty and re-evaluates on every read.
		if c.effect.active {
			c.dirty = false
		}
		c.effect.Run()
	}
	return c.value
}

// Peek returns the current value without subscribing the surrounding
// effect. Still recomputes when dirty.
func (c *Computed[T]) Peek() T {
	if c.dirty {
		if c.effect.active {
			c.dirty = false
		}
		c.effect.Run()
	}
	return c.value
}

// Stop detaches the computed from its dependencies. Subsequent reads
// evaluate the getter without tracking.
func (c *Computed[T]) Stop() {
	c.effect.Stop()
	c.dirty = true
}
