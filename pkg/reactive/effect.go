package reactive

// Effect is a re-runnable unit of work whose dependencies are
// recomputed on every run. Reading a reactive value during a run
// subscribes the effect to that value; a later write re-runs the
// effect (or invokes its scheduler).
type Effect struct {
	fn        func()
	scheduler func()

	// active is false after Stop. An inactive effect still executes
	// its function on Run but performs no tracking.
	active bool

	// running guards against re-entrant self-triggering: a mutation of
	// an effect's own dependency during its run must not recurse.
	running bool

	// deps are the dependency sets this effect currently appears in,
	// kept for O(1) detach on re-run and Stop.
	deps []*depSet

	// lazy suppresses the initial run; used by Computed.
	lazy bool
}

// EffectOption configures a new Effect.
type EffectOption func(*Effect)

// WithScheduler defers triggered re-runs through fn instead of running
// the effect synchronously. This is the sole integration seam the
// component system uses to batch updates; fn decides when (and
// whether) to call Run.
func WithScheduler(fn func()) EffectOption {
	return func(e *Effect) {
		e.scheduler = fn
	}
}

// lazyEffect suppresses the immediate first run.
func lazyEffect() EffectOption {
	return func(e *Effect) {
		e.lazy = true
	}
}

// NewEffect wraps fn as an effect and runs it once to establish its
// initial dependencies.
func NewEffect(fn func(), opts ...EffectOption) *Effect {
	e := &Effect{fn: fn, active: true}
	for _, opt := range opts {
		opt(e)
	}
	if !e.lazy {
		e.Run()
	}
	return e
}

// Run executes the effect under dependency tracking.
//
// Previously tracked dependencies are cleared first, so conditional
// reads re-subscribe correctly on every run. If the effect has been
// stopped, the function still executes but without tracking. A
// re-entrant Run while already executing is suppressed.
func (e *Effect) Run() {
	if !e.active {
		// Still executes, but with tracking suppressed so the read
		// does not subscribe anything (including a surrounding
		// effect) through this run.
		Untracked(e.fn)
		return
	}
	if e.running {
		return
	}
	e.detach()
	e.running = true
	pushEffect(e)
	defer func() {
		popEffect()
		e.running = false
	}()
	e.fn()
}

// invoke routes a trigger through the scheduler when one is set.
func (e *Effect) invoke() {
	if e.scheduler != nil {
		e.scheduler()
		return
	}
	e.Run()
}

// Stop detaches the effect from every dependency set and deactivates
// it. Idempotent.
func (e *Effect) Stop() {
	if !e.active {
		return
	}
	e.detach()
	e.active = false
}

// Active reports whether the effect is still tracking.
func (e *Effect) Active() bool {
	return e.active
}

func (e *Effect) detach() {
	for _, set := range e.deps {
		set.remove(e)
	}
	e.deps = e.deps[:0]
}
