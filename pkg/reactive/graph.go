package reactive

// syntheticKey is the key type for dependency edges that do not
// correspond to a user-visible property. Using a distinct type keeps
// synthetic edges from colliding with string keys named "size" etc.
type syntheticKey string

const (
	keyIterate syntheticKey = "iterate"
	keySize    syntheticKey = "size"
	keyLength  syntheticKey = "length"
	keyValue   syntheticKey = "value"
)

// depSet is an ordered set of effects observing one (source, key) edge.
// Effects re-run in insertion order on trigger, so removal has to
// preserve order rather than swap with the tail.
type depSet struct {
	effects []*Effect
}

// add appends the effect if not already present. Reports whether the
// effect was newly added.
func (s *depSet) add(e *Effect) bool {
	for _, existing := range s.effects {
		if existing == e {
			return false
		}
	}
	s.effects = append(s.effects, e)
	return true
}

// remove detaches the effect, keeping the remaining insertion order.
func (s *depSet) remove(e *Effect) {
	for i, existing := range s.effects {
		if existing == e {
			s.effects = append(s.effects[:i], s.effects[i+1:]...)
			return
		}
	}
}

// source is the per-target half of the dependency graph: key → set of
// observing effects. Every reactive wrapper and computed embeds one.
type source struct {
	deps map[any]*depSet
}

// track registers the currently running effect as a dependent of
// (this source, key). No-op outside an active effect.
func (s *source) track(key any) {
	e := activeEffect()
	if e == nil || !e.active {
		return
	}
	if s.deps == nil {
		s.deps = make(map[any]*depSet)
	}
	set := s.deps[key]
	if set == nil {
		set = &depSet{}
		s.deps[key] = set
	}
	if set.add(e) {
		e.deps = append(e.deps, set)
	}
}

// trigger re-runs every effect depending on (this source, key), in
// insertion order. Effects with a scheduler are deferred through it.
func (s *source) trigger(key any) {
	if s.deps == nil {
		return
	}
	set := s.deps[key]
	if set == nil || len(set.effects) == 0 {
		return
	}
	// Snapshot: effect runs re-subscribe and mutate the set.
	run := make([]*Effect, len(set.effects))
	copy(run, set.effects)
	for _, e := range run {
		e.invoke()
	}
}

// effectStack tracks the currently executing effects. Nested effects
// push/pop so the outer effect resumes tracking when the inner one
// completes. The engine is single-threaded by contract, so no locking.
var effectStack []*Effect

func activeEffect() *Effect {
	if len(effectStack) == 0 {
		return nil
	}
	return effectStack[len(effectStack)-1]
}

func pushEffect(e *Effect) {
	effectStack = append(effectStack, e)
}

func popEffect() {
	effectStack = effectStack[:len(effectStack)-1]
}

// Untracked runs fn with dependency tracking suspended. Reads inside
// fn do not subscribe the surrounding effect.
func Untracked(fn func()) {
	saved := effectStack
	effectStack = nil
	defer func() { effectStack = saved }()
	fn()
}
