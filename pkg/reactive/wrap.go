package reactive

import "reflect"

// wrapCache maps raw map identity to its wrapper, so exactly one
// wrapper exists per raw map. Keyed by the map's data pointer, which
// is stable for a map's lifetime. Slices are excluded: their data
// pointer moves on realloc, so list identity is carried by the
// wrapper itself (see Wrap and Raw).
var wrapCache = make(map[uintptr]any)

// Wrap returns the reactive wrapper for a raw target. Property reads
// on the wrapper performed inside an effect register dependency edges;
// writes that change a value re-run the observing effects.
//
// Supported targets: map[string]any (Object), []any (List), and
// map[any]any (Dict). Already-wrapped values are returned as-is, and
// anything else (primitives, structs, typed maps) passes through
// unchanged.
func Wrap(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case *Object, *List, *Dict, *Set:
		return v
	case map[string]any:
		ptr := reflect.ValueOf(t).Pointer()
		if w, ok := wrapCache[ptr]; ok {
			return w
		}
		o := &Object{raw: t}
		wrapCache[ptr] = o
		return o
	case map[any]any:
		ptr := reflect.ValueOf(t).Pointer()
		if w, ok := wrapCache[ptr]; ok {
			return w
		}
		d := &Dict{raw: t}
		for k := range t {
			d.order = append(d.order, k)
		}
		wrapCache[ptr] = d
		return d
	case []any:
		// Slices have no stable identity: mutations reallocate the
		// backing array and an empty slice has no data pointer at
		// all. The wrapper itself is the identity; container reads
		// store it back in place of the raw slice.
		return &List{raw: t}
	default:
		return v
	}
}

// isWrapper reports whether v is already a reactive wrapper.
func isWrapper(v any) bool {
	switch v.(type) {
	case *Object, *List, *Dict, *Set:
		return true
	}
	return false
}

// Raw retrieves the raw target behind a wrapper. Object and Dict
// unwrap to their backing maps, whose identity is stable; List and
// Set reallocate their backing storage on mutation, so the wrapper
// itself is the canonical identity and is returned as-is. Non-wrapped
// values are returned unchanged.
func Raw(v any) any {
	switch t := v.(type) {
	case *Object:
		return t.raw
	case *Dict:
		return t.raw
	default:
		return v
	}
}

// Object is the reactive wrapper for a string-keyed record.
type Object struct {
	src source
	raw map[string]any
}

// NewObject wraps an empty record.
func NewObject() *Object {
	return Wrap(map[string]any{}).(*Object)
}

// Get reads a property, tracking it and lazily wrapping nested
// targets on access. A freshly wrapped target replaces the raw value
// in storage so every read observes the same wrapper.
func (o *Object) Get(key string) any {
	o.src.track(key)
	v := o.raw[key]
	w := Wrap(v)
	if isWrapper(w) && !isWrapper(v) {
		o.raw[key] = w
	}
	return w
}

// Has reports whether the property exists, tracking the key.
func (o *Object) Has(key string) bool {
	o.src.track(key)
	_, ok := o.raw[key]
	return ok
}

// Set writes a property. A write of an identity-equal value does not
// trigger dependents.
func (o *Object) Set(key string, value any) {
	value = Raw(value)
	old, existed := o.raw[key]
	if existed && sameValue(old, value) {
		return
	}
	o.raw[key] = value
	o.src.trigger(key)
	if !existed {
		o.src.trigger(keyIterate)
	}
}

// Delete removes a property, triggering the key and iteration
// dependents.
func (o *Object) Delete(key string) {
	if _, ok := o.raw[key]; !ok {
		return
	}
	delete(o.raw, key)
	o.src.trigger(key)
	o.src.trigger(keyIterate)
}

// Keys returns the current property names, tracking iteration.
func (o *Object) Keys() []string {
	o.src.track(keyIterate)
	keys := make([]string, 0, len(o.raw))
	for k := range o.raw {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the property count, tracking iteration.
func (o *Object) Len() int {
	o.src.track(keyIterate)
	return len(o.raw)
}

// List is the reactive wrapper for an index-addressed sequence.
type List struct {
	src source
	raw []any
}

// NewList wraps the given values.
func NewList(values ...any) *List {
	return &List{raw: values}
}

// Get reads an index, tracking it. Out-of-range reads return nil and
// track the length instead.
func (l *List) Get(i int) any {
	if i < 0 || i >= len(l.raw) {
		l.src.track(keyLength)
		return nil
	}
	l.src.track(i)
	v := l.raw[i]
	w := Wrap(v)
	if isWrapper(w) && !isWrapper(v) {
		l.raw[i] = w
	}
	return w
}

// Set writes an index. Identity-equal writes do not trigger.
func (l *List) Set(i int, value any) {
	if i < 0 || i >= len(l.raw) {
		return
	}
	value = Raw(value)
	if sameValue(l.raw[i], value) {
		return
	}
	l.raw[i] = value
	l.src.trigger(i)
}

// Append adds values to the end, triggering the new indices, the
// length, and iteration dependents.
func (l *List) Append(values ...any) {
	for _, v := range values {
		l.raw = append(l.raw, Raw(v))
		l.src.trigger(len(l.raw) - 1)
	}
	if len(values) > 0 {
		l.src.trigger(keyLength)
		l.src.trigger(keyIterate)
	}
}

// Remove deletes the element at i, shifting the tail down. It
// triggers the shifted indices, the length, and iteration dependents.
func (l *List) Remove(i int) {
	if i < 0 || i >= len(l.raw) {
		return
	}
	l.raw = append(l.raw[:i], l.raw[i+1:]...)
	for j := i; j <= len(l.raw); j++ {
		l.src.trigger(j)
	}
	l.src.trigger(keyLength)
	l.src.trigger(keyIterate)
}

// Len returns the element count, tracking the length.
func (l *List) Len() int {
	l.src.track(keyLength)
	return len(l.raw)
}

// Values returns the wrapped elements, tracking iteration.
func (l *List) Values() []any {
	l.src.track(keyIterate)
	out := make([]any, len(l.raw))
	for i, v := range l.raw {
		w := Wrap(v)
		if isWrapper(w) && !isWrapper(v) {
			l.raw[i] = w
		}
		out[i] = w
	}
	return out
}

// Dict is the reactive wrapper for an arbitrary-keyed map with
// insertion-ordered iteration.
type Dict struct {
	src   source
	raw   map[any]any
	order []any
}

// NewDict creates an empty reactive map.
func NewDict() *Dict {
	return Wrap(map[any]any{}).(*Dict)
}

// Get reads an entry, tracking the key.
func (d *Dict) Get(key any) any {
	d.src.track(key)
	v := d.raw[key]
	w := Wrap(v)
	if isWrapper(w) && !isWrapper(v) {
		d.raw[key] = w
	}
	return w
}

// Has reports whether the key exists, tracking it.
func (d *Dict) Has(key any) bool {
	d.src.track(key)
	_, ok := d.raw[key]
	return ok
}

// Set writes an entry. Replacing an existing key's value triggers
// that key only; adding a new key additionally triggers size and
// iteration dependents.
func (d *Dict) Set(key, value any) {
	value = Raw(value)
	old, existed := d.raw[key]
	if existed {
		if sameValue(old, value) {
			return
		}
		d.raw[key] = value
		d.src.trigger(key)
		return
	}
	d.raw[key] = value
	d.order = append(d.order, key)
	d.src.trigger(key)
	d.src.trigger(keySize)
	d.src.trigger(keyIterate)
}

// Delete removes an entry, triggering the key, size, and iteration
// dependents.
func (d *Dict) Delete(key any) {
	if _, ok := d.raw[key]; !ok {
		return
	}
	delete(d.raw, key)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.src.trigger(key)
	d.src.trigger(keySize)
	d.src.trigger(keyIterate)
}

// Size returns the entry count, tracking the size key.
func (d *Dict) Size() int {
	d.src.track(keySize)
	return len(d.raw)
}

// Keys returns the keys in insertion order, tracking iteration.
func (d *Dict) Keys() []any {
	d.src.track(keyIterate)
	out := make([]any, len(d.order))
	copy(out, d.order)
	return out
}

// ForEach visits entries in insertion order, tracking iteration.
func (d *Dict) ForEach(fn func(key, value any)) {
	d.src.track(keyIterate)
	for _, k := range d.order {
		v := d.raw[k]
		w := Wrap(v)
		if isWrapper(w) && !isWrapper(v) {
			d.raw[k] = w
		}
		fn(k, w)
	}
}

// Set is the reactive wrapper for a set of comparable values with
// insertion-ordered iteration.
type Set struct {
	src   source
	raw   map[any]struct{}
	order []any
}

// NewSet creates a reactive set holding the given values.
func NewSet(values ...any) *Set {
	s := &Set{raw: make(map[any]struct{})}
	for _, v := range values {
		v = Raw(v)
		if _, ok := s.raw[v]; !ok {
			s.raw[v] = struct{}{}
			s.order = append(s.order, v)
		}
	}
	return s
}

// Add inserts a value. Adding a present value does not trigger.
func (s *Set) Add(value any) {
	value = Raw(value)
	if _, ok := s.raw[value]; ok {
		return
	}
	s.raw[value] = struct{}{}
	s.order = append(s.order, value)
	s.src.trigger(value)
	s.src.trigger(keySize)
	s.src.trigger(keyIterate)
}

// Has reports membership, tracking the value.
func (s *Set) Has(value any) bool {
	value = Raw(value)
	s.src.track(value)
	_, ok := s.raw[value]
	return ok
}

// Delete removes a value, triggering it, size, and iteration
// dependents.
func (s *Set) Delete(value any) {
	value = Raw(value)
	if _, ok := s.raw[value]; !ok {
		return
	}
	delete(s.raw, value)
	for i, v := range s.order {
		if v == value {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.src.trigger(value)
	s.src.trigger(keySize)
	s.src.trigger(keyIterate)
}

// Size returns the member count, tracking the size key.
func (s *Set) Size() int {
	s.src.track(keySize)
	return len(s.raw)
}

// Values returns the members in insertion order, tracking iteration.
func (s *Set) Values() []any {
	s.src.track(keyIterate)
	out := make([]any, len(s.order))
	copy(out, s.order)
	return out
}
