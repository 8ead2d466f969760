package reactive

import "reflect"

// sameValue reports identity equality in the sense used by the
// trigger-suppression rule: comparable values use ==, maps and slices
// compare by underlying data pointer. Values of different dynamic
// types are never the same.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra := reflect.ValueOf(a)
	rb := reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	if ra.Type().Comparable() {
		return a == b
	}
	switch ra.Kind() {
	case reflect.Map:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	}
	return false
}
