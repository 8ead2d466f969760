package engine

// Host is the platform abstraction the patch engine is parameterized
// over. Host nodes are opaque to the engine; it only threads them back
// into the same adapter. Implementations exist for an in-memory tree
// (pkg/memhost) and can target any backend that supports these
// primitives.
type Host interface {
	// CreateElement returns a new, unattached host node for a tag.
	CreateElement(tag string) any

	// CreateText returns a new, unattached text node.
	CreateText(text string) any

	// CreateComment returns a new, unattached comment node.
	CreateComment(text string) any

	// PatchProp applies or removes a single prop. A nil next value
	// means remove.
	PatchProp(el any, key string, prev, next any)

	// Insert places node into parent before anchor, or at the end
	// when anchor is nil. Inserting an attached node moves it.
	Insert(node, parent, anchor any)

	// Remove detaches node from its parent. Must be safe to call on
	// already-detached nodes.
	Remove(node any)

	// NextSibling returns the node immediately after node in its
	// parent, or nil when node is last or detached. Used to anchor
	// replacements at the position of the node they replace.
	NextSibling(node any) any

	// SetElementText replaces all children of el with a single text
	// content. Applied to a text node it replaces the payload.
	SetElementText(el any, text string)

	// QuerySelector resolves a teleport target. Returns nil when not
	// found; the engine treats that as non-fatal.
	QuerySelector(selector string) any
}
