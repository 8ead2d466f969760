package vdom

// PropDef declares a single component prop.
type PropDef struct {
	// Default is the value used when the prop is not passed.
	Default any
}

// RenderFunc produces a VNode tree from a component context.
// Compiler output and hand-authored components share this shape.
type RenderFunc func(ctx Ctx) *VNode

// MethodFunc is a component method or action, bound to its instance
// context at call time.
type MethodFunc func(ctx Ctx, args ...any) any

// SetupFunc runs once per instance before first render. Values in the
// returned map are merged into the instance's reactive state.
type SetupFunc func(props map[string]any, ctx Ctx) map[string]any

// Definition is the public shape of a component.
//
// Render and Template are mutually substitutable; a Template is
// compiled to a RenderFunc by an external compiler. When neither is
// present the instance renders a placeholder comment.
type Definition struct {
	Name       string
	Props      map[string]PropDef
	State      func() map[string]any
	Methods    map[string]MethodFunc
	Computed   map[string]func(ctx Ctx) any
	Setup      SetupFunc
	Actions    map[string]MethodFunc
	Render     RenderFunc
	Template   string
	Components map[string]*Definition
}

// Ctx is the capability surface a render function sees. Name lookup
// resolves internal state, then methods, then sibling components, then
// app-level globals, in that order.
type Ctx interface {
	// Get resolves a name through the capability chain.
	Get(name string) any

	// Set writes a value into the instance's reactive state.
	Set(name string, value any)

	// Call invokes a method or action by name.
	Call(name string, args ...any) any

	// Component resolves a component definition by registered name.
	Component(name string) *Definition

	// Slot returns the named slot content ("default" for children).
	Slot(name string) []*VNode
}
