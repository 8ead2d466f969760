package vdom

import "fmt"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement   Kind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindComment               // Comment node
	KindFragment              // Grouping without wrapper
	KindTeleport              // Children render into a queried target
	KindComponent             // Nested component
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindFragment:
		return "Fragment"
	case KindTeleport:
		return "Teleport"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Props holds attributes and event handlers.
type Props map[string]any

// PropDynamicText marks a text node as produced by an interpolation
// rather than a literal. Hosts may wrap such text with boundary markers
// so later diffing/hydration can locate it.
const PropDynamicText = "__dynamic"

// VNode is the virtual tree node.
//
// Children is a string for text-content fast paths (and the payload of
// Text/Comment nodes), or a []*VNode for element/fragment/teleport
// children and component slot content.
type VNode struct {
	Kind     Kind
	Tag      string      // Element tag name; Teleport target selector
	Props    Props       // Attributes and event handlers
	Children any         // string | []*VNode
	Key      string      // Reconciliation key, derived from Props["key"]
	Def      *Definition // For KindComponent
	El       any         // Host node, owned by this VNode once mounted
	Instance any         // Mounted component instance, for KindComponent
}

// ChildNodes returns the children as a node slice, or nil for
// text-content children.
func (v *VNode) ChildNodes() []*VNode {
	if v == nil {
		return nil
	}
	nodes, _ := v.Children.([]*VNode)
	return nodes
}

// TextContent returns the string payload for text-content children.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	s, _ := v.Children.(string)
	return s
}

// IsDynamicText reports whether this text node carries the
// interpolation marker.
func (v *VNode) IsDynamicText() bool {
	if v == nil || v.Props == nil {
		return false
	}
	dyn, _ := v.Props[PropDynamicText].(bool)
	return dyn
}

// NewElement creates a host element node.
func NewElement(tag string, props Props, children ...*VNode) *VNode {
	return &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    props,
		Children: children,
		Key:      keyOf(props),
	}
}

// NewElementText creates a host element whose content is a single text
// payload (the text-content fast path).
func NewElementText(tag string, props Props, text string) *VNode {
	return &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    props,
		Children: text,
		Key:      keyOf(props),
	}
}

// NewText creates a text node.
func NewText(text string) *VNode {
	return &VNode{Kind: KindText, Children: text}
}

// NewDynamicText creates a text node flagged as interpolation output.
func NewDynamicText(text string) *VNode {
	return &VNode{
		Kind:     KindText,
		Props:    Props{PropDynamicText: true},
		Children: text,
	}
}

// NewComment creates a comment node. Comment content is immutable
// after creation.
func NewComment(text string) *VNode {
	return &VNode{Kind: KindComment, Children: text}
}

// NewFragment creates a fragment grouping node.
func NewFragment(children ...*VNode) *VNode {
	return &VNode{Kind: KindFragment, Children: children}
}

// NewTeleport creates a teleport node whose children render into the
// host node resolved from the target selector.
func NewTeleport(target string, children ...*VNode) *VNode {
	return &VNode{Kind: KindTeleport, Tag: target, Children: children}
}

// NewComponent creates a component node. Children become the default
// slot content of the mounted instance.
func NewComponent(def *Definition, props Props, children ...*VNode) *VNode {
	return &VNode{
		Kind:     KindComponent,
		Def:      def,
		Props:    props,
		Children: children,
		Key:      keyOf(props),
	}
}

// keyOf derives the reconciliation key from props.
func keyOf(props Props) string {
	if props == nil {
		return ""
	}
	k, ok := props["key"]
	if !ok || k == nil {
		return ""
	}
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
