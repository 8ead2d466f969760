// Package el provides the element-building DSL for Lumen.
//
// Constructors take a mix of attributes and children:
//
//	el.Div(el.Class("card"), el.ID("main"),
//	    el.H1(el.Text("Title")),
//	    el.P(el.Text("Content")),
//	    el.On("click", handler),
//	)
package el

import (
	"fmt"

	"github.com/lumen-ui/lumen/pkg/vdom"
)

// VNode and Props alias the VDOM primitives used by the DSL.
type VNode = vdom.VNode
type Props = vdom.Props

// Attr is a single attribute or event handler argument.
type Attr struct {
	Key   string
	Value any
}

// El builds a host element from a mix of Attr values, child nodes,
// plain strings (text children), and child slices.
func El(tag string, args ...any) *VNode {
	var props Props
	var children []*VNode
	for _, arg := range args {
		switch a := arg.(type) {
		case nil:
			// skip
		case Attr:
			if props == nil {
				props = Props{}
			}
			props[a.Key] = a.Value
		case *VNode:
			if a != nil {
				children = append(children, a)
			}
		case []*VNode:
			children = append(children, a...)
		case string:
			children = append(children, vdom.NewText(a))
		default:
			children = append(children, vdom.NewText(fmt.Sprint(a)))
		}
	}
	return vdom.NewElement(tag, props, children...)
}

// Text creates a text node.
func Text(content string) *VNode {
	return vdom.NewText(content)
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return vdom.NewText(fmt.Sprintf(format, args...))
}

// Dyn creates a text node flagged as interpolation output.
func Dyn(content string) *VNode {
	return vdom.NewDynamicText(content)
}

// Comment creates a comment node.
func Comment(content string) *VNode {
	return vdom.NewComment(content)
}

// Fragment groups children without a wrapper element.
func Fragment(children ...*VNode) *VNode {
	return vdom.NewFragment(children...)
}

// Teleport renders children into the host node matching target.
func Teleport(target string, children ...*VNode) *VNode {
	return vdom.NewTeleport(target, children...)
}

// Component creates a component node.
func Component(def *vdom.Definition, args ...any) *VNode {
	var props Props
	var children []*VNode
	for _, arg := range args {
		switch a := arg.(type) {
		case Attr:
			if props == nil {
				props = Props{}
			}
			props[a.Key] = a.Value
		case *VNode:
			children = append(children, a)
		case []*VNode:
			children = append(children, a...)
		}
	}
	return vdom.NewComponent(def, props, children...)
}

// If returns node when condition holds, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// Range maps items to child nodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		out = append(out, fn(item, i))
	}
	return out
}

// ID sets the id attribute.
func ID(id string) Attr { return Attr{Key: "id", Value: id} }

// Class sets the class attribute.
func Class(class string) Attr { return Attr{Key: "class", Value: class} }

// Key sets the reconciliation key.
func Key(key any) Attr { return Attr{Key: "key", Value: key} }

// AttrOf sets an arbitrary attribute.
func AttrOf(key string, value any) Attr { return Attr{Key: key, Value: value} }

// On attaches an event handler prop ("click" → "onclick").
func On(event string, handler any) Attr {
	return Attr{Key: "on" + event, Value: handler}
}

// Common element constructors.
func Div(args ...any) *VNode      { return El("div", args...) }
func Span(args ...any) *VNode     { return El("span", args...) }
func P(args ...any) *VNode        { return El("p", args...) }
func H1(args ...any) *VNode       { return El("h1", args...) }
func H2(args ...any) *VNode       { return El("h2", args...) }
func H3(args ...any) *VNode       { return El("h3", args...) }
func Ul(args ...any) *VNode       { return El("ul", args...) }
func Ol(args ...any) *VNode       { return El("ol", args...) }
func Li(args ...any) *VNode       { return El("li", args...) }
func Button(args ...any) *VNode   { return El("button", args...) }
func Input(args ...any) *VNode    { return El("input", args...) }
func Form(args ...any) *VNode     { return El("form", args...) }
func Label(args ...any) *VNode    { return El("label", args...) }
func A(args ...any) *VNode        { return El("a", args...) }
func Img(args ...any) *VNode      { return El("img", args...) }
func Section(args ...any) *VNode  { return El("section", args...) }
func Header(args ...any) *VNode   { return El("header", args...) }
func Footer(args ...any) *VNode   { return El("footer", args...) }
func Main(args ...any) *VNode     { return El("main", args...) }
func Nav(args ...any) *VNode      { return El("nav", args...) }
func Table(args ...any) *VNode    { return El("table", args...) }
func Tr(args ...any) *VNode       { return El("tr", args...) }
func Td(args ...any) *VNode       { return El("td", args...) }
func Th(args ...any) *VNode       { return El("th", args...) }
func Pre(args ...any) *VNode      { return El("pre", args...) }
func Code(args ...any) *VNode     { return El("code", args...) }
func Strong(args ...any) *VNode   { return El("strong", args...) }
func Em(args ...any) *VNode       { return El("em", args...) }
func Textarea(args ...any) *VNode { return El("textarea", args...) }
func Select(args ...any) *VNode   { return El("select", args...) }
func OptionEl(args ...any) *VNode { return El("option", args...) }
