// Package memhost is an in-memory host adapter for the Lumen engine.
// It backs the test suite and the live server's server-side tree, and
// serializes to HTML for initial page delivery.
package memhost

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/lumen-ui/lumen/pkg/engine"
	"github.com/lumen-ui/lumen/pkg/vdom"
)

// NodeKind discriminates host node types.
type NodeKind uint8

const (
	ElementNode NodeKind = iota
	TextNode
	CommentNode
)

// Node is one node in the in-memory tree.
type Node struct {
	Kind     NodeKind
	Tag      string
	Attrs    map[string]any
	Text     string
	Dynamic  bool // text produced by interpolation; serialized with boundary markers
	Children []*Node
	Parent   *Node
}

// Host implements engine.Host over an in-memory node tree.
type Host struct {
	doc  *Node
	body *Node
}

var _ engine.Host = (*Host)(nil)

// New creates a host with an empty document and body.
func New() *Host {
	doc := &Node{Kind: ElementNode, Tag: "#document"}
	body := &Node{Kind: ElementNode, Tag: "body", Parent: doc}
	doc.Children = []*Node{body}
	return &Host{doc: doc, body: body}
}

// Body returns the body container, the usual mount point.
func (h *Host) Body() any {
	return h.body
}

// Document returns the document root.
func (h *Host) Document() *Node {
	return h.doc
}

// CreateElement returns a new detached element node.
func (h *Host) CreateElement(tag string) any {
	return &Node{Kind: ElementNode, Tag: tag}
}

// CreateText returns a new detached text node.
func (h *Host) CreateText(text string) any {
	return &Node{Kind: TextNode, Text: text}
}

// CreateComment returns a new detached comment node.
func (h *Host) CreateComment(text string) any {
	return &Node{Kind: CommentNode, Text: text}
}

// PatchProp applies or removes a single prop; nil next removes.
func (h *Host) PatchProp(el any, key string, prev, next any) {
	n := el.(*Node)
	if key == vdom.PropDynamicText {
		n.Dynamic = next != nil
		return
	}
	if next == nil {
		delete(n.Attrs, key)
		return
	}
	if n.Attrs == nil {
		n.Attrs = make(map[string]any)
	}
	n.Attrs[key] = next
}

// Insert places node into parent before anchor; an attached node is
// detached first, so Insert doubles as move.
func (h *Host) Insert(node, parent, anchor any) {
	n := node.(*Node)
	p := parent.(*Node)
	h.Remove(node)
	idx := len(p.Children)
	if anchor != nil {
		if a, ok := anchor.(*Node); ok && a != nil {
			for i, c := range p.Children {
				if c == a {
					idx = i
					break
				}
			}
		}
	}
	p.Children = append(p.Children, nil)
	copy(p.Children[idx+1:], p.Children[idx:])
	p.Children[idx] = n
	n.Parent = p
}

// NextSibling returns the node after node in its parent, or nil when
// node is last or detached.
func (h *Host) NextSibling(node any) any {
	n, ok := node.(*Node)
	if !ok || n == nil || n.Parent == nil {
		return nil
	}
	for i, c := range n.Parent.Children {
		if c == n {
			if i+1 < len(n.Parent.Children) {
				return n.Parent.Children[i+1]
			}
			return nil
		}
	}
	return nil
}

// Remove detaches node from its parent; no-op when already detached.
func (h *Host) Remove(node any) {
	n, ok := node.(*Node)
	if !ok || n == nil || n.Parent == nil {
		return
	}
	p := n.Parent
	for i, c := range p.Children {
		if c == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	n.Parent = nil
}

// SetElementText replaces all children of el with a single text
// content. On a text node it replaces the payload.
func (h *Host) SetElementText(el any, text string) {
	n := el.(*Node)
	if n.Kind == TextNode {
		n.Text = text
		return
	}
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
	n.Text = text
}

// QuerySelector resolves "#id" against id attributes, anything else
// as a tag name. Returns nil when nothing matches.
func (h *Host) QuerySelector(selector string) any {
	var match func(n *Node) bool
	if id, ok := strings.CutPrefix(selector, "#"); ok {
		match = func(n *Node) bool {
			v, _ := n.Attrs["id"].(string)
			return v == id
		}
	} else {
		match = func(n *Node) bool { return n.Tag == selector }
	}
	if found := find(h.doc, match); found != nil {
		return found
	}
	return nil
}

func find(n *Node, match func(*Node) bool) *Node {
	if n.Kind == ElementNode && n.Tag != "#document" && match(n) {
		return n
	}
	for _, c := range n.Children {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

// HTML serializes the document body.
func (h *Host) HTML() string {
	var b strings.Builder
	writeNode(&b, h.body)
	return b.String()
}

// OuterHTML serializes a single node.
func OuterHTML(n *Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	switch n.Kind {
	case TextNode:
		if n.Dynamic {
			b.WriteString("<!--[-->")
			b.WriteString(n.Text)
			b.WriteString("<!--]-->")
			return
		}
		b.WriteString(n.Text)
	case CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Text)
		b.WriteString("-->")
	case ElementNode:
		b.WriteString("<")
		b.WriteString(n.Tag)
		writeAttrs(b, n.Attrs)
		b.WriteString(">")
		if len(n.Children) > 0 {
			for _, c := range n.Children {
				writeNode(b, c)
			}
		} else {
			b.WriteString(n.Text)
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteString(">")
	}
}

func writeAttrs(b *strings.Builder, attrs map[string]any) {
	if len(attrs) == 0 {
		return
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := attrs[k]
		if reflect.ValueOf(v).Kind() == reflect.Func {
			continue // event handlers don't serialize
		}
		fmt.Fprintf(b, " %s=%q", k, fmt.Sprint(v))
	}
}
