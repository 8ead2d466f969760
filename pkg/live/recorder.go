package live

import (
	"fmt"
	"reflect"

	"github.com/lumen-ui/lumen/pkg/engine"
)

// PatchOp identifies one host mutation in a patch stream.
type PatchOp string

const (
	OpCreateElement PatchOp = "createElement"
	OpCreateText    PatchOp = "createText"
	OpCreateComment PatchOp = "createComment"
	OpSetProp       PatchOp = "setProp"
	OpRemoveProp    PatchOp = "removeProp"
	OpInsert        PatchOp = "insert"
	OpRemove        PatchOp = "remove"
	OpSetText       PatchOp = "setText"
)

// Patch is one serializable host mutation. Node references are small
// integer IDs assigned by the recorder; ID 1 is always the mount root.
type Patch struct {
	Op     PatchOp `json:"op"`
	Node   int     `json:"node"`
	Parent int     `json:"parent,omitempty"`
	Anchor int     `json:"anchor,omitempty"`
	Tag    string  `json:"tag,omitempty"`
	Key    string  `json:"key,omitempty"`
	Value  string  `json:"value,omitempty"`
}

// Recorder decorates a Host and records every mutation as a Patch,
// assigning a stable integer ID to each host node it sees. The live
// session drains the record after each event and streams it to the
// client.
type Recorder struct {
	inner  engine.Host
	ids    map[any]int
	nextID int
	buf    []Patch
}

// NewRecorder wraps inner, registering root as node ID 1.
func NewRecorder(inner engine.Host, root any) *Recorder {
	r := &Recorder{
		inner:  inner,
		ids:    make(map[any]int),
		nextID: 1,
	}
	r.id(root)
	return r
}

var _ engine.Host = (*Recorder)(nil)

func (r *Recorder) id(node any) int {
	if node == nil {
		return 0
	}
	if id, ok := r.ids[node]; ok {
		return id
	}
	id := r.nextID
	r.nextID++
	r.ids[node] = id
	return id
}

// Drain returns the recorded patches and resets the buffer.
func (r *Recorder) Drain() []Patch {
	out := r.buf
	r.buf = nil
	return out
}

func (r *Recorder) CreateElement(tag string) any {
	node := r.inner.CreateElement(tag)
	r.buf = append(r.buf, Patch{Op: OpCreateElement, Node: r.id(node), Tag: tag})
	return node
}

func (r *Recorder) CreateText(text string) any {
	node := r.inner.CreateText(text)
	r.buf = append(r.buf, Patch{Op: OpCreateText, Node: r.id(node), Value: text})
	return node
}

func (r *Recorder) CreateComment(text string) any {
	node := r.inner.CreateComment(text)
	r.buf = append(r.buf, Patch{Op: OpCreateComment, Node: r.id(node), Value: text})
	return node
}

func (r *Recorder) PatchProp(el any, key string, prev, next any) {
	r.inner.PatchProp(el, key, prev, next)
	if next == nil {
		r.buf = append(r.buf, Patch{Op: OpRemoveProp, Node: r.id(el), Key: key})
		return
	}
	r.buf = append(r.buf, Patch{Op: OpSetProp, Node: r.id(el), Key: key, Value: stringify(next)})
}

func (r *Recorder) Insert(node, parent, anchor any) {
	r.inner.Insert(node, parent, anchor)
	r.buf = append(r.buf, Patch{
		Op:     OpInsert,
		Node:   r.id(node),
		Parent: r.id(parent),
		Anchor: r.id(anchor),
	})
}

func (r *Recorder) Remove(node any) {
	r.inner.Remove(node)
	id, ok := r.ids[node]
	if !ok {
		return
	}
	r.buf = append(r.buf, Patch{Op: OpRemove, Node: id})
	delete(r.ids, node)
}

func (r *Recorder) NextSibling(node any) any {
	return r.inner.NextSibling(node)
}

func (r *Recorder) SetElementText(el any, text string) {
	r.inner.SetElementText(el, text)
	r.buf = append(r.buf, Patch{Op: OpSetText, Node: r.id(el), Value: text})
}

func (r *Recorder) QuerySelector(selector string) any {
	return r.inner.QuerySelector(selector)
}

// stringify flattens a prop value into its wire form. Event handlers
// serialize to a marker; the client dispatches them back by name.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case func(args ...any) any:
		return "__handler"
	default:
		if reflect.ValueOf(v).Kind() == reflect.Func {
			return "__handler"
		}
		return fmt.Sprint(v)
	}
}
