package engine

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/lumen-ui/lumen/pkg/vdom"
)

// Patcher diffs virtual trees and converges a host tree through a
// Host adapter. One Patcher drives one host tree; all calls are
// synchronous and single-threaded.
type Patcher struct {
	host    Host
	log     *zap.Logger
	metrics *Metrics
	app     *AppContext
}

// Option configures a Patcher.
type Option func(*Patcher)

// WithLogger sets the diagnostics logger. Defaults to a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Patcher) {
		p.log = log
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(p *Patcher) {
		p.metrics = m
	}
}

// WithAppContext sets the application context shared by component
// instances mounted from this Patcher's root.
func WithAppContext(app *AppContext) Option {
	return func(p *Patcher) {
		p.app = app
	}
}

// New creates a Patcher targeting the given host adapter.
func New(host Host, opts ...Option) *Patcher {
	p := &Patcher{host: host, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mount renders vnode into container for the first time.
func (p *Patcher) Mount(vnode *vdom.VNode, container any) {
	p.Patch(nil, vnode, container, nil, nil)
}

// Patch is the single reconciliation entry point. n1 is the previous
// tree (nil on initial mount), n2 the next. The old VNode is discarded
// afterwards; host node and instance references carry forward onto n2.
func (p *Patcher) Patch(n1, n2 *vdom.VNode, container, anchor any, parent *Instance) {
	if n1 == n2 {
		return
	}
	if n2 == nil {
		if n1 != nil {
			p.Unmount(n1)
		}
		return
	}
	// A different type or key forces a full replace. The replacement
	// mounts where the old node sat, not at the caller's anchor,
	// which may predate sibling changes.
	if n1 != nil && !sameVNodeType(n1, n2) {
		if p.hostNode(n1) != nil {
			anchor = p.nextHostNode(n1)
		}
		p.Unmount(n1)
		n1 = nil
	}
	switch n2.Kind {
	case vdom.KindText:
		p.processText(n1, n2, container, anchor)
	case vdom.KindComment:
		p.processComment(n1, n2, container, anchor)
	case vdom.KindFragment:
		p.processFragment(n1, n2, container, anchor, parent)
	case vdom.KindTeleport:
		p.processTeleport(n1, n2, parent)
	case vdom.KindElement:
		p.processElement(n1, n2, container, anchor, parent)
	case vdom.KindComponent:
		p.processComponent(n1, n2, container, anchor, parent)
	default:
		p.log.Warn("unrecognized vnode kind, skipping",
			zap.Uint8("kind", uint8(n2.Kind)))
	}
}

// sameVNodeType reports whether n1 can be patched into n2 in place.
func sameVNodeType(n1, n2 *vdom.VNode) bool {
	if n1.Kind != n2.Kind || n1.Key != n2.Key {
		return false
	}
	switch n1.Kind {
	case vdom.KindElement, vdom.KindTeleport:
		return n1.Tag == n2.Tag
	case vdom.KindComponent:
		return n1.Def == n2.Def
	default:
		return true
	}
}

func (p *Patcher) processText(n1, n2 *vdom.VNode, container, anchor any) {
	if n1 == nil {
		el := p.host.CreateText(n2.TextContent())
		n2.El = el
		if n2.IsDynamicText() {
			p.host.PatchProp(el, vdom.PropDynamicText, nil, true)
		}
		p.host.Insert(el, container, anchor)
		p.countOp("mount")
		return
	}
	n2.El = n1.El
	if n1.TextContent() != n2.TextContent() {
		p.host.SetElementText(n2.El, n2.TextContent())
		p.countOp("text")
	}
}

func (p *Patcher) processComment(n1, n2 *vdom.VNode, container, anchor any) {
	if n1 == nil {
		el := p.host.CreateComment(n2.TextContent())
		n2.El = el
		p.host.Insert(el, container, anchor)
		p.countOp("mount")
		return
	}
	// Comment content is immutable after creation.
	n2.El = n1.El
}

func (p *Patcher) processFragment(n1, n2 *vdom.VNode, container, anchor any, parent *Instance) {
	if n1 == nil {
		for _, child := range n2.ChildNodes() {
			p.Patch(nil, child, container, anchor, parent)
		}
		return
	}
	p.patchChildren(n1, n2, container, anchor, parent)
}

func (p *Patcher) processTeleport(n1, n2 *vdom.VNode, parent *Instance) {
	target := p.host.QuerySelector(n2.Tag)
	if target == nil {
		p.log.Warn("teleport target not found, children skipped",
			zap.String("target", n2.Tag))
		return
	}
	if n1 == nil {
		for _, child := range n2.ChildNodes() {
			p.Patch(nil, child, target, nil, parent)
		}
		return
	}
	p.patchChildren(n1, n2, target, nil, parent)
}

func (p *Patcher) processElement(n1, n2 *vdom.VNode, container, anchor any, parent *Instance) {
	if n1 == nil {
		p.mountElement(n2, container, anchor, parent)
		return
	}
	el := n1.El
	n2.El = el
	p.patchProps(el, n1.Props, n2.Props)
	p.patchChildren(n1, n2, el, nil, parent)
}

func (p *Patcher) mountElement(v *vdom.VNode, container, anchor any, parent *Instance) {
	el := p.host.CreateElement(v.Tag)
	v.El = el
	for key, val := range v.Props {
		if key == "key" {
			continue
		}
		p.host.PatchProp(el, key, nil, val)
	}
	switch c := v.Children.(type) {
	case string:
		p.host.SetElementText(el, c)
	case []*vdom.VNode:
		for _, child := range c {
			p.Patch(nil, child, el, nil, parent)
		}
	}
	p.host.Insert(el, container, anchor)
	p.countOp("mount")
}

// patchProps reconciles attributes: added and changed props are
// applied, props present before but absent now are removed by passing
// a nil value.
func (p *Patcher) patchProps(el any, oldProps, newProps vdom.Props) {
	for key, next := range newProps {
		if key == "key" {
			continue
		}
		prev := oldProps[key]
		if !propsEqual(prev, next) {
			p.host.PatchProp(el, key, prev, next)
			p.countOp("prop")
		}
	}
	for key, prev := range oldProps {
		if key == "key" {
			continue
		}
		if _, ok := newProps[key]; !ok {
			p.host.PatchProp(el, key, prev, nil)
			p.countOp("prop")
		}
	}
}

// Unmount recursively destroys a mounted vnode: component subtrees
// fire their hooks, children detach before ancestors, and the host
// node is removed last.
func (p *Patcher) Unmount(v *vdom.VNode) {
	if v == nil {
		return
	}
	switch v.Kind {
	case vdom.KindComponent:
		if inst, ok := v.Instance.(*Instance); ok && inst != nil {
			p.unmountComponent(inst)
		}
	case vdom.KindFragment, vdom.KindTeleport:
		for _, child := range v.ChildNodes() {
			p.Unmount(child)
		}
	default:
		for _, child := range v.ChildNodes() {
			p.Unmount(child)
		}
		if v.El != nil {
			p.host.Remove(v.El)
		}
		p.countOp("unmount")
	}
}

// hostNode resolves the host node a vnode anchors at: components
// delegate to their subtree root, fragments to their first child.
func (p *Patcher) hostNode(v *vdom.VNode) any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case vdom.KindComponent:
		if inst, ok := v.Instance.(*Instance); ok && inst != nil {
			return p.hostNode(inst.SubTree)
		}
		return nil
	case vdom.KindFragment:
		for _, child := range v.ChildNodes() {
			if n := p.hostNode(child); n != nil {
				return n
			}
		}
		return nil
	default:
		return v.El
	}
}

// nextHostNode resolves the host node immediately after v's mounted
// content, for anchoring a replacement at v's position.
func (p *Patcher) nextHostNode(v *vdom.VNode) any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case vdom.KindComponent:
		if inst, ok := v.Instance.(*Instance); ok && inst != nil {
			return p.nextHostNode(inst.SubTree)
		}
		return nil
	case vdom.KindFragment:
		// The last child with host content ends the fragment.
		children := v.ChildNodes()
		for i := len(children) - 1; i >= 0; i-- {
			if p.hostNode(children[i]) != nil {
				return p.nextHostNode(children[i])
			}
		}
		return nil
	default:
		if v.El == nil {
			return nil
		}
		return p.host.NextSibling(v.El)
	}
}

// move physically relocates a mounted vnode's host nodes before anchor.
func (p *Patcher) move(v *vdom.VNode, container, anchor any) {
	switch v.Kind {
	case vdom.KindComponent:
		if inst, ok := v.Instance.(*Instance); ok && inst != nil {
			p.move(inst.SubTree, container, anchor)
		}
	case vdom.KindFragment:
		for _, child := range v.ChildNodes() {
			p.move(child, container, anchor)
		}
	default:
		if v.El != nil {
			p.host.Insert(v.El, container, anchor)
			p.countOp("move")
		}
	}
}

func (p *Patcher) countOp(op string) {
	if p.metrics != nil {
		p.metrics.PatchOps.WithLabelValues(op).Inc()
	}
}

// propsEqual compares two prop values, with fast paths for the common
// scalar types and reflect.DeepEqual as the fallback.
func propsEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}
