package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/lumen-ui/lumen/pkg/reactive"
	"github.com/lumen-ui/lumen/pkg/vdom"
)

// Hook identifies a lifecycle stage.
type Hook uint8

const (
	HookBeforeMount Hook = iota
	HookMounted
	HookBeforeUpdate
	HookUpdated
	HookUnmounted
)

// AppContext is the shared, read-only ancestor data every instance in
// a tree can see: the app-level component registry, provide/inject
// values, route params, and the update scheduler.
type AppContext struct {
	// Components is the app-level component registry, consulted after
	// the instance's own (flattened) registry.
	Components map[string]*vdom.Definition

	// Provides holds app-level globals resolvable through ctx.Get.
	Provides map[string]any

	// RouteParams are the current route parameters, if a router
	// layer supplies them.
	RouteParams map[string]string

	// Scheduler, when set, receives render jobs instead of running
	// them synchronously. Plug in a JobQueue to batch many mutations
	// into one update per flush.
	Scheduler func(job func())
}

// Instance is the runtime record of one mounted component: its
// reactive state, props, hooks, and current subtree.
type Instance struct {
	Def    *vdom.Definition
	VNode  *vdom.VNode
	Parent *Instance
	App    *AppContext

	// State is the instance's reactive context, merged from prop
	// values, State(), and Setup() results.
	State *reactive.Object

	// Props are the declared props; Attrs the pass-through rest.
	Props map[string]any
	Attrs map[string]any

	// Slots holds slot content; children of the component vnode
	// become the "default" slot.
	Slots map[string][]*vdom.VNode

	// SubTree is the vnode most recently produced by the render
	// function and already patched into the host tree.
	SubTree   *vdom.VNode
	IsMounted bool

	computeds  map[string]*reactive.Computed[any]
	components map[string]*vdom.Definition
	hooks      map[Hook][]func()

	effect  *reactive.Effect
	pending bool
	renders int

	container any
	anchor    any
	ssr       bool
	patcher   *Patcher
	rawState  map[string]any // SSR path: unwrapped state
}

// currentInstance is the active-instance cell, set for the duration
// of Setup and render so hook registration and reactive primitives
// attribute to the right instance.
var currentInstance *Instance

func setCurrentInstance(inst *Instance) *Instance {
	prev := currentInstance
	currentInstance = inst
	return prev
}

// CurrentInstance returns the instance whose Setup or render is
// executing, or nil.
func CurrentInstance() *Instance {
	return currentInstance
}

// OnBeforeMount registers fn on the active instance.
func OnBeforeMount(fn func()) { registerHook(HookBeforeMount, fn) }

// OnMounted registers fn on the active instance.
func OnMounted(fn func()) { registerHook(HookMounted, fn) }

// OnBeforeUpdate registers fn on the active instance.
func OnBeforeUpdate(fn func()) { registerHook(HookBeforeUpdate, fn) }

// OnUpdated registers fn on the active instance.
func OnUpdated(fn func()) { registerHook(HookUpdated, fn) }

// OnUnmounted registers fn on the active instance.
func OnUnmounted(fn func()) { registerHook(HookUnmounted, fn) }

func registerHook(h Hook, fn func()) {
	if currentInstance != nil {
		currentInstance.On(h, fn)
	}
}

// On appends a lifecycle hook to the instance.
func (inst *Instance) On(h Hook, fn func()) {
	if inst.hooks == nil {
		inst.hooks = make(map[Hook][]func())
	}
	inst.hooks[h] = append(inst.hooks[h], fn)
}

func (inst *Instance) callHooks(h Hook) {
	for _, fn := range inst.hooks[h] {
		fn()
	}
}

// newInstance builds an Instance for a component vnode: splits
// declared props from pass-through attributes, runs Setup with the
// active-instance cell set, merges State() output, and wraps the
// merged state reactively unless rendering for SSR.
func (p *Patcher) newInstance(vnode *vdom.VNode, parent *Instance, ssr bool) *Instance {
	def := vnode.Def
	inst := &Instance{
		Def:     def,
		VNode:   vnode,
		Parent:  parent,
		ssr:     ssr,
		patcher: p,
	}
	if parent != nil {
		inst.App = parent.App
	} else {
		inst.App = p.app
	}

	inst.components = make(map[string]*vdom.Definition)
	flattenComponents(def.Components, inst.components)

	inst.splitProps(vnode)
	inst.Slots = map[string][]*vdom.VNode{"default": vnode.ChildNodes()}

	merged := make(map[string]any, len(inst.Props))
	for k, v := range inst.Props {
		merged[k] = reactive.Raw(v)
	}
	if def.State != nil {
		for k, v := range def.State() {
			merged[k] = reactive.Raw(v)
		}
	}
	if ssr {
		inst.rawState = merged
	} else {
		inst.State = reactive.Wrap(merged).(*reactive.Object)
	}

	if len(def.Computed) > 0 {
		inst.computeds = make(map[string]*reactive.Computed[any], len(def.Computed))
		for name, fn := range def.Computed {
			fn := fn
			inst.computeds[name] = reactive.NewComputed(func() any {
				return fn(inst.ctx())
			})
		}
	}

	if def.Setup != nil {
		prev := setCurrentInstance(inst)
		result := def.Setup(inst.Props, inst.ctx())
		setCurrentInstance(prev)
		for k, v := range result {
			inst.setStateSilently(k, v)
		}
	}

	return inst
}

// splitProps recomputes the declared/pass-through split against the
// vnode's current props.
func (inst *Instance) splitProps(vnode *vdom.VNode) {
	def := inst.Def
	inst.Props = make(map[string]any, len(def.Props))
	inst.Attrs = make(map[string]any)
	for name, pd := range def.Props {
		if v, ok := vnode.Props[name]; ok {
			inst.Props[name] = v
		} else {
			inst.Props[name] = pd.Default
		}
	}
	for k, v := range vnode.Props {
		if k == "key" {
			continue
		}
		if _, declared := def.Props[k]; !declared {
			inst.Attrs[k] = v
		}
	}
}

// setStateSilently writes through to the raw state without
// triggering dependents; used before the first render.
func (inst *Instance) setStateSilently(key string, value any) {
	if inst.ssr {
		inst.rawState[key] = reactive.Raw(value)
		return
	}
	raw := reactive.Raw(inst.State).(map[string]any)
	raw[key] = reactive.Raw(value)
}

// flattenComponents resolves nested component registries transitively
// before first render. Outer registrations win on name collisions.
func flattenComponents(src map[string]*vdom.Definition, dst map[string]*vdom.Definition) {
	for name, def := range src {
		if _, ok := dst[name]; ok {
			continue
		}
		dst[name] = def
		flattenComponents(def.Components, dst)
	}
}

func (p *Patcher) processComponent(n1, n2 *vdom.VNode, container, anchor any, parent *Instance) {
	if n1 == nil {
		p.mountComponent(n2, container, anchor, parent)
		return
	}
	p.updateComponent(n1, n2)
}

func (p *Patcher) mountComponent(vnode *vdom.VNode, container, anchor any, parent *Instance) {
	inst := p.newInstance(vnode, parent, false)
	vnode.Instance = inst
	inst.container = container
	inst.anchor = anchor
	inst.effect = reactive.NewEffect(func() {
		p.renderComponent(inst)
	}, reactive.WithScheduler(func() {
		inst.schedule()
	}))
	if p.metrics != nil {
		p.metrics.ComponentMounts.Inc()
	}
}

// schedule routes a render through the app's job queue when one is
// configured, collapsing every trigger between flushes into a single
// run. Without a queue the render runs synchronously.
func (inst *Instance) schedule() {
	if inst.App != nil && inst.App.Scheduler != nil {
		if inst.pending {
			return
		}
		inst.pending = true
		inst.App.Scheduler(func() {
			inst.pending = false
			inst.effect.Run()
		})
		return
	}
	inst.effect.Run()
}

// renderComponent is the body of the instance's render effect: first
// run mounts the subtree, later runs diff the previous subtree
// against a fresh one.
func (p *Patcher) renderComponent(inst *Instance) {
	start := time.Now()
	if !inst.IsMounted {
		inst.callHooks(HookBeforeMount)
		tree := inst.renderTree()
		p.Patch(nil, tree, inst.container, inst.anchor, inst)
		inst.SubTree = tree
		inst.VNode.El = p.hostNode(tree)
		if el := inst.VNode.El; el != nil {
			for k, v := range inst.Attrs {
				p.host.PatchProp(el, k, nil, v)
			}
		}
		inst.IsMounted = true
		inst.renders++
		inst.callHooks(HookMounted)
	} else {
		inst.callHooks(HookBeforeUpdate)
		next := inst.renderTree()
		prev := inst.SubTree
		p.Patch(prev, next, inst.container, inst.anchor, inst)
		inst.SubTree = next
		inst.VNode.El = p.hostNode(next)
		inst.renders++
		inst.callHooks(HookUpdated)
	}
	if p.metrics != nil {
		p.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	}
}

// renderTree invokes the component's render function bound to the
// instance context. A missing render function degrades to a comment
// placeholder so the host tree stays structurally valid.
func (inst *Instance) renderTree() *vdom.VNode {
	render := inst.Def.Render
	if render == nil {
		if inst.Def.Template != "" {
			inst.patcher.log.Warn("component template has not been compiled to a render function",
				zap.String("component", inst.Def.Name))
		} else {
			inst.patcher.log.Warn("component has no render function",
				zap.String("component", inst.Def.Name))
		}
		return vdom.NewComment("missing render")
	}
	prev := setCurrentInstance(inst)
	defer setCurrentInstance(prev)
	tree := render(inst.ctx())
	if tree == nil {
		return vdom.NewComment("empty render")
	}
	return tree
}

// updateComponent transfers the instance onto the new vnode,
// recomputes the props/attrs split, and re-invokes the render effect.
// Policy: always re-render and let subtree diffing skip no-op writes.
func (p *Patcher) updateComponent(n1, n2 *vdom.VNode) {
	inst, _ := n1.Instance.(*Instance)
	if inst == nil {
		return
	}
	n2.Instance = inst
	n2.El = n1.El
	inst.VNode = n2

	oldAttrs := inst.Attrs
	inst.splitProps(n2)
	inst.Slots["default"] = n2.ChildNodes()

	// Reconcile pass-through attribute changes on the root host node.
	if el := p.hostNode(n2); el != nil {
		for k, v := range inst.Attrs {
			if prev, ok := oldAttrs[k]; !ok || !propsEqual(prev, v) {
				p.host.PatchProp(el, k, oldAttrs[k], v)
			}
		}
		for k, v := range oldAttrs {
			if _, ok := inst.Attrs[k]; !ok {
				p.host.PatchProp(el, k, v, nil)
			}
		}
	}

	// Write declared prop values through the reactive state so
	// computeds and effects depending on them invalidate.
	before := inst.renders
	for name, v := range inst.Props {
		inst.State.Set(name, v)
	}
	if inst.renders == before && !inst.pending {
		// Nothing triggered a render; re-run anyway per policy.
		inst.schedule()
	}
}

// unmountComponent fires the instance's unmount hooks, stops its
// reactive machinery, then unmounts the subtree so children detach
// before ancestors.
func (p *Patcher) unmountComponent(inst *Instance) {
	inst.callHooks(HookUnmounted)
	if inst.effect != nil {
		inst.effect.Stop()
	}
	for _, c := range inst.computeds {
		c.Stop()
	}
	if inst.SubTree != nil {
		p.Unmount(inst.SubTree)
	}
	if p.metrics != nil {
		p.metrics.ComponentUnmounts.Inc()
	}
}
