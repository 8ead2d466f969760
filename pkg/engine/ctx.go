package engine

import "github.com/lumen-ui/lumen/pkg/vdom"

// CreateInstance builds an instance without mounting it. SSR
// renderers use this to evaluate a component tree against plain
// (non-reactive) state.
func (p *Patcher) CreateInstance(vnode *vdom.VNode, parent *Instance, ssr bool) *Instance {
	return p.newInstance(vnode, parent, ssr)
}

// Ctx returns the capability surface render functions and methods see.
func (inst *Instance) Ctx() vdom.Ctx {
	return inst.ctx()
}

func (inst *Instance) ctx() vdom.Ctx {
	return instanceCtx{inst: inst}
}

// instanceCtx resolves names through the capability chain: internal
// state (including computed properties), then methods and actions,
// then sibling components, then app-level globals.
type instanceCtx struct {
	inst *Instance
}

var _ vdom.Ctx = instanceCtx{}

func (c instanceCtx) Get(name string) any {
	inst := c.inst
	if comp, ok := inst.computeds[name]; ok {
		return comp.Value()
	}
	if inst.ssr {
		if v, ok := inst.rawState[name]; ok {
			return v
		}
	} else if inst.State.Has(name) {
		return inst.State.Get(name)
	}
	if m, ok := inst.Def.Methods[name]; ok {
		return c.bind(m)
	}
	if a, ok := inst.Def.Actions[name]; ok {
		return c.bind(a)
	}
	if def, ok := inst.components[name]; ok {
		return def
	}
	if inst.App != nil {
		if def, ok := inst.App.Components[name]; ok {
			return def
		}
		if v, ok := inst.App.Provides[name]; ok {
			return v
		}
		if v, ok := inst.App.RouteParams[name]; ok {
			return v
		}
	}
	return nil
}

func (c instanceCtx) Set(name string, value any) {
	if c.inst.ssr {
		c.inst.rawState[name] = value
		return
	}
	c.inst.State.Set(name, value)
}

func (c instanceCtx) Call(name string, args ...any) any {
	if m, ok := c.inst.Def.Methods[name]; ok {
		return m(c, args...)
	}
	if a, ok := c.inst.Def.Actions[name]; ok {
		return a(c, args...)
	}
	c.inst.patcher.log.Warn("call to unknown method: " + name)
	return nil
}

func (c instanceCtx) Component(name string) *vdom.Definition {
	if def, ok := c.inst.components[name]; ok {
		return def
	}
	if c.inst.App != nil {
		if def, ok := c.inst.App.Components[name]; ok {
			return def
		}
	}
	return nil
}

func (c instanceCtx) Slot(name string) []*vdom.VNode {
	return c.inst.Slots[name]
}

// bind wraps a method so callers can invoke it directly from a
// rendered prop (e.g. an event handler).
func (c instanceCtx) bind(m vdom.MethodFunc) func(args ...any) any {
	return func(args ...any) any {
		return m(c, args...)
	}
}
