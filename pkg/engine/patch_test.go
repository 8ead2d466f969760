package engine_test

import (
	"strings"
	"testing"

	"github.com/lumen-ui/lumen/el"
	"github.com/lumen-ui/lumen/pkg/engine"
	"github.com/lumen-ui/lumen/pkg/memhost"
	"github.com/lumen-ui/lumen/pkg/vdom"
)

// opHost wraps the in-memory host and records every mutating call so
// tests can assert which operations a patch actually performed.
type opHost struct {
	*memhost.Host
	ops []string
}

func newOpHost() *opHost {
	return &opHost{Host: memhost.New()}
}

func (h *opHost) record(op string) { h.ops = append(h.ops, op) }

func (h *opHost) CreateElement(tag string) any {
	h.record("createElement")
	return h.Host.CreateElement(tag)
}

func (h *opHost) CreateText(text string) any {
	h.record("createText")
	return h.Host.CreateText(text)
}

func (h *opHost) CreateComment(text string) any {
	h.record("createComment")
	return h.Host.CreateComment(text)
}

func (h *opHost) PatchProp(elem any, key string, prev, next any) {
	h.record("patchProp")
	h.Host.PatchProp(elem, key, prev, next)
}

func (h *opHost) Insert(node, parent, anchor any) {
	h.record("insert")
	h.Host.Insert(node, parent, anchor)
}

func (h *opHost) Remove(node any) {
	h.record("remove")
	h.Host.Remove(node)
}

func (h *opHost) SetElementText(node any, text string) {
	h.record("setText")
	h.Host.SetElementText(node, text)
}

func (h *opHost) count(op string) int {
	n := 0
	for _, o := range h.ops {
		if o == op {
			n++
		}
	}
	return n
}

func (h *opHost) reset() { h.ops = nil }

func TestMountElementTree(t *testing.T) {
	host := memhost.New()
	p := engine.New(host)

	tree := el.Div(el.ID("app"),
		el.H1(el.Text("Hello")),
		el.P(el.Class("note"), el.Text("world")),
	)
	p.Mount(tree, host.Body())

	html := host.HTML()
	want := `<div id="app"><h1>Hello</h1><p class="note">world</p></div>`
	if !strings.Contains(html, want) {
		t.Errorf("mounted HTML = %q, want it to contain %q", html, want)
	}
	if tree.El == nil {
		t.Error("mounted vnode should carry its host element")
	}
}

func TestPatchPropsAddChangeRemove(t *testing.T) {
	host := memhost.New()
	p := engine.New(host)

	n1 := el.Div(el.ID("a"), el.Class("old"))
	p.Mount(n1, host.Body())

	// id removed (nil), class changed, title added.
	n2 := el.Div(el.Class("new"), el.AttrOf("title", "t"))
	p.Patch(n1, n2, host.Body(), nil, nil)

	html := host.HTML()
	if strings.Contains(html, "id=") {
		t.Errorf("removed prop still serialized: %q", html)
	}
	if !strings.Contains(html, `class="new"`) {
		t.Errorf("changed prop not applied: %q", html)
	}
	if !strings.Contains(html, `title="t"`) {
		t.Errorf("added prop not applied: %q", html)
	}
}

func TestTextPatchedOnlyWhenChanged(t *testing.T) {
	host := newOpHost()
	p := engine.New(host)

	n1 := vdom.NewText("same")
	p.Mount(n1, host.Body())
	host.reset()

	n2 := vdom.NewText("same")
	p.Patch(n1, n2, host.Body(), nil, nil)
	if got := host.count("setText"); got != 0 {
		t.Errorf("identical text caused %d setText calls, want 0", got)
	}
	if n2.El != n1.El {
		t.Error("text node should be reused across patches")
	}

	n3 := vdom.NewText("changed")
	p.Patch(n2, n3, host.Body(), nil, nil)
	if got := host.count("setText"); got != 1 {
		t.Errorf("changed text caused %d setText calls, want 1", got)
	}
}

func TestCommentContentImmutable(t *testing.T) {
	host := newOpHost()
	p := engine.New(host)

	n1 := vdom.NewComment("first")
	p.Mount(n1, host.Body())
	host.reset()

	n2 := vdom.NewComment("second")
	p.Patch(n1, n2, host.Body(), nil, nil)
	if len(host.ops) != 0 {
		t.Errorf("comment patch performed host ops %v, want none", host.ops)
	}
	if !strings.Contains(host.HTML(), "<!--first-->") {
		t.Errorf("comment content should keep its mount-time text, got %q", host.HTML())
	}
}

func TestStringChildrenFastPath(t *testing.T) {
	host := memhost.New()
	p := engine.New(host)

	n1 := vdom.NewElementText("span", nil, "plain")
	p.Mount(n1, host.Body())
	if !strings.Contains(host.HTML(), "<span>plain</span>") {
		t.Fatalf("string children not mounted as text: %q", host.HTML())
	}

	// string -> array
	n2 := el.El("span", el.El("b", "bold"))
	p.Patch(n1, n2, host.Body(), nil, nil)
	if !strings.Contains(host.HTML(), "<span><b>bold</b></span>") {
		t.Errorf("string->array transition failed: %q", host.HTML())
	}

	// array -> string
	n3 := vdom.NewElementText("span", nil, "back")
	p.Patch(n2, n3, host.Body(), nil, nil)
	if !strings.Contains(host.HTML(), "<span>back</span>") {
		t.Errorf("array->string transition failed: %q", host.HTML())
	}
}

func TestUnkeyedReplaceDifferentTag(t *testing.T) {
	host := memhost.New()
	p := engine.New(host)

	n1 := el.Div(el.P(el.Text("one")), el.El("span", "two"))
	p.Mount(n1, host.Body())

	n2 := el.Div(el.P(el.Text("one")), el.El("b", "two"))
	p.Patch(n1, n2, host.Body(), nil, nil)

	html := host.HTML()
	if !strings.Contains(html, "<div><p>one</p><b>two</b></div>") {
		t.Errorf("tag replacement produced %q", html)
	}
}

func TestUnkeyedGrowAndShrink(t *testing.T) {
	host := memhost.New()
	p := engine.New(host)

	n1 := el.Div(el.P(el.Text("a")))
	p.Mount(n1, host.Body())

	n2 := el.Div(el.P(el.Text("a")), el.P(el.Text("b")), el.P(el.Text("c")))
	p.Patch(n1, n2, host.Body(), nil, nil)
	if !strings.Contains(host.HTML(), "<p>a</p><p>b</p><p>c</p>") {
		t.Fatalf("grow produced %q", host.HTML())
	}

	n3 := el.Div(el.P(el.Text("a")))
	p.Patch(n2, n3, host.Body(), nil, nil)
	if !strings.Contains(host.HTML(), "<div><p>a</p></div>") {
		t.Errorf("shrink produced %q", host.HTML())
	}
}

func TestFragmentChildren(t *testing.T) {
	host := memhost.New()
	p := engine.New(host)

	frag := el.Fragment(el.P(el.Text("x")), el.P(el.Text("y")))
	wrap := el.Div(frag)
	p.Mount(wrap, host.Body())
	if !strings.Contains(host.HTML(), "<div><p>x</p><p>y</p></div>") {
		t.Errorf("fragment mount produced %q", host.HTML())
	}
}

func TestTeleportMountsIntoTarget(t *testing.T) {
	host := memhost.New()
	p := engine.New(host)

	layout := el.Div(el.ID("modal-root"))
	p.Mount(layout, host.Body())

	tp := el.Teleport("#modal-root", el.P(el.Text("modal")))
	view := el.Div(tp)
	p.Mount(view, host.Body())

	html := host.HTML()
	if !strings.Contains(html, `<div id="modal-root"><p>modal</p></div>`) {
		t.Errorf("teleport children should land in the target: %q", html)
	}
}

func TestTeleportMissingTargetIsNonFatal(t *testing.T) {
	host := memhost.New()
	p := engine.New(host)

	before := host.HTML()
	tp := el.Teleport("#nope", el.P(el.Text("lost")))
	p.Mount(tp, host.Body())

	if got := host.HTML(); got != before {
		t.Errorf("missing teleport target mutated the tree: %q", got)
	}
}

func TestPatchNilUnmounts(t *testing.T) {
	host := memhost.New()
	p := engine.New(host)

	n1 := el.Div(el.Text("gone"))
	p.Mount(n1, host.Body())
	p.Patch(n1, nil, host.Body(), nil, nil)

	if strings.Contains(host.HTML(), "gone") {
		t.Errorf("patching to nil should unmount: %q", host.HTML())
	}
}
