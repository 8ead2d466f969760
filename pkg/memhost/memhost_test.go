package memhost

import (
	"strings"
	"testing"

	"github.com/lumen-ui/lumen/pkg/vdom"
)

func TestInsertBeforeAnchorAndMove(t *testing.T) {
	h := New()
	parent := h.Body().(*Node)
	a := h.CreateElement("a").(*Node)
	b := h.CreateElement("b").(*Node)
	c := h.CreateElement("c").(*Node)

	h.Insert(a, parent, nil)
	h.Insert(c, parent, nil)
	h.Insert(b, parent, c)

	order := func() string {
		var tags []string
		for _, n := range parent.Children {
			tags = append(tags, n.Tag)
		}
		return strings.Join(tags, "")
	}
	if got := order(); got != "abc" {
		t.Fatalf("order = %q, want abc", got)
	}

	// Re-inserting an attached node moves it.
	h.Insert(c, parent, a)
	if got := order(); got != "cab" {
		t.Errorf("order after move = %q, want cab", got)
	}
	if len(parent.Children) != 3 {
		t.Errorf("move duplicated a child: %d nodes", len(parent.Children))
	}
}

func TestRemoveDetachedIsNoOp(t *testing.T) {
	h := New()
	n := h.CreateElement("div").(*Node)
	h.Remove(n)
	h.Remove(nil)
	if n.Parent != nil {
		t.Error("detached node gained a parent")
	}
}

func TestPatchPropSetAndRemove(t *testing.T) {
	h := New()
	n := h.CreateElement("div").(*Node)

	h.PatchProp(n, "id", nil, "x")
	if n.Attrs["id"] != "x" {
		t.Errorf("attr = %v, want x", n.Attrs["id"])
	}
	h.PatchProp(n, "id", "x", nil)
	if _, ok := n.Attrs["id"]; ok {
		t.Error("nil next should remove the attr")
	}
}

func TestDynamicTextMarkers(t *testing.T) {
	h := New()
	txt := h.CreateText("42").(*Node)
	h.PatchProp(txt, vdom.PropDynamicText, nil, true)
	h.Insert(txt, h.Body(), nil)

	if got := h.HTML(); !strings.Contains(got, "<!--[-->42<!--]-->") {
		t.Errorf("HTML = %q, want boundary markers around dynamic text", got)
	}
}

func TestSetElementTextClearsChildren(t *testing.T) {
	h := New()
	div := h.CreateElement("div").(*Node)
	span := h.CreateElement("span").(*Node)
	h.Insert(div, h.Body(), nil)
	h.Insert(span, div, nil)

	h.SetElementText(div, "plain")
	if len(div.Children) != 0 {
		t.Errorf("children not cleared: %d remain", len(div.Children))
	}
	if span.Parent != nil {
		t.Error("cleared child still references its parent")
	}
	if !strings.Contains(h.HTML(), "<div>plain</div>") {
		t.Errorf("HTML = %q", h.HTML())
	}
}

func TestQuerySelector(t *testing.T) {
	h := New()
	div := h.CreateElement("div").(*Node)
	h.PatchProp(div, "id", nil, "modal")
	h.Insert(div, h.Body(), nil)
	section := h.CreateElement("section").(*Node)
	h.Insert(section, h.Body(), nil)

	if got := h.QuerySelector("#modal"); got != div {
		t.Errorf("#modal = %v, want the id match", got)
	}
	if got := h.QuerySelector("section"); got != section {
		t.Errorf("section = %v, want the tag match", got)
	}
	if got := h.QuerySelector("#missing"); got != nil {
		t.Errorf("missing selector = %v, want nil", got)
	}
}

func TestHTMLSerializationSkipsHandlers(t *testing.T) {
	h := New()
	btn := h.CreateElement("button").(*Node)
	h.PatchProp(btn, "class", nil, "cta")
	h.PatchProp(btn, "onclick", nil, func(args ...any) any { return nil })
	h.Insert(btn, h.Body(), nil)

	html := h.HTML()
	if strings.Contains(html, "onclick") {
		t.Errorf("handler serialized: %q", html)
	}
	if !strings.Contains(html, `<button class="cta"></button>`) {
		t.Errorf("HTML = %q", html)
	}
}
