package el

import (
	"testing"

	"github.com/lumen-ui/lumen/pkg/vdom"
)

func TestElMixesAttrsAndChildren(t *testing.T) {
	n := Div(Class("card"), ID("main"),
		H1(Text("Title")),
		P(Text("Content")),
	)

	if n.Kind != vdom.KindElement || n.Tag != "div" {
		t.Fatalf("node = %v %q", n.Kind, n.Tag)
	}
	if n.Props["class"] != "card" || n.Props["id"] != "main" {
		t.Errorf("props = %v", n.Props)
	}
	kids := n.ChildNodes()
	if len(kids) != 2 || kids[0].Tag != "h1" || kids[1].Tag != "p" {
		t.Errorf("children = %v", kids)
	}
}

func TestElStringArgsBecomeText(t *testing.T) {
	n := Span("hello")
	kids := n.ChildNodes()
	if len(kids) != 1 || kids[0].Kind != vdom.KindText || kids[0].TextContent() != "hello" {
		t.Errorf("string arg not lifted to a text child: %v", kids)
	}
}

func TestElNilChildrenSkipped(t *testing.T) {
	n := Div(If(false, Span()), If(true, P()))
	kids := n.ChildNodes()
	if len(kids) != 1 || kids[0].Tag != "p" {
		t.Errorf("children = %v, want just the kept branch", kids)
	}
}

func TestKeyAttrBecomesReconciliationKey(t *testing.T) {
	if got := Li(Key("row-1")).Key; got != "row-1" {
		t.Errorf("string key = %q", got)
	}
	if got := Li(Key(7)).Key; got != "7" {
		t.Errorf("non-string key = %q, want stringified", got)
	}
}

func TestOnPrefixesEventName(t *testing.T) {
	handler := func(args ...any) any { return nil }
	n := Button(On("click", handler))
	if _, ok := n.Props["onclick"]; !ok {
		t.Errorf("props = %v, want an onclick entry", n.Props)
	}
}

func TestRangeMapsItems(t *testing.T) {
	items := []string{"a", "b", "c"}
	kids := Range(items, func(item string, i int) *VNode {
		return Li(Key(item), Text(item))
	})
	if len(kids) != 3 || kids[2].Key != "c" {
		t.Errorf("Range output = %v", kids)
	}

	n := Ul(kids)
	if len(n.ChildNodes()) != 3 {
		t.Errorf("slice arg not spliced into children")
	}
}

func TestComponentConstructor(t *testing.T) {
	def := &vdom.Definition{Name: "widget"}
	n := Component(def, AttrOf("size", 2), Span())
	if n.Kind != vdom.KindComponent || n.Def != def {
		t.Fatalf("node = %+v", n)
	}
	if n.Props["size"] != 2 {
		t.Errorf("props = %v", n.Props)
	}
	if len(n.ChildNodes()) != 1 {
		t.Errorf("children = %v, want the default slot content", n.ChildNodes())
	}
}

func TestTeleportAndFragment(t *testing.T) {
	tp := Teleport("#modal", P())
	if tp.Kind != vdom.KindTeleport || tp.Tag != "#modal" {
		t.Errorf("teleport = %+v", tp)
	}
	fr := Fragment(P(), P())
	if fr.Kind != vdom.KindFragment || len(fr.ChildNodes()) != 2 {
		t.Errorf("fragment = %+v", fr)
	}
}

func TestDynMarksInterpolation(t *testing.T) {
	n := Dyn("42")
	if !n.IsDynamicText() {
		t.Error("Dyn output should carry the interpolation marker")
	}
	if Text("42").IsDynamicText() {
		t.Error("plain text should not carry the marker")
	}
}
