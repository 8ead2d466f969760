package engine_test

import (
	"strings"
	"testing"

	"github.com/lumen-ui/lumen/el"
	"github.com/lumen-ui/lumen/pkg/engine"
	"github.com/lumen-ui/lumen/pkg/memhost"
	"github.com/lumen-ui/lumen/pkg/vdom"
)

func keyedList(keys ...string) *vdom.VNode {
	children := make([]any, 0, len(keys))
	for _, k := range keys {
		children = append(children, el.Li(el.Key(k), el.Text(strings.ToUpper(k))))
	}
	return el.Ul(children...)
}

// bodyText flattens the serialized tree down to the visible text, in
// document order, so ordering assertions stay readable.
func listOrder(host interface{ HTML() string }) string {
	html := host.HTML()
	var b strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestKeyedReorderWithMountAndUnmount(t *testing.T) {
	host := newOpHost()
	p := engine.New(host)

	n1 := keyedList("a", "b", "c")
	p.Mount(n1, host.Body())
	if got := listOrder(host); got != "ABC" {
		t.Fatalf("initial order = %q, want ABC", got)
	}
	host.reset()

	n2 := keyedList("c", "a", "d")
	p.Patch(n1, n2, host.Body(), nil, nil)

	if got := listOrder(host); got != "CAD" {
		t.Errorf("reordered list = %q, want CAD", got)
	}
	// b goes away, d comes in, and only c physically moves; a sits on
	// the longest stable subsequence.
	if got := host.count("remove"); got != 2 {
		t.Errorf("remove ops = %d, want 2 (the departed item and its text)", got)
	}
	if got := host.count("createElement"); got != 1 {
		t.Errorf("createElement ops = %d, want 1 (just the new item)", got)
	}
	// 2 inserts mounting the new item, 1 insert moving c before a.
	if got := host.count("insert"); got != 3 {
		t.Errorf("insert ops = %d, want 3", got)
	}
}

func TestKeyedPrefixSuffixSync(t *testing.T) {
	host := newOpHost()
	p := engine.New(host)

	n1 := keyedList("a", "b", "c", "d")
	p.Mount(n1, host.Body())
	host.reset()

	// Shared prefix [a] and suffix [c d]; only b is replaced by x.
	n2 := keyedList("a", "x", "c", "d")
	p.Patch(n1, n2, host.Body(), nil, nil)

	if got := listOrder(host); got != "AXCD" {
		t.Errorf("list = %q, want AXCD", got)
	}
	if got := host.count("remove"); got != 2 {
		t.Errorf("remove ops = %d, want 2", got)
	}
}

func TestKeyedAppendAndPrepend(t *testing.T) {
	host := memhost.New()
	p := engine.New(host)

	n1 := keyedList("b", "c")
	p.Mount(n1, host.Body())

	n2 := keyedList("a", "b", "c", "d")
	p.Patch(n1, n2, host.Body(), nil, nil)
	if got := listOrder(host); got != "ABCD" {
		t.Errorf("grown list = %q, want ABCD", got)
	}

	n3 := keyedList("b", "c")
	p.Patch(n2, n3, host.Body(), nil, nil)
	if got := listOrder(host); got != "BC" {
		t.Errorf("shrunk list = %q, want BC", got)
	}
}

func TestKeyedReverse(t *testing.T) {
	host := memhost.New()
	p := engine.New(host)

	n1 := keyedList("a", "b", "c", "d", "e")
	p.Mount(n1, host.Body())

	n2 := keyedList("e", "d", "c", "b", "a")
	p.Patch(n1, n2, host.Body(), nil, nil)
	if got := listOrder(host); got != "EDCBA" {
		t.Errorf("reversed list = %q, want EDCBA", got)
	}
}

func TestKeyedClearAll(t *testing.T) {
	host := memhost.New()
	p := engine.New(host)

	n1 := keyedList("a", "b", "c")
	p.Mount(n1, host.Body())

	n2 := el.Ul()
	p.Patch(n1, n2, host.Body(), nil, nil)
	if got := listOrder(host); got != "" {
		t.Errorf("cleared list still shows %q", got)
	}
	if !strings.Contains(host.HTML(), "<ul></ul>") {
		t.Errorf("container element should survive: %q", host.HTML())
	}
}

func TestKeyedNodeReuseAcrossMoves(t *testing.T) {
	host := memhost.New()
	p := engine.New(host)

	n1 := keyedList("a", "b")
	p.Mount(n1, host.Body())
	aEl := n1.ChildNodes()[0].El

	n2 := keyedList("b", "a")
	p.Patch(n1, n2, host.Body(), nil, nil)

	if n2.ChildNodes()[1].El != aEl {
		t.Error("keyed move should carry the host node, not recreate it")
	}
	if got := listOrder(host); got != "BA" {
		t.Errorf("swapped list = %q, want BA", got)
	}
}
