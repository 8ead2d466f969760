package engine

import "github.com/lumen-ui/lumen/pkg/vdom"

// patchChildren reconciles the children of n1 and n2 inside container.
// Children are either a plain string (text-content fast path) or a
// list of vnodes.
func (p *Patcher) patchChildren(n1, n2 *vdom.VNode, container, anchor any, parent *Instance) {
	c1 := n1.Children
	c2 := n2.Children

	if next, ok := c2.(string); ok {
		// Fast path: new children are a single text content.
		if prevNodes, ok := c1.([]*vdom.VNode); ok {
			for _, child := range prevNodes {
				p.Unmount(child)
			}
			p.host.SetElementText(container, next)
			return
		}
		prev, _ := c1.(string)
		if prev != next {
			p.host.SetElementText(container, next)
		}
		return
	}

	nextNodes, _ := c2.([]*vdom.VNode)
	if prev, ok := c1.(string); ok {
		if prev != "" {
			p.host.SetElementText(container, "")
		}
		for _, child := range nextNodes {
			p.Patch(nil, child, container, anchor, parent)
		}
		return
	}

	prevNodes, _ := c1.([]*vdom.VNode)
	switch {
	case len(prevNodes) == 0:
		for _, child := range nextNodes {
			p.Patch(nil, child, container, anchor, parent)
		}
	case len(nextNodes) == 0:
		for _, child := range prevNodes {
			p.Unmount(child)
		}
	case hasKeyedChild(nextNodes):
		p.patchKeyedChildren(prevNodes, nextNodes, container, anchor, parent)
	default:
		p.patchUnkeyedChildren(prevNodes, nextNodes, container, anchor, parent)
	}
}

func hasKeyedChild(children []*vdom.VNode) bool {
	for _, child := range children {
		if child.Key != "" {
			return true
		}
	}
	return false
}

// patchUnkeyedChildren matches children positionally: the common
// prefix is patched index by index, then surplus new children mount
// and surplus old children unmount.
func (p *Patcher) patchUnkeyedChildren(c1, c2 []*vdom.VNode, container, anchor any, parent *Instance) {
	common := len(c1)
	if len(c2) < common {
		common = len(c2)
	}
	for i := 0; i < common; i++ {
		// If the pair mismatches and gets replaced, the new node has
		// to land where the old one was, so anchor at the next old
		// sibling.
		a := anchor
		if i+1 < len(c1) {
			a = p.hostNode(c1[i+1])
		}
		p.Patch(c1[i], c2[i], container, a, parent)
	}
	if len(c2) > common {
		for i := common; i < len(c2); i++ {
			p.Patch(nil, c2[i], container, anchor, parent)
		}
	} else {
		for i := common; i < len(c1); i++ {
			p.Unmount(c1[i])
		}
	}
}

// patchKeyedChildren reconciles keyed lists with minimal host moves.
//
// Matching prefixes and suffixes are patched in place first. What
// remains is either a pure insert, a pure removal, or an unresolved
// middle segment resolved through a key→new-index map plus a longest
// increasing subsequence over old positions: nodes on the subsequence
// are already in relative order and never move.
func (p *Patcher) patchKeyedChildren(c1, c2 []*vdom.VNode, container, anchor any, parent *Instance) {
	i := 0
	e1 := len(c1) - 1
	e2 := len(c2) - 1

	// Sync from the front.
	for i <= e1 && i <= e2 {
		if !sameVNodeType(c1[i], c2[i]) {
			break
		}
		p.Patch(c1[i], c2[i], container, nil, parent)
		i++
	}

	// Sync from the back.
	for i <= e1 && i <= e2 {
		if !sameVNodeType(c1[e1], c2[e2]) {
			break
		}
		p.Patch(c1[e1], c2[e2], container, nil, parent)
		e1--
		e2--
	}

	if i > e1 {
		// Old side exhausted: mount the remainder as a contiguous
		// insert anchored before the node now at the boundary.
		if i <= e2 {
			a := anchor
			if e2+1 < len(c2) {
				a = p.hostNode(c2[e2+1])
			}
			for ; i <= e2; i++ {
				p.Patch(nil, c2[i], container, a, parent)
			}
		}
		return
	}

	if i > e2 {
		// New side exhausted: unmount the remainder.
		for ; i <= e1; i++ {
			p.Unmount(c1[i])
		}
		return
	}

	// Unresolved middle segment.
	s1, s2 := i, i

	keyToNewIndex := make(map[string]int, e2-s2+1)
	for j := s2; j <= e2; j++ {
		if c2[j].Key != "" {
			keyToNewIndex[c2[j].Key] = j
		}
	}

	toBePatched := e2 - s2 + 1
	patched := 0
	// 0 marks "no old counterpart"; matched entries store old
	// position + 1.
	newIndexToOldIndex := make([]int, toBePatched)
	moved := false
	maxNewIndexSoFar := 0

	for j := s1; j <= e1; j++ {
		prevChild := c1[j]
		if patched >= toBePatched {
			p.Unmount(prevChild)
			continue
		}
		newIndex := -1
		if prevChild.Key != "" {
			if idx, ok := keyToNewIndex[prevChild.Key]; ok {
				newIndex = idx
			}
		} else {
			// Key-less node in a keyed list: reuse the first
			// unmatched same-type slot.
			for k := s2; k <= e2; k++ {
				if newIndexToOldIndex[k-s2] == 0 && sameVNodeType(prevChild, c2[k]) {
					newIndex = k
					break
				}
			}
		}
		if newIndex < 0 {
			p.Unmount(prevChild)
			continue
		}
		newIndexToOldIndex[newIndex-s2] = j + 1
		if newIndex >= maxNewIndexSoFar {
			maxNewIndexSoFar = newIndex
		} else {
			moved = true
		}
		p.Patch(prevChild, c2[newIndex], container, nil, parent)
		patched++
	}

	var stable []int
	if moved {
		stable = LongestIncreasingSubsequence(newIndexToOldIndex)
	}
	j := len(stable) - 1

	// Walk back to front so every insert/move can anchor at the host
	// node of the already-settled next sibling.
	for k := toBePatched - 1; k >= 0; k-- {
		nextIndex := s2 + k
		nextChild := c2[nextIndex]
		a := anchor
		if nextIndex+1 < len(c2) {
			a = p.hostNode(c2[nextIndex+1])
		}
		if newIndexToOldIndex[k] == 0 {
			p.Patch(nil, nextChild, container, a, parent)
		} else if moved {
			if j < 0 || k != stable[j] {
				p.move(nextChild, container, a)
			} else {
				j--
			}
		}
	}
}
