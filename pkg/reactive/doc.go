// Package reactive implements Lumen's fine-grained dependency
// tracking: reactive wrappers over plain records, lists, maps, and
// sets, plus the effect runtime and cached computed values the
// rendering engine is built on.
//
// Reads performed while an effect is running register (target, key)
// dependency edges; writes that change a value re-run the observing
// effects in subscription order. Dependencies are fully re-collected
// on every run, so conditional reads never leave stale edges.
//
//	state := reactive.Wrap(map[string]any{"count": 0}).(*reactive.Object)
//	reactive.NewEffect(func() {
//	    fmt.Println("count is", state.Get("count"))
//	})
//	state.Set("count", 1) // effect re-runs
//
// The package is single-threaded by contract: all tracking,
// triggering, and patching happen synchronously on one goroutine, the
// same cooperative model the rest of the engine assumes.
package reactive
