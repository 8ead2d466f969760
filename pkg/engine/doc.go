// Package engine is Lumen's reconciler: it diffs virtual trees from
// pkg/vdom against their previous render and converges a real tree
// through a pluggable Host adapter, with minimal host operations.
//
// Keyed child lists reconcile with a two-ended sweep plus a longest
// increasing subsequence over old positions, so only nodes that
// actually changed relative order move. Component vnodes mount an
// Instance whose render effect re-runs on reactive state changes,
// either synchronously or through a JobQueue scheduler.
//
//	host := memhost.New()
//	p := engine.New(host)
//	p.Mount(vdom.NewComponent(app, nil), host.Body())
package engine
