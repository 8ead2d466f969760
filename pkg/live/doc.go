// Package live serves Lumen component trees over HTTP and WebSocket.
//
// The initial page request renders the root component server-side and
// delivers serialized HTML. The client then opens a WebSocket; every
// user event travels up as a JSON frame, runs the component's methods
// against the server-side tree, and the resulting host mutations
// stream back down as patch records.
//
// One goroutine owns each session's engine; events apply in arrival
// order, and the per-event job queue flush collapses any number of
// state writes into a single render.
package live
