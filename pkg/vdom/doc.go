// Package vdom provides the virtual tree model for Lumen.
//
// A VNode is a lightweight, immutable-per-render description of one
// node in the rendered tree. Six kinds exhaust the type space: host
// elements, text, comments, fragments, teleports, and components.
//
// The package is a pure data model: reconciliation lives in
// pkg/engine, and host primitives are supplied by a host adapter.
//
// Elements are usually built through the el package:
//
//	el.Div(el.Class("card"),
//	    el.H1(el.Text("Title")),
//	    el.P(el.Text("Content")),
//	)
package vdom
