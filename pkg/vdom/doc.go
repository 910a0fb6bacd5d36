// Package vdom is the virtual DOM microfun views are built from.
//
// A view returns a tree of *Node values. Element constructors take a
// variadic list of attributes, event handlers, children and strings:
//
//	Div(Class("card"),
//	    H1(Text("Title")),
//	    Button(OnClick(inc), Text("+")),
//	)
//
// Event handlers are plain Go functions, usually dispatchers produced by a
// signal: func() for events without payload, func(string) for events that
// carry the element's value.
//
// # Hydration IDs
//
// Targets that address nodes after the first draw (the live target) give
// every element a hydration ID with AssignHIDs. Diff carries those IDs from
// the previous tree into the next one and numbers inserted subtrees.
//
// # Diffing
//
// Diff compares two trees and returns the Patch operations that turn the
// previous tree into the next one. Children are matched by position; a
// position whose key or tag changed is replaced.
package vdom
