// Package fastview is the small view-component framework the dashboard is
// built from: a view converts a stream of data models into element-update
// batches a browser client applies to the DOM, and a generic websocket
// client publishes those batches at a bounded rate.
package fastview

import "html/template"

// EleUpdate names a DOM element and the attribute/content changes to apply
// to it.
type EleUpdate struct {
	// EleId is the id by which the browser finds the element.
	EleId string
	// Ops are the operations to apply. Op keys are attribute names or the
	// reserved key "textContent".
	Ops []Op
}

// Op is one attribute-or-content assignment: ("x", "123") sets the x
// attribute to "123"; ("textContent", "abc") sets the element's text.
type Op struct {
	Key   string
	Value string
}

// ViewComponent is a server-rendered view fragment that also knows how to
// describe itself incrementally: Parse contributes its markup to a parent
// template, and Updates streams the DOM patches needed to keep a client in
// sync as new data arrives.
type ViewComponent interface {
	Updates() <-chan []EleUpdate
	// Parse adds this component's template definition to parent and
	// returns the name by which it can be invoked as a sub-template.
	Parse(parent *template.Template) (name string, err error)
}
