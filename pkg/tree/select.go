// Package tree turns a parsed document into display structures: Select
// resolves a selector path to the sub-value it addresses, and Build converts
// the whole document into labeled, navigable nodes for a tree renderer.
package tree

import (
	"github.com/oakwood-commons/jvx/pkg/selector"
	"github.com/oakwood-commons/jvx/pkg/value"
)

// SelectOne resolves a single selector step against v. Only two pairings
// advance: an object with an object-key step, and an array with an in-bounds
// array-index step. Every other combination, including a None step against
// anything, reports not found.
//
// A miss is an ordinary outcome here, not an error: callers routinely probe
// paths that may no longer exist in a reloaded document.
func SelectOne(v *value.Value, sel selector.Selector) (*value.Value, bool) {
	switch v.Kind() {
	case value.Object:
		if key, ok := sel.Key(); ok {
			return v.Get(key)
		}
	case value.Array:
		if idx, ok := sel.Index(); ok {
			return v.At(idx)
		}
	}
	return nil, false
}

// Select walks path from root one step at a time, narrowing the current
// value at each step. It returns the addressed sub-value, borrowed from the
// same tree as root, or not-found as soon as any step fails to resolve. The
// empty path resolves to root itself.
func Select(root *value.Value, path selector.Path) (*value.Value, bool) {
	current := root
	for _, sel := range path {
		next, ok := SelectOne(current, sel)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}
