// Package selector defines the address steps used to navigate a parsed
// document tree: an object key, an array index, or the root sentinel.
// A Path is an ordered sequence of steps from the document root down to a
// single nested value.
package selector

import (
	"fmt"
	"strconv"
	"strings"
)

type kind uint8

const (
	kindNone kind = iota
	kindKey
	kindIndex
)

// Selector is a single address step. The zero value is the root sentinel
// (None), which only ever addresses the synthetic root of a scalar document.
// Selectors are plain values: comparable with ==, copied freely, and never
// validated against a document at construction time.
type Selector struct {
	kind  kind
	key   string
	index int
}

// None returns the root sentinel step.
func None() Selector {
	return Selector{}
}

// ObjectKey returns a step addressing the named member of an object.
func ObjectKey(key string) Selector {
	return Selector{kind: kindKey, key: key}
}

// ArrayIndex returns a step addressing the element at the given position.
// Negative positions never resolve; they are stored as-is.
func ArrayIndex(index int) Selector {
	return Selector{kind: kindIndex, index: index}
}

// IsNone reports whether s is the root sentinel.
func (s Selector) IsNone() bool {
	return s.kind == kindNone
}

// Key returns the object key and whether s is an object-key step.
func (s Selector) Key() (string, bool) {
	return s.key, s.kind == kindKey
}

// Index returns the array index and whether s is an array-index step.
func (s Selector) Index() (int, bool) {
	return s.index, s.kind == kindIndex
}

// String returns the display text of the step: the key text for object keys,
// the decimal index for array indices, and the empty string for None.
func (s Selector) String() string {
	switch s.kind {
	case kindKey:
		return s.key
	case kindIndex:
		return strconv.Itoa(s.index)
	default:
		return ""
	}
}

// Path is an ordered sequence of selector steps. The empty path denotes the
// document root itself.
type Path []Selector

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Child returns a new path extending p by one step. The backing array is not
// shared with p.
func (p Path) Child(s Selector) Path {
	out := make(Path, 0, len(p)+1)
	out = append(out, p...)
	return append(out, s)
}

// Equal reports whether two paths contain the same steps in the same order.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders the path in its $-rooted display form, e.g. $.users[2].name.
// Keys containing path metacharacters are bracket-quoted: $["dotted.key"].
// The root sentinel renders as nothing; it carries no address of its own.
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, s := range p {
		switch s.kind {
		case kindKey:
			if strings.IndexAny(s.key, ".[]\"$") == -1 && s.key != "" {
				b.WriteByte('.')
				b.WriteString(s.key)
			} else {
				b.WriteString(`["`)
				b.WriteString(strings.ReplaceAll(s.key, `"`, `\"`))
				b.WriteString(`"]`)
			}
		case kindIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
		case kindNone:
		}
	}
	return b.String()
}

// Parse converts a textual path into selector steps. Both dotted and bracket
// notation are accepted, with or without a leading "$":
//
//	users.2.name
//	$.users[2].name
//	items["dotted.key"][0]
//
// Bare numeric segments are treated as array indices. An empty input (or a
// lone "$") yields the empty path.
func Parse(input string) (Path, error) {
	trimmed := strings.TrimSpace(input)
	trimmed = strings.TrimPrefix(trimmed, "$")
	if trimmed == "" {
		return Path{}, nil
	}

	var path Path
	var current strings.Builder
	flush := func() {
		if current.Len() == 0 {
			return
		}
		path = append(path, segmentSelector(current.String()))
		current.Reset()
	}

	for i := 0; i < len(trimmed); i++ {
		switch ch := trimmed[i]; ch {
		case '.':
			flush()
		case '[':
			flush()
			end := strings.IndexByte(trimmed[i:], ']')
			if end == -1 {
				return nil, fmt.Errorf("unterminated '[' at offset %d in %q", i, input)
			}
			seg := trimmed[i+1 : i+end]
			sel, err := bracketSelector(seg)
			if err != nil {
				return nil, fmt.Errorf("bad bracket segment %q in %q: %w", seg, input, err)
			}
			path = append(path, sel)
			i += end
		default:
			current.WriteByte(ch)
		}
	}
	flush()
	return path, nil
}

// segmentSelector maps a dotted segment to a step: numeric text indexes an
// array, anything else names an object key.
func segmentSelector(seg string) Selector {
	if n, err := strconv.Atoi(seg); err == nil && n >= 0 {
		return ArrayIndex(n)
	}
	return ObjectKey(seg)
}

func bracketSelector(seg string) (Selector, error) {
	if strings.HasPrefix(seg, `"`) && strings.HasSuffix(seg, `"`) && len(seg) >= 2 {
		key := seg[1 : len(seg)-1]
		return ObjectKey(strings.ReplaceAll(key, `\"`, `"`)), nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(seg), 10, 31)
	if err != nil {
		return Selector{}, fmt.Errorf("expected index or quoted key: %w", err)
	}
	return ArrayIndex(int(n)), nil
}
