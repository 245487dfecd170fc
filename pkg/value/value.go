// Package value supplies the generic document tree the rest of jvx operates
// on: a closed union over null, bool, number, string, array, and object.
// Objects keep their members in source order, which plain Go maps cannot do,
// so the object variant stores an ordered field list instead.
//
// Values are treated as immutable once constructed. The resolver and the
// tree builder only ever borrow from a Value; nothing in this repository
// mutates a decoded document.
package value

import (
	"encoding/json"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "<unknown kind>"
	}
}

// IsContainer reports whether the kind holds child values.
func (k Kind) IsContainer() bool {
	return k == Array || k == Object
}

// Field is one object member. Keys are unique within an object and keep
// their decode order.
type Field struct {
	Key   string
	Value *Value
}

// Value is a single node of the document tree. A nil *Value behaves as null.
type Value struct {
	kind   Kind
	boolV  bool
	numV   string // source literal, e.g. "1.5" or "42"
	strV   string
	elems  []*Value
	fields []Field
}

// NewNull returns the null value.
func NewNull() *Value {
	return &Value{kind: Null}
}

// NewBool returns a boolean value.
func NewBool(b bool) *Value {
	return &Value{kind: Bool, boolV: b}
}

// NewNumber returns a number value holding the given literal. The literal is
// kept verbatim so re-encoding does not reformat the source document.
func NewNumber(literal string) *Value {
	return &Value{kind: Number, numV: literal}
}

// NewString returns a string value.
func NewString(s string) *Value {
	return &Value{kind: String, strV: s}
}

// NewArray returns an array value over the given elements.
func NewArray(elems ...*Value) *Value {
	return &Value{kind: Array, elems: elems}
}

// NewObject returns an object value over the given fields, preserving their
// order. Duplicate keys are not checked here; decoders reject them.
func NewObject(fields ...Field) *Value {
	return &Value{kind: Object, fields: fields}
}

// Kind returns the variant held by v.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

// BoolVal returns the boolean payload; false for any other kind.
func (v *Value) BoolVal() bool {
	return v != nil && v.kind == Bool && v.boolV
}

// NumberLiteral returns the number's source literal; "" for other kinds.
func (v *Value) NumberLiteral() string {
	if v == nil || v.kind != Number {
		return ""
	}
	return v.numV
}

// Float64 converts a number value to float64.
func (v *Value) Float64() (float64, error) {
	return json.Number(v.NumberLiteral()).Float64()
}

// StringVal returns the string payload; "" for other kinds.
func (v *Value) StringVal() string {
	if v == nil || v.kind != String {
		return ""
	}
	return v.strV
}

// Len returns the element count for arrays, the member count for objects,
// and zero otherwise.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case Array:
		return len(v.elems)
	case Object:
		return len(v.fields)
	default:
		return 0
	}
}

// At returns the array element at index i.
func (v *Value) At(i int) (*Value, bool) {
	if v == nil || v.kind != Array || i < 0 || i >= len(v.elems) {
		return nil, false
	}
	return v.elems[i], true
}

// Get returns the object member named key.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.kind != Object {
		return nil, false
	}
	for i := range v.fields {
		if v.fields[i].Key == key {
			return v.fields[i].Value, true
		}
	}
	return nil, false
}

// Elems returns the array elements in order. Callers must not modify the
// returned slice.
func (v *Value) Elems() []*Value {
	if v == nil || v.kind != Array {
		return nil
	}
	return v.elems
}

// Fields returns the object members in source order. Callers must not modify
// the returned slice.
func (v *Value) Fields() []Field {
	if v == nil || v.kind != Object {
		return nil
	}
	return v.fields
}

// String renders the canonical compact JSON form of the value: null, true,
// false, the number literal, the quoted string, or the recursively rendered
// container. This text is what tree-node labels embed for leaf values.
func (v *Value) String() string {
	var b strings.Builder
	v.render(&b)
	return b.String()
}

func (v *Value) render(b *strings.Builder) {
	if v == nil {
		b.WriteString("null")
		return
	}
	switch v.kind {
	case Null:
		b.WriteString("null")
	case Bool:
		if v.boolV {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Number:
		if v.numV == "" {
			b.WriteByte('0')
		} else {
			b.WriteString(v.numV)
		}
	case String:
		b.Write(quoteJSON(v.strV))
	case Array:
		b.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				b.WriteByte(',')
			}
			e.render(b)
		}
		b.WriteByte(']')
	case Object:
		b.WriteByte('{')
		for i := range v.fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.Write(quoteJSON(v.fields[i].Key))
			b.WriteByte(':')
			v.fields[i].Value.render(b)
		}
		b.WriteByte('}')
	}
}

// quoteJSON returns the JSON-quoted form of s, deferring escaping rules to
// encoding/json rather than reimplementing them.
func quoteJSON(s string) []byte {
	b, err := json.Marshal(s)
	if err != nil {
		// Marshal of a string cannot fail; keep a safe fallback anyway.
		return []byte(`""`)
	}
	return b
}
