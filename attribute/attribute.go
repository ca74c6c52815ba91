// Package attribute decodes rows of a columnar table into the tagged attribute
// records consumed by the sampling engine.
package attribute

import "strconv"

// Kind tags one decoded field
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

type (
	// Field is a single scalar. Only the member selected by Kind is meaningful.
	Field struct {
		Kind   Kind
		Int    int64
		Float  float32
		String string
	}

	// Value is the ordered sequence of fields decoded from one row, in column
	// order. Columns of unsupported types are omitted rather than defaulted.
	Value struct {
		Fields []Field
	}
)

func (v *Value) AddInt(i int64) {
	v.Fields = append(v.Fields, Field{Kind: KindInt, Int: i})
}

func (v *Value) AddFloat(f float32) {
	v.Fields = append(v.Fields, Field{Kind: KindFloat, Float: f})
}

func (v *Value) AddString(s string) {
	v.Fields = append(v.Fields, Field{Kind: KindString, String: s})
}

func (v Value) Len() int {
	return len(v.Fields)
}

// Ints returns the integer fields in order
func (v Value) Ints() []int64 {
	var out []int64
	for _, f := range v.Fields {
		if f.Kind == KindInt {
			out = append(out, f.Int)
		}
	}
	return out
}

// Floats returns the float fields in order
func (v Value) Floats() []float32 {
	var out []float32
	for _, f := range v.Fields {
		if f.Kind == KindFloat {
			out = append(out, f.Float)
		}
	}
	return out
}

// Strings returns the string fields in order
func (v Value) Strings() []string {
	var out []string
	for _, f := range v.Fields {
		if f.Kind == KindString {
			out = append(out, f.String)
		}
	}
	return out
}
