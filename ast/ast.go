// Package ast holds the tree produced by loading an SML document.
//
// A Document owns its source text and the arenas its nodes live in.
// Element, Attribute, and Value are small read-only handles into that
// storage and are valid until Document.Release is called.
package ast

import (
	"math"

	"github.com/KimNorgaard/go-sml/internal/arena"
)

// Kind is the type of a Value.
type Kind uint8

const (
	String Kind = iota
	Float
	Int
	True
	False
	Null
)

var kindNames = [...]string{
	String: "string",
	Float:  "float",
	Int:    "integer",
	True:   "true",
	False:  "false",
	Null:   "null",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// span is a half-open byte range of the source buffer.
type span struct {
	off, n int32
}

type element struct {
	name                  span
	firstAttr, lastAttr   arena.Ref
	firstChild, lastChild arena.Ref
	next                  arena.Ref
	nattrs, nchildren     int32
}

type attribute struct {
	name    span
	values  arena.Ref
	nvalues int32
	next    arena.Ref
}

// value records hold no pointers; string bytes are addressed either in the
// source (str is nil) or in the string arena.
type value struct {
	kind Kind
	num  uint64
	src  span
	str  arena.Ref
}

// Document is the unit of ownership of a loaded tree.
type Document struct {
	src   []byte
	elems *arena.Arena[element]
	attrs *arena.Arena[attribute]
	vals  *arena.Arena[value]
	strs  *arena.Arena[byte]
	root  arena.Ref

	released bool
}

// Stats reports the storage held by a Document.
type Stats struct {
	SourceBytes int
	Elements    int
	Attributes  int
	Values      int
	StringBytes int
	Pages       int
}

// Root returns the root element.
func (d *Document) Root() Element {
	d.check()
	return Element{doc: d, ref: d.root}
}

// Stats returns storage counters for the document.
func (d *Document) Stats() Stats {
	d.check()
	return Stats{
		SourceBytes: len(d.src),
		Elements:    d.elems.Len(),
		Attributes:  d.attrs.Len(),
		Values:      d.vals.Len(),
		StringBytes: d.strs.Len(),
		Pages:       d.elems.Pages() + d.attrs.Pages() + d.vals.Pages() + d.strs.Pages(),
	}
}

// Release frees the source text and every arena page. It must be called
// once; any use of the document or its handles afterwards panics.
func (d *Document) Release() {
	if d.released {
		panic("ast: document released twice")
	}
	d.release()
}

// Released reports whether Release has been called.
func (d *Document) Released() bool { return d.released }

func (d *Document) release() {
	d.elems.Release()
	d.attrs.Release()
	d.vals.Release()
	d.strs.Release()
	d.src = nil
	d.root = arena.Ref{}
	d.released = true
}

func (d *Document) check() {
	if d.released {
		panic("ast: use of released document")
	}
}

func (d *Document) bytes(s span) []byte {
	return d.src[s.off : s.off+s.n : s.off+s.n]
}

// Element is a named node with ordered attributes and child elements.
type Element struct {
	doc *Document
	ref arena.Ref
}

func (e Element) rec() *element {
	e.doc.check()
	return e.doc.elems.Get(e.ref)
}

// IsZero reports whether e is the zero Element, as returned by failed
// lookups.
func (e Element) IsZero() bool { return e.doc == nil }

// Name returns the element name.
func (e Element) Name() string { return string(e.NameBytes()) }

// NameBytes returns the element name without copying. The bytes belong to
// the document and must not be modified.
func (e Element) NameBytes() []byte { return e.doc.bytes(e.rec().name) }

// NumAttributes returns the number of attributes.
func (e Element) NumAttributes() int { return int(e.rec().nattrs) }

// Attributes returns the attributes in source order.
func (e Element) Attributes() []Attribute {
	r := e.rec()
	out := make([]Attribute, 0, r.nattrs)
	for ref := r.firstAttr; !ref.IsNil(); ref = e.doc.attrs.Get(ref).next {
		out = append(out, Attribute{doc: e.doc, ref: ref})
	}
	return out
}

// Attribute returns the first attribute called name.
func (e Element) Attribute(name string) (Attribute, bool) {
	r := e.rec()
	for ref := r.firstAttr; !ref.IsNil(); {
		a := e.doc.attrs.Get(ref)
		if string(e.doc.bytes(a.name)) == name {
			return Attribute{doc: e.doc, ref: ref}, true
		}
		ref = a.next
	}
	return Attribute{}, false
}

// NumChildren returns the number of child elements.
func (e Element) NumChildren() int { return int(e.rec().nchildren) }

// Children returns the child elements in source order.
func (e Element) Children() []Element {
	r := e.rec()
	out := make([]Element, 0, r.nchildren)
	for ref := r.firstChild; !ref.IsNil(); ref = e.doc.elems.Get(ref).next {
		out = append(out, Element{doc: e.doc, ref: ref})
	}
	return out
}

// Child returns the first child element called name.
func (e Element) Child(name string) (Element, bool) {
	r := e.rec()
	for ref := r.firstChild; !ref.IsNil(); {
		c := e.doc.elems.Get(ref)
		if string(e.doc.bytes(c.name)) == name {
			return Element{doc: e.doc, ref: ref}, true
		}
		ref = c.next
	}
	return Element{}, false
}

// Attribute is a named, ordered list of values owned by one element.
type Attribute struct {
	doc *Document
	ref arena.Ref
}

func (a Attribute) rec() *attribute {
	a.doc.check()
	return a.doc.attrs.Get(a.ref)
}

// Name returns the attribute name.
func (a Attribute) Name() string { return string(a.NameBytes()) }

// NameBytes returns the attribute name without copying.
func (a Attribute) NameBytes() []byte { return a.doc.bytes(a.rec().name) }

// NumValues returns the number of values.
func (a Attribute) NumValues() int { return int(a.rec().nvalues) }

// Value returns the i-th value. It panics if i is out of range.
func (a Attribute) Value(i int) Value {
	r := a.rec()
	return a.doc.value(&a.doc.vals.Slice(r.values, int(r.nvalues))[i])
}

// Values returns the values in source order.
func (a Attribute) Values() []Value {
	r := a.rec()
	recs := a.doc.vals.Slice(r.values, int(r.nvalues))
	out := make([]Value, len(recs))
	for i := range recs {
		out[i] = a.doc.value(&recs[i])
	}
	return out
}

func (d *Document) value(r *value) Value {
	v := Value{kind: r.kind, num: r.num}
	if r.kind != String || r.src.n == 0 {
		return v
	}
	if r.str.IsNil() {
		v.str = d.bytes(r.src)
	} else {
		v.str = d.strs.Slice(r.str, int(r.src.n))
	}
	return v
}

// Value is a typed scalar. String bytes are shared with the owning
// document.
type Value struct {
	kind Kind
	num  uint64
	str  []byte
}

// StringValue returns a string Value holding s.
func StringValue(s string) Value {
	if s == "" {
		return Value{kind: String}
	}
	return Value{kind: String, str: []byte(s)}
}

// IntValue returns an integer Value.
func IntValue(n int64) Value { return Value{kind: Int, num: uint64(n)} }

// FloatValue returns a float Value.
func FloatValue(f float64) Value { return Value{kind: Float, num: math.Float64bits(f)} }

// BoolValue returns True or False.
func BoolValue(b bool) Value {
	if b {
		return Value{kind: True}
	}
	return Value{kind: False}
}

// NullValue returns the null Value.
func NullValue() Value { return Value{kind: Null} }

// Kind returns the value's type.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer held by an Int value, or zero.
func (v Value) Int() int64 {
	if v.kind != Int {
		return 0
	}
	return int64(v.num)
}

// Float returns the number held by a Float value, or zero.
func (v Value) Float() float64 {
	if v.kind != Float {
		return 0
	}
	return math.Float64frombits(v.num)
}

// Bool reports whether v is True.
func (v Value) Bool() bool { return v.kind == True }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == Null }

// Str returns the string held by a String value, or "".
func (v Value) Str() string { return string(v.str) }

// Bytes returns the bytes of a String value without copying.
func (v Value) Bytes() []byte { return v.str }

// Interface returns v as a Go value: string, float64, int64, bool, or nil.
func (v Value) Interface() any {
	switch v.kind {
	case String:
		return v.Str()
	case Float:
		return v.Float()
	case Int:
		return v.Int()
	case True, False:
		return v.Bool()
	default:
		return nil
	}
}
