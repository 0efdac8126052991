package ast

import "bytes"

// Equal reports whether two elements have the same names, attribute and
// value order, value types and values, and children, recursively.
func Equal(a, b Element) bool {
	if !bytes.Equal(a.NameBytes(), b.NameBytes()) {
		return false
	}
	if a.NumAttributes() != b.NumAttributes() || a.NumChildren() != b.NumChildren() {
		return false
	}
	battrs := b.Attributes()
	for i, aa := range a.Attributes() {
		if !equalAttribute(aa, battrs[i]) {
			return false
		}
	}
	bkids := b.Children()
	for i, ak := range a.Children() {
		if !Equal(ak, bkids[i]) {
			return false
		}
	}
	return true
}

func equalAttribute(a, b Attribute) bool {
	if !bytes.Equal(a.NameBytes(), b.NameBytes()) || a.NumValues() != b.NumValues() {
		return false
	}
	bvals := b.Values()
	for i, v := range a.Values() {
		if !v.Equal(bvals[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether v and w have the same type and value. Floats are
// compared bit for bit.
func (v Value) Equal(w Value) bool {
	return v.kind == w.kind && v.num == w.num && bytes.Equal(v.str, w.str)
}
