package ast

import (
	"math"

	"github.com/KimNorgaard/go-sml/internal/arena"
)

// Builder assembles a Document during a single load. Nodes only ever get
// appended; once Finish or Discard has been called the Builder is spent.
type Builder struct {
	d *Document
}

// NewBuilder returns a Builder for a document over src. pageSize is the
// arena page size in bytes; zero selects arena.DefaultPageSize.
func NewBuilder(src []byte, pageSize int) *Builder {
	return &Builder{d: &Document{
		src:   src,
		elems: arena.New[element](pageSize),
		attrs: arena.New[attribute](pageSize),
		vals:  arena.New[value](pageSize),
		strs:  arena.New[byte](pageSize),
	}}
}

func spanOf(start, end int) span {
	return span{off: int32(start), n: int32(end - start)}
}

// NewElement allocates an element named by src[start:end]. It belongs to
// no parent until AppendChild or Finish.
func (b *Builder) NewElement(start, end int) Element {
	ref, e := b.d.elems.Alloc()
	e.name = spanOf(start, end)
	return Element{doc: b.d, ref: ref}
}

// AppendChild appends child to parent's children.
func (b *Builder) AppendChild(parent, child Element) {
	p := b.d.elems.Get(parent.ref)
	if p.lastChild.IsNil() {
		p.firstChild = child.ref
	} else {
		b.d.elems.Get(p.lastChild).next = child.ref
	}
	p.lastChild = child.ref
	p.nchildren++
}

// AddAttribute appends an attribute named by src[start:end] with n value
// slots to parent. The slots are contiguous and start out Null.
func (b *Builder) AddAttribute(parent Element, start, end, n int) Attribute {
	ref, a := b.d.attrs.Alloc()
	a.name = spanOf(start, end)
	a.nvalues = int32(n)
	var vals []value
	a.values, vals = b.d.vals.AllocN(n)
	for i := range vals {
		vals[i].kind = Null
	}

	p := b.d.elems.Get(parent.ref)
	if p.lastAttr.IsNil() {
		p.firstAttr = ref
	} else {
		b.d.attrs.Get(p.lastAttr).next = ref
	}
	p.lastAttr = ref
	p.nattrs++
	return Attribute{doc: b.d, ref: ref}
}

func (b *Builder) slot(a Attribute, i int) *value {
	r := b.d.attrs.Get(a.ref)
	return &b.d.vals.Slice(r.values, int(r.nvalues))[i]
}

// SetInt stores an integer in value slot i of a.
func (b *Builder) SetInt(a Attribute, i int, n int64) {
	*b.slot(a, i) = value{kind: Int, num: uint64(n)}
}

// SetFloat stores a float in value slot i of a.
func (b *Builder) SetFloat(a Attribute, i int, f float64) {
	*b.slot(a, i) = value{kind: Float, num: math.Float64bits(f)}
}

// SetBool stores True or False in value slot i of a.
func (b *Builder) SetBool(a Attribute, i int, v bool) {
	k := False
	if v {
		k = True
	}
	*b.slot(a, i) = value{kind: k}
}

// SetNull stores Null in value slot i of a.
func (b *Builder) SetNull(a Attribute, i int) {
	*b.slot(a, i) = value{kind: Null}
}

// SetSourceString stores the string src[start:end] in value slot i of a
// without copying.
func (b *Builder) SetSourceString(a Attribute, i, start, end int) {
	*b.slot(a, i) = value{kind: String, src: spanOf(start, end)}
}

// SetString copies s into the string arena and stores it in value slot i
// of a.
func (b *Builder) SetString(a Attribute, i int, s []byte) {
	v := value{kind: String, src: span{n: int32(len(s))}}
	if len(s) > 0 {
		var buf []byte
		v.str, buf = b.d.strs.AllocN(len(s))
		copy(buf, s)
	}
	*b.slot(a, i) = v
}

// Stats returns storage counters for the document under construction.
func (b *Builder) Stats() Stats { return b.d.Stats() }

// Finish makes root the document root and returns the document.
func (b *Builder) Finish(root Element) *Document {
	d := b.d
	d.root = root.ref
	b.d = nil
	return d
}

// Discard releases everything allocated so far.
func (b *Builder) Discard() {
	if b.d != nil {
		b.d.release()
		b.d = nil
	}
}
