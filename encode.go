package sml

import (
	"bytes"
	"encoding"
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/KimNorgaard/go-sml/ast"
	"github.com/KimNorgaard/go-sml/internal/mapper"
	"github.com/KimNorgaard/go-sml/internal/token"
)

// Marshal returns the SML encoding of v, which must be a struct, a map
// with string keys, or a pointer to one of them.
//
// The root element is named by the field tagged `sml:",name"` when it is
// set, otherwise by the RootName option, the Go struct type name, or "root"
// in that order.
// Struct fields follow the same tags as Unmarshal; the "omitempty" option
// skips fields holding their zero value. Scalars and slices of scalars
// become attributes; structs, maps, and slices of them become child
// elements. Nil pointers become the null value in attributes and are
// skipped as elements. Map keys are written in sorted order.
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, opts...).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encoder writes SML documents to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the SML encoding of v to the stream. See Marshal for the
// conversion rules.
func (e *Encoder) Encode(v any) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return fmt.Errorf("sml: Marshal(nil)")
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return fmt.Errorf("sml: Marshal(nil %T)", v)
		}
		rv = rv.Elem()
	}
	if !isElementValue(rv) {
		return fmt.Errorf("sml: cannot marshal %T as an element", v)
	}

	name := "root"
	switch {
	case o.rootName != "":
		name = o.rootName
	case rv.Kind() == reflect.Struct && rv.Type().Name() != "":
		name = rv.Type().Name()
	}
	es := &encodeState{f: newFormatter(o), maxDepth: o.maxDepth}
	if err := es.marshalElement(name, rv, 0); err != nil {
		return err
	}
	_, err = e.w.Write(es.f.buf)
	return err
}

type encodeState struct {
	f        *formatter
	maxDepth int
	vals     []ast.Value
}

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

func isTextMarshaler(t reflect.Type) bool {
	return t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType)
}

// isElementValue reports whether v, after pointers and interfaces, encodes
// as an element.
func isElementValue(v reflect.Value) bool {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if isTextMarshaler(v.Type()) {
		return false
	}
	switch v.Kind() {
	case reflect.Struct:
		return true
	case reflect.Map:
		return v.Type().Key().Kind() == reflect.String
	}
	return false
}

// isElementSlice reports whether v is a non-empty slice or array of
// element values.
func isElementSlice(v reflect.Value) bool {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if (v.Kind() != reflect.Slice && v.Kind() != reflect.Array) || v.Len() == 0 {
		return false
	}
	if isTextMarshaler(v.Type()) {
		return false
	}
	for i := range v.Len() {
		if !isElementValue(v.Index(i)) {
			return false
		}
	}
	return true
}

// isEmptyValue reports whether the value v is empty.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

// validName checks that name prints as one bare token. Attribute lines
// always carry values, so only element names must differ from "end".
func validName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("sml: empty name")
	case name[0] == '"' || strings.ContainsAny(name, " \t\r\n#"):
		return fmt.Errorf("sml: name %q cannot be written as a single token", name)
	}
	return nil
}

func validElementName(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if token.IsEnd([]byte(name)) {
		return fmt.Errorf("sml: element name %q reads as the end of an element", name)
	}
	return nil
}

func (es *encodeState) marshalElement(name string, v reflect.Value, depth int) error {
	if depth >= es.maxDepth {
		return fmt.Errorf("sml: reached max depth at element %s", name)
	}
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		fields := mapper.FieldsOf(v.Type())
		if nf := fields.NameField; nf != nil {
			if fv := v.FieldByIndex(nf.Index); fv.Kind() == reflect.String && fv.String() != "" {
				name = fv.String()
			}
		}
		if err := validElementName(name); err != nil {
			return err
		}
		es.f.openElement([]byte(name), depth)
		for _, f := range fields.All() {
			fv := v.FieldByIndex(f.Index)
			if f.OmitEmpty && isEmptyValue(fv) {
				continue
			}
			if err := es.marshalEntry(f.Name, fv, depth+1); err != nil {
				return err
			}
		}
	case reflect.Map:
		if err := validElementName(name); err != nil {
			return err
		}
		es.f.openElement([]byte(name), depth)
		keys := v.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(a.String(), b.String())
		})
		for _, k := range keys {
			if err := es.marshalEntry(k.String(), v.MapIndex(k), depth+1); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("sml: cannot marshal %s as an element", v.Type())
	}
	es.f.closeElement(depth)
	return nil
}

// marshalEntry writes one field or map entry as child elements or as an
// attribute.
func (es *encodeState) marshalEntry(name string, v reflect.Value, depth int) error {
	if isElementValue(v) {
		return es.marshalElement(name, v, depth)
	}
	if isElementSlice(v) {
		for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
			v = v.Elem()
		}
		for i := range v.Len() {
			if err := es.marshalElement(name, v.Index(i), depth); err != nil {
				return err
			}
		}
		return nil
	}
	if isNilElement(v) {
		return nil
	}

	vals, err := es.attributeValues(v, name)
	if err != nil {
		return err
	}
	if len(vals) == 0 {
		return nil
	}
	if err := validName(name); err != nil {
		return err
	}
	es.f.writeAttribute([]byte(name), vals, depth)
	return nil
}

// isNilElement reports whether v is a nil pointer to an element type.
func isNilElement(v reflect.Value) bool {
	if v.Kind() != reflect.Pointer || !v.IsNil() {
		return false
	}
	t := v.Type().Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if isTextMarshaler(t) {
		return false
	}
	return t.Kind() == reflect.Struct || (t.Kind() == reflect.Map && t.Key().Kind() == reflect.String)
}

func (es *encodeState) attributeValues(v reflect.Value, name string) ([]ast.Value, error) {
	es.vals = es.vals[:0]
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return append(es.vals, ast.NullValue()), nil
		}
		v = v.Elem()
	}
	if (v.Kind() == reflect.Slice || v.Kind() == reflect.Array) &&
		!isTextMarshaler(v.Type()) && v.Type().Elem().Kind() != reflect.Uint8 {
		for i := range v.Len() {
			sv, err := scalarValue(v.Index(i), name)
			if err != nil {
				return nil, err
			}
			es.vals = append(es.vals, sv)
		}
		return es.vals, nil
	}
	sv, err := scalarValue(v, name)
	if err != nil {
		return nil, err
	}
	return append(es.vals, sv), nil
}

func scalarValue(v reflect.Value, name string) (ast.Value, error) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ast.NullValue(), nil
		}
		v = v.Elem()
	}
	var m encoding.TextMarshaler
	switch {
	case v.Type().Implements(textMarshalerType):
		m = v.Interface().(encoding.TextMarshaler)
	case v.CanAddr() && reflect.PointerTo(v.Type()).Implements(textMarshalerType):
		m = v.Addr().Interface().(encoding.TextMarshaler)
	}
	if m != nil {
		text, err := m.MarshalText()
		if err != nil {
			return ast.Value{}, &MarshalerError{Type: v.Type(), Err: err}
		}
		return ast.StringValue(string(text)), nil
	}

	switch v.Kind() {
	case reflect.String:
		return ast.StringValue(v.String()), nil
	case reflect.Bool:
		return ast.BoolValue(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ast.IntValue(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := v.Uint()
		if n > math.MaxInt64 {
			return ast.Value{}, fmt.Errorf("sml: cannot marshal %s: %d overflows int64", name, n)
		}
		return ast.IntValue(int64(n)), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ast.Value{}, fmt.Errorf("sml: cannot marshal %s: unsupported float %v", name, f)
		}
		return ast.FloatValue(f), nil
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return ast.StringValue(string(v.Bytes())), nil
		}
	}
	return ast.Value{}, fmt.Errorf("sml: cannot marshal %s of type %s as a value", name, v.Type())
}
