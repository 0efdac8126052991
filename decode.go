package sml

import (
	"encoding"
	"fmt"
	"io"
	"reflect"

	"github.com/KimNorgaard/go-sml/ast"
	"github.com/KimNorgaard/go-sml/internal/mapper"
)

// Unmarshaler is the interface implemented by types that can decode an
// element into themselves.
type Unmarshaler interface {
	UnmarshalSML(e ast.Element) error
}

// Unmarshal parses data and stores the root element in the value pointed
// to by v.
//
// An element decodes into a struct, a map with string keys, or an empty
// interface. For a struct, each attribute is matched to a field by the
// field's `sml` tag name, then its Go name, then case-insensitively; child
// elements are matched the same way by their name. A field tagged
// `sml:",name"` receives the element name. Unknown attributes and elements
// are ignored.
//
// An attribute with one value decodes into a scalar field; its values
// decode element-wise into a slice or array field. Into an empty interface
// a single value decodes as string, int64, float64, bool, or nil, and
// several values as []any. Elements decode into map[string]any; repeated
// child names collect into []any.
func Unmarshal(data []byte, v any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	doc, err := Load(data, opts...)
	if err != nil {
		return err
	}
	defer doc.Release()
	return decodeDocument(doc, v, o)
}

// Decoder reads and decodes SML documents from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// It is the caller's responsibility to call Close on r if required.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the whole input and stores its root element in the value
// pointed to by v. See Unmarshal for the conversion rules.
func (d *Decoder) Decode(v any) error {
	if d.r == nil {
		return fmt.Errorf("sml: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return fmt.Errorf("sml: %w: %w", ErrUnreadable, err)
	}
	return Unmarshal(data, v, d.opts...)
}

// DecodeDocument stores the root element of an already loaded document in
// the value pointed to by v. The document is not released.
func DecodeDocument(doc *ast.Document, v any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	if doc == nil || doc.Released() {
		return fmt.Errorf("sml: DecodeDocument(nil or released document)")
	}
	return decodeDocument(doc, v, o)
}

func decodeDocument(doc *ast.Document, v any, o *options) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("sml: Unmarshal(non-pointer %T or nil)", v)
	}
	ds := &decodeState{depth: o.maxDepth}
	root := doc.Root()
	return ds.mapElement(root, rv.Elem(), root.Name())
}

var (
	unmarshalerType     = reflect.TypeFor[Unmarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

type decodeState struct {
	depth int
}

// indirect allocates through pointers and returns the value they lead to.
func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}
	return rv
}

func (ds *decodeState) mapElement(e ast.Element, rv reflect.Value, path string) error {
	ds.depth--
	if ds.depth < 0 {
		return fmt.Errorf("sml: reached max recursion depth at %s", path)
	}
	defer func() { ds.depth++ }()

	rv = indirect(rv)
	if rv.CanAddr() && rv.Addr().Type().Implements(unmarshalerType) {
		u := rv.Addr().Interface().(Unmarshaler)
		if err := u.UnmarshalSML(e); err != nil {
			return &UnmarshalerError{Type: rv.Addr().Type(), Err: err}
		}
		return nil
	}

	switch rv.Kind() {
	case reflect.Struct:
		return ds.mapStruct(e, rv, path)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return &UnmarshalTypeError{Value: "element", Type: rv.Type(), Field: path}
		}
		if rv.Type().Elem().Kind() != reflect.Interface || rv.Type().Elem().NumMethod() != 0 {
			return &UnmarshalTypeError{Value: "element", Type: rv.Type(), Field: path}
		}
		m, err := ds.elementMap(e, path)
		if err != nil {
			return err
		}
		out := reflect.MakeMapWithSize(rv.Type(), len(m))
		for k, v := range m {
			out.SetMapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()), reflect.ValueOf(&v).Elem())
		}
		rv.Set(out)
		return nil
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return &UnmarshalTypeError{Value: "element", Type: rv.Type(), Field: path}
		}
		m, err := ds.elementMap(e, path)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(m))
		return nil
	default:
		return &UnmarshalTypeError{Value: "element", Type: rv.Type(), Field: path}
	}
}

func (ds *decodeState) mapStruct(e ast.Element, rv reflect.Value, path string) error {
	fields := mapper.FieldsOf(rv.Type())
	if nf := fields.NameField; nf != nil {
		fv := rv.FieldByIndex(nf.Index)
		if fv.Kind() != reflect.String {
			return &UnmarshalTypeError{Value: "element name", Type: fv.Type(), Field: path}
		}
		fv.SetString(e.Name())
	}

	for _, a := range e.Attributes() {
		f, ok := fields.Lookup(a.Name())
		if !ok {
			continue
		}
		if err := ds.mapAttribute(a, rv.FieldByIndex(f.Index), path+"."+a.Name()); err != nil {
			return err
		}
	}

	// Slices collecting repeated children are reset on first use.
	var seen map[string]bool
	for _, c := range e.Children() {
		f, ok := fields.Lookup(c.Name())
		if !ok {
			continue
		}
		fv := rv.FieldByIndex(f.Index)
		cpath := path + "." + c.Name()
		if isElementList(fv.Type()) {
			if seen == nil {
				seen = make(map[string]bool)
			}
			if !seen[f.Name] {
				seen[f.Name] = true
				fv.Set(reflect.Zero(fv.Type()))
			}
			elem := reflect.New(fv.Type().Elem()).Elem()
			if err := ds.mapElement(c, elem, cpath); err != nil {
				return err
			}
			fv.Set(reflect.Append(fv, elem))
			continue
		}
		if err := ds.mapElement(c, fv, cpath); err != nil {
			return err
		}
	}
	return nil
}

// isElementList reports whether t is a slice that collects child elements
// rather than attribute values.
func isElementList(t reflect.Type) bool {
	if t.Kind() != reflect.Slice {
		return false
	}
	et := t.Elem()
	for et.Kind() == reflect.Pointer {
		et = et.Elem()
	}
	if reflect.PointerTo(et).Implements(unmarshalerType) {
		return true
	}
	if reflect.PointerTo(et).Implements(textUnmarshalerType) {
		return false
	}
	switch et.Kind() {
	case reflect.Struct:
		return true
	case reflect.Map:
		return et.Key().Kind() == reflect.String
	case reflect.Interface:
		return et.NumMethod() == 0
	}
	return false
}

func (ds *decodeState) mapAttribute(a ast.Attribute, rv reflect.Value, path string) error {
	vals := a.Values()
	target := rv
	for target.Kind() == reflect.Pointer {
		if len(vals) == 1 && vals[0].IsNull() {
			target.Set(reflect.Zero(target.Type()))
			return nil
		}
		target = indirect(target)
	}
	if isTextUnmarshaler(target) {
		if len(vals) != 1 {
			return &UnmarshalTypeError{Value: fmt.Sprintf("%d values", len(vals)), Type: target.Type(), Field: path}
		}
		return ds.mapValue(vals[0], target, path)
	}

	switch target.Kind() {
	case reflect.Slice:
		if target.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		if len(vals) == 1 && vals[0].IsNull() {
			target.Set(reflect.Zero(target.Type()))
			return nil
		}
		out := reflect.MakeSlice(target.Type(), len(vals), len(vals))
		for i, v := range vals {
			if err := ds.mapValue(v, out.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		target.Set(out)
		return nil
	case reflect.Array:
		if target.Len() != len(vals) {
			return &UnmarshalTypeError{Value: fmt.Sprintf("%d values", len(vals)), Type: target.Type(), Field: path}
		}
		for i, v := range vals {
			if err := ds.mapValue(v, target.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Interface:
		if target.NumMethod() == 0 && len(vals) != 1 {
			list := make([]any, len(vals))
			for i, v := range vals {
				list[i] = v.Interface()
			}
			target.Set(reflect.ValueOf(list))
			return nil
		}
	}

	if len(vals) != 1 {
		return &UnmarshalTypeError{Value: fmt.Sprintf("%d values", len(vals)), Type: target.Type(), Field: path}
	}
	return ds.mapValue(vals[0], target, path)
}

func isTextUnmarshaler(rv reflect.Value) bool {
	return rv.CanAddr() && rv.Addr().Type().Implements(textUnmarshalerType)
}

func (ds *decodeState) mapValue(v ast.Value, rv reflect.Value, path string) error {
	if v.IsNull() {
		switch rv.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
	}
	rv = indirect(rv)

	if isTextUnmarshaler(rv) {
		if v.Kind() != ast.String {
			return &UnmarshalTypeError{Value: v.Kind().String(), Type: rv.Type(), Field: path}
		}
		u := rv.Addr().Interface().(encoding.TextUnmarshaler)
		if err := u.UnmarshalText(v.Bytes()); err != nil {
			return &UnmarshalerError{Type: rv.Addr().Type(), Err: err}
		}
		return nil
	}

	mismatch := func() error {
		return &UnmarshalTypeError{Value: v.Kind().String(), Type: rv.Type(), Field: path}
	}

	switch v.Kind() {
	case ast.Null:
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	case ast.String:
		switch {
		case rv.Kind() == reflect.String:
			rv.SetString(v.Str())
		case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8:
			rv.SetBytes(append([]byte(nil), v.Bytes()...))
		case rv.Kind() == reflect.Interface && rv.NumMethod() == 0:
			rv.Set(reflect.ValueOf(v.Str()))
		default:
			return mismatch()
		}
	case ast.Int:
		n := v.Int()
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if rv.OverflowInt(n) {
				return fmt.Errorf("sml: integer value %d overflows Go value of type %s at %s", n, rv.Type(), path)
			}
			rv.SetInt(n)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			if n < 0 || rv.OverflowUint(uint64(n)) {
				return fmt.Errorf("sml: integer value %d overflows Go value of type %s at %s", n, rv.Type(), path)
			}
			rv.SetUint(uint64(n))
		case reflect.Float32, reflect.Float64:
			rv.SetFloat(float64(n))
		case reflect.Interface:
			if rv.NumMethod() != 0 {
				return mismatch()
			}
			rv.Set(reflect.ValueOf(n))
		default:
			return mismatch()
		}
	case ast.Float:
		f := v.Float()
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			if rv.OverflowFloat(f) {
				return fmt.Errorf("sml: float value %g overflows Go value of type %s at %s", f, rv.Type(), path)
			}
			rv.SetFloat(f)
		case reflect.Interface:
			if rv.NumMethod() != 0 {
				return mismatch()
			}
			rv.Set(reflect.ValueOf(f))
		default:
			return mismatch()
		}
	case ast.True, ast.False:
		switch rv.Kind() {
		case reflect.Bool:
			rv.SetBool(v.Bool())
		case reflect.Interface:
			if rv.NumMethod() != 0 {
				return mismatch()
			}
			rv.Set(reflect.ValueOf(v.Bool()))
		default:
			return mismatch()
		}
	}
	return nil
}

// elementMap converts an element to generic Go values.
func (ds *decodeState) elementMap(e ast.Element, path string) (map[string]any, error) {
	m := make(map[string]any, e.NumAttributes()+e.NumChildren())
	var lists map[string]bool
	for _, a := range e.Attributes() {
		m[a.Name()] = attributeValue(a)
	}
	for _, c := range e.Children() {
		cpath := path + "." + c.Name()
		ds.depth--
		if ds.depth < 0 {
			return nil, fmt.Errorf("sml: reached max recursion depth at %s", cpath)
		}
		cm, err := ds.elementMap(c, cpath)
		ds.depth++
		if err != nil {
			return nil, err
		}
		name := c.Name()
		prev, ok := m[name]
		switch {
		case !ok:
			m[name] = cm
		case lists[name]:
			m[name] = append(prev.([]any), cm)
		default:
			if lists == nil {
				lists = make(map[string]bool)
			}
			lists[name] = true
			m[name] = []any{prev, cm}
		}
	}
	return m, nil
}

func attributeValue(a ast.Attribute) any {
	if a.NumValues() == 1 {
		return a.Value(0).Interface()
	}
	vals := a.Values()
	list := make([]any, len(vals))
	for i, v := range vals {
		list[i] = v.Interface()
	}
	return list
}
