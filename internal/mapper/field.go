// Package mapper caches how struct fields map to SML attributes and
// elements.
package mapper

import (
	"reflect"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// Field is a struct field that receives an attribute or a child element.
type Field struct {
	Name      string
	Index     []int
	OmitEmpty bool
}

// Fields describes the decodable fields of a struct type.
type Fields struct {
	list   []Field
	byName map[string]int
	folded map[string]int

	// NameField receives the element name; it is set by the ",name" tag
	// option.
	NameField *Field
}

var fieldCache = xsync.NewMapOf[reflect.Type, *Fields]()

// FieldsOf returns the fields of the struct type t. The result is computed
// once per type and shared.
// It skips unexported fields and fields tagged with `sml:"-"`.
func FieldsOf(t reflect.Type) *Fields {
	fs, _ := fieldCache.LoadOrCompute(t, func() *Fields {
		fs := &Fields{byName: make(map[string]int), folded: make(map[string]int)}
		fs.walk(t, nil)
		return fs
	})
	return fs
}

func (fs *Fields) walk(t reflect.Type, index []int) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		idx := append(index[:len(index):len(index)], i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Tag.Get("sml") == "" {
			fs.walk(sf.Type, idx)
			continue
		}
		if !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get("sml")
		if tag == "-" {
			continue
		}

		f := Field{Index: idx}
		name, opts, _ := strings.Cut(tag, ",")
		f.Name = name
		if name == "" {
			f.Name = sf.Name
		}

		isName := false
		for opts != "" {
			var opt string
			opt, opts, _ = strings.Cut(opts, ",")
			switch opt {
			case "name":
				isName = true
			case "omitempty":
				f.OmitEmpty = true
			}
		}
		if isName {
			if fs.NameField == nil {
				fs.NameField = &f
			}
			continue
		}

		// Outer fields shadow embedded ones.
		if j, ok := fs.byName[f.Name]; ok {
			if len(f.Index) < len(fs.list[j].Index) {
				fs.list[j] = f
			}
			continue
		}
		fs.list = append(fs.list, f)
		fs.byName[f.Name] = len(fs.list) - 1
		if _, ok := fs.folded[strings.ToLower(f.Name)]; !ok {
			fs.folded[strings.ToLower(f.Name)] = len(fs.list) - 1
		}
	}
}

// Lookup finds the field for name. An exact match wins over a
// case-insensitive one.
func (fs *Fields) Lookup(name string) (Field, bool) {
	if i, ok := fs.byName[name]; ok {
		return fs.list[i], true
	}
	if i, ok := fs.folded[strings.ToLower(name)]; ok {
		return fs.list[i], true
	}
	return Field{}, false
}

// Len returns the number of decodable fields.
func (fs *Fields) Len() int { return len(fs.list) }

// All returns the fields in declaration order, embedded fields in place of
// their struct.
func (fs *Fields) All() []Field { return fs.list }
