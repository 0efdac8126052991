package mapper

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type base struct {
	ID   int
	Name string
}

type server struct {
	Kind string `sml:",name"`
	base
	Name    string `sml:"host"`
	Port    int
	Ignored string `sml:"-"`
	private int
}

func TestFieldsOf(t *testing.T) {
	fs := FieldsOf(reflect.TypeOf(server{}))

	require.NotNil(t, fs.NameField)
	require.Equal(t, []int{0}, fs.NameField.Index)

	f, ok := fs.Lookup("host")
	require.True(t, ok)
	require.Equal(t, "host", f.Name)
	require.Equal(t, []int{2}, f.Index)

	f, ok = fs.Lookup("PORT")
	require.True(t, ok)
	require.Equal(t, []int{3}, f.Index)

	f, ok = fs.Lookup("ID")
	require.True(t, ok)
	require.Equal(t, []int{1, 0}, f.Index)

	_, ok = fs.Lookup("Ignored")
	require.False(t, ok)
	_, ok = fs.Lookup("private")
	require.False(t, ok)

	require.Same(t, fs, FieldsOf(reflect.TypeOf(server{})))
}

func TestFieldsOf_Shadowing(t *testing.T) {
	type outer struct {
		base
		Name string
	}
	fs := FieldsOf(reflect.TypeOf(outer{}))
	f, ok := fs.Lookup("Name")
	require.True(t, ok)
	require.Equal(t, []int{1}, f.Index)
	require.Equal(t, 2, fs.Len())
}

func TestFieldsOf_Options(t *testing.T) {
	type opts struct {
		Label string `sml:",name"`
		Host  string `sml:"host,omitempty"`
		Port  int    `sml:",omitempty"`
		Debug bool
	}
	fs := FieldsOf(reflect.TypeOf(opts{}))
	require.NotNil(t, fs.NameField)
	require.Equal(t, []int{0}, fs.NameField.Index)

	all := fs.All()
	require.Len(t, all, 3)
	require.Equal(t, Field{Name: "host", Index: []int{1}, OmitEmpty: true}, all[0])
	require.Equal(t, Field{Name: "Port", Index: []int{2}, OmitEmpty: true}, all[1])
	require.Equal(t, Field{Name: "Debug", Index: []int{3}}, all[2])
}
