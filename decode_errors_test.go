package sml_test

import (
	"testing"

	"github.com/KimNorgaard/go-sml"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal_TypeMismatchErrors(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		target      func() any // Use a function to get a fresh pointer for each test
		expectedErr string
	}{
		{
			name:        "Element into String",
			input:       "r\nend\n",
			target:      func() any { return new(string) },
			expectedErr: "sml: cannot unmarshal element into Go value of type string at r",
		},
		{
			name:        "Element into Slice",
			input:       "r\nend\n",
			target:      func() any { return new([]string) },
			expectedErr: "sml: cannot unmarshal element into Go value of type []string at r",
		},
		{
			name:        "Element into Map With Int Keys",
			input:       "r\nend\n",
			target:      func() any { return new(map[int]any) },
			expectedErr: "sml: cannot unmarshal element into Go value of type map[int]interface {} at r",
		},
		{
			name:        "Integer into String",
			input:       "r\n  a 1\nend\n",
			target:      func() any { return new(struct{ A string }) },
			expectedErr: "sml: cannot unmarshal integer into Go value of type string at r.a",
		},
		{
			name:        "String into Int",
			input:       "r\n  a one\nend\n",
			target:      func() any { return new(struct{ A int }) },
			expectedErr: "sml: cannot unmarshal string into Go value of type int at r.a",
		},
		{
			name:        "Float into Int",
			input:       "r\n  a 1.5\nend\n",
			target:      func() any { return new(struct{ A int }) },
			expectedErr: "sml: cannot unmarshal float into Go value of type int at r.a",
		},
		{
			name:        "Boolean into String",
			input:       "r\n  a true\nend\n",
			target:      func() any { return new(struct{ A string }) },
			expectedErr: "sml: cannot unmarshal true into Go value of type string at r.a",
		},
		{
			name:        "Several Values into Scalar",
			input:       "r\n  a 1 2\nend\n",
			target:      func() any { return new(struct{ A int }) },
			expectedErr: "sml: cannot unmarshal 2 values into Go value of type int at r.a",
		},
		{
			name:        "Array Length Mismatch",
			input:       "r\n  a 1 2\nend\n",
			target:      func() any { return new(struct{ A [3]int }) },
			expectedErr: "sml: cannot unmarshal 2 values into Go value of type [3]int at r.a",
		},
		{
			name:        "Element into String Field",
			input:       "r\n  c\n  end\nend\n",
			target:      func() any { return new(struct{ C string }) },
			expectedErr: "sml: cannot unmarshal element into Go value of type string at r.c",
		},
		{
			name:        "Slice Element Mismatch",
			input:       "r\n  a 1 x 3\nend\n",
			target:      func() any { return new(struct{ A []int }) },
			expectedErr: "sml: cannot unmarshal string into Go value of type int at r.a[1]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := sml.Unmarshal([]byte(tc.input), tc.target())
			var te *sml.UnmarshalTypeError
			require.ErrorAs(t, err, &te)
			require.EqualError(t, err, tc.expectedErr)
		})
	}
}

func TestUnmarshal_OverflowErrors(t *testing.T) {
	err := sml.Unmarshal([]byte("r\n  a 300\nend\n"), new(struct{ A int8 }))
	require.EqualError(t, err, "sml: integer value 300 overflows Go value of type int8 at r.a")

	err = sml.Unmarshal([]byte("r\n  a -1\nend\n"), new(struct{ A uint }))
	require.EqualError(t, err, "sml: integer value -1 overflows Go value of type uint at r.a")
}

func TestUnmarshal_InvalidTarget(t *testing.T) {
	err := sml.Unmarshal([]byte("r\nend\n"), struct{}{})
	require.EqualError(t, err, "sml: Unmarshal(non-pointer struct {} or nil)")

	err = sml.Unmarshal([]byte("r\nend\n"), nil)
	require.Error(t, err)

	var p *struct{}
	err = sml.Unmarshal([]byte("r\nend\n"), p)
	require.Error(t, err)
}

func TestUnmarshal_ParseErrors(t *testing.T) {
	var v any
	err := sml.Unmarshal([]byte("end\n"), &v)
	require.ErrorIs(t, err, sml.ErrUnbalancedEnd)
}

func TestDecodeDocument_MaxDepth(t *testing.T) {
	doc, err := sml.Load([]byte("r\n  c\n    d\n    end\n  end\nend\n"))
	require.NoError(t, err)
	defer doc.Release()

	var v any
	err = sml.DecodeDocument(doc, &v, sml.MaxDepth(2))
	require.EqualError(t, err, "sml: reached max recursion depth at r.c.d")

	require.NoError(t, sml.DecodeDocument(doc, &v, sml.MaxDepth(3)))

	var s struct{ C struct{ D struct{} } }
	err = sml.DecodeDocument(doc, &s, sml.MaxDepth(2))
	require.EqualError(t, err, "sml: reached max recursion depth at r.c.d")
}
