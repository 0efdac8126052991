package scalar_test

import (
	"testing"

	"github.com/KimNorgaard/go-sml/ast"
	"github.com/KimNorgaard/go-sml/errors"
	"github.com/KimNorgaard/go-sml/internal/scalar"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input    string
		kind     ast.Kind
		expected any
	}{
		{"-", ast.Null, nil},
		{"true", ast.True, true},
		{"false", ast.False, false},
		{"TRUE", ast.String, "TRUE"},
		{"-42", ast.Int, int64(-42)},
		{"007", ast.Int, int64(7)},
		{"0", ast.Int, int64(0)},
		{"-0", ast.Int, int64(0)},
		{"9223372036854775807", ast.Int, int64(9223372036854775807)},
		{"9223372036854775808", ast.String, "9223372036854775808"},
		{"3.140", ast.Float, 3.14},
		{"-0.5", ast.Float, -0.5},
		{"12.5.3", ast.String, "12.5.3"},
		{"1.", ast.String, "1."},
		{".5", ast.String, ".5"},
		{"-.5", ast.String, "-.5"},
		{"1e5", ast.String, "1e5"},
		{"+1", ast.String, "+1"},
		{"0x10", ast.String, "0x10"},
		{"--", ast.String, "--"},
		{"hello", ast.String, "hello"},
		{`a"b`, ast.String, `a"b`},
		{`"hello world"`, ast.String, "hello world"},
		{`"a""b"`, ast.String, `a"b`},
		{`"x"/"y"`, ast.String, "x\ny"},
		{`""`, ast.String, ""},
		{`"12"`, ast.String, "12"},
		{`"-"`, ast.String, "-"},
		{`""""`, ast.String, `"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, _, err := scalar.Classify([]byte(tt.input), nil)
			require.NoError(t, err)
			require.Equal(t, tt.kind, s.Kind)
			switch tt.kind {
			case ast.String:
				require.Equal(t, tt.expected, string(s.Str))
			case ast.Int:
				require.Equal(t, tt.expected, s.Int)
			case ast.Float:
				require.InDelta(t, tt.expected, s.Float, 0)
			}
		})
	}
}

func TestClassify_DecodesIntoBuffer(t *testing.T) {
	buf := []byte("prefix")
	s, buf, err := scalar.Classify([]byte(`"a""b"`), buf)
	require.NoError(t, err)
	require.True(t, s.Quoted)
	require.Equal(t, `a"b`, string(s.Str))
	require.Equal(t, `prefixa"b`, string(buf))

	raw := []byte("bare")
	s, _, err = scalar.Classify(raw, nil)
	require.NoError(t, err)
	require.False(t, s.Quoted)
	require.Same(t, &raw[0], &s.Str[0], "bare strings alias the token")
}

func TestClassify_Errors(t *testing.T) {
	tests := []struct {
		input string
		kind  error
	}{
		{`"open`, errors.ErrUnterminatedString},
		{`"`, errors.ErrUnterminatedString},
		{`"a""`, errors.ErrUnterminatedString},
		{`"x"/"`, errors.ErrUnterminatedString},
		{`"ab"cd`, errors.ErrUnknownToken},
		{``, errors.ErrUnknownToken},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			buf := []byte("keep")
			_, buf, err := scalar.Classify([]byte(tt.input), buf)
			require.ErrorIs(t, err, tt.kind)
			require.Equal(t, "keep", string(buf), "a failed decode leaves the buffer untouched")
		})
	}
}

func TestNeedsQuoting(t *testing.T) {
	bare := []string{"hello", "a\"b", "x-y", "end", "True", "1.", "/"}
	for _, s := range bare {
		require.False(t, scalar.NeedsQuoting([]byte(s)), s)
	}
	quoted := []string{"", "a b", "a\tb", "a\nb", "a#b", "\"x", "-", "true", "false", "12", "-3.5", "x\r"}
	for _, s := range quoted {
		require.True(t, scalar.NeedsQuoting([]byte(s)), s)
	}
}

func TestAppendString_RoundTrips(t *testing.T) {
	inputs := []string{"", "plain", "two words", `say "hi"`, "line\nbreak", `"/"`, "\n\"", "12", "-", "#tag", `"`}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			out := scalar.AppendString(nil, []byte(in))
			s, _, err := scalar.Classify(out, nil)
			require.NoError(t, err)
			require.Equal(t, ast.String, s.Kind)
			require.Equal(t, in, string(s.Str))
		})
	}
	require.Equal(t, `"x"/"y"`, string(scalar.AppendQuoted(nil, []byte("x\ny"))))
	require.Equal(t, `"a""b"`, string(scalar.AppendQuoted(nil, []byte(`a"b`))))
}

func TestAppendFloat(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{3.14, "3.14"},
		{10, "10.0"},
		{-0.5, "-0.5"},
		{0, "0.0"},
		{1e21, "1000000000000000000000.0"},
		{0.000001, "0.000001"},
	}
	for _, tt := range tests {
		out := scalar.AppendFloat(nil, tt.input)
		require.Equal(t, tt.expected, string(out))
		s, _, err := scalar.Classify(out, nil)
		require.NoError(t, err)
		require.Equal(t, ast.Float, s.Kind)
		require.Equal(t, tt.input, s.Float)
	}
}
