package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-sml"
)

func TestFormat(t *testing.T) {
	out, err := format([]byte("r\n a 1 \"x\"\n c\n end\nEND"), nil, []sml.Option{sml.Indent(4)})
	require.NoError(t, err)
	require.Equal(t, "r\n    a 1 x\n    c\n    end\nend\n", string(out))

	_, err = format([]byte("end\n"), nil, nil)
	require.ErrorIs(t, err, sml.ErrUnbalancedEnd)
}

func TestWriteInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.sml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))
	require.NoError(t, writeInPlace(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(data))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestCheckOne(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		ok       bool
		expected string
	}{
		{"valid", "r\nend\n", true, ""},
		{"unbalanced", "end\n", false, "x.sml:1:1: unbalanced end: no open element\n"},
		{"unterminated", "r\n  a \"b\nend\n", false, "x.sml:2:5: unterminated quoted string: \"b\n"},
		{"empty", "", false, "x.sml: sml: unexpected end of input: no root element\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ok := checkOne(&buf, input{name: "x.sml", data: []byte(tt.data)}, nil)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestToYAML(t *testing.T) {
	input := `root
  size 10 20
  name "hello world"
  note "line one"/"line two"
  missing -
  child
    a 1
  end
  child
    a 2
  end
end
`
	out, err := toYAML([]byte(input), 2, nil)
	require.NoError(t, err)

	var got struct {
		Root struct {
			Size    []int  `yaml:"size"`
			Name    string `yaml:"name"`
			Note    string `yaml:"note"`
			Missing *int   `yaml:"missing"`
			Child   []struct {
				A int `yaml:"a"`
			} `yaml:"child"`
		} `yaml:"root"`
	}
	require.NoError(t, yaml.Unmarshal(out, &got), string(out))
	require.Equal(t, []int{10, 20}, got.Root.Size)
	require.Equal(t, "hello world", got.Root.Name)
	require.Equal(t, "line one\nline two", got.Root.Note)
	require.Nil(t, got.Root.Missing)
	require.Len(t, got.Root.Child, 2)
	require.Equal(t, 2, got.Root.Child[1].A)

	s := string(out)
	require.Less(t, strings.Index(s, "size"), strings.Index(s, "name"))
	require.Less(t, strings.Index(s, "name"), strings.Index(s, "child"))
}

func TestWriteDiff(t *testing.T) {
	var buf bytes.Buffer
	differs, err := writeDiff(&buf, "r\n  a 1\nend\n", "r\n  a 1\nend\n", false)
	require.NoError(t, err)
	require.False(t, differs)
	require.Zero(t, buf.Len())

	differs, err = writeDiff(&buf, "r\n  a 1\nend\n", "r\n  a 2\nend\n", false)
	require.NoError(t, err)
	require.True(t, differs)
	require.Equal(t, " r\n-  a 1\n+  a 2\n end\n", buf.String())

	buf.Reset()
	_, err = writeDiff(&buf, "r\nend\n", "s\nend\n", true)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "\x1b[")
}

func TestMainConfig_LoadOpts(t *testing.T) {
	cfg := &MainConfig{MaxDepth: 1, Trailing: true}
	_, err := format([]byte("r\nend\nextra\n"), cfg.loadOpts(), nil)
	require.NoError(t, err)

	_, err = format([]byte("r\n  c\n  end\nend\n"), cfg.loadOpts(), nil)
	require.ErrorIs(t, err, sml.ErrTreeTooDeep)
}

func TestMainConfig_UseColor(t *testing.T) {
	var buf bytes.Buffer
	require.False(t, (&MainConfig{}).useColor(&buf))
	require.True(t, (&MainConfig{Color: true}).useColor(&buf))
	require.Nil(t, (&MainConfig{}).printOpts(&buf))
}

func TestFromYAML(t *testing.T) {
	input := `server:
  port: 8080
  ratio: 0.5
  tags: [a, "b c"]
  owner: null
  tls:
    cert: /etc/cert.pem
  route:
    - path: /
    - path: /api
`
	out, err := fromYAML([]byte(input))
	require.NoError(t, err)
	require.Equal(t, `server
  owner -
  port 8080
  ratio 0.5
  route
    path /
  end
  route
    path /api
  end
  tags a "b c"
  tls
    cert /etc/cert.pem
  end
end
`, string(out))

	// Converting back yields the same structure.
	back, err := toYAML(out, 2, nil)
	require.NoError(t, err)
	var a, b map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(input), &a))
	require.NoError(t, yaml.Unmarshal(back, &b))
	require.Equal(t, a, b)

	out, err = fromYAML([]byte("empty:\n"), sml.Indent(4))
	require.NoError(t, err)
	require.Equal(t, "empty\nend\n", string(out))

	_, err = fromYAML([]byte("a: 1\nb: 2\n"))
	require.EqualError(t, err, "expected a mapping with one key, got 2")

	_, err = fromYAML([]byte("a: [1, 2]\n"))
	require.EqualError(t, err, "a: expected a mapping, got []interface {}")

	_, err = fromYAML([]byte("end:\n  a: 1\n"))
	require.EqualError(t, err, `sml: element name "end" reads as the end of an element`)
}
