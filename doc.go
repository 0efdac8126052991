/*
Package sml loads and prints SML, a line-oriented structured text format.

An SML document is a tree of elements. Each element has a name, a list of
attributes and a list of child elements, and is closed by an `end` line.
An attribute line holds a name followed by one or more values:

	# server settings
	server
	  host "example.org"
	  ports 80 443
	  tls true
	  limits
	    rate 2.5
	    burst -
	  end
	end

Indentation carries no meaning. Values are integers, floats (always with a
dot), true, false, the null value `-`, and strings. A string that contains
spaces, starts with a quote, or would otherwise read as another kind of
value is quoted; inside quotes `""` stands for a quote and `"/"` for a
newline. `#` starts a comment outside quoted strings.

The package offers two workflows.

1. Working with the tree

Load, LoadFile and LoadReader return an *ast.Document. Its root element
and everything below it are read-only handles into storage owned by the
document, which is freed in one step by Release:

	doc, err := sml.LoadFile("server.sml")
	if err != nil {
		// errors.Is(err, sml.ErrUnbalancedEnd), ...
	}
	defer doc.Release()

	host, _ := doc.Root().Attribute("host")
	fmt.Println(host.Value(0).Str())

Print and PrintTo render a document in canonical form, which loads back
into an equal tree.

2. Decoding into Go values

Unmarshal and Decoder map the root element onto a struct, a map, or an
empty interface:

	type Server struct {
		Host   string `sml:"host"`
		Ports  []int  `sml:"ports"`
		TLS    bool   `sml:"tls"`
		Limits struct {
			Rate  float64 `sml:"rate"`
			Burst *int    `sml:"burst"`
		} `sml:"limits"`
	}

	var s Server
	if err := sml.Unmarshal(data, &s); err != nil {
		// handle error
	}

Marshal and Encoder go the other way, writing structs and maps through the
same printer:

	out, err := sml.Marshal(s, sml.RootName("server"))

Limits such as nesting depth and tokens per line are set with functional
options such as MaxDepth and MaxTokensPerLine.
*/
package sml
