package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/KimNorgaard/go-sml"
	"github.com/KimNorgaard/go-sml/ast"
)

func yamlCmd(cfg *YAMLConfig, cc *cli.Context, args []string) error {
	args, err := cfg.YAML.Parse(cc, args)
	if err != nil {
		cfg.YAML.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Indent <= 0 {
		return fmt.Errorf("%w: -indent must be positive", cli.ErrUsage)
	}
	ins, err := readInputs(cc, args)
	if err != nil {
		return err
	}
	for i, in := range ins {
		out, err := toYAML(in.data, cfg.Indent, cfg.loadOpts())
		if err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
		if i > 0 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if _, err := cc.Out.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// toYAML converts a document to a YAML mapping with the root element as its
// only key.
func toYAML(data []byte, indent int, opts []sml.Option) ([]byte, error) {
	doc, err := sml.Load(data, opts...)
	if err != nil {
		return nil, err
	}
	defer doc.Release()

	root := doc.Root()
	v := yaml.MapSlice{{Key: root.Name(), Value: elementMapSlice(root)}}
	return yaml.MarshalWithOptions(v, yaml.Indent(indent), yaml.UseLiteralStyleIfMultiline(true))
}

// children collects entries sharing a name, so they are kept apart from
// multi-value attributes.
type children []any

// elementMapSlice keeps attribute and child order. Repeated names are
// merged into a sequence at the position of their first occurrence.
func elementMapSlice(e ast.Element) yaml.MapSlice {
	out := make(yaml.MapSlice, 0, e.NumAttributes()+e.NumChildren())
	index := make(map[string]int)
	add := func(key string, v any) {
		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, yaml.MapItem{Key: key, Value: v})
			return
		}
		if prev, ok := out[i].Value.(children); ok {
			out[i].Value = append(prev, v)
			return
		}
		out[i].Value = children{out[i].Value, v}
	}

	for _, a := range e.Attributes() {
		var v any
		if a.NumValues() == 1 {
			v = a.Value(0).Interface()
		} else {
			vals := a.Values()
			list := make([]any, len(vals))
			for i, val := range vals {
				list[i] = val.Interface()
			}
			v = list
		}
		add(a.Name(), v)
	}
	for _, c := range e.Children() {
		add(c.Name(), elementMapSlice(c))
	}
	return out
}

func fromYAMLCmd(cfg *FromYAMLConfig, cc *cli.Context, args []string) error {
	args, err := cfg.FromYAML.Parse(cc, args)
	if err != nil {
		cfg.FromYAML.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Indent < 0 {
		return fmt.Errorf("%w: -indent must not be negative", cli.ErrUsage)
	}
	ins, err := readInputs(cc, args)
	if err != nil {
		return err
	}
	for _, in := range ins {
		out, err := fromYAML(in.data, sml.Indent(cfg.Indent))
		if err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
		if _, err := cc.Out.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// fromYAML converts a YAML mapping with one key into a document whose root
// element is named by that key. Mapping entries are written in key order.
func fromYAML(data []byte, opts ...sml.Option) ([]byte, error) {
	var top map[string]any
	if err := yaml.Unmarshal(data, &top); err != nil {
		return nil, err
	}
	if len(top) != 1 {
		return nil, fmt.Errorf("expected a mapping with one key, got %d", len(top))
	}
	for name, v := range top {
		body, ok := v.(map[string]any)
		if !ok {
			if v != nil {
				return nil, fmt.Errorf("%s: expected a mapping, got %T", name, v)
			}
			body = map[string]any{}
		}
		return sml.Marshal(body, append(opts, sml.RootName(name))...)
	}
	panic("unreachable")
}
