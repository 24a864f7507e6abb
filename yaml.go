package docfmt

import (
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, v Value) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlNode(v)); err != nil {
		return err
	}
	return enc.Close()
}

// yamlNode builds an explicit node tree so mapping key order survives
// encoding; yaml.v3 sorts plain Go maps.
func yamlNode(v Value) *yaml.Node {
	switch t := v.(type) {
	case nil, Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(t))}
	case Number:
		f := float64(t)
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(f), 10)}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatNumber(f)}
	case Text:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(t)}
	case Sequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, el := range t {
			n.Content = append(n.Content, yamlNode(el))
		}
		return n
	case Mapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, p := range t {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key},
				yamlNode(p.Value))
		}
		return n
	}
	return nil
}
