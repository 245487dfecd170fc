package value

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalJSON renders the value as compact JSON with object members in
// source order.
func (v *Value) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

// EncodeJSON renders the value as indented JSON. Going through the compact
// form keeps member order; json.Indent only reformats whitespace.
func EncodeJSON(v *Value, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(v.String()), "", indent); err != nil {
		return nil, fmt.Errorf("re-indent: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler by emitting an explicit node tree,
// which is the only way yaml.v3 will keep object member order on output.
func (v *Value) MarshalYAML() (interface{}, error) {
	return v.yamlNode(), nil
}

// EncodeYAML renders the value as a YAML document.
func EncodeYAML(v *Value) ([]byte, error) {
	return yaml.Marshal(v.yamlNode())
}

func (v *Value) yamlNode() *yaml.Node {
	if v == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	switch v.kind {
	case Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case Bool:
		val := "false"
		if v.boolV {
			val = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: val}
	case Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v.NumberLiteral()}
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.strV}
	case Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.elems {
			n.Content = append(n.Content, e.yamlNode())
		}
		return n
	case Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for i := range v.fields {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.fields[i].Key},
				v.fields[i].Value.yamlNode(),
			)
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
