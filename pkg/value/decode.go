package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ParseJSON decodes a single JSON document into a Value, preserving object
// member order. The standard library's map-based decoding would lose that
// order, so the tree is assembled from the decoder's token stream instead.
// Number literals are kept verbatim via UseNumber.
func ParseJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("invalid JSON: trailing data after document")
	}
	return v, nil
}

// DecodeJSON decodes one JSON document from dec's token stream. The decoder
// must have been created by the caller (with UseNumber set when literal
// fidelity matters); this allows NDJSON-style streams to pull several
// documents from one reader.
func DecodeJSON(dec *json.Decoder) (*Value, error) {
	return decodeJSONValue(dec)
}

func decodeJSONValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return NewNull(), nil
	case bool:
		return NewBool(t), nil
	case json.Number:
		return NewNumber(t.String()), nil
	case string:
		return NewString(t), nil
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case float64:
		// Only reachable when the caller's decoder lacks UseNumber.
		return NewNumber(strconv.FormatFloat(t, 'g', -1, 64)), nil
	default:
		return nil, fmt.Errorf("unexpected token %v (%T)", tok, tok)
	}
}

func decodeJSONObject(dec *json.Decoder) (*Value, error) {
	var fields []Field
	seen := make(map[string]struct{})
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return NewObject(fields...), nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, want string", tok)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate object key %q", key)
		}
		seen[key] = struct{}{}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Key: key, Value: val})
	}
}

func decodeJSONArray(dec *json.Decoder) (*Value, error) {
	var elems []*Value
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return NewArray(elems...), nil
		}
		val, err := decodeJSONToken(dec, tok)
		if err != nil {
			return nil, err
		}
		elems = append(elems, val)
	}
}

// ParseYAML decodes a single YAML document into a Value. yaml.v3's node
// representation keeps mapping order, so the conversion walks the node tree
// rather than unmarshalling into maps.
func ParseYAML(data []byte) (*Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return FromYAMLNode(&node)
}

// FromYAMLNode converts a decoded yaml.Node into a Value.
func FromYAMLNode(node *yaml.Node) (*Value, error) {
	if node == nil {
		return NewNull(), nil
	}
	switch node.Kind {
	case 0:
		// Zero node: empty input decodes to this.
		return NewNull(), nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return NewNull(), nil
		}
		return FromYAMLNode(node.Content[0])
	case yaml.AliasNode:
		return FromYAMLNode(node.Alias)
	case yaml.ScalarNode:
		return yamlScalar(node)
	case yaml.SequenceNode:
		elems := make([]*Value, 0, len(node.Content))
		for _, c := range node.Content {
			v, err := FromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return NewArray(elems...), nil
	case yaml.MappingNode:
		fields := make([]Field, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: non-scalar mapping key", keyNode.Line)
			}
			v, err := FromYAMLNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{Key: keyNode.Value, Value: v})
		}
		return NewObject(fields...), nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}

func yamlScalar(node *yaml.Node) (*Value, error) {
	switch node.Tag {
	case "!!null", "":
		if node.Tag == "" && node.Value != "" {
			return NewString(node.Value), nil
		}
		return NewNull(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: bad bool %q: %w", node.Line, node.Value, err)
		}
		return NewBool(b), nil
	case "!!int", "!!float":
		return NewNumber(node.Value), nil
	case "!!str", "!!timestamp":
		return NewString(node.Value), nil
	default:
		// Unknown custom tag: keep the raw scalar text.
		return NewString(node.Value), nil
	}
}

// FromGo converts a generic Go value (the output of decoders that do not
// preserve order, e.g. go-toml) into a Value. Map keys are sorted so the
// result is deterministic.
func FromGo(v any) (*Value, error) {
	switch t := v.(type) {
	case nil:
		return NewNull(), nil
	case bool:
		return NewBool(t), nil
	case string:
		return NewString(t), nil
	case json.Number:
		return NewNumber(t.String()), nil
	case int:
		return NewNumber(strconv.Itoa(t)), nil
	case int64:
		return NewNumber(strconv.FormatInt(t, 10)), nil
	case uint64:
		return NewNumber(strconv.FormatUint(t, 10)), nil
	case float64:
		return NewNumber(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case time.Time:
		return NewString(t.Format(time.RFC3339)), nil
	case []any:
		elems := make([]*Value, 0, len(t))
		for i, e := range t {
			ev, err := FromGo(e)
			if err != nil {
				return nil, fmt.Errorf("element [%d]: %w", i, err)
			}
			elems = append(elems, ev)
		}
		return NewArray(elems...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, 0, len(keys))
		for _, k := range keys {
			fv, err := FromGo(t[k])
			if err != nil {
				return nil, fmt.Errorf("member %q: %w", k, err)
			}
			fields = append(fields, Field{Key: k, Value: fv})
		}
		return NewObject(fields...), nil
	default:
		return nil, fmt.Errorf("cannot convert %T into a document value", v)
	}
}
