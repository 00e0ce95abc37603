package node

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// Serialize writes the document back out in its recorded source format.
//
// Every subtree untouched by mutation reproduces its original key order,
// scalar lexical form, comments, and unknown extension fields; the backing
// nodes parsed from the source carry that provenance and are emitted as-is.
// Subtrees built in memory by a mutation serialize in the emitter's default
// style.
func Serialize(d *Document) ([]byte, error) {
	switch d.format {
	case FormatJSON:
		return marshalJSON(d.doc)
	default:
		return marshalYAML(d.doc)
	}
}

// marshalYAML emits the node tree with 2-space indentation, the dominant
// convention in published OpenAPI documents.
func marshalYAML(yn *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yn); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// marshalJSON emits the node tree as indented JSON, preserving key order and
// scalar lexical forms. Comments cannot be represented in JSON and are
// dropped; a document loaded as JSON has none.
func marshalJSON(yn *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONNode(&buf, yn); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("node: indenting JSON output: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeJSONNode(buf *bytes.Buffer, yn *yaml.Node) error {
	switch yn.Kind {
	case yaml.DocumentNode:
		if len(yn.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeJSONNode(buf, yn.Content[0])

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(yn.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(yn.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSONNode(buf, yn.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range yn.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONNode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.AliasNode:
		if yn.Alias != nil {
			return writeJSONNode(buf, yn.Alias)
		}
		buf.WriteString("null")
		return nil

	default:
		return writeJSONScalar(buf, yn)
	}
}

// writeJSONScalar emits a scalar preserving its lexical form where JSON
// allows it: numbers are written verbatim so "1.50" stays "1.50" instead of
// becoming "1.5".
func writeJSONScalar(buf *bytes.Buffer, yn *yaml.Node) error {
	switch yn.Tag {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool":
		if yn.Value == "true" || yn.Value == "false" {
			buf.WriteString(yn.Value)
			return nil
		}
		// YAML bool spellings like "yes" normalize to JSON booleans.
		var b bool
		if err := yn.Decode(&b); err != nil {
			return err
		}
		data, err := json.Marshal(b)
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	case "!!int", "!!float":
		if json.Valid([]byte(yn.Value)) {
			buf.WriteString(yn.Value)
			return nil
		}
		// Non-JSON spellings (hex ints, .inf) fall back to decoded form.
		var v any
		if err := yn.Decode(&v); err != nil {
			return err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("node: marshaling scalar %q: %w", yn.Value, err)
		}
		buf.Write(data)
		return nil
	default:
		data, err := json.Marshal(yn.Value)
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	}
}
