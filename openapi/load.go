package openapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses an OpenAPI document from disk. JSON and YAML are
// both accepted; the format is sniffed from the content, not the extension.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	doc, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: %s: %w", path, err)
	}
	return doc, nil
}

// LoadBytes parses an OpenAPI document from raw bytes. A multi-document YAML
// stream is scanned for the first document carrying components.schemas.
func LoadBytes(data []byte) (*Document, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
		return &doc, nil
	}
	return loadYAML(data)
}

func loadYAML(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var first *Document
	for {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
		jsonBytes, err := yamlToJSON(&node)
		if err != nil {
			return nil, err
		}
		var doc Document
		if err := json.Unmarshal(jsonBytes, &doc); err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
		if doc.Components != nil && doc.Components.Schemas.Len() > 0 {
			return &doc, nil
		}
		if first == nil {
			first = &doc
		}
	}
	if first == nil {
		return nil, errors.New("empty document stream")
	}
	return first, nil
}

// yamlToJSON rewrites a YAML node tree as compact JSON, preserving mapping
// key order. Going through JSON keeps a single set of unmarshalers for both
// input formats.
func yamlToJSON(n *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONNode(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSONNode(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeJSONNode(buf, n.Content[0])
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSONNode(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONNode(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.AliasNode:
		return writeJSONNode(buf, n.Alias)
	case yaml.ScalarNode:
		return writeJSONScalar(buf, n)
	default:
		return fmt.Errorf("parse YAML: unsupported node kind %d", n.Kind)
	}
}

func writeJSONScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Tag {
	case "!!null":
		buf.WriteString("null")
	case "!!bool", "!!int", "!!float":
		// YAML scalar text for these tags is already valid JSON except for
		// the odd spellings yaml allows; normalize through a decode.
		var v any
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("parse YAML scalar %q: %w", n.Value, err)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
	default:
		b, err := json.Marshal(n.Value)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}

// Sniff reports "json" or "yaml" for raw document bytes. Exposed for callers
// that want to report the detected format.
func Sniff(data []byte) string {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return "json"
	}
	return "yaml"
}
