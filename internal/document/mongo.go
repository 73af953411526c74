package document

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseMongo parses the document database's YAML format and flattens the
// nested mappings into dotted paths, preserving source order and line
// numbers. Duplicate keys are kept as separate entries so the validator
// can report them instead of silently taking the last one.
func ParseMongo(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	doc := &Document{}
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top-level YAML node must be a mapping, got %s", nodeKind(top))
	}

	if err := flatten(doc, "", top); err != nil {
		return nil, err
	}
	return doc, nil
}

func flatten(doc *Document, prefix string, node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		path := keyNode.Value
		if prefix != "" {
			path = prefix + "." + path
		}

		switch valNode.Kind {
		case yaml.MappingNode:
			if err := flatten(doc, path, valNode); err != nil {
				return err
			}
		case yaml.ScalarNode:
			doc.Append(path, keyNode.Line, valNode.Value)
		case yaml.SequenceNode:
			args := make([]string, 0, len(valNode.Content))
			for _, item := range valNode.Content {
				if item.Kind != yaml.ScalarNode {
					return fmt.Errorf("line %d: %s: nested sequences are not supported", item.Line, path)
				}
				args = append(args, item.Value)
			}
			doc.Append(path, keyNode.Line, args...)
		default:
			return fmt.Errorf("line %d: %s: unsupported YAML node %s", valNode.Line, path, nodeKind(valNode))
		}
	}
	return nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}

// Parse dispatches to the format parser for the engine identifier.
func Parse(engine string, data []byte) (*Document, error) {
	switch engine {
	case "key-value-store", "redis", "kv":
		return ParseRedis(data)
	case "document-database", "mongodb", "mongod":
		return ParseMongo(data)
	default:
		return nil, fmt.Errorf("no parser for engine %q", engine)
	}
}
