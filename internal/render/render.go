// Package render turns a normalized configuration document back into the
// engine-native file format.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/confsmith/confsmith/internal/document"
	"github.com/confsmith/confsmith/internal/schema"
)

// Render produces the engine-native representation of a document.
func Render(engine string, doc *document.Document) ([]byte, error) {
	sch, err := schema.Lookup(engine)
	if err != nil {
		return nil, err
	}

	switch sch.Engine {
	case "key-value-store":
		return Redis(doc), nil
	case "document-database":
		return Mongo(doc)
	default:
		return nil, fmt.Errorf("no renderer for engine %q", sch.Engine)
	}
}

// Redis renders the flat directive format: one directive per line in
// document order, arguments quoted when empty or containing whitespace.
func Redis(doc *document.Document) []byte {
	var b strings.Builder
	for _, entry := range doc.Entries {
		b.WriteString(entry.Path)
		for _, arg := range entry.Args {
			b.WriteByte(' ')
			b.WriteString(quoteArg(arg))
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func quoteArg(arg string) string {
	if arg == "" || strings.ContainsAny(arg, " \t\"") {
		return strconv.Quote(arg)
	}
	return arg
}

// Mongo rebuilds the nested YAML document from the dotted paths,
// preserving first-seen order of every section and key.
func Mongo(doc *document.Document) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for _, entry := range doc.Entries {
		parts := strings.Split(entry.Path, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			node = childMapping(node, part)
		}

		leaf := parts[len(parts)-1]
		var value *yaml.Node
		if len(entry.Args) == 1 {
			value = scalarNode(entry.Args[0])
		} else {
			value = &yaml.Node{Kind: yaml.SequenceNode}
			for _, arg := range entry.Args {
				value.Content = append(value.Content, scalarNode(arg))
			}
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: leaf},
			value,
		)
	}

	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("marshal YAML: %w", err)
	}
	return out, nil
}

// childMapping returns the mapping node for a key, creating it when the
// section has not been seen yet.
func childMapping(parent *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(parent.Content); i += 2 {
		if parent.Content[i].Value == key && parent.Content[i+1].Kind == yaml.MappingNode {
			return parent.Content[i+1]
		}
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	parent.Content = append(parent.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		child,
	)
	return child
}

// scalarNode types the token so booleans and numbers render unquoted.
func scalarNode(token string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Value: token}
	switch {
	case token == "true" || token == "false":
		node.Tag = "!!bool"
	case isInt(token):
		node.Tag = "!!int"
	case isFloat(token):
		node.Tag = "!!float"
	default:
		node.Tag = "!!str"
	}
	return node
}

func isInt(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isFloat(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
