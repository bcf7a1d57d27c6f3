// Package statedoc loads store snapshots from JSON or YAML documents.
//
// The top level of a document must be an object; each key becomes one
// store, in document order. JSON is parsed through the YAML decoder, which
// accepts it as flow syntax and keeps key order.
package statedoc

import (
	"bytes"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/yutounun/storetracker/internal/core/validate"
	"github.com/yutounun/storetracker/internal/tracker"
)

// Parse decodes a state document. An empty document yields no stores.
func Parse(data []byte) (tracker.Stores, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse state document: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse state document: top level must be an object, got %s", kindName(root.Kind))
	}

	stores := make(tracker.Stores, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]

		if err := validate.StoreName(keyNode.Value); err != nil {
			return nil, fmt.Errorf("store at line %d: %w", keyNode.Line, err)
		}

		var value any
		if err := valueNode.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode store %q (line %d): %w", keyNode.Value, valueNode.Line, err)
		}
		stores = stores.Add(keyNode.Value, value)
	}

	return stores, nil
}

// Load reads and parses the document at path.
func Load(path string) (tracker.Stores, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	return Parse(data)
}

// Filter keeps the stores whose names match any of the doublestar
// patterns. No patterns keeps everything.
func Filter(stores tracker.Stores, patterns []string) (tracker.Stores, error) {
	if len(patterns) == 0 {
		return stores, nil
	}

	for _, p := range patterns {
		if err := validate.GlobPattern(p); err != nil {
			return nil, err
		}
	}

	var out tracker.Stores
	for _, s := range stores {
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, s.Name); ok {
				out = out.Add(s.Name, s.Value)
				break
			}
		}
	}
	return out, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "array"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
