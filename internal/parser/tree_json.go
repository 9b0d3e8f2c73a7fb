package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ludo-technologies/domscan/domain"
)

// ParseTreeJSON reads a nested tree fixture: either a single node object
// or an array of top-level nodes, each {"tag", "id", "class", "children"}.
func ParseTreeJSON(name string, data []byte) (*domain.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, domain.NewParseError(name, fmt.Errorf("empty tree"))
	}

	var nodes []*domain.TreeNode
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &nodes); err != nil {
			return nil, domain.NewParseError(name, err)
		}
	} else {
		var node domain.TreeNode
		if err := json.Unmarshal(trimmed, &node); err != nil {
			return nil, domain.NewParseError(name, err)
		}
		nodes = append(nodes, &node)
	}

	doc := &domain.Document{Source: name}
	for i, n := range nodes {
		if n == nil {
			continue
		}
		if err := validateTree(n); err != nil {
			return nil, domain.NewParseError(name, fmt.Errorf("node %d: %w", i, err))
		}
		doc.Elements = append(doc.Elements, n)
	}
	return doc, nil
}

func validateTree(n *domain.TreeNode) error {
	if n.Tag == "" {
		return fmt.Errorf("element without tag")
	}
	for _, child := range n.Nodes {
		if child == nil {
			continue
		}
		if err := validateTree(child); err != nil {
			return err
		}
	}
	return nil
}
