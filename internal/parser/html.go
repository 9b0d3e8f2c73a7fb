package parser

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/ludo-technologies/domscan/domain"
)

// ParseHTML builds the element tree an HTML5 browser would build, implied
// html, head and body elements included.
func ParseHTML(name string, data []byte) (*domain.Document, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewParseError(name, err)
	}

	doc := &domain.Document{Source: name}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			doc.Elements = append(doc.Elements, convertNode(c))
		}
	}
	return doc, nil
}

func convertNode(n *html.Node) *domain.TreeNode {
	node := &domain.TreeNode{Tag: strings.ToLower(n.Data)}
	for _, attr := range n.Attr {
		if attr.Namespace != "" {
			continue
		}
		switch attr.Key {
		case "id":
			node.Id = attr.Val
		case "class":
			node.Class = attr.Val
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			node.Nodes = append(node.Nodes, convertNode(c))
		}
	}
	return node
}
