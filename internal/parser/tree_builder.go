package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/domscan/domain"
)

// TreeBuilder builds an element tree from a tree-sitter HTML CST
type TreeBuilder struct {
	filename string
	source   []byte
}

// NewTreeBuilder creates a new tree builder
func NewTreeBuilder(filename string, source []byte) *TreeBuilder {
	return &TreeBuilder{
		filename: filename,
		source:   source,
	}
}

// Build converts the CST document node into a Document. Text, comments and
// doctypes are dropped; script and style elements are kept.
func (b *TreeBuilder) Build(tsNode *sitter.Node) *domain.Document {
	doc := &domain.Document{Source: b.filename}
	if tsNode == nil {
		return doc
	}
	for _, el := range b.buildChildren(tsNode) {
		doc.Elements = append(doc.Elements, el)
	}
	return doc
}

func (b *TreeBuilder) buildChildren(tsNode *sitter.Node) []*domain.TreeNode {
	var out []*domain.TreeNode
	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "element", "script_element", "style_element":
			out = append(out, b.buildElement(child))
		case "ERROR":
			// recover elements from partially broken markup
			out = append(out, b.buildChildren(child)...)
		}
	}
	return out
}

func (b *TreeBuilder) buildElement(tsNode *sitter.Node) *domain.TreeNode {
	node := &domain.TreeNode{}

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "start_tag", "self_closing_tag":
			b.fillTag(node, child)
		}
	}
	node.Nodes = b.buildChildren(tsNode)
	return node
}

// fillTag reads the tag name and the id/class attributes
func (b *TreeBuilder) fillTag(node *domain.TreeNode, tag *sitter.Node) {
	for i := 0; i < int(tag.NamedChildCount()); i++ {
		child := tag.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "tag_name":
			node.Tag = strings.ToLower(child.Content(b.source))
		case "attribute":
			name, value := b.attribute(child)
			switch strings.ToLower(name) {
			case "id":
				node.Id = value
			case "class":
				node.Class = value
			}
		}
	}
}

func (b *TreeBuilder) attribute(attr *sitter.Node) (string, string) {
	var name, value string
	for i := 0; i < int(attr.NamedChildCount()); i++ {
		child := attr.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "attribute_name":
			name = child.Content(b.source)
		case "attribute_value":
			value = child.Content(b.source)
		case "quoted_attribute_value":
			value = strings.Trim(child.Content(b.source), `"'`)
		}
	}
	return name, value
}
