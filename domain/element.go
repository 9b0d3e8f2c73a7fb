package domain

import (
	"strings"
)

// Element is a read-only view of a single element in a document tree.
// Children must be returned in document order.
type Element interface {
	TagName() string
	ID() string
	ClassName() string
	Children() []Element
}

// TreeNode is a plain in-memory Element. It doubles as the JSON tree
// fixture format accepted by the tree parser.
type TreeNode struct {
	Tag   string      `json:"tag" yaml:"tag"`
	Id    string      `json:"id,omitempty" yaml:"id,omitempty"`
	Class string      `json:"class,omitempty" yaml:"class,omitempty"`
	Nodes []*TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewTreeNode creates a tree node with the given tag and children
func NewTreeNode(tag string, children ...*TreeNode) *TreeNode {
	return &TreeNode{Tag: tag, Nodes: children}
}

// TagName returns the node's tag
func (n *TreeNode) TagName() string { return n.Tag }

// ID returns the node's id attribute
func (n *TreeNode) ID() string { return n.Id }

// ClassName returns the node's class attribute
func (n *TreeNode) ClassName() string { return n.Class }

// Children returns the node's children in order
func (n *TreeNode) Children() []Element {
	children := make([]Element, 0, len(n.Nodes))
	for _, c := range n.Nodes {
		if c != nil {
			children = append(children, c)
		}
	}
	return children
}

// Append adds children to the node and returns it
func (n *TreeNode) Append(children ...*TreeNode) *TreeNode {
	n.Nodes = append(n.Nodes, children...)
	return n
}

// Document is a parsed document: the top-level elements in source order
// (normally a single <html> element) plus where it came from.
type Document struct {
	Source   string
	Elements []Element
}

// Find returns the first element, in depth-first document order, matching
// the selector. Supported selectors: "tag", "#id", ".class" and compounds
// such as "div#app.main".
func (d *Document) Find(selector string) (Element, bool) {
	sel, ok := ParseSelector(selector)
	if !ok {
		return nil, false
	}
	for _, top := range d.Elements {
		if found := findFirst(top, sel); found != nil {
			return found, true
		}
	}
	return nil, false
}

func findFirst(el Element, sel Selector) Element {
	if sel.Matches(el) {
		return el
	}
	for _, child := range el.Children() {
		if found := findFirst(child, sel); found != nil {
			return found
		}
	}
	return nil
}

// Selector is a compound simple selector
type Selector struct {
	Tag     string
	ID      string
	Classes []string
}

// ParseSelector parses a compound simple selector such as "div#app.main"
func ParseSelector(s string) (Selector, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " >+~[]:*,") {
		return Selector{}, false
	}

	var sel Selector
	var kind byte
	start := 0
	flush := func(end int) bool {
		part := s[start:end]
		switch kind {
		case 0:
			sel.Tag = strings.ToLower(part)
		case '#':
			if part == "" || sel.ID != "" {
				return false
			}
			sel.ID = part
		case '.':
			if part == "" {
				return false
			}
			sel.Classes = append(sel.Classes, part)
		}
		return true
	}

	for i := 0; i < len(s); i++ {
		if s[i] == '#' || s[i] == '.' {
			if !flush(i) {
				return Selector{}, false
			}
			kind = s[i]
			start = i + 1
		}
	}
	if !flush(len(s)) {
		return Selector{}, false
	}
	return sel, true
}

// Matches reports whether the element satisfies every part of the selector
func (s Selector) Matches(el Element) bool {
	if s.Tag != "" && !strings.EqualFold(el.TagName(), s.Tag) {
		return false
	}
	if s.ID != "" && el.ID() != s.ID {
		return false
	}
	if len(s.Classes) > 0 {
		have := strings.Fields(el.ClassName())
		for _, want := range s.Classes {
			found := false
			for _, c := range have {
				if c == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// Identifier renders an element as tag#id.class1.class2
func Identifier(el Element) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(el.TagName()))
	if id := el.ID(); id != "" {
		sb.WriteByte('#')
		sb.WriteString(id)
	}
	for _, c := range strings.Fields(el.ClassName()) {
		sb.WriteByte('.')
		sb.WriteString(c)
	}
	return sb.String()
}
