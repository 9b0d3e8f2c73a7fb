// Package testutil provides helper functions for testing domscan components
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/domscan/domain"
)

// BalancedTree builds a complete tree of the given depth where every
// non-leaf node has fanOut children. depth 0 is a single root.
func BalancedTree(depth, fanOut int) *domain.TreeNode {
	root := domain.NewTreeNode("div")
	if depth == 0 {
		return root
	}
	for i := 0; i < fanOut; i++ {
		root.Append(BalancedTree(depth-1, fanOut))
	}
	return root
}

// Chain builds a linear chain of n nested single-child nodes.
// The deepest node sits at depth n-1.
func Chain(n int) *domain.TreeNode {
	if n <= 0 {
		return nil
	}
	root := domain.NewTreeNode("div")
	current := root
	for i := 1; i < n; i++ {
		child := domain.NewTreeNode("div")
		current.Append(child)
		current = child
	}
	return root
}

// Star builds a root with k leaf children
func Star(k int) *domain.TreeNode {
	root := &domain.TreeNode{Tag: "ul", Id: "root"}
	for i := 0; i < k; i++ {
		root.Append(&domain.TreeNode{Tag: "li", Class: fmt.Sprintf("item-%d", i)})
	}
	return root
}

// Document wraps the given body in html/head/body elements
func Document(body *domain.TreeNode) *domain.Document {
	return &domain.Document{
		Source: "fixture",
		Elements: []domain.Element{
			domain.NewTreeNode("html", domain.NewTreeNode("head"), body),
		},
	}
}

// WriteFile writes content under dir and returns the full path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file %s: %v", name, err)
	}
	return path
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertEqual fails the test if expected != actual
func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}
