package analyzer

import (
	"reflect"
	"strings"

	"github.com/ludo-technologies/domscan/domain"
)

// pathSeparator joins identifiers in an element path
const pathSeparator = " > "

// Input identifies the tree to measure
type Input struct {
	// Root is where depth, fan-out and the locators start. Required.
	Root domain.Element

	// Document is consulted for the total node count when Scope is
	// domain.ScopeDocument.
	Document *domain.Document

	// Scope selects what the total node count covers. Empty means
	// domain.ScopeSubtree.
	Scope domain.CountScope
}

// Analyze measures the tree under in.Root and classifies every metric.
// The tree is only read. A nil root is an INVALID_INPUT error.
func Analyze(in Input) (*domain.Report, error) {
	if isNilElement(in.Root) {
		return nil, domain.NewInvalidInputError("analysis root is nil", nil)
	}

	scope := in.Scope
	if scope == "" {
		scope = domain.ScopeSubtree
	}
	switch scope {
	case domain.ScopeSubtree:
	case domain.ScopeDocument:
		if in.Document == nil {
			return nil, domain.NewInvalidInputError("document scope requires a document", nil)
		}
	default:
		return nil, domain.NewInvalidInputError("unknown count scope: "+string(scope), nil)
	}

	w := newTreeWalker()
	w.visit(in.Root, 0)

	report := &domain.Report{
		TotalNodeCount:    w.count,
		MaxDepth:          w.maxDepth,
		LargestChildCount: w.largestChildCount,
		LargestParent: domain.LargestParent{
			ElementLocation: w.largestParent,
			ChildCount:      w.largestChildCount,
		},
		DeepestElement: domain.DeepestElement{
			ElementLocation: w.deepest,
			Depth:           w.maxDepth,
		},
		Scope: scope,
	}
	if scope == domain.ScopeDocument {
		report.TotalNodeCount = CountElements(in.Document)
	}

	report.StatusByMetric = ClassifyReport(report)
	report.OverallStatus = OverallStatusOf(report.StatusByMetric)
	report.Recommendations = Recommend(report.StatusByMetric)

	return report, nil
}

// CountElements counts every element of the document
func CountElements(doc *domain.Document) int {
	if doc == nil {
		return 0
	}
	total := 0
	for _, top := range doc.Elements {
		total += CountSubtree(top)
	}
	return total
}

// CountSubtree counts el and all of its descendants
func CountSubtree(el domain.Element) int {
	if isNilElement(el) {
		return 0
	}
	total := 1
	for _, child := range el.Children() {
		total += CountSubtree(child)
	}
	return total
}

// treeWalker computes all subtree-local metrics in a single depth-first,
// pre-order pass. Ties keep the first element found (strict >).
type treeWalker struct {
	count             int
	maxDepth          int
	largestChildCount int
	deepest           domain.ElementLocation
	largestParent     domain.ElementLocation
	path              []string
}

func newTreeWalker() *treeWalker {
	return &treeWalker{
		maxDepth:          -1,
		largestChildCount: -1,
	}
}

func (w *treeWalker) visit(el domain.Element, depth int) {
	w.count++

	w.path = append(w.path, domain.Identifier(el))
	defer func() { w.path = w.path[:len(w.path)-1] }()

	children := el.Children()

	if depth > w.maxDepth {
		w.maxDepth = depth
		w.deepest = w.locate(el)
	}
	if len(children) > w.largestChildCount {
		w.largestChildCount = len(children)
		w.largestParent = w.locate(el)
	}

	for _, child := range children {
		if isNilElement(child) {
			continue
		}
		w.visit(child, depth+1)
	}
}

func (w *treeWalker) locate(el domain.Element) domain.ElementLocation {
	return domain.ElementLocation{
		Identifier: w.path[len(w.path)-1],
		Tag:        strings.ToLower(el.TagName()),
		ID:         el.ID(),
		Class:      el.ClassName(),
		Path:       strings.Join(w.path, pathSeparator),
	}
}

// isNilElement also catches typed nil pointers stored in the interface
func isNilElement(el domain.Element) bool {
	if el == nil {
		return true
	}
	v := reflect.ValueOf(el)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
