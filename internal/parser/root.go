package parser

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/domscan/domain"
)

// ResolveRoot picks the analysis root. An empty selector means the default
// "body"; when the default is absent the first top-level element is used and
// a warning is returned. An explicit selector that matches nothing is a
// ROOT_NOT_FOUND error.
func ResolveRoot(doc *domain.Document, selector string) (domain.Element, []string, error) {
	if doc == nil || len(doc.Elements) == 0 {
		return nil, nil, domain.NewInvalidInputError("document contains no elements", nil)
	}

	selector = strings.TrimSpace(selector)
	explicit := selector != ""
	if !explicit {
		selector = domain.DefaultRootSelector
	}

	if _, ok := domain.ParseSelector(selector); !ok {
		return nil, nil, domain.NewInvalidInputError(fmt.Sprintf("unsupported root selector %q", selector), nil)
	}

	if el, ok := doc.Find(selector); ok {
		return el, nil, nil
	}
	if explicit {
		return nil, nil, domain.NewRootNotFoundError(selector)
	}

	first := doc.Elements[0]
	warning := fmt.Sprintf("%s: no <%s> element, analyzing <%s> instead",
		doc.Source, domain.DefaultRootSelector, domain.Identifier(first))
	return first, []string{warning}, nil
}
