package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/html"

	"github.com/ludo-technologies/domscan/domain"
)

// Parser wraps tree-sitter parser for HTML source
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
}

// NewParser creates a new HTML source parser
func NewParser() *Parser {
	parser := sitter.NewParser()
	lang := html.GetLanguage()
	parser.SetLanguage(lang)

	return &Parser{
		parser:   parser,
		language: lang,
	}
}

// ParseFile parses an HTML file into the element tree exactly as written
func (p *Parser) ParseFile(ctx context.Context, filename string, source []byte) (*domain.Document, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse file %s: %v", filename, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("no root node in parse tree for %s", filename)
	}

	builder := NewTreeBuilder(filename, source)
	return builder.Build(rootNode), nil
}

// Close closes the parser and frees resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ParseSourceTree parses source with a throwaway tree-sitter parser
func ParseSourceTree(ctx context.Context, name string, source []byte) (*domain.Document, error) {
	p := NewParser()
	defer p.Close()

	doc, err := p.ParseFile(ctx, name, source)
	if err != nil {
		return nil, domain.NewParseError(name, err)
	}
	return doc, nil
}

// ResolveMode turns auto into a concrete mode based on the file name
func ResolveMode(name string, mode domain.ParserMode) domain.ParserMode {
	if mode != "" && mode != domain.ParserModeAuto {
		return mode
	}
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return domain.ParserModeTree
	}
	return domain.ParserModeHTML
}

// ParseForFormat selects the HTML5, source-tree or JSON tree parser
func ParseForFormat(ctx context.Context, name string, data []byte, mode domain.ParserMode) (*domain.Document, domain.ParserMode, error) {
	resolved := ResolveMode(name, mode)

	var (
		doc *domain.Document
		err error
	)
	switch resolved {
	case domain.ParserModeHTML:
		doc, err = ParseHTML(name, data)
	case domain.ParserModeSource:
		doc, err = ParseSourceTree(ctx, name, data)
	case domain.ParserModeTree:
		doc, err = ParseTreeJSON(name, data)
	default:
		return nil, resolved, domain.NewInvalidInputError(fmt.Sprintf("unknown parser mode: %s", mode), nil)
	}
	return doc, resolved, err
}
