package parser

import (
	"context"
	"testing"

	"github.com/ludo-technologies/domscan/domain"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Sample</title>
  <style>body { margin: 0 }</style>
</head>
<body>
  <!-- navigation -->
  <script>var tpl = "<div>";</script>
  <ul id="menu" class="list main">
    <li>One</li>
    <li>Two</li>
  </ul>
</body>
</html>`

func countAll(doc *domain.Document) int {
	total := 0
	var walk func(el domain.Element)
	walk = func(el domain.Element) {
		total++
		for _, c := range el.Children() {
			walk(c)
		}
	}
	for _, el := range doc.Elements {
		walk(el)
	}
	return total
}

func TestParseHTML_ImpliedElements(t *testing.T) {
	doc, err := ParseHTML("fragment.html", []byte(`<div id="app"><p>hi</p></div>`))
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}

	if len(doc.Elements) != 1 || doc.Elements[0].TagName() != "html" {
		t.Fatalf("expected a single <html> top-level element, got %d", len(doc.Elements))
	}
	// html, head, body, div, p
	if got := countAll(doc); got != 5 {
		t.Errorf("expected 5 elements, got %d", got)
	}

	app, ok := doc.Find("#app")
	if !ok {
		t.Fatal("expected #app to be found")
	}
	if app.TagName() != "div" || len(app.Children()) != 1 {
		t.Errorf("unexpected #app element: %s with %d children", app.TagName(), len(app.Children()))
	}
}

func TestParseHTML_FullPage(t *testing.T) {
	doc, err := ParseHTML("sample.html", []byte(samplePage))
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}

	// html, head, title, style, body, script, ul, li, li
	if got := countAll(doc); got != 9 {
		t.Errorf("expected 9 elements, got %d", got)
	}

	menu, ok := doc.Find("ul.list.main")
	if !ok {
		t.Fatal("expected ul.list.main to be found")
	}
	if menu.ID() != "menu" || menu.ClassName() != "list main" {
		t.Errorf("unexpected attributes: id=%q class=%q", menu.ID(), menu.ClassName())
	}
}

func TestParseSourceTree_AsWritten(t *testing.T) {
	doc, err := ParseSourceTree(context.Background(), "fragment.html", []byte(`<div id="app"><p>hi</p><p>there</p></div>`))
	if err != nil {
		t.Fatalf("ParseSourceTree failed: %v", err)
	}

	if len(doc.Elements) != 1 {
		t.Fatalf("expected 1 top-level element, got %d", len(doc.Elements))
	}
	root := doc.Elements[0]
	if root.TagName() != "div" || root.ID() != "app" {
		t.Errorf("expected div#app, got %s", domain.Identifier(root))
	}
	if got := countAll(doc); got != 3 {
		t.Errorf("expected 3 elements, got %d", got)
	}
}

func TestParseSourceTree_FullPage(t *testing.T) {
	doc, err := ParseSourceTree(context.Background(), "sample.html", []byte(samplePage))
	if err != nil {
		t.Fatalf("ParseSourceTree failed: %v", err)
	}

	if got := countAll(doc); got != 9 {
		t.Errorf("expected 9 elements, got %d", got)
	}

	menu, ok := doc.Find("#menu")
	if !ok {
		t.Fatal("expected #menu to be found")
	}
	if menu.ClassName() != "list main" {
		t.Errorf("expected class 'list main', got %q", menu.ClassName())
	}
	if len(menu.Children()) != 2 {
		t.Errorf("expected 2 list items, got %d", len(menu.Children()))
	}
}

func TestParseTreeJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTop   int
		wantCount int
		wantErr   bool
	}{
		{
			name:      "single node",
			input:     `{"tag":"body","children":[{"tag":"div","id":"a"},{"tag":"div","class":"b c"}]}`,
			wantTop:   1,
			wantCount: 3,
		},
		{
			name:      "array of nodes",
			input:     `[{"tag":"head"},{"tag":"body","children":[{"tag":"p"}]}]`,
			wantTop:   2,
			wantCount: 3,
		},
		{name: "empty", input: "  ", wantErr: true},
		{name: "malformed", input: `{"tag":`, wantErr: true},
		{name: "missing tag", input: `{"children":[{"tag":"p"}]}`, wantErr: true},
		{name: "nested missing tag", input: `{"tag":"body","children":[{"id":"x"}]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseTreeJSON("tree.json", []byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !domain.HasCode(err, domain.ErrCodeParseError) {
					t.Errorf("expected PARSE_ERROR, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(doc.Elements) != tt.wantTop {
				t.Errorf("expected %d top-level elements, got %d", tt.wantTop, len(doc.Elements))
			}
			if got := countAll(doc); got != tt.wantCount {
				t.Errorf("expected %d elements, got %d", tt.wantCount, got)
			}
		})
	}
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name string
		mode domain.ParserMode
		want domain.ParserMode
	}{
		{"page.html", domain.ParserModeAuto, domain.ParserModeHTML},
		{"page.htm", "", domain.ParserModeHTML},
		{"tree.json", domain.ParserModeAuto, domain.ParserModeTree},
		{"TREE.JSON", "", domain.ParserModeTree},
		{"tree.json", domain.ParserModeSource, domain.ParserModeSource},
		{"https://example.com/", domain.ParserModeAuto, domain.ParserModeHTML},
	}

	for _, tt := range tests {
		if got := ResolveMode(tt.name, tt.mode); got != tt.want {
			t.Errorf("ResolveMode(%q, %q) = %q, want %q", tt.name, tt.mode, got, tt.want)
		}
	}
}

func TestParseForFormat_UnknownMode(t *testing.T) {
	_, _, err := ParseForFormat(context.Background(), "page.html", []byte("<p>"), domain.ParserMode("xml"))
	if !domain.IsInvalidInput(err) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestResolveRoot(t *testing.T) {
	page, err := ParseHTML("page.html", []byte(`<body><main id="app"><p>x</p></main></body>`))
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}

	t.Run("default body", func(t *testing.T) {
		root, warnings, err := ResolveRoot(page, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if root.TagName() != "body" || len(warnings) != 0 {
			t.Errorf("expected body without warnings, got %s %v", root.TagName(), warnings)
		}
	})

	t.Run("explicit selector", func(t *testing.T) {
		root, _, err := ResolveRoot(page, "main#app")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if root.ID() != "app" {
			t.Errorf("expected #app, got %s", domain.Identifier(root))
		}
	})

	t.Run("no match", func(t *testing.T) {
		_, _, err := ResolveRoot(page, "#missing")
		if !domain.HasCode(err, domain.ErrCodeRootNotFound) {
			t.Errorf("expected ROOT_NOT_FOUND, got %v", err)
		}
	})

	t.Run("unsupported selector", func(t *testing.T) {
		_, _, err := ResolveRoot(page, "main > p")
		if !domain.IsInvalidInput(err) {
			t.Errorf("expected INVALID_INPUT, got %v", err)
		}
	})

	t.Run("fallback without body", func(t *testing.T) {
		fragment, err := ParseTreeJSON("tree.json", []byte(`{"tag":"section","children":[{"tag":"p"}]}`))
		if err != nil {
			t.Fatalf("ParseTreeJSON failed: %v", err)
		}
		root, warnings, err := ResolveRoot(fragment, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if root.TagName() != "section" {
			t.Errorf("expected section fallback, got %s", root.TagName())
		}
		if len(warnings) != 1 {
			t.Errorf("expected 1 warning, got %v", warnings)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		_, _, err := ResolveRoot(&domain.Document{}, "")
		if !domain.IsInvalidInput(err) {
			t.Errorf("expected INVALID_INPUT, got %v", err)
		}
	})
}
