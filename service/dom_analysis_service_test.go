package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/domscan/domain"
)

// mapLoader serves sources from memory
type mapLoader map[string]string

func (m mapLoader) Load(_ context.Context, source string) ([]byte, error) {
	data, ok := m[source]
	if !ok {
		return nil, domain.NewFileNotFoundError(source, fmt.Errorf("no such source"))
	}
	return []byte(data), nil
}

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Sample</title></head>
<body>
  <main id="app">
    <ul class="list"><li>a</li><li>b</li><li>c</li></ul>
  </main>
</body>
</html>`

func TestDOMAnalysisService_Analyze_DocumentScope(t *testing.T) {
	svc := NewDOMAnalysisService(mapLoader{"index.html": samplePage}, nil, nil)

	resp, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Sources: []string{"index.html"},
		Scope:   domain.ScopeDocument,
	})
	require.NoError(t, err)
	require.Len(t, resp.Documents, 1)

	doc := resp.Documents[0]
	assert.Equal(t, "index.html", doc.Source)
	assert.Equal(t, domain.ParserModeHTML, doc.ParserMode)
	assert.Equal(t, "body", doc.Root)

	// html, head, title, body, main, ul, li x3
	assert.Equal(t, 9, doc.Report.TotalNodeCount)
	// body > main > ul > li
	assert.Equal(t, 3, doc.Report.MaxDepth)
	assert.Equal(t, 3, doc.Report.LargestChildCount)
	assert.Equal(t, "ul.list", doc.Report.LargestParent.Identifier)
	assert.Equal(t, domain.OverallExcellent, doc.Report.OverallStatus)
	assert.Equal(t, domain.ScopeDocument, doc.Report.Scope)

	assert.Equal(t, 1, resp.Summary.DocumentsAnalyzed)
	assert.Equal(t, 0, resp.Summary.DocumentsFailed)
	assert.Empty(t, resp.Errors)
}

func TestDOMAnalysisService_Analyze_SubtreeScope(t *testing.T) {
	svc := NewDOMAnalysisService(mapLoader{"index.html": samplePage}, nil, nil)

	resp, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Sources:      []string{"index.html"},
		Scope:        domain.ScopeSubtree,
		RootSelector: "#app",
	})
	require.NoError(t, err)

	report := resp.Documents[0].Report
	// main, ul, li x3
	assert.Equal(t, 5, report.TotalNodeCount)
	assert.Equal(t, 2, report.MaxDepth)
	assert.Equal(t, "main#app", resp.Documents[0].Root)
}

func TestDOMAnalysisService_Analyze_RunMetadata(t *testing.T) {
	svc := NewDOMAnalysisService(mapLoader{"index.html": samplePage}, nil, nil)

	resp, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Sources: []string{"index.html"},
	})
	require.NoError(t, err)

	_, err = uuid.Parse(resp.RunID)
	assert.NoError(t, err, "run id should be a uuid")
	assert.NotEmpty(t, resp.GeneratedAt)

	cfg, ok := resp.Config.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "subtree", cfg["scope"])
	assert.Equal(t, "body", cfg["root"])
	assert.Equal(t, "auto", cfg["parser"])
}

func TestDOMAnalysisService_Analyze_PartialFailure(t *testing.T) {
	loader := mapLoader{
		"ok.html":     samplePage,
		"broken.json": `{"children": [{"tag": "div"}]}`,
	}
	svc := NewDOMAnalysisService(loader, nil, nil)

	resp, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Sources:     []string{"ok.html", "missing.html", "broken.json"},
		Concurrency: 2,
	})
	require.NoError(t, err)

	require.Len(t, resp.Documents, 1)
	assert.Equal(t, "ok.html", resp.Documents[0].Source)
	assert.Len(t, resp.Errors, 2)
	assert.Equal(t, 1, resp.Summary.DocumentsAnalyzed)
	assert.Equal(t, 2, resp.Summary.DocumentsFailed)
}

func TestDOMAnalysisService_Analyze_AllFail(t *testing.T) {
	svc := NewDOMAnalysisService(mapLoader{}, nil, nil)

	_, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Sources: []string{"a.html", "b.html"},
	})
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeAnalysisError))
	assert.True(t, domain.HasCode(err, domain.ErrCodeFileNotFound), "cause should keep the first failure: %v", err)
	assert.Contains(t, err.Error(), "all 2 documents failed")
}

func TestDOMAnalysisService_Analyze_NoSources(t *testing.T) {
	svc := NewDOMAnalysisService(mapLoader{}, nil, nil)

	_, err := svc.Analyze(context.Background(), domain.AnalysisRequest{})
	require.Error(t, err)
	assert.True(t, domain.IsInvalidInput(err))
}

func TestDOMAnalysisService_Analyze_Cancelled(t *testing.T) {
	svc := NewDOMAnalysisService(mapLoader{"index.html": samplePage}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Analyze(ctx, domain.AnalysisRequest{Sources: []string{"index.html"}})
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeAnalysisError))
}

func TestDOMAnalysisService_AnalyzeSource_RootFallback(t *testing.T) {
	loader := mapLoader{
		"fixture.json": `{"tag": "main", "children": [{"tag": "p"}, {"tag": "p"}]}`,
	}
	svc := NewDOMAnalysisService(loader, nil, nil)

	result, err := svc.AnalyzeSource(context.Background(), "fixture.json", domain.AnalysisRequest{})
	require.NoError(t, err)

	assert.Equal(t, domain.ParserModeTree, result.ParserMode)
	assert.Equal(t, "main", result.Root)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no <body> element")
	assert.Equal(t, 3, result.Report.TotalNodeCount)
}

func TestDOMAnalysisService_AnalyzeSource_RootNotFound(t *testing.T) {
	svc := NewDOMAnalysisService(mapLoader{"index.html": samplePage}, nil, nil)

	_, err := svc.AnalyzeSource(context.Background(), "index.html", domain.AnalysisRequest{
		RootSelector: "#missing",
	})
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeRootNotFound))
}

func TestDOMAnalysisService_AnalyzeSource_SourceParser(t *testing.T) {
	svc := NewDOMAnalysisService(mapLoader{"frag.html": `<div id="app"><p>x</p></div>`}, nil, nil)

	result, err := svc.AnalyzeSource(context.Background(), "frag.html", domain.AnalysisRequest{
		ParserMode:   domain.ParserModeSource,
		RootSelector: "#app",
		Scope:        domain.ScopeDocument,
	})
	require.NoError(t, err)

	// no implied html/head/body in source mode
	assert.Equal(t, 2, result.Report.TotalNodeCount)
	assert.Equal(t, domain.ParserModeSource, result.ParserMode)
}

func TestDOMAnalysisService_Interface(t *testing.T) {
	var _ domain.DOMAnalysisService = &DOMAnalysisServiceImpl{}
}
