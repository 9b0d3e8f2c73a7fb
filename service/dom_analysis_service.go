package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ludo-technologies/domscan/domain"
	"github.com/ludo-technologies/domscan/internal/analyzer"
	"github.com/ludo-technologies/domscan/internal/config"
	"github.com/ludo-technologies/domscan/internal/logging"
	"github.com/ludo-technologies/domscan/internal/parser"
	"github.com/ludo-technologies/domscan/internal/version"
)

// DOMAnalysisServiceImpl implements the DOMAnalysisService interface
type DOMAnalysisServiceImpl struct {
	loader   domain.SourceLoader
	progress domain.ProgressManager
	logger   *zap.Logger
}

// NewDOMAnalysisService creates a new DOM analysis service
func NewDOMAnalysisService(loader domain.SourceLoader, pm domain.ProgressManager, logger *zap.Logger) *DOMAnalysisServiceImpl {
	if pm == nil {
		pm = &NoOpProgressManager{}
	}
	return &DOMAnalysisServiceImpl{
		loader:   loader,
		progress: pm,
		logger:   logging.OrNop(logger),
	}
}

// documentTask adapts one source to domain.ExecutableTask
type documentTask struct {
	source string
	run    func(ctx context.Context) (interface{}, error)
}

func (t *documentTask) Name() string    { return t.source }
func (t *documentTask) IsEnabled() bool { return true }

func (t *documentTask) Execute(ctx context.Context) (interface{}, error) {
	return t.run(ctx)
}

// Analyze measures every source of the request in parallel. Sources that
// fail are reported in Errors; the call only fails when none succeed.
func (s *DOMAnalysisServiceImpl) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResponse, error) {
	if len(req.Sources) == 0 {
		return nil, domain.NewInvalidInputError("no documents to analyze", nil)
	}

	runID := uuid.NewString()
	log := s.logger.With(zap.String("run_id", runID))
	log.Debug("starting analysis", zap.Int("documents", len(req.Sources)))

	results := make([]*domain.DocumentResult, len(req.Sources))
	tasks := make([]domain.ExecutableTask, len(req.Sources))
	for i, source := range req.Sources {
		tasks[i] = &documentTask{
			source: source,
			run: func(ctx context.Context) (interface{}, error) {
				result, err := s.AnalyzeSource(ctx, source, req)
				if err != nil {
					return nil, err
				}
				results[i] = result
				return result, nil
			},
		}
	}

	executor := NewParallelExecutorWithProgress(&config.PerformanceConfig{
		MaxGoroutines:  req.Concurrency,
		TimeoutSeconds: int(req.Timeout / time.Second),
	}, s.progress, log)

	var errs []string
	var aggErr *AggregatedError
	if err := executor.Execute(ctx, tasks); err != nil {
		if !errors.As(err, &aggErr) {
			return nil, domain.NewAnalysisError("analysis failed", err)
		}
		for _, te := range aggErr.Errors {
			log.Warn("document failed", zap.String("source", te.TaskName), zap.Error(te.Err))
			errs = append(errs, te.Error())
		}
	}

	if ctx.Err() != nil {
		return nil, domain.NewAnalysisError("analysis cancelled", ctx.Err())
	}

	var documents []domain.DocumentResult
	var warnings []string
	for _, r := range results {
		if r == nil {
			continue
		}
		documents = append(documents, *r)
		warnings = append(warnings, r.Warnings...)
	}

	if len(documents) == 0 {
		var cause error = errors.New("no documents analyzed")
		if aggErr != nil {
			cause = aggErr
		}
		return nil, domain.NewAnalysisError(fmt.Sprintf("all %d documents failed", len(req.Sources)), cause)
	}

	summary := BuildSummary(documents, len(errs))
	log.Debug("analysis finished",
		zap.Int("analyzed", summary.DocumentsAnalyzed),
		zap.Int("failed", summary.DocumentsFailed),
		zap.String("worst", string(summary.WorstStatus)))

	return &domain.AnalysisResponse{
		RunID:       runID,
		Documents:   documents,
		Summary:     summary,
		Warnings:    warnings,
		Errors:      errs,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
		Config:      s.buildConfigForResponse(req),
	}, nil
}

// AnalyzeSource loads, parses and measures a single source
func (s *DOMAnalysisServiceImpl) AnalyzeSource(ctx context.Context, source string, req domain.AnalysisRequest) (*domain.DocumentResult, error) {
	data, err := s.loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	doc, mode, err := parser.ParseForFormat(ctx, source, data, req.ParserMode)
	if err != nil {
		return nil, err
	}

	root, warnings, err := parser.ResolveRoot(doc, req.RootSelector)
	if err != nil {
		return nil, err
	}

	report, err := analyzer.Analyze(analyzer.Input{
		Root:     root,
		Document: doc,
		Scope:    req.Scope,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("document analyzed",
		zap.String("source", source),
		zap.String("parser", string(mode)),
		zap.Int("nodes", report.TotalNodeCount),
		zap.Int("depth", report.MaxDepth),
		zap.Int("children", report.LargestChildCount),
		zap.String("status", string(report.OverallStatus)))

	return &domain.DocumentResult{
		Source:     source,
		ParserMode: mode,
		Root:       domain.Identifier(root),
		Report:     report,
		Warnings:   warnings,
	}, nil
}

// buildConfigForResponse records the settings that shaped the numbers
func (s *DOMAnalysisServiceImpl) buildConfigForResponse(req domain.AnalysisRequest) map[string]interface{} {
	root := req.RootSelector
	if root == "" {
		root = domain.DefaultRootSelector
	}
	scope := req.Scope
	if scope == "" {
		scope = domain.ScopeSubtree
	}
	mode := req.ParserMode
	if mode == "" {
		mode = domain.ParserModeAuto
	}
	return map[string]interface{}{
		"scope":  string(scope),
		"root":   root,
		"parser": string(mode),
		"render": req.Render,
		"thresholds": map[string]interface{}{
			string(domain.MetricTotalNodeCount):    domain.Thresholds[domain.MetricTotalNodeCount],
			string(domain.MetricMaxDepth):          domain.Thresholds[domain.MetricMaxDepth],
			string(domain.MetricLargestChildCount): domain.Thresholds[domain.MetricLargestChildCount],
		},
	}
}
