package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/domscan/domain"
)

// AnalyzeUseCase orchestrates the DOM analysis workflow
type AnalyzeUseCase struct {
	service    domain.DOMAnalysisService
	formatter  domain.OutputFormatter
	fileHelper *FileHelper
}

// NewAnalyzeUseCase creates a new analyze use case
func NewAnalyzeUseCase(service domain.DOMAnalysisService, formatter domain.OutputFormatter) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		service:    service,
		formatter:  formatter,
		fileHelper: NewFileHelper(),
	}
}

// Execute validates the request, resolves its sources, runs the analysis
// and writes the result when an output destination is set.
func (uc *AnalyzeUseCase) Execute(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResponse, error) {
	response, err := uc.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := uc.writeOutput(response, req); err != nil {
		return nil, err
	}
	return response, nil
}

// Analyze runs the analysis without writing any output
func (uc *AnalyzeUseCase) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	sources, err := ResolveSources(
		uc.fileHelper,
		req.Sources,
		req.Recursive,
		req.IncludePatterns,
		req.ExcludePatterns,
	)
	if err != nil {
		return nil, domain.NewDomainError(domain.ErrCodeFileNotFound, "failed to collect documents", err)
	}

	if len(sources) == 0 {
		return nil, domain.NewInvalidInputError("no HTML documents found in the specified paths", nil)
	}

	req.Sources = sources
	return uc.service.Analyze(ctx, req)
}

// validateRequest validates the analysis request
func (uc *AnalyzeUseCase) validateRequest(req domain.AnalysisRequest) error {
	if len(req.Sources) == 0 {
		return fmt.Errorf("no input paths specified")
	}

	switch req.Scope {
	case "", domain.ScopeDocument, domain.ScopeSubtree:
	default:
		return fmt.Errorf("unknown scope %q (want document or subtree)", req.Scope)
	}

	switch req.ParserMode {
	case "", domain.ParserModeAuto, domain.ParserModeHTML, domain.ParserModeSource, domain.ParserModeTree:
	default:
		return fmt.Errorf("unknown parser %q (want auto, html, source or tree)", req.ParserMode)
	}

	switch req.OutputFormat {
	case "", domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML,
		domain.OutputFormatCSV, domain.OutputFormatHTML:
	default:
		return fmt.Errorf("unsupported output format %q", req.OutputFormat)
	}

	if req.Concurrency < 0 {
		return fmt.Errorf("concurrency cannot be negative")
	}

	if req.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}

	if _, ok := domain.ParseSelector(rootOrDefault(req.RootSelector)); !ok {
		return fmt.Errorf("unsupported root selector %q", req.RootSelector)
	}

	return nil
}

// writeOutput writes the response to OutputPath, or to OutputWriter
func (uc *AnalyzeUseCase) writeOutput(response *domain.AnalysisResponse, req domain.AnalysisRequest) error {
	if uc.formatter == nil {
		return nil
	}

	var writer io.Writer = req.OutputWriter
	if path := ResolveOutputPath(req); path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return domain.NewOutputError("failed to create output directory", err)
			}
		}
		f, err := os.Create(path)
		if err != nil {
			return domain.NewOutputError("failed to create output file", err)
		}
		defer f.Close()
		writer = f
	}
	if writer == nil {
		return nil
	}

	return uc.formatter.Write(response, req.OutputFormat, writer)
}

// ResolveOutputPath returns the report file for req. A relative OutputPath
// is placed under OutputDirectory when one is configured.
func ResolveOutputPath(req domain.AnalysisRequest) string {
	if req.OutputPath == "" {
		return ""
	}
	if req.OutputDirectory == "" || filepath.IsAbs(req.OutputPath) {
		return req.OutputPath
	}
	return filepath.Join(req.OutputDirectory, req.OutputPath)
}

func rootOrDefault(selector string) string {
	if strings.TrimSpace(selector) == "" {
		return domain.DefaultRootSelector
	}
	return selector
}

// AnalyzeUseCaseBuilder builds an AnalyzeUseCase
type AnalyzeUseCaseBuilder struct {
	service    domain.DOMAnalysisService
	formatter  domain.OutputFormatter
	fileHelper *FileHelper
}

// NewAnalyzeUseCaseBuilder creates a new builder
func NewAnalyzeUseCaseBuilder() *AnalyzeUseCaseBuilder {
	return &AnalyzeUseCaseBuilder{}
}

// WithService sets the analysis service
func (b *AnalyzeUseCaseBuilder) WithService(service domain.DOMAnalysisService) *AnalyzeUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the output formatter
func (b *AnalyzeUseCaseBuilder) WithFormatter(formatter domain.OutputFormatter) *AnalyzeUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithFileHelper sets the file helper
func (b *AnalyzeUseCaseBuilder) WithFileHelper(fh *FileHelper) *AnalyzeUseCaseBuilder {
	b.fileHelper = fh
	return b
}

// Build creates the AnalyzeUseCase
func (b *AnalyzeUseCaseBuilder) Build() (*AnalyzeUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("analysis service is required")
	}

	uc := &AnalyzeUseCase{
		service:    b.service,
		formatter:  b.formatter,
		fileHelper: b.fileHelper,
	}

	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelper()
	}

	return uc, nil
}
