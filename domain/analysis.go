package domain

import (
	"context"
	"io"
	"time"
)

// ParserMode selects how a source is turned into an element tree
type ParserMode string

const (
	// ParserModeAuto picks a parser from the source name (.json -> tree, otherwise html)
	ParserModeAuto ParserMode = "auto"

	// ParserModeHTML builds the tree a browser would, including implied html/head/body
	ParserModeHTML ParserMode = "html"

	// ParserModeSource builds the tree exactly as written in the markup
	ParserModeSource ParserMode = "source"

	// ParserModeTree reads a nested JSON tree fixture
	ParserModeTree ParserMode = "tree"
)

// DefaultRootSelector is the analysis root used when none is given
const DefaultRootSelector = "body"

// FailLevel decides which documents fail a check
type FailLevel string

const (
	// FailOnWarning fails any document that is not EXCELLENT overall
	FailOnWarning FailLevel = "warning"

	// FailOnCritical fails documents that NEED_OPTIMIZATION
	FailOnCritical FailLevel = "critical"
)

// Fails reports whether a document with the given overall status fails at this level
func (l FailLevel) Fails(status OverallStatus) bool {
	switch l {
	case FailOnWarning:
		return status != OverallExcellent
	default:
		return status == OverallNeedsOptimization
	}
}

// AnalysisRequest represents a request for DOM complexity analysis
type AnalysisRequest struct {
	// Sources are file paths, directories or http(s) URLs
	Sources []string

	// Output configuration
	OutputFormat        OutputFormat
	OutputWriter        io.Writer
	OutputPath          string
	OutputDirectory     string
	ShowRecommendations bool

	// Tree selection
	RootSelector string
	Scope        CountScope
	ParserMode   ParserMode

	// Fetching
	Render         bool
	FetchTimeout   time.Duration
	UserAgent      string
	MaxFetchBytes  int64
	ViewportWidth  int
	ViewportHeight int

	// Execution
	Concurrency int
	Timeout     time.Duration

	// Presentation
	Color bool

	// Check gate
	FailOn FailLevel

	// Configuration
	ConfigPath string

	// File collection options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
}

// DocumentResult is the analysis outcome for one source
type DocumentResult struct {
	Source     string     `json:"source" yaml:"source"`
	ParserMode ParserMode `json:"parser" yaml:"parser"`
	Root       string     `json:"root" yaml:"root"`
	Report     *Report    `json:"report" yaml:"report"`
	Warnings   []string   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AnalysisSummary aggregates results across documents
type AnalysisSummary struct {
	DocumentsAnalyzed int `json:"documents_analyzed" yaml:"documents_analyzed"`
	DocumentsFailed   int `json:"documents_failed" yaml:"documents_failed"`

	ExcellentDocuments         int `json:"excellent_documents" yaml:"excellent_documents"`
	AcceptableDocuments        int `json:"acceptable_documents" yaml:"acceptable_documents"`
	NeedsOptimizationDocuments int `json:"needs_optimization_documents" yaml:"needs_optimization_documents"`

	WorstStatus OverallStatus `json:"worst_status" yaml:"worst_status"`

	AverageNodeCount float64 `json:"average_node_count" yaml:"average_node_count"`
	StdDevNodeCount  float64 `json:"stddev_node_count" yaml:"stddev_node_count"`
	MaxNodeCount     int     `json:"max_node_count" yaml:"max_node_count"`
	AverageMaxDepth  float64 `json:"average_max_depth" yaml:"average_max_depth"`
	StdDevMaxDepth   float64 `json:"stddev_max_depth" yaml:"stddev_max_depth"`
	MaxDepth         int     `json:"max_depth" yaml:"max_depth"`
	MaxChildCount    int     `json:"max_child_count" yaml:"max_child_count"`
}

// AnalysisResponse represents the complete analysis result
type AnalysisResponse struct {
	RunID     string           `json:"run_id" yaml:"run_id"`
	Documents []DocumentResult `json:"documents" yaml:"documents"`
	Summary   AnalysisSummary  `json:"summary" yaml:"summary"`

	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	GeneratedAt string      `json:"generated_at" yaml:"generated_at"`
	Version     string      `json:"version" yaml:"version"`
	Config      interface{} `json:"config,omitempty" yaml:"config,omitempty"`
}

// DOMAnalysisService defines the core business logic for DOM analysis
type DOMAnalysisService interface {
	// Analyze measures every source in the request
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error)

	// AnalyzeSource measures a single source
	AnalyzeSource(ctx context.Context, source string, req AnalysisRequest) (*DocumentResult, error)
}

// SourceLoader retrieves the raw markup for a source
type SourceLoader interface {
	Load(ctx context.Context, source string) ([]byte, error)
}

// OutputFormatter defines the interface for formatting analysis results
type OutputFormatter interface {
	// Format formats the analysis response according to the specified format
	Format(response *AnalysisResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *AnalysisResponse, format OutputFormat, writer io.Writer) error
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*AnalysisRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *AnalysisRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *AnalysisRequest, override *AnalysisRequest) *AnalysisRequest
}

// ProgressManager creates progress tasks
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks one unit of progress
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// ExecutableTask is a unit of work for the parallel executor
type ExecutableTask interface {
	Name() string
	Execute(ctx context.Context) (interface{}, error)
	IsEnabled() bool
}

// ParallelExecutor runs tasks concurrently
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
	SetMaxConcurrency(max int)
	SetTimeout(timeout time.Duration)
}
