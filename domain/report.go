package domain

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
	OutputFormatHTML OutputFormat = "html"
)

// CountScope selects which elements the total node count covers
type CountScope string

const (
	// ScopeDocument counts every element of the document, regardless of
	// where the analysis root sits. This is what a browser console
	// `document.getElementsByTagName('*').length` reports.
	ScopeDocument CountScope = "document"

	// ScopeSubtree counts the analysis root and its descendants only
	ScopeSubtree CountScope = "subtree"
)

// Status is the per-metric severity
type Status string

const (
	StatusExcellent Status = "EXCELLENT"
	StatusWarning   Status = "WARNING"
	StatusCritical  Status = "CRITICAL"
)

// Rank orders statuses from best (0) to worst (2)
func (s Status) Rank() int {
	switch s {
	case StatusExcellent:
		return 0
	case StatusWarning:
		return 1
	default:
		return 2
	}
}

// OverallStatus aggregates the three per-metric statuses
type OverallStatus string

const (
	OverallExcellent         OverallStatus = "EXCELLENT"
	OverallAcceptable        OverallStatus = "ACCEPTABLE"
	OverallNeedsOptimization OverallStatus = "NEEDS_OPTIMIZATION"
)

// Rank orders overall statuses from best (0) to worst (2)
func (s OverallStatus) Rank() int {
	switch s {
	case OverallExcellent:
		return 0
	case OverallAcceptable:
		return 1
	default:
		return 2
	}
}

// Metric names a measured quantity
type Metric string

const (
	MetricTotalNodeCount    Metric = "total_node_count"
	MetricMaxDepth          Metric = "max_depth"
	MetricLargestChildCount Metric = "largest_child_count"
)

// Metrics lists every metric in report order
var Metrics = []Metric{MetricTotalNodeCount, MetricMaxDepth, MetricLargestChildCount}

// Label returns a human readable metric name
func (m Metric) Label() string {
	switch m {
	case MetricTotalNodeCount:
		return "Total DOM nodes"
	case MetricMaxDepth:
		return "Maximum depth"
	case MetricLargestChildCount:
		return "Largest child count"
	default:
		return string(m)
	}
}

// Threshold is an inclusive pair of bounds: values <= Excellent are
// EXCELLENT, values <= Warning are WARNING, anything above is CRITICAL.
type Threshold struct {
	Excellent int `json:"excellent" yaml:"excellent"`
	Warning   int `json:"warning" yaml:"warning"`
}

// Fixed thresholds, modelled on Lighthouse's DOM size audit
const (
	TotalNodeCountExcellent = 800
	TotalNodeCountWarning   = 1400

	MaxDepthExcellent = 12
	MaxDepthWarning   = 25

	LargestChildCountExcellent = 20
	LargestChildCountWarning   = 60
)

// Thresholds maps each metric to its fixed bounds
var Thresholds = map[Metric]Threshold{
	MetricTotalNodeCount:    {Excellent: TotalNodeCountExcellent, Warning: TotalNodeCountWarning},
	MetricMaxDepth:          {Excellent: MaxDepthExcellent, Warning: MaxDepthWarning},
	MetricLargestChildCount: {Excellent: LargestChildCountExcellent, Warning: LargestChildCountWarning},
}

// ElementLocation identifies an element found during analysis
type ElementLocation struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	Tag        string `json:"tag" yaml:"tag"`
	ID         string `json:"id,omitempty" yaml:"id,omitempty"`
	Class      string `json:"class,omitempty" yaml:"class,omitempty"`

	// Path is the chain of identifiers from the analysis root, joined by " > "
	Path string `json:"path" yaml:"path"`
}

// LargestParent is the element with the most direct children
type LargestParent struct {
	ElementLocation `yaml:",inline"`
	ChildCount      int `json:"child_count" yaml:"child_count"`
}

// DeepestElement is the element furthest from the analysis root
type DeepestElement struct {
	ElementLocation `yaml:",inline"`
	Depth           int `json:"depth" yaml:"depth"`
}

// Severity of a recommendation
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityModerate Severity = "moderate"
)

// Recommendation is a suggestion derived from a metric's status
type Recommendation struct {
	Metric   Metric   `json:"metric" yaml:"metric"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
}

// Report is the measurement result for one analyzed tree
type Report struct {
	TotalNodeCount    int `json:"total_node_count" yaml:"total_node_count"`
	MaxDepth          int `json:"max_depth" yaml:"max_depth"`
	LargestChildCount int `json:"largest_child_count" yaml:"largest_child_count"`

	LargestParent  LargestParent  `json:"largest_parent" yaml:"largest_parent"`
	DeepestElement DeepestElement `json:"deepest_element" yaml:"deepest_element"`

	StatusByMetric map[Metric]Status `json:"status_by_metric" yaml:"status_by_metric"`
	OverallStatus  OverallStatus     `json:"overall_status" yaml:"overall_status"`

	Recommendations []Recommendation `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`

	// Scope records which elements TotalNodeCount covers
	Scope CountScope `json:"scope" yaml:"scope"`
}

// Value returns the measured value for a metric
func (r *Report) Value(m Metric) int {
	switch m {
	case MetricTotalNodeCount:
		return r.TotalNodeCount
	case MetricMaxDepth:
		return r.MaxDepth
	case MetricLargestChildCount:
		return r.LargestChildCount
	default:
		return 0
	}
}
