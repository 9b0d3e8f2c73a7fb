package domain

// CheckResult represents the result of a quality check
type CheckResult struct {
	Passed      bool             `json:"passed"`
	ExitCode    int              `json:"exit_code"`
	Violations  []CheckViolation `json:"violations"`
	Summary     CheckSummary     `json:"summary"`
	Duration    int64            `json:"duration_ms"`
	GeneratedAt string           `json:"generated_at"`
	Version     string           `json:"version"`
}

// CheckViolation represents a single threshold violation
type CheckViolation struct {
	Source    string `json:"source"`              // file path or URL
	Metric    string `json:"metric"`              // total_node_count, max_depth, ...
	Severity  string `json:"severity"`            // error, warning
	Message   string `json:"message"`             // Human-readable description
	Location  string `json:"location,omitempty"`  // element identifier if applicable
	Actual    string `json:"actual"`              // Actual value
	Threshold string `json:"threshold,omitempty"` // Bound that was exceeded
}

// CheckSummary provides aggregate statistics
type CheckSummary struct {
	DocumentsAnalyzed   int       `json:"documents_analyzed"`
	DocumentsFailed     int       `json:"documents_failed"`
	TotalViolations     int       `json:"total_violations"`
	FailOn              FailLevel `json:"fail_on"`
	WorstStatus         string    `json:"worst_status"`
	CriticalMetrics     int       `json:"critical_metrics"`
	WarningMetrics      int       `json:"warning_metrics"`
	AnalysisErrorsCount int       `json:"analysis_errors"`
}
