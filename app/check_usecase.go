package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ludo-technologies/domscan/domain"
	"github.com/ludo-technologies/domscan/internal/constants"
	"github.com/ludo-technologies/domscan/internal/version"
)

// CheckUseCase gates documents on their overall status
type CheckUseCase struct {
	analyze *AnalyzeUseCase
}

// NewCheckUseCase creates a new check use case
func NewCheckUseCase(service domain.DOMAnalysisService) *CheckUseCase {
	return &CheckUseCase{analyze: NewAnalyzeUseCase(service, nil)}
}

// Execute analyzes the request's sources and evaluates them against
// req.FailOn. Errors returned here mean the analysis itself could not run.
func (uc *CheckUseCase) Execute(ctx context.Context, req domain.AnalysisRequest) (*domain.CheckResult, error) {
	start := time.Now()

	response, err := uc.analyze.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	result := Evaluate(response, req.FailOn)
	result.Duration = time.Since(start).Milliseconds()
	return result, nil
}

// Evaluate turns an analysis response into a check result. A document fails
// when failOn says its overall status fails; each of its metrics at or above
// the failing severity becomes a violation. Exit codes: 1 when any document
// fails, otherwise 2 when some document could not be analyzed, otherwise 0.
func Evaluate(response *domain.AnalysisResponse, failOn domain.FailLevel) *domain.CheckResult {
	if failOn == "" {
		failOn = domain.FailOnCritical
	}

	result := &domain.CheckResult{
		Passed:      true,
		ExitCode:    constants.ExitOK,
		Violations:  []domain.CheckViolation{},
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
		Summary: domain.CheckSummary{
			DocumentsAnalyzed:   response.Summary.DocumentsAnalyzed,
			DocumentsFailed:     response.Summary.DocumentsFailed,
			FailOn:              failOn,
			WorstStatus:         string(response.Summary.WorstStatus),
			AnalysisErrorsCount: len(response.Errors),
		},
	}

	minRank := domain.StatusCritical.Rank()
	if failOn == domain.FailOnWarning {
		minRank = domain.StatusWarning.Rank()
	}

	for _, doc := range response.Documents {
		r := doc.Report
		if r == nil {
			continue
		}

		for _, m := range domain.Metrics {
			switch r.StatusByMetric[m] {
			case domain.StatusCritical:
				result.Summary.CriticalMetrics++
			case domain.StatusWarning:
				result.Summary.WarningMetrics++
			}
		}

		if !failOn.Fails(r.OverallStatus) {
			continue
		}
		result.Passed = false

		for _, m := range domain.Metrics {
			status := r.StatusByMetric[m]
			if status == "" || status.Rank() < minRank {
				continue
			}
			result.Violations = append(result.Violations, violationFor(doc, m, status))
		}
	}

	result.Summary.TotalViolations = len(result.Violations)

	switch {
	case !result.Passed:
		result.ExitCode = constants.ExitViolation
	case len(response.Errors) > 0:
		result.Passed = false
		result.ExitCode = constants.ExitError
	}

	return result
}

func violationFor(doc domain.DocumentResult, m domain.Metric, status domain.Status) domain.CheckViolation {
	r := doc.Report
	th := domain.Thresholds[m]

	severity, bound := "error", th.Warning
	if status == domain.StatusWarning {
		severity, bound = "warning", th.Excellent
	}

	var location string
	switch m {
	case domain.MetricMaxDepth:
		location = r.DeepestElement.Path
	case domain.MetricLargestChildCount:
		location = r.LargestParent.Path
	}

	return domain.CheckViolation{
		Source:    doc.Source,
		Metric:    string(m),
		Severity:  severity,
		Message:   fmt.Sprintf("%s is %d (%s)", m.Label(), r.Value(m), status),
		Location:  location,
		Actual:    strconv.Itoa(r.Value(m)),
		Threshold: strconv.Itoa(bound),
	}
}
