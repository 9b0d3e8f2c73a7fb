package service

import (
	"gonum.org/v1/gonum/stat"

	"github.com/ludo-technologies/domscan/domain"
)

// BuildSummary aggregates per-document reports
func BuildSummary(documents []domain.DocumentResult, failed int) domain.AnalysisSummary {
	summary := domain.AnalysisSummary{
		DocumentsFailed: failed,
		WorstStatus:     domain.OverallExcellent,
	}

	nodes := make([]float64, 0, len(documents))
	depths := make([]float64, 0, len(documents))

	for _, doc := range documents {
		r := doc.Report
		if r == nil {
			continue
		}
		summary.DocumentsAnalyzed++

		switch r.OverallStatus {
		case domain.OverallExcellent:
			summary.ExcellentDocuments++
		case domain.OverallAcceptable:
			summary.AcceptableDocuments++
		default:
			summary.NeedsOptimizationDocuments++
		}
		if r.OverallStatus.Rank() > summary.WorstStatus.Rank() {
			summary.WorstStatus = r.OverallStatus
		}

		nodes = append(nodes, float64(r.TotalNodeCount))
		depths = append(depths, float64(r.MaxDepth))

		summary.MaxNodeCount = max(summary.MaxNodeCount, r.TotalNodeCount)
		summary.MaxDepth = max(summary.MaxDepth, r.MaxDepth)
		summary.MaxChildCount = max(summary.MaxChildCount, r.LargestChildCount)
	}

	summary.AverageNodeCount, summary.StdDevNodeCount = meanStdDev(nodes)
	summary.AverageMaxDepth, summary.StdDevMaxDepth = meanStdDev(depths)

	return summary
}

// meanStdDev returns the mean and sample standard deviation. The deviation
// is 0 for fewer than two values.
func meanStdDev(values []float64) (float64, float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	default:
		return stat.MeanStdDev(values, nil)
	}
}
