package analyzer

import "github.com/ludo-technologies/domscan/domain"

// Classify compares a measurement with the metric's fixed bounds.
// Both bounds are inclusive.
func Classify(metric domain.Metric, value int) domain.Status {
	th, ok := domain.Thresholds[metric]
	if !ok {
		return domain.StatusCritical
	}
	switch {
	case value <= th.Excellent:
		return domain.StatusExcellent
	case value <= th.Warning:
		return domain.StatusWarning
	default:
		return domain.StatusCritical
	}
}

// ClassifyReport classifies every metric of the report
func ClassifyReport(r *domain.Report) map[domain.Metric]domain.Status {
	statuses := make(map[domain.Metric]domain.Status, len(domain.Metrics))
	for _, m := range domain.Metrics {
		statuses[m] = Classify(m, r.Value(m))
	}
	return statuses
}

// OverallStatusOf aggregates per-metric statuses: EXCELLENT when every
// metric is EXCELLENT, ACCEPTABLE when none is CRITICAL, otherwise
// NEEDS_OPTIMIZATION. A missing metric counts as CRITICAL.
func OverallStatusOf(statuses map[domain.Metric]domain.Status) domain.OverallStatus {
	worst := domain.StatusExcellent
	for _, m := range domain.Metrics {
		s, ok := statuses[m]
		if !ok {
			s = domain.StatusCritical
		}
		if s.Rank() > worst.Rank() {
			worst = s
		}
	}

	switch worst {
	case domain.StatusExcellent:
		return domain.OverallExcellent
	case domain.StatusWarning:
		return domain.OverallAcceptable
	default:
		return domain.OverallNeedsOptimization
	}
}
