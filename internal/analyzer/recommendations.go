package analyzer

import "github.com/ludo-technologies/domscan/domain"

type recommendationKey struct {
	metric   domain.Metric
	severity domain.Severity
}

var recommendationTable = map[recommendationKey]string{
	{domain.MetricTotalNodeCount, domain.SeverityCritical}: "Reduce the total DOM size: lazy-render off-screen sections, " +
		"virtualize long lists and remove hidden or duplicated markup.",
	{domain.MetricTotalNodeCount, domain.SeverityModerate}: "Keep an eye on DOM size: consider deferring below-the-fold " +
		"content and pruning unused wrappers.",

	{domain.MetricMaxDepth, domain.SeverityCritical}: "Flatten deeply nested markup: replace wrapper chains with CSS " +
		"grid or flexbox layouts and avoid nesting components only for styling.",
	{domain.MetricMaxDepth, domain.SeverityModerate}: "Nesting is getting deep: look for wrapper elements that exist " +
		"only for spacing or alignment.",

	{domain.MetricLargestChildCount, domain.SeverityCritical}: "Split very wide parents: paginate or virtualize large " +
		"collections instead of rendering every item at once.",
	{domain.MetricLargestChildCount, domain.SeverityModerate}: "A parent has many children: group related items or " +
		"render them incrementally.",
}

// severityFor maps a metric status to a recommendation severity
func severityFor(status domain.Status) (domain.Severity, bool) {
	switch status {
	case domain.StatusCritical:
		return domain.SeverityCritical, true
	case domain.StatusWarning:
		return domain.SeverityModerate, true
	default:
		return "", false
	}
}

// Recommend returns suggestions for every metric above its EXCELLENT
// bound, in metric order
func Recommend(statuses map[domain.Metric]domain.Status) []domain.Recommendation {
	var recs []domain.Recommendation
	for _, m := range domain.Metrics {
		severity, ok := severityFor(statuses[m])
		if !ok {
			continue
		}
		recs = append(recs, domain.Recommendation{
			Metric:   m,
			Severity: severity,
			Message:  recommendationTable[recommendationKey{m, severity}],
		})
	}
	return recs
}
