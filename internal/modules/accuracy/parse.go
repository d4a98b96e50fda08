package accuracy

import (
	"fmt"
	"strings"

	"github.com/fuzzysystem/finance/internal/domain"
	"github.com/fuzzysystem/finance/internal/utils"
)

// ParseMetricKinds parses a comma-separated metric list such as "rmse,mae".
// Empty input yields nil (all metrics).
func ParseMetricKinds(s string) ([]domain.MetricKind, error) {
	var kinds []domain.MetricKind
	for _, part := range utils.SplitList(s) {
		kind := domain.MetricKind(strings.ToUpper(part))
		if kind != domain.MetricRMSE && kind != domain.MetricMAE {
			return nil, fmt.Errorf("unsupported metric %q", part)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// ParseModelTags parses a comma-separated model tag list such as "arima,hw".
func ParseModelTags(s string) []domain.ModelTag {
	var tags []domain.ModelTag
	for _, part := range utils.SplitList(s) {
		tags = append(tags, domain.ModelTag(part))
	}
	return tags
}
