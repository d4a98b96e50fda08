package accuracy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzzysystem/finance/internal/domain"
)

func TestParseMetricKinds(t *testing.T) {
	tests := []struct {
		input    string
		expected []domain.MetricKind
		wantErr  bool
	}{
		{input: "", expected: nil},
		{input: "rmse", expected: []domain.MetricKind{domain.MetricRMSE}},
		{input: "MAE, rmse", expected: []domain.MetricKind{domain.MetricMAE, domain.MetricRMSE}},
		{input: "rmse,,", expected: []domain.MetricKind{domain.MetricRMSE}},
		{input: "mape", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kinds, err := ParseMetricKinds(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kinds)
		})
	}
}

func TestParseModelTags(t *testing.T) {
	assert.Nil(t, ParseModelTags(""))
	assert.Equal(t, []domain.ModelTag{"arima", "hw"}, ParseModelTags(" arima ,hw,"))
}
