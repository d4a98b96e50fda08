package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty string", input: "", expected: nil},
		{name: "only separators", input: " , ,", expected: nil},
		{name: "single value", input: "arima", expected: []string{"arima"}},
		{name: "varied spacing", input: "rmse,  mae ", expected: []string{"rmse", "mae"}},
		{name: "trailing comma", input: "arima,hw,", expected: []string{"arima", "hw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitList(tt.input))
		})
	}
}
