package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLongSeriesPoint_JSON(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	points := []LongSeriesPoint{
		{Timestamp: time.Date(2024, 1, 2, 16, 0, 0, 0, ny), Label: "AAPL (Actual)", Value: Float(185.64)},
		{Timestamp: time.Date(2024, 1, 3, 16, 0, 0, 0, ny), Label: "AAPL (ARIMA model)", Value: Null()},
	}

	data, err := json.Marshal(points)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"timestamp":"2024-01-02T16:00:00-05:00","label":"AAPL (Actual)","value":185.64},
		{"timestamp":"2024-01-03T16:00:00-05:00","label":"AAPL (ARIMA model)","value":null}
	]`, string(data))
}

func TestMetricResult_JSON(t *testing.T) {
	data, err := json.Marshal(MetricResult{Ticker: "AAPL", ModelTag: "arima", Kind: MetricRMSE, Value: 1.2, Samples: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ticker":"AAPL","model_tag":"arima","metric":"RMSE","value":1.2,"samples":1}`, string(data))
}
