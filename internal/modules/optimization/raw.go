// Package optimization adapts precomputed portfolio-optimization results into
// plot series and a describable summary. It performs no optimization itself.
package optimization

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Fixed keys of the five optimization series.
const (
	KeyEfficientFrontier   = "efficient_frontier"
	KeyTangencyLine        = "tangency_line"
	KeySimulatedPortfolios = "simulated_portfolios"
	KeyMaxSharpeRatio      = "max_sharpe_ratio"
	KeyMinVarPortfolio     = "min_var_portfolio"
)

// SeriesKeys lists the series keys in plotting order.
var SeriesKeys = []string{
	KeyEfficientFrontier,
	KeyTangencyLine,
	KeySimulatedPortfolios,
	KeyMaxSharpeRatio,
	KeyMinVarPortfolio,
}

// RawSeries is a pair of parallel x (risk) and y (return) arrays.
type RawSeries struct {
	X []float64 `json:"x" msgpack:"x"`
	Y []float64 `json:"y" msgpack:"y"`
}

// UnmarshalJSON accepts {"x": [...], "y": [...]} or [[x...], [y...]].
func (s *RawSeries) UnmarshalJSON(data []byte) error {
	var pair [][]float64
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("expected an [x, y] array pair, got %d arrays", len(pair))
		}
		s.X, s.Y = pair[0], pair[1]
		return nil
	}

	type plain RawSeries
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*s = RawSeries(obj)
	return nil
}

// DecodeMsgpack accepts the same two layouts as UnmarshalJSON.
func (s *RawSeries) DecodeMsgpack(dec *msgpack.Decoder) error {
	raw, err := dec.DecodeRaw()
	if err != nil {
		return err
	}

	var pair [][]float64
	if err := msgpack.Unmarshal(raw, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("expected an [x, y] array pair, got %d arrays", len(pair))
		}
		s.X, s.Y = pair[0], pair[1]
		return nil
	}

	type plain RawSeries
	var obj plain
	if err := msgpack.Unmarshal(raw, &obj); err != nil {
		return err
	}
	*s = RawSeries(obj)
	return nil
}

// Raw is the precomputed optimization result as read from the store: the
// series arrays by key, plus the generic metadata document.
type Raw struct {
	Series   map[string]RawSeries
	Metadata interface{}
}
