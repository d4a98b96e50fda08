package sources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/fuzzysystem/finance/internal/modules/optimization"
)

// ReadOptimization loads the optimization series blob at seriesPath (.json
// or .msgpack) and the JSON metadata document at metadataPath.
func ReadOptimization(seriesPath, metadataPath string) (*optimization.Raw, error) {
	series, err := ReadOptimizationSeries(seriesPath)
	if err != nil {
		return nil, err
	}
	metadata, err := ReadMetadata(metadataPath)
	if err != nil {
		return nil, err
	}
	return &optimization.Raw{Series: series, Metadata: metadata}, nil
}

// ReadOptimizationSeries decodes the series keyed by name.
func ReadOptimizationSeries(path string) (map[string]optimization.RawSeries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	series := make(map[string]optimization.RawSeries)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &series)
	case ".msgpack", ".mpk":
		err = msgpack.Unmarshal(data, &series)
	default:
		return nil, fmt.Errorf("unsupported optimization format %q", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return series, nil
}

// ReadMetadata decodes a JSON document into generic maps and slices for
// JSONPath queries. Numbers are kept as json.Number.
func ReadMetadata(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return doc, nil
}
