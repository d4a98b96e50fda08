package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fuzzysystem/finance/internal/domain"
)

// ModelLabels maps model tags to their display names.
type ModelLabels map[domain.ModelTag]string

// DefaultModelLabels returns the built-in model display names. "pred" is the
// suffix of single-model forecast files.
func DefaultModelLabels() ModelLabels {
	return ModelLabels{
		"arima": "ARIMA model",
		"hw":    "Holt-Winters model",
		"pred":  "Predicted",
	}
}

// modelLabelsFile is the on-disk layout of MODEL_LABELS_FILE:
//
//	models:
//	  arima: ARIMA model
//	  lstm: LSTM model
type modelLabelsFile struct {
	Models map[string]string `yaml:"models"`
}

// LoadModelLabels reads a YAML mapping and merges it over the defaults.
// An empty path returns the defaults.
func LoadModelLabels(path string) (ModelLabels, error) {
	labels := DefaultModelLabels()
	if path == "" {
		return labels, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model labels file: %w", err)
	}

	var file modelLabelsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse model labels file %s: %w", path, err)
	}

	for tag, name := range file.Models {
		if tag == "" || name == "" {
			return nil, fmt.Errorf("model labels file %s: empty tag or display name", path)
		}
		labels[domain.ModelTag(tag)] = name
	}

	return labels, nil
}
