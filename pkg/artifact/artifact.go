// Package artifact reads and writes the JSON files exchanged with the model
// training step: the scaler parameters and the linear model weights.
package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-features/pkg/errors"
)

const (
	// ScalerParamsFile is the conventional file name of ScalerParams.
	ScalerParamsFile = "scaler-params.json"
	// LinearWeightsFile is the conventional file name of LinearWeights.
	LinearWeightsFile = "weights-lr.json"
)

// writeJSON writes v as indented JSON, replacing any existing file.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeArtifactFailed, "failed to encode artifact", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(errors.ErrCodeArtifactFailed, err, "failed to create %s", dir)
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrapf(errors.ErrCodeArtifactFailed, err, "failed to write %s", path)
	}

	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeArtifactFailed, err, "failed to read %s", path)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(errors.ErrCodeArtifactInvalid, err, "failed to decode %s", path)
	}

	return nil
}
