// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdftext/pkg/types"
)

// JobFile is the on-disk list of documents for a batch run.
type JobFile struct {
	Jobs []types.Job `yaml:"jobs"`
}

// WriteJobFile saves jobs to a YAML file at path.
func WriteJobFile(path string, jobs []types.Job) error {
	data, err := yaml.Marshal(&JobFile{Jobs: jobs})
	if err != nil {
		return fmt.Errorf("marshaling job file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadJobFile loads jobs from a YAML file. Every job must name a source.
func ReadJobFile(path string) ([]types.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}
	var jf JobFile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("parsing job file %s: %w", path, err)
	}
	for i, j := range jf.Jobs {
		if j.Source == "" {
			return nil, fmt.Errorf("job file %s: job %d has no source", path, i+1)
		}
	}
	return jf.Jobs, nil
}
