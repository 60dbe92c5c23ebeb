package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"logsift/internal/domain"
	"logsift/internal/ingest"
)

// NewOutput assembles the persisted structure for a run and its report.
func NewOutput(run *domain.Run, report *domain.Report) *domain.ReportOutput {
	output := &domain.ReportOutput{
		Meta:   run.Meta(),
		Report: report,
	}
	for _, src := range run.Failed() {
		output.SourceFailures = append(output.SourceFailures, domain.SourceFailure{
			Path:  src.Path,
			Kind:  ingest.FailureKind(src.Err),
			Error: src.Err.Error(),
		})
	}
	return output
}

// Save writes the run metadata and report to the configured JSON output file.
func (s *JSONStorage) Save(run *domain.Run, report *domain.Report) error {
	return s.SaveOutput(NewOutput(run, report))
}

// Load reads the last saved report from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.ReportOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	var output domain.ReportOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	if output.Report == nil {
		output.Report = domain.NewReport()
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.ReportOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
