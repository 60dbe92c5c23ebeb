package storage

import (
	"logsift/internal/config"
	"logsift/internal/domain"
)

// Storage persists and loads organized run reports (e.g. for the report and view commands).
type Storage interface {
	Save(run *domain.Run, report *domain.Report) error
	Load() (*domain.ReportOutput, error)
	// SaveOutput writes a complete output structure as is.
	SaveOutput(output *domain.ReportOutput) error
}

// JSONStorage stores reports in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
