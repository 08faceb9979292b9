package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"MomentumReport/internal/domain/models"
	domrepo "MomentumReport/internal/domain/repository"
)

// FileReportStore writes rendered reports as <dir>/<date>_report.md.
type FileReportStore struct {
	dir string
}

func NewFileReportStore(dir string) *FileReportStore {
	return &FileReportStore{dir: dir}
}

// Path returns the file a report for date is written to.
func (s *FileReportStore) Path(date string) string {
	return filepath.Join(s.dir, date+"_report.md")
}

// Save writes atomically through a temp file in the same directory.
func (s *FileReportStore) Save(_ context.Context, doc *models.ReportDocument, rendered string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+doc.Date+"_*.tmp")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(rendered); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Path(doc.Date)); err != nil {
		return fmt.Errorf("rename report: %w", err)
	}
	return nil
}

var _ domrepo.ReportStore = (*FileReportStore)(nil)
