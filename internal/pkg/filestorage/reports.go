package filestorage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/erp-migrator/internal/app/models"
)

const reportsDir = "reports"

// ReportArchive keeps one JSON document per finished migration run
type ReportArchive struct {
	storage FileStorage
}

// NewReportArchive creates a ReportArchive on top of storage
func NewReportArchive(storage FileStorage) *ReportArchive {
	return &ReportArchive{storage: storage}
}

// SaveReport stores report as reports/<runId>.json and returns its path
func (a *ReportArchive) SaveReport(report *models.MigrationReport) (string, error) {
	if strings.TrimSpace(report.RunID) == "" {
		return "", errors.New("report has no run id")
	}
	info, err := a.storage.SaveJSON(reportsDir, report.RunID+".json", report)
	if err != nil {
		return "", err
	}
	return info.Path, nil
}

// LatestReport returns the most recently archived report, or nil when the
// archive is empty.
func (a *ReportArchive) LatestReport() (*models.MigrationReport, error) {
	info, err := a.storage.Latest(reportsDir)
	if errors.Is(err, ErrFileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var report models.MigrationReport
	if err := a.storage.ReadJSON(reportsDir, info.Name, &report); err != nil {
		return nil, fmt.Errorf("reading archived report: %w", err)
	}
	return &report, nil
}
