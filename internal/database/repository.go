package database

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/screentrack/screentrack/internal/models"
)

// Repository handles all database operations for the run archive
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveRun archives a finished run and its samples in one transaction
func (r *Repository) SaveRun(run *models.RunRecord, samples []models.SampleRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return errors.Wrap(err, "failed to insert run record")
		}
		if len(samples) == 0 {
			return nil
		}
		for i := range samples {
			samples[i].RunID = run.ID
		}
		if err := tx.CreateInBatches(samples, 200).Error; err != nil {
			return errors.Wrap(err, "failed to insert sample records")
		}
		return nil
	})
}

// GetRun retrieves an archived run by its ID
func (r *Repository) GetRun(id string) (*models.RunRecord, error) {
	var run models.RunRecord
	result := r.db.First(&run, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(result.Error, "failed to get run record")
	}
	return &run, nil
}

// RunsSince retrieves all runs that started at or after the given time
func (r *Repository) RunsSince(since time.Time) ([]models.RunRecord, error) {
	var runs []models.RunRecord
	result := r.db.Where("started_at >= ?", since).Order("started_at ASC").Find(&runs)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query run records")
	}
	return runs, nil
}

// SamplesForRun retrieves the archived samples of one run in log order
func (r *Repository) SamplesForRun(runID string) ([]models.SampleRecord, error) {
	var samples []models.SampleRecord
	result := r.db.Where("run_id = ?", runID).Order("timestamp ASC").Find(&samples)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query sample records")
	}
	return samples, nil
}

// AppUsageSince returns aggregated per-application usage across all runs
// since a given time. SQL does the SUM; percentage calculation is left to
// the caller.
func (r *Repository) AppUsageSince(since time.Time) ([]models.AppUsage, error) {
	var usage []models.AppUsage

	result := r.db.Model(&models.SampleRecord{}).
		Select("application, SUM(duration_seconds) as total_seconds, COUNT(*) as sample_count").
		Where("timestamp >= ?", since).
		Group("application").
		Order("total_seconds DESC").
		Scan(&usage)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query app usage")
	}

	return usage, nil
}

// Clear removes all archived runs and samples
func (r *Repository) Clear() error {
	if result := r.db.Exec("DELETE FROM sample_records"); result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear sample records")
	}
	if result := r.db.Exec("DELETE FROM run_records"); result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear run records")
	}
	return nil
}
