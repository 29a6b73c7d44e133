package repository

import (
	"context"
	"errors"

	"printpack/models"

	"gorm.io/gorm"
)

// CreateTimeLog inserts a work log. total_time is derived from time plus
// overtime, and the task description / time budget of the most recent
// assignment covering the job are copied into the snapshot columns. The
// snapshots stay frozen from then on, whatever happens to the assignment.
func CreateTimeLog(ctx context.Context, db *gorm.DB, req models.TimeWorkLogRequest) (*models.TimeWorkLog, error) {
	if req.JobID == 0 || req.LogDate == "" {
		return nil, Validationf("Required fields missing")
	}

	entry := models.TimeWorkLog{
		LogDate:      req.LogDate,
		EmployeeID:   req.EmployeeID,
		ProductionID: req.ProductionID,
		JobID:        req.JobID,
		ProjectID:    req.ProjectID,
		TimeSpent:    req.TimeSpent,
		Overtime:     req.Overtime,
		TotalTime:    req.TimeSpent + req.Overtime,
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assign, err := latestAssignmentForJob(tx, req.JobID, req.EmployeeID, req.ProductionID)
		if err != nil {
			return err
		}
		if assign != nil {
			entry.TaskDescriptionSnapshot = assign.TaskDescription
			entry.TimeBudgetSnapshot = assign.TimeBudget
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// latestAssignmentForJob finds the newest assignment covering the job,
// preferring one that matches the worker writing the log.
func latestAssignmentForJob(tx *gorm.DB, jobID int, employeeID, productionID *int) (*models.AssignJob, error) {
	q := tx.Model(&models.AssignJob{}).
		Joins("JOIN assign_job_items i ON i.assign_job_id = assign_jobs.id").
		Where("i.job_id = ?", jobID).
		Order("assign_jobs.id DESC")

	if employeeID != nil {
		q = q.Where("assign_jobs.employee_id = ?", *employeeID)
	} else if productionID != nil {
		q = q.Where("assign_jobs.production_id = ?", *productionID)
	}

	var assign models.AssignJob
	if err := q.First(&assign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assign, nil
}

// UpdateTimeLog rewrites the measurable fields and rederives total_time.
// The snapshot columns are deliberately left alone.
func UpdateTimeLog(ctx context.Context, db *gorm.DB, logID int, req models.TimeWorkLogRequest) (*models.TimeWorkLog, error) {
	var entry models.TimeWorkLog
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, logID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("Time log not found")
			}
			return err
		}

		updates := map[string]interface{}{
			"time_spent": req.TimeSpent,
			"overtime":   req.Overtime,
			"total_time": req.TimeSpent + req.Overtime,
		}
		if req.LogDate != "" {
			updates["log_date"] = req.LogDate
		}
		if err := tx.Model(&entry).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&entry, logID).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteTimeLog removes one log entry.
func DeleteTimeLog(ctx context.Context, db *gorm.DB, logID int) error {
	res := db.WithContext(ctx).Delete(&models.TimeWorkLog{}, logID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFoundf("Time log not found")
	}
	return nil
}

// GetTimeLog loads one log entry.
func GetTimeLog(ctx context.Context, db *gorm.DB, logID int) (*models.TimeWorkLog, error) {
	var entry models.TimeWorkLog
	if err := db.WithContext(ctx).First(&entry, logID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Time log not found")
		}
		return nil, err
	}
	return &entry, nil
}

// ListTimeLogs returns log entries, optionally filtered by job, newest
// first.
func ListTimeLogs(ctx context.Context, db *gorm.DB, jobID *int) ([]models.TimeWorkLog, error) {
	q := db.WithContext(ctx).Order("id DESC")
	if jobID != nil {
		q = q.Where("job_id = ?", *jobID)
	}
	var entries []models.TimeWorkLog
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
