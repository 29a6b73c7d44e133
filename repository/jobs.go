package repository

import (
	"context"
	"errors"
	"strings"

	"printpack/models"

	"gorm.io/gorm"
)

// CreateJob inserts a job under an existing project. The job number comes
// from the job counter; priority is lowercased with a "medium" default.
func CreateJob(ctx context.Context, db *gorm.DB, job *models.Job) error {
	if job.ProjectID == 0 {
		return Validationf("Required fields missing")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, job.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("Project not found")
			}
			return err
		}

		jobNo, err := NextDocumentNumber(tx, CounterJob)
		if err != nil {
			return err
		}
		job.JobNo = jobNo

		job.Priority = strings.ToLower(strings.TrimSpace(job.Priority))
		if job.Priority == "" {
			job.Priority = "medium"
		}
		if job.JobStatus == "" {
			job.JobStatus = JobStatusActive
		}
		if job.Assigned == "" {
			job.Assigned = NotAssignedLabel
		}

		return tx.Create(job).Error
	})
}

// UpdateJob overwrites the descriptive fields of a job. Status and the
// assigned label are owned by the assignment state machine and are not
// touched here.
func UpdateJob(ctx context.Context, db *gorm.DB, jobID int, updated *models.Job) (*models.Job, error) {
	var job models.Job
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("Job not found")
			}
			return err
		}

		priority := strings.ToLower(strings.TrimSpace(updated.Priority))
		if priority == "" {
			priority = "medium"
		}

		return tx.Model(&job).Updates(map[string]interface{}{
			"brand_name": updated.BrandName,
			"sub_brand":  updated.SubBrand,
			"flavour":    updated.Flavour,
			"pack_type":  updated.PackType,
			"pack_code":  updated.PackCode,
			"pack_size":  updated.PackSize,
			"priority":   priority,
			"barcode":    updated.Barcode,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob removes a job and everything hanging off it, atomically: its
// time logs go first, then the job is pulled out of every assignment that
// references it (assignments left with no jobs are deleted), then the job
// row itself.
func DeleteJob(ctx context.Context, db *gorm.DB, jobID int) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", jobID).Delete(&models.TimeWorkLog{}).Error; err != nil {
			return err
		}

		var assignIDs []int
		if err := tx.Model(&models.AssignJobItem{}).
			Where("job_id = ?", jobID).
			Distinct().
			Pluck("assign_job_id", &assignIDs).Error; err != nil {
			return err
		}

		if err := tx.Where("job_id = ?", jobID).Delete(&models.AssignJobItem{}).Error; err != nil {
			return err
		}

		for _, assignID := range assignIDs {
			var remaining int64
			if err := tx.Model(&models.AssignJobItem{}).
				Where("assign_job_id = ?", assignID).
				Count(&remaining).Error; err != nil {
				return err
			}
			if remaining == 0 {
				if err := tx.Delete(&models.AssignJob{}, assignID).Error; err != nil {
					return err
				}
			}
		}

		res := tx.Delete(&models.Job{}, jobID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NotFoundf("Job not found or already deleted")
		}
		return nil
	})
}

// GetJob loads one job.
func GetJob(ctx context.Context, db *gorm.DB, jobID int) (*models.Job, error) {
	var job models.Job
	if err := db.WithContext(ctx).First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Job not found")
		}
		return nil, err
	}
	return &job, nil
}

// ListJobs returns all jobs, newest first.
func ListJobs(ctx context.Context, db *gorm.DB) ([]models.Job, error) {
	var jobs []models.Job
	if err := db.WithContext(ctx).Order("id DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// JobHistoryByProduction returns every job a production user has been routed,
// one row per assignment membership, with the assignment's production status.
// Ordered by the project's end date so the most pressing work comes first.
func JobHistoryByProduction(ctx context.Context, db *gorm.DB, productionID int) ([]models.JobHistoryRow, error) {
	return jobHistory(ctx, db, "assign_jobs.production_id = ?", "assign_jobs.production_status", productionID)
}

// JobHistoryByEmployee is the employee-side twin: it filters on the
// assignment's employee and reports the employee status.
func JobHistoryByEmployee(ctx context.Context, db *gorm.DB, employeeID int) ([]models.JobHistoryRow, error) {
	return jobHistory(ctx, db, "assign_jobs.employee_id = ?", "assign_jobs.employee_status", employeeID)
}

func jobHistory(ctx context.Context, db *gorm.DB, where, statusColumn string, userID int) ([]models.JobHistoryRow, error) {
	rows := []models.JobHistoryRow{}
	err := db.WithContext(ctx).Table("assign_jobs").
		Select(`jobs.job_no, projects.project_name,
			jobs.brand_name, jobs.sub_brand, jobs.flavour, jobs.pack_type, jobs.pack_size, jobs.pack_code,
			jobs.priority, projects.end_date AS due_date,
			jobs.assigned AS assigned_to, assign_jobs.time_budget AS total_time,
			`+statusColumn+` AS status`).
		Joins("LEFT JOIN assign_job_items ON assign_job_items.assign_job_id = assign_jobs.id").
		Joins("LEFT JOIN jobs ON jobs.id = assign_job_items.job_id").
		Joins("LEFT JOIN projects ON projects.id = assign_jobs.project_id").
		Where(where, userID).
		Order("projects.end_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListJobsByProject returns a project's jobs, each joined with the task
// description and time budget of its most recent assignment.
func ListJobsByProject(ctx context.Context, db *gorm.DB, projectID int) ([]models.JobWithAssignment, error) {
	latest := db.Table("assign_job_items").
		Select("job_id, MAX(assign_job_id) AS assign_job_id").
		Group("job_id")

	var rows []models.JobWithAssignment
	err := db.WithContext(ctx).Table("jobs").
		Select("jobs.*, COALESCE(aj.task_description, '') AS task_description, COALESCE(aj.time_budget, '') AS time_budget").
		Joins("LEFT JOIN (?) latest ON latest.job_id = jobs.id", latest).
		Joins("LEFT JOIN assign_jobs aj ON aj.id = latest.assign_job_id").
		Where("jobs.project_id = ?", projectID).
		Order("jobs.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
