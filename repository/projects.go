package repository

import (
	"context"
	"errors"
	"strings"

	"printpack/models"

	"gorm.io/gorm"
)

// CreateProject inserts a project with a counter-issued project number.
func CreateProject(ctx context.Context, db *gorm.DB, project *models.Project) error {
	if project.ProjectName == "" || project.ClientID == 0 {
		return Validationf("Required fields missing")
	}

	project.Priority = strings.ToLower(strings.TrimSpace(project.Priority))
	if project.Priority == "" {
		project.Priority = "medium"
	}
	if project.ProjectStatus == "" {
		project.ProjectStatus = "active"
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projectNo, err := NextDocumentNumber(tx, CounterProject)
		if err != nil {
			return err
		}
		project.ProjectNo = projectNo
		return tx.Create(project).Error
	})
}

// UpdateProject overwrites mutable project fields.
func UpdateProject(ctx context.Context, db *gorm.DB, projectID int, updated *models.Project) (*models.Project, error) {
	var project models.Project
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("Project not found")
			}
			return err
		}

		priority := strings.ToLower(strings.TrimSpace(updated.Priority))
		if priority == "" {
			priority = project.Priority
		}
		status := updated.ProjectStatus
		if status == "" {
			status = project.ProjectStatus
		}

		updates := map[string]interface{}{
			"priority":             priority,
			"project_status":       status,
			"budget":               updated.Budget,
			"currency":             updated.Currency,
			"start_date":           updated.StartDate,
			"end_date":             updated.EndDate,
			"project_requirements": updated.ProjectRequirements,
			"notes":                updated.Notes,
		}
		if updated.ProjectName != "" {
			updates["project_name"] = updated.ProjectName
		}
		if updated.ClientID != 0 {
			updates["client_id"] = updated.ClientID
		}
		if err := tx.Model(&project).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&project, projectID).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject removes a project row. Jobs under the project are removed
// through DeleteJob, which also cleans their assignments and time logs; a
// bulk project teardown walks its jobs first.
func DeleteProject(ctx context.Context, db *gorm.DB, projectID int) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var jobIDs []int
		if err := tx.Model(&models.Job{}).
			Where("project_id = ?", projectID).
			Pluck("id", &jobIDs).Error; err != nil {
			return err
		}
		for _, jobID := range jobIDs {
			if err := DeleteJob(ctx, tx, jobID); err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Project{}, projectID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NotFoundf("Project not found")
		}
		return nil
	})
}

// GetProject loads one project.
func GetProject(ctx context.Context, db *gorm.DB, projectID int) (*models.Project, error) {
	var project models.Project
	if err := db.WithContext(ctx).First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Project not found")
		}
		return nil, err
	}
	return &project, nil
}

// ListProjects returns projects, optionally filtered by status, newest
// first.
func ListProjects(ctx context.Context, db *gorm.DB, status string) ([]models.Project, error) {
	q := db.WithContext(ctx).Order("id DESC")
	if status != "" {
		q = q.Where("project_status = ?", status)
	}
	var projects []models.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
