package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"printpack/models"

	"gorm.io/gorm"
)

// Role-level assignment statuses.
const (
	StatusInProgress    = "in_progress"
	StatusComplete      = "complete"
	StatusReject        = "reject"
	StatusReturn        = "return"
	StatusNotApplicable = "not_applicable"
)

// Job-level constants.
const (
	JobStatusActive  = "Active"
	NotAssignedLabel = "Not Assigned"
)

// CreateAssignment routes a set of jobs to a production user and/or an
// employee. Admin status starts in_progress; the routing below adjusts the
// other two roles and the job label:
//   - production only: production picks the work up, jobs carry the
//     production user's id as their assigned label.
//   - employee only: the work skips production entirely, so admin and
//     employee both land on complete and jobs are labelled "Employee-<id>".
//
// The assignment row, its membership rows, and the job updates commit
// atomically. Job ids that do not exist simply match no rows.
func CreateAssignment(ctx context.Context, db *gorm.DB, req models.CreateAssignJobRequest) (*models.AssignJob, error) {
	if req.ProjectID == 0 || len(req.JobIDs) == 0 || (req.EmployeeID == nil && req.ProductionID == nil) {
		return nil, Validationf("Required fields missing")
	}

	assign := models.AssignJob{
		ProjectID:        req.ProjectID,
		EmployeeID:       req.EmployeeID,
		ProductionID:     req.ProductionID,
		TaskDescription:  req.TaskDescription,
		TimeBudget:       req.TimeBudget,
		AdminStatus:      StatusInProgress,
		ProductionStatus: StatusNotApplicable,
		EmployeeStatus:   StatusNotApplicable,
	}
	assignedLabel := NotAssignedLabel

	switch {
	case req.ProductionID != nil && req.EmployeeID == nil:
		assign.ProductionStatus = StatusInProgress
		assignedLabel = strconv.Itoa(*req.ProductionID)
	case req.EmployeeID != nil && req.ProductionID == nil:
		assign.AdminStatus = StatusComplete
		assign.EmployeeStatus = StatusComplete
		assignedLabel = fmt.Sprintf("Employee-%d", *req.EmployeeID)
	}

	jobIDs := dedupIDs(req.JobIDs)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&assign).Error; err != nil {
			return err
		}

		items := make([]models.AssignJobItem, 0, len(jobIDs))
		for _, jobID := range jobIDs {
			items = append(items, models.AssignJobItem{AssignJobID: assign.ID, JobID: jobID})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		return tx.Model(&models.Job{}).
			Where("id IN ?", jobIDs).
			Updates(map[string]interface{}{
				"job_status": StatusInProgress,
				"assigned":   assignedLabel,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &assign, nil
}

// AssignToEmployee hands a batch of assignments from production to an
// employee: each assignment's employee side goes in_progress and every job
// reachable through the membership table is relabelled with the employee id.
func AssignToEmployee(ctx context.Context, db *gorm.DB, assignJobIDs []int, employeeID *int) error {
	if len(assignJobIDs) == 0 || employeeID == nil {
		return Validationf("Required fields missing")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.AssignJob{}).
			Where("id IN ?", assignJobIDs).
			Updates(map[string]interface{}{
				"employee_id":     *employeeID,
				"employee_status": StatusInProgress,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NotFoundf("Assign jobs not found")
		}

		jobIDs, err := memberJobIDs(tx, assignJobIDs)
		if err != nil {
			return err
		}
		if len(jobIDs) == 0 {
			return nil
		}

		return tx.Model(&models.Job{}).
			Where("id IN ?", jobIDs).
			Updates(map[string]interface{}{
				"assigned":   strconv.Itoa(*employeeID),
				"job_status": StatusInProgress,
			}).Error
	})
}

// EmployeeComplete marks one job of an assignment done. The assignment's
// employee and production statuses both move to complete, but only the named
// job is closed out; sibling jobs under the same assignment keep their state.
func EmployeeComplete(ctx context.Context, db *gorm.DB, assignJobID, jobID int) error {
	return employeeAction(ctx, db, assignJobID, jobID, StatusComplete)
}

// EmployeeReject is the rejection twin of EmployeeComplete.
func EmployeeReject(ctx context.Context, db *gorm.DB, assignJobID, jobID int) error {
	return employeeAction(ctx, db, assignJobID, jobID, StatusReject)
}

func employeeAction(ctx context.Context, db *gorm.DB, assignJobID, jobID int, status string) error {
	if assignJobID == 0 || jobID == 0 {
		return Validationf("Required fields missing")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.AssignJob{}).
			Where("id = ?", assignJobID).
			Updates(map[string]interface{}{
				"employee_status":   status,
				"production_status": status,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NotFoundf("Assign job not found")
		}

		return tx.Model(&models.Job{}).
			Where("id = ?", jobID).
			Updates(map[string]interface{}{
				"job_status": status,
				"assigned":   NotAssignedLabel,
			}).Error
	})
}

// ProductionComplete closes the production side of one assignment. This does
// not cascade to the jobs table: the jobs stay with the employee until the
// employee-level complete runs against them.
func ProductionComplete(ctx context.Context, db *gorm.DB, assignJobID int) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assign models.AssignJob
		if err := tx.First(&assign, assignJobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("Assign job not found")
			}
			return err
		}

		return tx.Model(&models.AssignJob{}).
			Where("id = ?", assignJobID).
			Updates(map[string]interface{}{
				"admin_status":      StatusComplete,
				"production_status": StatusComplete,
			}).Error
	})
}

// ProductionReturn sends a batch of assignments back: the assignments and
// every job they reference move to "return" and the jobs become unassigned.
func ProductionReturn(ctx context.Context, db *gorm.DB, assignJobIDs []int) error {
	return productionBatchAction(ctx, db, assignJobIDs, StatusReturn)
}

// ProductionReject is the rejection twin of ProductionReturn.
func ProductionReject(ctx context.Context, db *gorm.DB, assignJobIDs []int) error {
	return productionBatchAction(ctx, db, assignJobIDs, StatusReject)
}

func productionBatchAction(ctx context.Context, db *gorm.DB, assignJobIDs []int, status string) error {
	if len(assignJobIDs) == 0 {
		return Validationf("Required fields missing")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.AssignJob{}).
			Where("id IN ?", assignJobIDs).
			Updates(map[string]interface{}{
				"admin_status":      status,
				"production_status": status,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NotFoundf("Assign jobs not found")
		}

		jobIDs, err := memberJobIDs(tx, assignJobIDs)
		if err != nil {
			return err
		}
		if len(jobIDs) == 0 {
			return nil
		}

		return tx.Model(&models.Job{}).
			Where("id IN ?", jobIDs).
			Updates(map[string]interface{}{
				"assigned":   NotAssignedLabel,
				"job_status": status,
			}).Error
	})
}

// DeleteAssignment removes an assignment and its membership rows. Jobs keep
// whatever state they had.
func DeleteAssignment(ctx context.Context, db *gorm.DB, assignJobID int) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assign_job_id = ?", assignJobID).Delete(&models.AssignJobItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.AssignJob{}, assignJobID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NotFoundf("Assign job not found")
		}
		return nil
	})
}

// GetAssignment loads one assignment with its membership expanded.
func GetAssignment(ctx context.Context, db *gorm.DB, assignJobID int) (*models.AssignJobResponse, error) {
	var assign models.AssignJob
	if err := db.WithContext(ctx).First(&assign, assignJobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Assign job not found")
		}
		return nil, err
	}
	responses, err := expandAssignments(db.WithContext(ctx), []models.AssignJob{assign})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// ListAssignments returns all assignments, newest first, with membership and
// job detail expanded.
func ListAssignments(ctx context.Context, db *gorm.DB) ([]models.AssignJobResponse, error) {
	return listAssignments(ctx, db, nil)
}

// ListAssignmentsByEmployee filters to one employee's assignments.
func ListAssignmentsByEmployee(ctx context.Context, db *gorm.DB, employeeID int) ([]models.AssignJobResponse, error) {
	return listAssignments(ctx, db, func(q *gorm.DB) *gorm.DB {
		return q.Where("employee_id = ?", employeeID)
	})
}

// ListAssignmentsByProduction filters to one production user's assignments.
func ListAssignmentsByProduction(ctx context.Context, db *gorm.DB, productionID int) ([]models.AssignJobResponse, error) {
	return listAssignments(ctx, db, func(q *gorm.DB) *gorm.DB {
		return q.Where("production_id = ?", productionID)
	})
}

// ListProductionJobsByStatus returns the per-job worklist of one production
// user, restricted to assignments already handed to an employee and to jobs
// in the given status.
func ListProductionJobsByStatus(ctx context.Context, db *gorm.DB, productionID int, status string) ([]models.ProductionJobRow, error) {
	rows := []models.ProductionJobRow{}
	err := db.WithContext(ctx).Table("assign_jobs").
		Select(`assign_jobs.id AS assign_job_id,
			jobs.job_no, jobs.job_status AS status, jobs.priority, jobs.pack_size,
			projects.project_name, projects.project_no,
			jobs.brand_name, jobs.sub_brand, jobs.flavour, jobs.pack_type, jobs.pack_code,
			assign_jobs.time_budget AS total_time, jobs.assigned AS assigned_to`).
		Joins("JOIN assign_job_items ON assign_job_items.assign_job_id = assign_jobs.id").
		Joins("JOIN jobs ON jobs.id = assign_job_items.job_id").
		Joins("JOIN projects ON projects.id = jobs.project_id").
		Where("assign_jobs.production_id = ? AND assign_jobs.employee_id IS NOT NULL AND jobs.job_status = ?", productionID, status).
		Order("assign_jobs.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func listAssignments(ctx context.Context, db *gorm.DB, filter func(*gorm.DB) *gorm.DB) ([]models.AssignJobResponse, error) {
	q := db.WithContext(ctx).Order("id DESC")
	if filter != nil {
		q = filter(q)
	}
	var assigns []models.AssignJob
	if err := q.Find(&assigns).Error; err != nil {
		return nil, err
	}
	return expandAssignments(db.WithContext(ctx), assigns)
}

func expandAssignments(db *gorm.DB, assigns []models.AssignJob) ([]models.AssignJobResponse, error) {
	responses := make([]models.AssignJobResponse, 0, len(assigns))
	if len(assigns) == 0 {
		return responses, nil
	}

	assignIDs := make([]int, 0, len(assigns))
	for _, a := range assigns {
		assignIDs = append(assignIDs, a.ID)
	}

	var items []models.AssignJobItem
	if err := db.Where("assign_job_id IN ?", assignIDs).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}

	membership := make(map[int][]int, len(assigns))
	allJobIDs := make([]int, 0, len(items))
	for _, item := range items {
		membership[item.AssignJobID] = append(membership[item.AssignJobID], item.JobID)
		allJobIDs = append(allJobIDs, item.JobID)
	}

	jobsByID := make(map[int]models.Job)
	if len(allJobIDs) > 0 {
		var jobs []models.Job
		if err := db.Where("id IN ?", dedupIDs(allJobIDs)).Find(&jobs).Error; err != nil {
			return nil, err
		}
		for _, j := range jobs {
			jobsByID[j.ID] = j
		}
	}

	for _, a := range assigns {
		resp := models.AssignJobResponse{
			ID:               a.ID,
			ProjectID:        a.ProjectID,
			JobIDs:           membership[a.ID],
			EmployeeID:       a.EmployeeID,
			ProductionID:     a.ProductionID,
			TaskDescription:  a.TaskDescription,
			TimeBudget:       a.TimeBudget,
			AdminStatus:      a.AdminStatus,
			ProductionStatus: a.ProductionStatus,
			EmployeeStatus:   a.EmployeeStatus,
			CreatedAt:        a.CreatedAt,
			UpdatedAt:        a.UpdatedAt,
		}
		if resp.JobIDs == nil {
			resp.JobIDs = []int{}
		}
		for _, jobID := range resp.JobIDs {
			if job, ok := jobsByID[jobID]; ok {
				resp.Jobs = append(resp.Jobs, job)
			}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// memberJobIDs unions the job ids referenced by a set of assignments,
// deduplicated.
func memberJobIDs(tx *gorm.DB, assignJobIDs []int) ([]int, error) {
	var jobIDs []int
	res := tx.Model(&models.AssignJobItem{}).
		Where("assign_job_id IN ?", assignJobIDs).
		Distinct().
		Pluck("job_id", &jobIDs)
	if res.Error != nil {
		return nil, res.Error
	}
	return jobIDs, nil
}

func dedupIDs(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
