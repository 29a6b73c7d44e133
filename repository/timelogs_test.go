package repository

import (
	"context"
	"testing"

	"printpack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTimeLogSnapshotsAssignment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := seedProject(t, db)
	job := seedJob(t, db, project.ID, 18542)

	_, err := CreateAssignment(ctx, db, models.CreateAssignJobRequest{
		ProjectID:       project.ID,
		JobIDs:          []int{job.ID},
		EmployeeID:      intPtr(7),
		TaskDescription: "Print 500k sleeves",
		TimeBudget:      "16h",
	})
	require.NoError(t, err)

	entry, err := CreateTimeLog(ctx, db, models.TimeWorkLogRequest{
		LogDate:    "2025-02-14",
		EmployeeID: intPtr(7),
		JobID:      job.ID,
		ProjectID:  project.ID,
		TimeSpent:  7.5,
		Overtime:   1.5,
	})
	require.NoError(t, err)

	assert.InDelta(t, 9, entry.TotalTime, 1e-9)
	assert.Equal(t, "Print 500k sleeves", entry.TaskDescriptionSnapshot)
	assert.Equal(t, "16h", entry.TimeBudgetSnapshot)
}

func TestCreateTimeLogWithoutAssignment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := seedProject(t, db)
	job := seedJob(t, db, project.ID, 18542)

	entry, err := CreateTimeLog(ctx, db, models.TimeWorkLogRequest{
		LogDate:   "2025-02-14",
		JobID:     job.ID,
		ProjectID: project.ID,
		TimeSpent: 4,
	})
	require.NoError(t, err)
	assert.Empty(t, entry.TaskDescriptionSnapshot)
	assert.Empty(t, entry.TimeBudgetSnapshot)
	assert.InDelta(t, 4, entry.TotalTime, 1e-9)
}

func TestCreateTimeLogPicksLatestMatchingAssignment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := seedProject(t, db)
	job := seedJob(t, db, project.ID, 18542)

	_, err := CreateAssignment(ctx, db, models.CreateAssignJobRequest{
		ProjectID: project.ID, JobIDs: []int{job.ID}, EmployeeID: intPtr(7),
		TaskDescription: "Old round",
	})
	require.NoError(t, err)
	_, err = CreateAssignment(ctx, db, models.CreateAssignJobRequest{
		ProjectID: project.ID, JobIDs: []int{job.ID}, EmployeeID: intPtr(7),
		TaskDescription: "Rework round",
	})
	require.NoError(t, err)
	_, err = CreateAssignment(ctx, db, models.CreateAssignJobRequest{
		ProjectID: project.ID, JobIDs: []int{job.ID}, ProductionID: intPtr(3),
		TaskDescription: "Production round",
	})
	require.NoError(t, err)

	entry, err := CreateTimeLog(ctx, db, models.TimeWorkLogRequest{
		LogDate:    "2025-02-14",
		EmployeeID: intPtr(7),
		JobID:      job.ID,
		ProjectID:  project.ID,
		TimeSpent:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rework round", entry.TaskDescriptionSnapshot)
}

func TestCreateTimeLogValidation(t *testing.T) {
	db := newTestDB(t)
	_, err := CreateTimeLog(context.Background(), db, models.TimeWorkLogRequest{JobID: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateTimeLogKeepsSnapshotsFrozen(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := seedProject(t, db)
	job := seedJob(t, db, project.ID, 18542)

	assign, err := CreateAssignment(ctx, db, models.CreateAssignJobRequest{
		ProjectID: project.ID, JobIDs: []int{job.ID}, EmployeeID: intPtr(7),
		TaskDescription: "Original wording", TimeBudget: "8h",
	})
	require.NoError(t, err)

	entry, err := CreateTimeLog(ctx, db, models.TimeWorkLogRequest{
		LogDate: "2025-02-14", EmployeeID: intPtr(7), JobID: job.ID,
		ProjectID: project.ID, TimeSpent: 3,
	})
	require.NoError(t, err)

	// Mutate the assignment after the fact, then update the log.
	require.NoError(t, db.Model(&models.AssignJob{}).Where("id = ?", assign.ID).
		Update("task_description", "Rewritten wording").Error)

	updated, err := UpdateTimeLog(ctx, db, entry.ID, models.TimeWorkLogRequest{
		TimeSpent: 5, Overtime: 2,
	})
	require.NoError(t, err)

	assert.InDelta(t, 7, updated.TotalTime, 1e-9)
	assert.Equal(t, "Original wording", updated.TaskDescriptionSnapshot)
	assert.Equal(t, "8h", updated.TimeBudgetSnapshot)
}

func TestListTimeLogsByJob(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := seedProject(t, db)
	jobA := seedJob(t, db, project.ID, 18542)
	jobB := seedJob(t, db, project.ID, 18543)

	for _, jobID := range []int{jobA.ID, jobA.ID, jobB.ID} {
		_, err := CreateTimeLog(ctx, db, models.TimeWorkLogRequest{
			LogDate: "2025-02-14", JobID: jobID, ProjectID: project.ID, TimeSpent: 1,
		})
		require.NoError(t, err)
	}

	all, err := ListTimeLogs(ctx, db, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := ListTimeLogs(ctx, db, intPtr(jobA.ID))
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}

func TestDeleteTimeLog(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := seedProject(t, db)
	job := seedJob(t, db, project.ID, 18542)

	entry, err := CreateTimeLog(ctx, db, models.TimeWorkLogRequest{
		LogDate: "2025-02-14", JobID: job.ID, ProjectID: project.ID, TimeSpent: 1,
	})
	require.NoError(t, err)

	require.NoError(t, DeleteTimeLog(ctx, db, entry.ID))

	err = DeleteTimeLog(ctx, db, entry.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
