package repository

import (
	"context"
	"testing"

	"printpack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJobNumbersAndDefaults(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := seedProject(t, db)

	job := models.Job{ProjectID: project.ID, BrandName: "Fizz", Priority: "HIGH"}
	require.NoError(t, CreateJob(ctx, db, &job))

	assert.Equal(t, 18543, job.JobNo)
	assert.Equal(t, "high", job.Priority)
	assert.Equal(t, JobStatusActive, job.JobStatus)
	assert.Equal(t, NotAssignedLabel, job.Assigned)

	second := models.Job{ProjectID: project.ID}
	require.NoError(t, CreateJob(ctx, db, &second))
	assert.Equal(t, 18544, second.JobNo)
	assert.Equal(t, "medium", second.Priority)
}

func TestCreateJobUnknownProject(t *testing.T) {
	db := newTestDB(t)
	err := CreateJob(context.Background(), db, &models.Job{ProjectID: 99})
	require.Error(t, err)
	assert.Equal(t, "Project not found", UserMessage(err))
}

func TestUpdateJobLeavesStateMachineFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := seedProject(t, db)
	job := seedJob(t, db, project.ID, 18542)

	_, err := CreateAssignment(ctx, db, models.CreateAssignJobRequest{
		ProjectID: project.ID, JobIDs: []int{job.ID}, ProductionID: intPtr(3),
	})
	require.NoError(t, err)

	_, err = UpdateJob(ctx, db, job.ID, &models.Job{
		BrandName: "Pop", Flavour: "Cola", Priority: "low",
		JobStatus: "complete", Assigned: "tampered",
	})
	require.NoError(t, err)

	got := loadJob(t, db, job.ID)
	assert.Equal(t, "Pop", got.BrandName)
	assert.Equal(t, "low", got.Priority)
	// Status and label stay with the assignment state machine.
	assert.Equal(t, StatusInProgress, got.JobStatus)
	assert.Equal(t, "3", got.Assigned)
}

func TestDeleteJobShrinksAssignment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := seedProject(t, db)
	jobA := seedJob(t, db, project.ID, 18542)
	jobB := seedJob(t, db, project.ID, 18543)

	assign, err := CreateAssignment(ctx, db, models.CreateAssignJobRequest{
		ProjectID: project.ID, JobIDs: []int{jobA.ID, jobB.ID}, ProductionID: intPtr(3),
	})
	require.NoError(t, err)

	require.NoError(t, DeleteJob(ctx, db, jobA.ID))

	// The assignment survives with the remaining member.
	resp, err := GetAssignment(ctx, db, assign.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{jobB.ID}, resp.JobIDs)
}

func TestDeleteJobRemovesEmptiedAssignment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := seedProject(t, db)
	job := seedJob(t, db, project.ID, 18542)

	assign, err := CreateAssignment(ctx, db, models.CreateAssignJobRequest{
		ProjectID: project.ID, JobIDs: []int{job.ID}, ProductionID: intPtr(3),
	})
	require.NoError(t, err)

	_, err = CreateTimeLog(ctx, db, models.TimeWorkLogRequest{
		LogDate: "2025-02-14", JobID: job.ID, ProjectID: project.ID, TimeSpent: 1,
	})
	require.NoError(t, err)

	require.NoError(t, DeleteJob(ctx, db, job.ID))

	_, err = GetAssignment(ctx, db, assign.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var logCount int64
	require.NoError(t, db.Model(&models.TimeWorkLog{}).Where("job_id = ?", job.ID).Count(&logCount).Error)
	assert.Zero(t, logCount)

	err = DeleteJob(ctx, db, job.ID)
	require.Error(t, err)
	assert.Equal(t, "Job not found or already deleted", UserMessage(err))
}

func TestListJobsByProjectJoinsLatestAssignment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := seedProject(t, db)
	jobA := seedJob(t, db, project.ID, 18542)
	jobB := seedJob(t, db, project.ID, 18543)

	_, err := CreateAssignment(ctx, db, models.CreateAssignJobRequest{
		ProjectID: project.ID, JobIDs: []int{jobA.ID}, ProductionID: intPtr(3),
		TaskDescription: "First pass", TimeBudget: "8h",
	})
	require.NoError(t, err)
	_, err = CreateAssignment(ctx, db, models.CreateAssignJobRequest{
		ProjectID: project.ID, JobIDs: []int{jobA.ID}, ProductionID: intPtr(3),
		TaskDescription: "Rework", TimeBudget: "4h",
	})
	require.NoError(t, err)

	rows, err := ListJobsByProject(ctx, db, project.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := make(map[int]models.JobWithAssignment, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	assert.Equal(t, "Rework", byID[jobA.ID].TaskDescription)
	assert.Equal(t, "4h", byID[jobA.ID].TimeBudget)
	// Unassigned jobs still show up, with empty assignment columns.
	assert.Empty(t, byID[jobB.ID].TaskDescription)
}

func TestJobHistoryByProductionAndEmployee(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := seedProject(t, db)
	job := seedJob(t, db, project.ID, 18542)

	assign, err := CreateAssignment(ctx, db, models.CreateAssignJobRequest{
		ProjectID:    project.ID,
		JobIDs:       []int{job.ID},
		ProductionID: intPtr(3),
		TimeBudget:   "8h",
	})
	require.NoError(t, err)
	require.NoError(t, AssignToEmployee(ctx, db, []int{assign.ID}, intPtr(7)))

	prodRows, err := JobHistoryByProduction(ctx, db, 3)
	require.NoError(t, err)
	require.Len(t, prodRows, 1)
	assert.Equal(t, job.JobNo, prodRows[0].JobNo)
	assert.Equal(t, project.ProjectName, prodRows[0].ProjectName)
	assert.Equal(t, "8h", prodRows[0].TotalTime)
	assert.Equal(t, StatusInProgress, prodRows[0].Status)

	empRows, err := JobHistoryByEmployee(ctx, db, 7)
	require.NoError(t, err)
	require.Len(t, empRows, 1)
	assert.Equal(t, StatusInProgress, empRows[0].Status)

	other, err := JobHistoryByEmployee(ctx, db, 99)
	require.NoError(t, err)
	assert.Empty(t, other)
}
