package repository

import (
	"context"
	"testing"

	"printpack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateProjectNumbersAndDefaults(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	project := models.Project{ProjectName: "Summer Cans", ClientID: 1}
	require.NoError(t, CreateProject(ctx, db, &project))

	assert.Equal(t, 2094, project.ProjectNo)
	assert.Equal(t, "medium", project.Priority)
	assert.Equal(t, "active", project.ProjectStatus)

	next := models.Project{ProjectName: "Winter Cartons", ClientID: 1}
	require.NoError(t, CreateProject(ctx, db, &next))
	assert.Equal(t, 2095, next.ProjectNo)
}

func TestCreateProjectValidation(t *testing.T) {
	db := newTestDB(t)
	err := CreateProject(context.Background(), db, &models.Project{ProjectName: "No client"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteProjectTearsDownJobs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	project := seedProject(t, db)
	job := seedJob(t, db, project.ID, 18542)

	_, err := CreateAssignment(ctx, db, models.CreateAssignJobRequest{
		ProjectID: project.ID, JobIDs: []int{job.ID}, ProductionID: intPtr(3),
	})
	require.NoError(t, err)
	_, err = CreateTimeLog(ctx, db, models.TimeWorkLogRequest{
		LogDate: "2025-02-14", JobID: job.ID, ProjectID: project.ID, TimeSpent: 1,
	})
	require.NoError(t, err)

	require.NoError(t, DeleteProject(ctx, db, project.ID))

	for name, count := range map[string]int64{
		"jobs":      tableCount(t, db, &models.Job{}),
		"assigns":   tableCount(t, db, &models.AssignJob{}),
		"items":     tableCount(t, db, &models.AssignJobItem{}),
		"time logs": tableCount(t, db, &models.TimeWorkLog{}),
	} {
		assert.Zero(t, count, name)
	}

	err = DeleteProject(ctx, db, project.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func tableCount(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestListProjectsByStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	active := models.Project{ProjectName: "Active one", ClientID: 1}
	require.NoError(t, CreateProject(ctx, db, &active))
	done := models.Project{ProjectName: "Done one", ClientID: 1, ProjectStatus: "completed"}
	require.NoError(t, CreateProject(ctx, db, &done))

	all, err := ListProjects(ctx, db, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	completed, err := ListProjects(ctx, db, "completed")
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "Done one", completed[0].ProjectName)
}
