package repository

import (
	"testing"

	"printpack/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Project{},
		&models.Job{},
		&models.AssignJob{},
		&models.AssignJobItem{},
		&models.Estimate{},
		&models.PurchaseOrder{},
		&models.Invoice{},
		&models.TimeWorkLog{},
		&models.Client{},
		&models.DocumentCounter{},
	))
	return db
}

func seedProject(t *testing.T, db *gorm.DB) models.Project {
	t.Helper()
	project := models.Project{
		ProjectNo:     2100,
		ProjectName:   "Spring Sleeve Run",
		ClientID:      1,
		Priority:      "medium",
		ProjectStatus: "active",
	}
	require.NoError(t, db.Create(&project).Error)
	return project
}

func seedJob(t *testing.T, db *gorm.DB, projectID, jobNo int) models.Job {
	t.Helper()
	job := models.Job{
		JobNo:     jobNo,
		ProjectID: projectID,
		BrandName: "Fizz",
		PackType:  "Sleeve",
		Priority:  "medium",
		JobStatus: JobStatusActive,
		Assigned:  NotAssignedLabel,
	}
	require.NoError(t, db.Create(&job).Error)
	return job
}

func intPtr(v int) *int { return &v }

func loadJob(t *testing.T, db *gorm.DB, id int) models.Job {
	t.Helper()
	var job models.Job
	require.NoError(t, db.First(&job, id).Error)
	return job
}

func loadAssign(t *testing.T, db *gorm.DB, id int) models.AssignJob {
	t.Helper()
	var assign models.AssignJob
	require.NoError(t, db.First(&assign, id).Error)
	return assign
}

func loadEstimate(t *testing.T, db *gorm.DB, id int) models.Estimate {
	t.Helper()
	var estimate models.Estimate
	require.NoError(t, db.First(&estimate, id).Error)
	return estimate
}
