package repository

import (
	"context"
	"testing"

	"printpack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDocumentNumberStartsAboveFloor(t *testing.T) {
	db := newTestDB(t)

	first, err := NextDocumentNumber(db, CounterJob)
	require.NoError(t, err)
	assert.Equal(t, 18543, first)

	second, err := NextDocumentNumber(db, CounterJob)
	require.NoError(t, err)
	assert.Equal(t, 18544, second)
}

func TestNextDocumentNumberPerTypeSeries(t *testing.T) {
	db := newTestDB(t)

	tests := map[string]int{
		CounterJob:      18543,
		CounterInvoice:  5001,
		CounterEstimate: 6608,
		CounterProject:  2094,
	}
	for documentType, want := range tests {
		got, err := NextDocumentNumber(db, documentType)
		require.NoError(t, err)
		assert.Equal(t, want, got, documentType)
	}

	// Issuing from one series never moves another.
	next, err := NextDocumentNumber(db, CounterInvoice)
	require.NoError(t, err)
	assert.Equal(t, 5002, next)

	var jobCounter models.DocumentCounter
	require.NoError(t, db.Where("document_type = ?", CounterJob).First(&jobCounter).Error)
	assert.Equal(t, 18543, jobCounter.LastValue)
}

func TestNextDocumentNumberUnknownType(t *testing.T) {
	db := newTestDB(t)

	_, err := NextDocumentNumber(db, "receipt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReconcileCounterFloorsEmptyTables(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, ReconcileCounterFloors(db))

	// With no rows the counters park on the floor so the next issue lands
	// one above it.
	var counter models.DocumentCounter
	require.NoError(t, db.Where("document_type = ?", CounterJob).First(&counter).Error)
	assert.Equal(t, 18542, counter.LastValue)

	next, err := NextDocumentNumber(db, CounterJob)
	require.NoError(t, err)
	assert.Equal(t, 18543, next)
}

func TestReconcileCounterFloorsCatchesUpToData(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	seedJob(t, db, project.ID, 19000)

	require.NoError(t, ReconcileCounterFloors(db))

	next, err := NextDocumentNumber(db, CounterJob)
	require.NoError(t, err)
	assert.Equal(t, 19001, next)
}

func TestReconcileCounterFloorsNeverMovesBackwards(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.DocumentCounter{DocumentType: CounterJob, LastValue: 25000}).Error)

	require.NoError(t, ReconcileCounterFloors(db))

	var counter models.DocumentCounter
	require.NoError(t, db.Where("document_type = ?", CounterJob).First(&counter).Error)
	assert.Equal(t, 25000, counter.LastValue)
}

func TestCreateJobContinuesLegacyNumbering(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	seedJob(t, db, project.ID, 18542)
	seedJob(t, db, project.ID, 18900)

	// Startup reconciliation runs before any number is issued.
	require.NoError(t, ReconcileCounterFloors(db))

	job := models.Job{ProjectID: project.ID, BrandName: "Fizz"}
	require.NoError(t, CreateJob(context.Background(), db, &job))
	assert.Equal(t, 18901, job.JobNo)
}
