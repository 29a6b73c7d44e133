package repository

import (
	"errors"
	"testing"

	"printpack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.DocumentCounter{DocumentType: CounterJob, LastValue: 1}).Error)
	err := db.Create(&models.DocumentCounter{DocumentType: CounterJob, LastValue: 2}).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))

	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(errors.New(`pq: duplicate key value violates unique constraint "brands_brand_name_key"`)))
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(errors.New("connection refused")))
}
