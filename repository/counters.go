package repository

import (
	"database/sql"

	"printpack/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document counter types and the first number each series issues.
const (
	CounterJob      = "job"
	CounterInvoice  = "invoice"
	CounterEstimate = "estimate"
	CounterProject  = "project"
)

var counterFloors = map[string]int{
	CounterJob:      18542,
	CounterInvoice:  5000,
	CounterEstimate: 6607,
	CounterProject:  2093,
}

// NextDocumentNumber issues the next sequential number for a document type
// with an atomic increment on the counter row. The counter stores the last
// issued number, so an empty series starts one above its floor. Called inside
// the enclosing transaction so an aborted create never burns a number for
// readers of the same transaction's view.
func NextDocumentNumber(tx *gorm.DB, documentType string) (int, error) {
	floor, ok := counterFloors[documentType]
	if !ok {
		return 0, Validationf("unknown document counter type %q", documentType)
	}

	res := tx.Model(&models.DocumentCounter{}).
		Where("document_type = ?", documentType).
		UpdateColumn("last_value", gorm.Expr("last_value + 1"))
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		// First number in the series.
		seed := models.DocumentCounter{DocumentType: documentType, LastValue: floor + 1}
		ins := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed)
		if ins.Error != nil {
			return 0, ins.Error
		}
		if ins.RowsAffected == 1 {
			return floor + 1, nil
		}
		// Lost the seeding race to a concurrent create; increment normally.
		res = tx.Model(&models.DocumentCounter{}).
			Where("document_type = ?", documentType).
			UpdateColumn("last_value", gorm.Expr("last_value + 1"))
		if res.Error != nil {
			return 0, res.Error
		}
	}

	var counter models.DocumentCounter
	if err := tx.Where("document_type = ?", documentType).First(&counter).Error; err != nil {
		return 0, err
	}
	return counter.LastValue, nil
}

// ReconcileCounterFloors bumps any counter that has fallen behind the highest
// number already present in its table, so legacy rows at or above the floor
// never collide with freshly issued numbers. Run once at startup and from the
// maintenance cron.
func ReconcileCounterFloors(db *gorm.DB) error {
	tables := map[string]struct {
		table  string
		column string
	}{
		CounterJob:      {"jobs", "job_no"},
		CounterInvoice:  {"invoices", "invoice_no"},
		CounterEstimate: {"estimates", "estimate_no"},
		CounterProject:  {"projects", "project_no"},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for documentType, src := range tables {
			var maxNo sql.NullInt64
			row := tx.Table(src.table).Select("MAX(" + src.column + ")").Row()
			if err := row.Scan(&maxNo); err != nil {
				return err
			}
			target := counterFloors[documentType]
			if maxNo.Valid && int(maxNo.Int64) > target {
				target = int(maxNo.Int64)
			}

			res := tx.Model(&models.DocumentCounter{}).
				Where("document_type = ? AND last_value < ?", documentType, target).
				UpdateColumn("last_value", target)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				seed := models.DocumentCounter{DocumentType: documentType, LastValue: target}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
