package ledger

import (
	"time"

	"github.com/chabatake/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductionBatch is the root entity of the ledger: one recorded production
// run of a given tea category, date and quantity. Batches are immutable once
// recorded, except for the quality fields, and are never deleted because
// shipments and the inventory balance reference them.
type ProductionBatch struct {
	shared.BaseEntity
	TeaCategory    TeaCategory     `gorm:"type:varchar(32);not null;index"`
	ProductionDate time.Time       `gorm:"type:date;not null;index"`
	Quantity       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	QualityGrade   *QualityGrade   `gorm:"type:varchar(8)"`
	QualityNotes   string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductionBatch) TableName() string {
	return "production_batches"
}

// NewProductionBatch validates inputs and creates a batch ready to be
// persisted. The production date defaults to today when zero.
func NewProductionBatch(category TeaCategory, productionDate time.Time, quantity decimal.Decimal, grade *QualityGrade) (*ProductionBatch, error) {
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown tea category: "+category.String())
	}
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	if grade != nil && !grade.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown quality grade: "+grade.String())
	}
	if productionDate.IsZero() {
		productionDate = time.Now()
	}

	return &ProductionBatch{
		TeaCategory:    category,
		ProductionDate: DateOf(productionDate),
		Quantity:       quantity,
		QualityGrade:   grade,
	}, nil
}

// SetQuality replaces the quality grade and notes. Other batch fields stay
// immutable after creation.
func (b *ProductionBatch) SetQuality(grade QualityGrade, notes string) error {
	if !grade.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "unknown quality grade: "+grade.String())
	}
	b.QualityGrade = &grade
	b.QualityNotes = notes
	return nil
}

// IsGradeA reports whether the batch has been graded A.
func (b *ProductionBatch) IsGradeA() bool {
	return b.QualityGrade != nil && *b.QualityGrade == GradeA
}

// ValidateQuantity checks that a quantity is positive and carries at most
// two decimal places, the precision of the ledger columns.
func ValidateQuantity(q decimal.Decimal) error {
	if q.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "quantity must be positive")
	}
	if !q.Equal(q.Round(2)) {
		return shared.NewDomainError("INVALID_INPUT", "quantity must have at most two decimal places")
	}
	return nil
}

// DateOf truncates a timestamp to its calendar date in UTC. Ledger dates
// carry no time component.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
