package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Allocation is the portion of a donation assigned to one habitat.
//
// There is at most one allocation per donation and habitat.
type Allocation struct {
	DefaultModel
	DonationID uuid.UUID       `gorm:"uniqueIndex:allocation_donation_habitat"`
	Donation   *Donation       `json:"-"`
	HabitatID  uuid.UUID       `gorm:"uniqueIndex:allocation_donation_habitat"`
	Habitat    *Habitat        `json:"-"`
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (Allocation) Self() string {
	return "Allocation"
}

func (Allocation) Export() (json.RawMessage, error) {
	return export[Allocation]()
}

func (a *Allocation) AfterSave(_ *gorm.DB) error {
	if a.Amount.IsNegative() {
		return ErrAllocationAmountNegative
	}

	return nil
}
