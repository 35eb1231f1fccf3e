package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Donation is the header of a single funding event.
type Donation struct {
	DefaultModel
	ClientID    *uuid.UUID      // nil for anonymous donations
	Client      *Client         `json:"-"`
	Category    string          // Free-text label, e.g. "FOOD"
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Allocations []*Allocation   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (Donation) Self() string {
	return "Donation"
}

func (Donation) Export() (json.RawMessage, error) {
	return export[Donation]()
}

func (d *Donation) BeforeSave(_ *gorm.DB) error {
	d.Category = strings.TrimSpace(d.Category)

	return nil
}

func (d *Donation) AfterSave(_ *gorm.DB) error {
	if !d.Amount.IsPositive() {
		return ErrDonationAmountNotPositive
	}

	return nil
}

// AllocationFor returns the allocation of the donation to the habitat with
// the given ID, or nil if the donation has not been allocated to it yet.
func (d *Donation) AllocationFor(habitatID uuid.UUID) *Allocation {
	for _, a := range d.Allocations {
		if a.HabitatID == habitatID {
			return a
		}
	}

	return nil
}

// Allocated returns the sum of all allocations of the donation.
func (d *Donation) Allocated() decimal.Decimal {
	sum := decimal.Zero
	for _, a := range d.Allocations {
		sum = sum.Add(a.Amount)
	}

	return sum
}
