package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Habitat is an enclosure that receives donations. Its food supply is the
// cumulative amount that has been allocated to it.
type Habitat struct {
	DefaultModel
	Name        string `gorm:"uniqueIndex"`
	Description string
	FoodSupply  decimal.NullDecimal `gorm:"type:DECIMAL(20,8)"` // Absent until the habitat is first fed or set explicitly
	Version     uint                `gorm:"not null;default:0"` // Incremented on every food supply change
	Allocations []*Allocation       `json:"-"`
	Animals     []Animal            `json:"-"`
}

func (Habitat) Self() string {
	return "Habitat"
}

func (Habitat) Export() (json.RawMessage, error) {
	return export[Habitat]()
}

func (h *Habitat) BeforeSave(_ *gorm.DB) error {
	h.Name = strings.TrimSpace(h.Name)
	h.Description = strings.TrimSpace(h.Description)

	return nil
}

func (h *Habitat) BeforeCreate(tx *gorm.DB) error {
	if h.Name == "" {
		return ErrHabitatNameEmpty
	}

	return h.DefaultModel.BeforeCreate(tx)
}

func (h *Habitat) AfterSave(_ *gorm.DB) error {
	if h.FoodSupply.Valid && h.FoodSupply.Decimal.IsNegative() {
		return ErrHabitatFoodSupplyNegative
	}

	return nil
}

// Feed adds share to the food supply. An absent food supply counts as zero.
func (h *Habitat) Feed(share decimal.Decimal) {
	current := decimal.Zero
	if h.FoodSupply.Valid {
		current = h.FoodSupply.Decimal
	}

	h.FoodSupply = decimal.NewNullDecimal(current.Add(share))
}
