package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Animal lives in at most one habitat and can be favorited by clients.
type Animal struct {
	DefaultModel
	Name        string
	Species     string
	Age         int
	Weight      int
	Height      int
	HabitatID   *uuid.UUID
	Habitat     *Habitat  `json:"-"`
	FavoritedBy []*Client `json:"-" gorm:"many2many:client_favorites"`
}

func (Animal) Self() string {
	return "Animal"
}

func (Animal) Export() (json.RawMessage, error) {
	return export[Animal]()
}

func (a *Animal) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Species = strings.TrimSpace(a.Species)

	return nil
}

func (a *Animal) BeforeCreate(tx *gorm.DB) error {
	if a.Name == "" {
		return ErrAnimalNameEmpty
	}

	return a.DefaultModel.BeforeCreate(tx)
}
