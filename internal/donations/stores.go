package donations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/habitat-fund/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HabitatStore holds habitats keyed by their unique name.
type HabitatStore interface {
	FindByName(ctx context.Context, name string) (*models.Habitat, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Habitat, error)

	// SaveAll persists the food supply of all habitats. It fails with
	// ErrConcurrentUpdate if any habitat has been changed since it was read.
	SaveAll(ctx context.Context, habitats []*models.Habitat) error
}

// ClientStore holds donors keyed by their unique username.
type ClientStore interface {
	FindByUsername(ctx context.Context, username string) (*models.Client, error)
}

// DonationLedger stores donation headers and their allocations.
type DonationLedger interface {
	// Save creates the donation on first save, assigning its ID, and
	// persists all of its allocations.
	Save(ctx context.Context, donation *models.Donation) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Donation, error)
}

// Stores bundles the stores taking part in a unit of work.
type Stores struct {
	Habitats  HabitatStore
	Clients   ClientStore
	Donations DonationLedger
}

// UnitOfWork runs fn atomically. If fn returns an error, none of its
// changes are visible afterwards.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(Stores) error) error
}

// GormUnitOfWork runs units of work in database transactions.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) GormUnitOfWork {
	return GormUnitOfWork{db: db}
}

func (u GormUnitOfWork) Do(ctx context.Context, fn func(Stores) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(GormStores(tx))
	})
}

// GormStores returns stores backed by db.
func GormStores(db *gorm.DB) Stores {
	return Stores{
		Habitats:  gormHabitats{db},
		Clients:   gormClients{db},
		Donations: gormLedger{db},
	}
}

type gormHabitats struct {
	db *gorm.DB
}

// query returns a query that locks the selected habitat rows until the
// end of the transaction where the database supports it.
func (s gormHabitats) query(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	if s.db.Dialector.Name() == models.PostgresDialect {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	return q
}

func (s gormHabitats) FindByName(ctx context.Context, name string) (*models.Habitat, error) {
	var habitat models.Habitat
	err := s.query(ctx).Where("name = ?", name).First(&habitat).Error
	if isNotFound(err) {
		return nil, notFound("habitat", "name", name)
	} else if err != nil {
		return nil, err
	}

	return &habitat, nil
}

func (s gormHabitats) FindByID(ctx context.Context, id uuid.UUID) (*models.Habitat, error) {
	var habitat models.Habitat
	err := s.query(ctx).Where("id = ?", id).First(&habitat).Error
	if isNotFound(err) {
		return nil, notFound("habitat", "id", id.String())
	} else if err != nil {
		return nil, err
	}

	return &habitat, nil
}

func (s gormHabitats) SaveAll(ctx context.Context, habitats []*models.Habitat) error {
	for _, habitat := range habitats {
		current := habitat.Version
		next := current + 1

		result := s.db.WithContext(ctx).
			Model(habitat).
			Omit(clause.Associations).
			Where("version = ?", current).
			Updates(map[string]any{
				"food_supply": habitat.FoodSupply,
				"version":     next,
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrConcurrentUpdate
		}

		habitat.Version = next
	}

	return nil
}

type gormClients struct {
	db *gorm.DB
}

func (s gormClients) FindByUsername(ctx context.Context, username string) (*models.Client, error) {
	var client models.Client
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&client).Error
	if isNotFound(err) {
		return nil, notFound("client", "username", username)
	} else if err != nil {
		return nil, err
	}

	return &client, nil
}

type gormLedger struct {
	db *gorm.DB
}

func (s gormLedger) Save(ctx context.Context, donation *models.Donation) error {
	db := s.db.WithContext(ctx)

	// The header is written once. Afterwards, only allocations change.
	if donation.ID == uuid.Nil {
		err := db.Omit(clause.Associations).Create(donation).Error
		if err != nil {
			return err
		}
	}

	for _, allocation := range donation.Allocations {
		allocation.DonationID = donation.ID

		var err error
		if allocation.ID == uuid.Nil {
			err = db.Omit(clause.Associations).Create(allocation).Error
		} else {
			err = db.Model(allocation).Omit(clause.Associations).Update("amount", allocation.Amount).Error
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (s gormLedger) FindByID(ctx context.Context, id uuid.UUID) (*models.Donation, error) {
	var donation models.Donation
	err := s.db.WithContext(ctx).Preload("Allocations").Where("id = ?", id).First(&donation).Error
	if isNotFound(err) {
		return nil, notFound("donation", "id", id.String())
	} else if err != nil {
		return nil, err
	}

	for _, allocation := range donation.Allocations {
		allocation.Donation = &donation
	}

	return &donation, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, models.ErrResourceNotFound)
}
