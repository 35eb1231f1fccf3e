// Package donations turns donation events into per-habitat allocations
// and keeps the food supply of habitats up to date.
package donations

import (
	"context"

	"github.com/google/uuid"
	"github.com/habitat-fund/backend/internal/models"
	"github.com/shopspring/decimal"
)

// storageScale is the number of decimal places stored for amounts.
const storageScale = 8

// Request describes a single donation event.
type Request struct {
	DonorName    *string // nil for anonymous donations
	Category     string
	Amount       decimal.Decimal
	HabitatNames []string
}

// Engine apportions donations to habitats.
type Engine struct {
	uow UnitOfWork
}

func NewEngine(uow UnitOfWork) *Engine {
	return &Engine{uow: uow}
}

// RecordDonation records a donation and splits its amount evenly across
// the named habitats. Repeated names count once.
//
// The operation is atomic: when any habitat or the donor cannot be
// resolved, nothing is persisted.
func (e *Engine) RecordDonation(ctx context.Context, req Request) (uuid.UUID, error) {
	names, err := distinct(req.HabitatNames)
	if err != nil {
		return uuid.Nil, err
	}

	if !req.Amount.IsPositive() {
		return uuid.Nil, ErrAmountNotPositive
	}

	var id uuid.UUID
	err = e.uow.Do(ctx, func(s Stores) error {
		habitats, err := resolve(ctx, s.Habitats, names)
		if err != nil {
			return err
		}

		donation := &models.Donation{
			Category: req.Category,
			Amount:   req.Amount,
		}

		if req.DonorName != nil {
			client, err := s.Clients.FindByUsername(ctx, *req.DonorName)
			if err != nil {
				return err
			}

			donation.ClientID = &client.ID
			donation.Client = client
		}

		// The donation needs its ID before allocations can reference it
		err = s.Donations.Save(ctx, donation)
		if err != nil {
			return err
		}

		id = donation.ID
		return commit(ctx, s, donation, habitats, req.Amount)
	})
	if err != nil {
		return uuid.Nil, unexpected(err)
	}

	return id, nil
}

// Apportion splits amount across the named habitats for an existing
// donation. Habitats the donation is already allocated to have their
// allocation increased instead of receiving a second one.
//
// The amount of the donation header is not changed.
func (e *Engine) Apportion(ctx context.Context, donationID uuid.UUID, amount decimal.Decimal, habitatNames []string) error {
	names, err := distinct(habitatNames)
	if err != nil {
		return err
	}

	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return unexpected(e.uow.Do(ctx, func(s Stores) error {
		habitats, err := resolve(ctx, s.Habitats, names)
		if err != nil {
			return err
		}

		donation, err := s.Donations.FindByID(ctx, donationID)
		if err != nil {
			return err
		}

		return commit(ctx, s, donation, habitats, amount)
	}))
}

// commit apportions amount and persists all touched habitats and the donation.
func commit(ctx context.Context, s Stores, donation *models.Donation, habitats []*models.Habitat, amount decimal.Decimal) error {
	apportion(donation, habitats, amount)

	err := s.Habitats.SaveAll(ctx, habitats)
	if err != nil {
		return err
	}

	return s.Donations.Save(ctx, donation)
}

// apportion divides amount evenly across habitats and merges the shares
// into the allocations of the donation.
//
// Shares are rounded to the storage scale. Remainders are not
// redistributed, so for uneven splits the allocations can differ from
// amount by less than one unit in the last stored place per habitat.
func apportion(donation *models.Donation, habitats []*models.Habitat, amount decimal.Decimal) {
	share := amount.DivRound(decimal.NewFromInt(int64(len(habitats))), storageScale)

	for _, habitat := range habitats {
		allocation := donation.AllocationFor(habitat.ID)
		if allocation != nil {
			allocation.Amount = allocation.Amount.Add(share)
		} else {
			allocation = &models.Allocation{
				DonationID: donation.ID,
				Donation:   donation,
				HabitatID:  habitat.ID,
				Amount:     share,
			}
			donation.Allocations = append(donation.Allocations, allocation)
		}

		// Both sides of the relation reference the same allocation
		if allocation.Habitat != habitat {
			allocation.Habitat = habitat
			habitat.Allocations = append(habitat.Allocations, allocation)
		}

		habitat.Feed(share)
	}
}

// resolve loads the habitats for all names. It fails on the first name
// that does not identify a habitat.
func resolve(ctx context.Context, store HabitatStore, names []string) ([]*models.Habitat, error) {
	habitats := make([]*models.Habitat, 0, len(names))
	for _, name := range names {
		habitat, err := store.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}

		habitats = append(habitats, habitat)
	}

	return habitats, nil
}

// distinct removes duplicate names, keeping the first occurrence.
func distinct(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, ErrNoHabitats
	}

	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		unique = append(unique, name)
	}

	return unique, nil
}
