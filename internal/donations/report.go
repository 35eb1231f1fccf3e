package donations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/habitat-fund/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrDanglingDonor is returned when a donation references a donor that
// does not exist.
var ErrDanglingDonor = errors.New("the donation references a donor that does not exist")

// Report is the read-only projection of a donation.
type Report struct {
	ID           uuid.UUID       `json:"id" example:"4e6b6ef4-1a1c-4b53-9f4b-5d2f6ad3a6d5"` // ID of the donation
	DonorName    *string         `json:"donorName" example:"alice"`                         // Username of the donor, null for anonymous donations
	HabitatNames []string        `json:"habitatNames" example:"Desert,Forest"`              // Names of all habitats the donation is allocated to, sorted
	Category     string          `json:"category" example:"FOOD"`                           // Category of the donation
	Amount       decimal.Decimal `json:"amount" example:"100"`                              // Amount of the donation
	CreatedAt    time.Time       `json:"createdAt" example:"2024-03-01T10:12:44Z"`          // Time the donation was recorded
}

// Project builds the report for a donation. The client and the habitats
// of all allocations must be loaded.
func Project(d models.Donation) (Report, error) {
	r := Report{
		ID:           d.ID,
		Category:     d.Category,
		Amount:       d.Amount,
		CreatedAt:    d.CreatedAt,
		HabitatNames: make([]string, 0, len(d.Allocations)),
	}

	if d.ClientID != nil {
		if d.Client == nil {
			return Report{}, fmt.Errorf("%w: %w (donation %s, client %s)", models.ErrGeneral, ErrDanglingDonor, d.ID, d.ClientID)
		}

		username := d.Client.Username
		r.DonorName = &username
	}

	for _, allocation := range d.Allocations {
		if allocation.Habitat == nil {
			return Report{}, fmt.Errorf("%w: allocation %s references a habitat that does not exist", models.ErrGeneral, allocation.ID)
		}

		r.HabitatNames = append(r.HabitatNames, allocation.Habitat.Name)
	}
	sort.Strings(r.HabitatNames)

	return r, nil
}

// Filter restricts the donations returned by Reports.List.
type Filter struct {
	DonorName string // Exact username of the donor
	Anonymous bool   // Only anonymous donations. Takes precedence over DonorName
	Category  string // Exact category
	Offset    int
	Limit     int // 0 or -1 for no limit
}

// Reports projects donations from the ledger.
type Reports struct {
	db *gorm.DB
}

func NewReports(db *gorm.DB) Reports {
	return Reports{db: db}
}

// query returns a query that loads donations with everything needed for
// the projection. Deleted donors and habitats are still projected by name.
func (r Reports) query(ctx context.Context) *gorm.DB {
	unscoped := func(db *gorm.DB) *gorm.DB {
		return db.Unscoped()
	}

	return r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Preload("Client", unscoped).
		Preload("Allocations").
		Preload("Allocations.Habitat", unscoped)
}

// scope applies the filter to a donation query.
func (f Filter) scope(q *gorm.DB) *gorm.DB {
	if f.Anonymous {
		q = q.Where("donations.client_id IS NULL")
	} else if f.DonorName != "" {
		q = q.Joins("JOIN clients ON clients.id = donations.client_id").Where("clients.username = ?", f.DonorName)
	}

	if f.Category != "" {
		q = q.Where("donations.category = ?", f.Category)
	}

	return q
}

// List returns the reports for all donations matching the filter, oldest
// first, and the total number of matching donations.
func (r Reports) List(ctx context.Context, f Filter) ([]Report, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Donation{}).Scopes(f.scope).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit == 0 {
		limit = -1
	}

	var donations []models.Donation
	err = r.query(ctx).
		Scopes(f.scope).
		Order("donations.created_at ASC").
		Offset(f.Offset).
		Limit(limit).
		Find(&donations).Error
	if err != nil {
		return nil, 0, err
	}

	reports := make([]Report, 0, len(donations))
	for _, d := range donations {
		report, err := Project(d)
		if err != nil {
			return nil, 0, err
		}

		reports = append(reports, report)
	}

	return reports, total, nil
}

// Get returns the report for a single donation.
func (r Reports) Get(ctx context.Context, id uuid.UUID) (Report, error) {
	var donation models.Donation
	err := r.query(ctx).Where("donations.id = ?", id).First(&donation).Error
	if isNotFound(err) {
		return Report{}, notFound("donation", "id", id.String())
	} else if err != nil {
		return Report{}, err
	}

	return Project(donation)
}
