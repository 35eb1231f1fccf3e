// Package metrics contains the Prometheus collectors for donations and
// habitat food supplies.
package metrics

import (
	"fmt"
	"strings"

	"github.com/habitat-fund/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var donationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "donations_total",
		Help: "How many donations were recorded, partitioned by category.",
	},
	[]string{"category"},
)

var donatedAmountTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "donated_amount_total",
		Help: "The sum of all recorded donation amounts, partitioned by category.",
	},
	[]string{"category"},
)

var foodSupply = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "habitat_food_supply",
		Help: "The food supply of each habitat. Habitats without a food supply are not reported.",
	},
	[]string{"habitat"},
)

// Collectors returns all collectors of this package so that they can be
// registered together with the router metrics.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		donationsTotal,
		donatedAmountTotal,
		foodSupply,
	}
}

// categories are the category label values. Everything else is counted as OtherCategory.
var categories = []string{"FOOD", "MEDICINE", "TOYS", "SHELTER"}

const OtherCategory = "OTHER"

// categoryLabel maps the free-text donation category onto a bounded set of
// label values.
func categoryLabel(category string) string {
	c := strings.ToUpper(strings.TrimSpace(category))
	for _, known := range categories {
		if c == known {
			return c
		}
	}

	return OtherCategory
}

// RecordDonation counts a recorded donation.
func RecordDonation(category string, amount decimal.Decimal) {
	label := categoryLabel(category)
	donationsTotal.WithLabelValues(label).Inc()
	donatedAmountTotal.WithLabelValues(label).Add(amount.InexactFloat64())
}

// RefreshFoodSupply sets the food supply gauge to the current food supply
// of all habitats.
func RefreshFoodSupply(db *gorm.DB) error {
	var habitats []models.Habitat
	err := db.Select("name", "food_supply").Where("food_supply IS NOT NULL").Find(&habitats).Error
	if err != nil {
		return err
	}

	// Deleted habitats must not be reported anymore
	foodSupply.Reset()
	for _, h := range habitats {
		foodSupply.WithLabelValues(h.Name).Set(h.FoodSupply.Decimal.InexactFloat64())
	}

	return nil
}

// StartRefresher refreshes the food supply gauge immediately and then
// on the cron schedule passed in. The returned function stops the refresher.
func StartRefresher(schedule string) (func(), error) {
	refresh := func() {
		err := RefreshFoodSupply(models.DB)
		if err != nil {
			log.Error().Err(err).Msg("refreshing food supply metrics failed")
		}
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, refresh)
	if err != nil {
		return nil, fmt.Errorf("invalid metrics refresh schedule %q: %w", schedule, err)
	}

	refresh()
	c.Start()
	log.Debug().Str("schedule", schedule).Msg("metrics refresher started")

	return func() {
		<-c.Stop().Done()
	}, nil
}
