package entitlements

import (
	"github.com/ManuelReschke/ShopLedger/app/models"
)

// Evaluator answers feature questions for a fetched set of pricing rows.
// Anything it cannot find is denied.
type Evaluator struct {
	pricings map[string]models.FeatureMatrix
}

// NewEvaluator indexes the given pricing rows by id.
func NewEvaluator(pricings []models.Pricing) *Evaluator {
	e := &Evaluator{pricings: make(map[string]models.FeatureMatrix, len(pricings))}
	for i := range pricings {
		e.pricings[pricings[i].ID] = pricings[i].FeatureMatrix()
	}
	return e
}

// IsFeatureEnabled reports whether the pricing row grants the feature key.
// An empty or unknown pricing id and an unknown key both return false.
func (e *Evaluator) IsFeatureEnabled(pricingID string, feature string) bool {
	if e == nil || pricingID == "" {
		return false
	}
	m, ok := e.pricings[pricingID]
	if !ok {
		return false
	}
	f, ok := models.ParseFeature(feature)
	if !ok {
		return false
	}
	return m.Enabled(f)
}

// Features returns every known flag for the pricing row, all false when the
// row is not part of the set.
func (e *Evaluator) Features(pricingID string) map[models.Feature]bool {
	if e == nil || pricingID == "" {
		return models.FeatureMatrix{}.AsMap()
	}
	return e.pricings[pricingID].AsMap()
}

// DefaultPricing returns the pricing whose plan is flagged as the default.
// Pricings without a loaded plan are skipped.
func DefaultPricing(pricings []models.Pricing) (*models.Pricing, bool) {
	for i := range pricings {
		p := &pricings[i]
		if p.Plan != nil && p.Plan.IsDefault && p.Plan.IsActive {
			return p, true
		}
	}
	return nil, false
}
