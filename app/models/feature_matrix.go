package models

import (
	"bytes"
	"encoding/json"
)

// Feature is a named capability gated by a subscription.
type Feature string

const (
	FeatureExpenses          Feature = "expenses"
	FeatureExpensesAnalytics Feature = "expensesAnalytics"
	FeatureCredit            Feature = "credit"
	FeatureCreditReports     Feature = "creditReports"
	FeatureInvoicing         Feature = "invoicing"
	FeatureInventory         Feature = "inventory"
)

// AllFeatures lists every feature a FeatureMatrix knows about, in display order.
var AllFeatures = []Feature{
	FeatureExpenses,
	FeatureExpensesAnalytics,
	FeatureCredit,
	FeatureCreditReports,
	FeatureInvoicing,
	FeatureInventory,
}

// ParseFeature maps a wire key to a known Feature.
func ParseFeature(key string) (Feature, bool) {
	for _, f := range AllFeatures {
		if string(f) == key {
			return f, true
		}
	}
	return "", false
}

// FeatureMatrix holds the boolean feature flags attached to a pricing row.
type FeatureMatrix struct {
	Expenses          bool `json:"expenses"`
	ExpensesAnalytics bool `json:"expensesAnalytics"`
	Credit            bool `json:"credit"`
	CreditReports     bool `json:"creditReports"`
	Invoicing         bool `json:"invoicing"`
	Inventory         bool `json:"inventory"`
}

// Enabled returns the flag for f. Unknown features are never enabled.
func (m FeatureMatrix) Enabled(f Feature) bool {
	switch f {
	case FeatureExpenses:
		return m.Expenses
	case FeatureExpensesAnalytics:
		return m.ExpensesAnalytics
	case FeatureCredit:
		return m.Credit
	case FeatureCreditReports:
		return m.CreditReports
	case FeatureInvoicing:
		return m.Invoicing
	case FeatureInventory:
		return m.Inventory
	default:
		return false
	}
}

// AsMap returns all known flags keyed by feature.
func (m FeatureMatrix) AsMap() map[Feature]bool {
	out := make(map[Feature]bool, len(AllFeatures))
	for _, f := range AllFeatures {
		out[f] = m.Enabled(f)
	}
	return out
}

// UnmarshalJSON accepts the matrix either as an object or as a JSON string
// containing the object. Older rows were written double-encoded; both forms
// decode to the same typed value here so nothing downstream sees a string.
func (m *FeatureMatrix) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return err
		}
		raw = bytes.TrimSpace([]byte(inner))
	}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*m = FeatureMatrix{}
		return nil
	}

	type plain FeatureMatrix
	var p plain
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	*m = FeatureMatrix(p)
	return nil
}
