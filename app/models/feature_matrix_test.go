package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureMatrixEnabled(t *testing.T) {
	m := FeatureMatrix{Credit: true, Invoicing: false, Inventory: true}

	assert.True(t, m.Enabled(FeatureCredit))
	assert.False(t, m.Enabled(FeatureInvoicing))
	assert.True(t, m.Enabled(FeatureInventory))
	assert.False(t, m.Enabled(Feature("payroll")))
	assert.False(t, m.Enabled(""))
}

func TestFeatureMatrixAsMapCoversAllFeatures(t *testing.T) {
	got := FeatureMatrix{Expenses: true}.AsMap()

	require.Len(t, got, len(AllFeatures))
	assert.True(t, got[FeatureExpenses])
	for _, f := range AllFeatures {
		if f != FeatureExpenses {
			assert.False(t, got[f], "feature %s", f)
		}
	}
}

func TestFeatureMatrixUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want FeatureMatrix
	}{
		{name: "object", raw: `{"credit":true,"creditReports":true}`, want: FeatureMatrix{Credit: true, CreditReports: true}},
		{name: "double encoded", raw: `"{\"expenses\":true,\"inventory\":true}"`, want: FeatureMatrix{Expenses: true, Inventory: true}},
		{name: "null", raw: `null`, want: FeatureMatrix{}},
		{name: "empty string", raw: `""`, want: FeatureMatrix{}},
		{name: "unknown keys ignored", raw: `{"payroll":true,"invoicing":true}`, want: FeatureMatrix{Invoicing: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FeatureMatrix
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFeatureMatrixUnmarshalRejectsGarbage(t *testing.T) {
	var got FeatureMatrix
	assert.Error(t, json.Unmarshal([]byte(`"not json"`), &got))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &got))
}

func TestParseFeature(t *testing.T) {
	f, ok := ParseFeature("expensesAnalytics")
	assert.True(t, ok)
	assert.Equal(t, FeatureExpensesAnalytics, f)

	_, ok = ParseFeature("ExpensesAnalytics")
	assert.False(t, ok)
}
