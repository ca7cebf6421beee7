package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutriscan/internal/domain"
)

func TestNormalizeValue(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name  string
		input string
		want  *string
	}{
		{"plain integer", "250", str("250")},
		{"integer with unit", "250 kcal", str("250")},
		{"decimal comma", "6,9", str("6.9")},
		{"decimal comma with unit", "0,5 g", str("0.5")},
		{"decimal point kept", "6.9 g", str("6.9")},
		{"less-than prefix", "<0,5 g", str("0.5")},
		{"negative clamps to zero", "-5", str("0")},
		{"trailing noise", "12.5g*", str("12.5")},
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"no data hungarian", "nincs adat", nil},
		{"no data short hungarian", "Nincs", nil},
		{"not available", "Not Available", nil},
		{"n/a", "N/A", nil},
		{"german no data", "keine Angabe", nil},
		{"french no data", "non disponible", nil},
		{"lone dash", "-", nil},
		{"en dash", "–", nil},
		{"no number at all", "trace", nil},
		{"integer renders without decimal", "3.0", str("3")},
		{"fraction rounds to one digit", "12.34", str("12.3")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeValue(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestNormalizeValueIdempotent(t *testing.T) {
	for _, input := range []string{"250 kcal", "6,9 g", "<0,5 g", "3.0", "0"} {
		first := NormalizeValue(input)
		if first == nil {
			continue
		}
		second := NormalizeValue(*first)
		require.NotNil(t, second, "input %q", input)
		assert.Equal(t, *first, *second, "input %q", input)
	}
}

func TestValidateAndNormalize(t *testing.T) {
	raw := json.RawMessage(`{
		"nutrition": {
			"energy":       {"per_100g": "250 kcal", "unit": "kcal"},
			"fat":          {"per_100g": "6,9 g",    "unit": "g"},
			"carbohydrate": {"per_100g": null,        "unit": null},
			"sugar":        {"per_100g": "nincs adat","unit": "g"},
			"protein":      {"per_100g": "-1",        "unit": "g"},
			"sodium":       {"per_100g": "0,5",       "unit": "g"}
		},
		"allergens": {"gluten": true, "milk": false}
	}`)

	result, err := ValidateAndNormalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "250", *result.Nutrition["energy"].Per100g)
	assert.Equal(t, "6.9", *result.Nutrition["fat"].Per100g)
	assert.Nil(t, result.Nutrition["carbohydrate"].Per100g)
	assert.Nil(t, result.Nutrition["sugar"].Per100g)
	assert.Equal(t, "0", *result.Nutrition["protein"].Per100g)
	assert.Equal(t, "0.5", *result.Nutrition["sodium"].Per100g)
	assert.True(t, result.Allergens["gluten"])
	assert.False(t, result.Allergens["milk"])
}

func TestValidateAndNormalizeSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `not json at all`},
		{"missing nutrition", `{"allergens": {}}`},
		{"missing allergens", `{"nutrition": {}}`},
		{"allergen value not boolean", `{"nutrition": {}, "allergens": {"milk": "yes"}}`},
		{"nutrition entry not object", `{"nutrition": {"energy": "250"}, "allergens": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndNormalize(json.RawMessage(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrSchemaValidation)
		})
	}
}

func TestEnergyBusinessRule(t *testing.T) {
	tests := []struct {
		name   string
		energy string
		isNil  bool
		want   string
	}{
		{"zero energy becomes null", `"0"`, true, ""},
		{"negative energy becomes null", `"-20"`, true, ""},
		{"positive energy kept", `"250"`, false, "250"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := json.RawMessage(`{
				"nutrition": {"energy": {"per_100g": ` + tt.energy + `, "unit": "kcal"}},
				"allergens": {}
			}`)
			result, err := ValidateAndNormalize(raw)
			require.NoError(t, err)
			if tt.isNil {
				assert.Nil(t, result.Nutrition["energy"].Per100g)
			} else {
				require.NotNil(t, result.Nutrition["energy"].Per100g)
				assert.Equal(t, tt.want, *result.Nutrition["energy"].Per100g)
			}
		})
	}
}
