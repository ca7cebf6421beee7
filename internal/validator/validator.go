// Package validator checks the model's JSON output against the extraction
// schema, normalizes free-form numeric strings into consistent values, and
// applies the business rules that keep a result internally plausible.
package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"nutriscan/internal/domain"
)

// noDataPhrases are label spellings of "no value", matched case-insensitively.
var noDataPhrases = []string{
	"nincs adat", "nincs", "n/a", "na", "not available",
	"keine angabe", "non disponible",
}

var (
	decimalComma = regexp.MustCompile(`(\d+),(\d+)`)
	firstNumber  = regexp.MustCompile(`-?[\d.]+`)
)

// ValidateAndNormalize validates the raw model output against the
// extraction schema and normalizes every nutrition value. It returns a
// schema error when required keys are missing or malformed.
func ValidateAndNormalize(raw json.RawMessage) (*domain.ExtractionResult, error) {
	var instance interface{}
	if err := json.Unmarshal(raw, &instance); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSchemaValidation, err)
	}
	if err := resultSchema.Validate(instance); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSchemaValidation, err)
	}

	var result domain.ExtractionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSchemaValidation, err)
	}

	for category, value := range result.Nutrition {
		if value.Per100g != nil {
			value.Per100g = normalizePtr(*value.Per100g)
			result.Nutrition[category] = value
		}
	}

	applyBusinessRules(&result)
	return &result, nil
}

// NormalizeValue normalizes one nutrition value string to a bare number:
// "6,9 g" becomes "6.9", "nincs adat" becomes nil, "-5" clamps to "0".
// Integers render without a decimal point, everything else with exactly one
// decimal digit. Normalization is idempotent.
func NormalizeValue(value string) *string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return nil
	}

	for _, phrase := range noDataPhrases {
		if strings.Contains(v, phrase) {
			return nil
		}
	}

	switch v {
	case "-", "–", "—":
		return nil
	}

	v = decimalComma.ReplaceAllString(v, "$1.$2")

	match := firstNumber.FindString(v)
	if match == "" {
		return nil
	}
	number, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}

	if number < 0 {
		number = 0
	}

	var formatted string
	if number == math.Trunc(number) {
		formatted = strconv.FormatInt(int64(number), 10)
	} else {
		formatted = strconv.FormatFloat(number, 'f', 1, 64)
	}
	return &formatted
}

func normalizePtr(value string) *string {
	return NormalizeValue(value)
}

// applyBusinessRules enforces cross-field plausibility. Energy must be
// positive or unknown: a non-positive value is forced back to nil so a
// misread zero is never reported as a measurement.
func applyBusinessRules(result *domain.ExtractionResult) {
	if value, ok := result.Nutrition[domain.CategoryEnergy]; ok && value.Per100g != nil {
		if n, err := strconv.ParseFloat(*value.Per100g, 64); err == nil && n <= 0 {
			value.Per100g = nil
			result.Nutrition[domain.CategoryEnergy] = value
		}
	}
}
