package usecase

import (
	"github.com/nutriswap/backend/internal/domain"
	"github.com/nutriswap/backend/internal/textnorm"
)

// HealthAnalyzer flags the risks a product poses for a health profile
type HealthAnalyzer struct {
	rules domain.RuleSet
}

// NewHealthAnalyzer creates an analyzer over a static rule table
func NewHealthAnalyzer(rules domain.RuleSet) *HealthAnalyzer {
	return &HealthAnalyzer{rules: normalizeRules(rules)}
}

// Analyze returns the warnings triggered by product for profile.
//
// Condition warnings come first, in profile order, followed by allergen
// warnings in profile order. Codes are not de-duplicated. Conditions
// without a rule are ignored and absent nutrients count as zero.
func (a *HealthAnalyzer) Analyze(product *domain.Product, profile domain.HealthProfile) []domain.Warning {
	warnings := []domain.Warning{}
	if product == nil {
		return warnings
	}

	sugars := product.Nutriments.SugarsPer100g()
	saturatedFat := product.Nutriments.SaturatedFatPer100g()

	for _, condition := range profile.HealthIssues {
		rule, ok := lookupRule(a.rules, condition)
		if !ok {
			continue
		}
		if limit, ok := rule.SugarLimit(); ok && sugars > limit {
			warnings = append(warnings, domain.WarningLowSugar)
		}
		if limit, ok := rule.SaturatedFatLimit(); ok && saturatedFat > limit {
			warnings = append(warnings, domain.WarningLowFat)
		}
	}

	for _, allergen := range profile.Allergies {
		if containsAllergen(product, allergen) {
			warnings = append(warnings, domain.AllergenWarning(textnorm.Fold(allergen)))
		}
	}

	return warnings
}

// Rules returns a copy of the analyzer's rule table
func (a *HealthAnalyzer) Rules() domain.RuleSet {
	out := make(domain.RuleSet, len(a.rules))
	for k, v := range a.rules {
		out[k] = v
	}
	return out
}
