package usecase

import (
	"math"

	"github.com/nutriswap/backend/internal/domain"
	"github.com/nutriswap/backend/internal/textnorm"
)

// normalizeRules re-keys a rule table by folded condition label
func normalizeRules(rules domain.RuleSet) domain.RuleSet {
	normalized := make(domain.RuleSet, len(rules))
	for label, rule := range rules {
		key := textnorm.Fold(label)
		if key == "" {
			continue
		}
		normalized[key] = rule
	}
	return normalized
}

// lookupRule finds the rule for a condition label, ignoring case
func lookupRule(rules domain.RuleSet, condition string) (domain.ConditionRule, bool) {
	rule, ok := rules[textnorm.Fold(condition)]
	return rule, ok
}

// containsAllergen reports whether the product's ingredient text mentions
// the allergen. The analyzer and the substitute finder must agree on this.
func containsAllergen(product *domain.Product, allergen string) bool {
	return textnorm.ContainsFold(product.IngredientsText, allergen)
}

// containsAnyAllergen reports whether any of the allergens is mentioned
func containsAnyAllergen(product *domain.Product, allergens []string) bool {
	return textnorm.ContainsAnyFold(product.IngredientsText, allergens)
}

// isWidelyAvailable reports whether the product is sold in enough distinct
// stores and countries
func isWidelyAvailable(product *domain.Product, minStores, minCountries int) bool {
	return product.StoreCount() >= minStores && product.CountryCount() >= minCountries
}

// improvesOn reports whether candidate is strictly below both factor*original
// and the absolute limit
func improvesOn(candidate, original, factor, limit float64) bool {
	return candidate < math.Min(original*factor, limit)
}
