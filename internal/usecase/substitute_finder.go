package usecase

import (
	"github.com/nutriswap/backend/internal/domain"
)

// Substitution defaults
const (
	defaultMaxSubstitutes    = 5
	defaultMinStores         = 3
	defaultMinCountries      = 2
	defaultImprovementFactor = 0.7
)

// SubstituteConfig holds the tuning knobs of the substitute finder
type SubstituteConfig struct {
	MaxResults        int
	MinStores         int
	MinCountries      int
	ImprovementFactor float64
}

// SubstituteFinder selects safer, widely available alternatives to a product
type SubstituteFinder struct {
	rules             domain.RuleSet
	maxResults        int
	minStores         int
	minCountries      int
	improvementFactor float64
}

// NewSubstituteFinder creates a finder; zero config values take the defaults
func NewSubstituteFinder(rules domain.RuleSet, config SubstituteConfig) *SubstituteFinder {
	f := &SubstituteFinder{
		rules:             normalizeRules(rules),
		maxResults:        config.MaxResults,
		minStores:         config.MinStores,
		minCountries:      config.MinCountries,
		improvementFactor: config.ImprovementFactor,
	}
	if f.maxResults <= 0 {
		f.maxResults = defaultMaxSubstitutes
	}
	if f.minStores <= 0 {
		f.minStores = defaultMinStores
	}
	if f.minCountries <= 0 {
		f.minCountries = defaultMinCountries
	}
	if f.improvementFactor <= 0 {
		f.improvementFactor = defaultImprovementFactor
	}
	return f
}

// FindSubstitutes filters pool down to at most maxResults candidates,
// keeping pool order. A candidate survives when it is not the original,
// contains none of the profile's allergens, beats the original on every
// ruled condition and is widely available.
func (f *SubstituteFinder) FindSubstitutes(
	product *domain.Product,
	profile domain.HealthProfile,
	pool []domain.Product,
) []domain.Product {
	substitutes := []domain.Product{}
	if product == nil {
		return substitutes
	}

	for i := range pool {
		candidate := &pool[i]

		if candidate.Code == product.Code {
			continue
		}
		if containsAnyAllergen(candidate, profile.Allergies) {
			continue
		}
		if !f.isNutritionallyBetter(candidate, product, profile) {
			continue
		}
		if !isWidelyAvailable(candidate, f.minStores, f.minCountries) {
			continue
		}

		substitutes = append(substitutes, *candidate)
		if len(substitutes) == f.maxResults {
			break
		}
	}

	return substitutes
}

// isNutritionallyBetter requires every defined limit of every ruled
// condition to be strictly beaten
func (f *SubstituteFinder) isNutritionallyBetter(
	candidate, original *domain.Product,
	profile domain.HealthProfile,
) bool {
	for _, condition := range profile.HealthIssues {
		rule, ok := lookupRule(f.rules, condition)
		if !ok {
			continue
		}

		if limit, ok := rule.SugarLimit(); ok {
			if !improvesOn(
				candidate.Nutriments.SugarsPer100g(),
				original.Nutriments.SugarsPer100g(),
				f.improvementFactor, limit,
			) {
				return false
			}
		}

		if limit, ok := rule.SaturatedFatLimit(); ok {
			if !improvesOn(
				candidate.Nutriments.SaturatedFatPer100g(),
				original.Nutriments.SaturatedFatPer100g(),
				f.improvementFactor, limit,
			) {
				return false
			}
		}
	}
	return true
}
