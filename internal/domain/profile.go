package domain

// HealthProfile carries a user's self-reported health conditions and allergies.
// Labels are matched case-insensitively.
type HealthProfile struct {
	HealthIssues []string `json:"healthIssues"`
	Allergies    []string `json:"allergies"`
}

// IsEmpty reports whether the profile has neither conditions nor allergies
func (p HealthProfile) IsEmpty() bool {
	return len(p.HealthIssues) == 0 && len(p.Allergies) == 0
}

// Warning is an opaque code describing a triggered nutritional or allergen risk
type Warning string

const (
	// WarningLowSugar is raised when sugar exceeds a condition's limit
	WarningLowSugar Warning = "low-sugar"
	// WarningLowFat is raised when saturated fat exceeds a condition's limit
	WarningLowFat Warning = "low-fat"

	allergenWarningPrefix = "no-"
)

// AllergenWarning returns the warning code for a matched allergen
func AllergenWarning(allergen string) Warning {
	return Warning(allergenWarningPrefix + allergen)
}

// ConditionRule holds the nutrient limits for one health condition.
// A nil limit means the rule does not constrain that nutrient.
type ConditionRule struct {
	MaxSugarPer100g        *float64 `json:"maxSugarPer100g,omitempty" mapstructure:"max_sugar_per_100g"`
	MaxSaturatedFatPer100g *float64 `json:"maxSaturatedFatPer100g,omitempty" mapstructure:"max_saturated_fat_per_100g"`
}

// SugarLimit returns the sugar limit and whether one is defined
func (r ConditionRule) SugarLimit() (float64, bool) {
	if r.MaxSugarPer100g == nil {
		return 0, false
	}
	return *r.MaxSugarPer100g, true
}

// SaturatedFatLimit returns the saturated fat limit and whether one is defined
func (r ConditionRule) SaturatedFatLimit() (float64, bool) {
	if r.MaxSaturatedFatPer100g == nil {
		return 0, false
	}
	return *r.MaxSaturatedFatPer100g, true
}

// RuleSet maps a case-folded condition label to its rule
type RuleSet map[string]ConditionRule
