package domain

// Nutriments holds nutrient values per 100g. Any field may be absent
// (nil); the accessor methods treat absent values as zero.
type Nutriments struct {
	Sugars       *float64 `json:"sugars100g,omitempty"`
	SaturatedFat *float64 `json:"saturatedFat100g,omitempty"`
	EnergyKcal   *float64 `json:"energyKcal100g,omitempty"`
	Fat          *float64 `json:"fat100g,omitempty"`
	Salt         *float64 `json:"salt100g,omitempty"`
}

// SugarsPer100g returns sugars in grams per 100g, 0 when absent
func (n Nutriments) SugarsPer100g() float64 { return valueOrZero(n.Sugars) }

// SaturatedFatPer100g returns saturated fat in grams per 100g, 0 when absent
func (n Nutriments) SaturatedFatPer100g() float64 { return valueOrZero(n.SaturatedFat) }

// EnergyKcalPer100g returns energy in kcal per 100g, 0 when absent
func (n Nutriments) EnergyKcalPer100g() float64 { return valueOrZero(n.EnergyKcal) }

// FatPer100g returns total fat in grams per 100g, 0 when absent
func (n Nutriments) FatPer100g() float64 { return valueOrZero(n.Fat) }

// SaltPer100g returns salt in grams per 100g, 0 when absent
func (n Nutriments) SaltPer100g() float64 { return valueOrZero(n.Salt) }

func valueOrZero(v *float64) float64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

// Float returns a pointer to v. Handy for building Nutriments literals.
func Float(v float64) *float64 {
	return &v
}

// NutritionSummary is the display breakdown of a product
type NutritionSummary struct {
	Code            string  `json:"code"`
	ProductName     string  `json:"productName"`
	EnergyKcal      float64 `json:"energyKcal"`
	Fat             float64 `json:"fat"`
	SaturatedFat    float64 `json:"saturatedFat"`
	Sugars          float64 `json:"sugars"`
	Salt            float64 `json:"salt"`
	Per             string  `json:"per"`
	NutriScoreGrade string  `json:"nutriscoreGrade,omitempty"`
	EcoScoreGrade   string  `json:"ecoscoreGrade,omitempty"`
	StoreCount      int     `json:"storeCount"`
	CountryCount    int     `json:"countryCount"`
}

// ProductReport bundles a product with its risk analysis for a profile
type ProductReport struct {
	Product     Product          `json:"product"`
	Summary     NutritionSummary `json:"summary"`
	Warnings    []Warning        `json:"warnings"`
	Substitutes []Product        `json:"substitutes"`
}
