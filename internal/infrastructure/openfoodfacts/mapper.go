package openfoodfacts

import (
	"math"
	"strconv"
	"strings"

	"github.com/nutriswap/backend/internal/domain"
)

// Open Food Facts nutriment keys, per 100g
const (
	keySugars          = "sugars_100g"
	keySaturatedFat    = "saturated-fat_100g"
	keySaturatedFatAlt = "saturated_fat_100g"
	keyEnergyKcal      = "energy-kcal_100g"
	keyEnergyKJ        = "energy_100g"
	keyFat             = "fat_100g"
	keySalt            = "salt_100g"

	kjPerKcal = 4.184
)

// mapToProduct converts an Open Food Facts record to our domain Product
func mapToProduct(p *offProduct) domain.Product {
	return domain.Product{
		Code:            strings.TrimSpace(p.Code),
		Name:            productName(p),
		Brands:          p.Brands,
		Quantity:        p.Quantity,
		ImageURL:        p.ImageURL,
		IngredientsText: p.IngredientsText,
		Allergens:       p.Allergens,
		Nutriments:      extractNutriments(p.Nutriments),
		CategoryTags:    p.CategoriesTags,
		StoreTags:       p.StoresTags,
		CountryTags:     p.CountriesTags,
		NutriScoreGrade: strings.ToLower(p.NutriScoreGrade),
		EcoScoreGrade:   strings.ToLower(p.EcoScoreGrade),
	}
}

// mapToProducts converts a page of records, skipping ones without a code
func mapToProducts(records []offProduct) []domain.Product {
	products := make([]domain.Product, 0, len(records))
	for i := range records {
		if strings.TrimSpace(records[i].Code) == "" {
			continue
		}
		products = append(products, mapToProduct(&records[i]))
	}
	return products
}

// productName returns the best available name:
// product_name, then product_name_en, then generic_name.
func productName(p *offProduct) string {
	if p.ProductName != "" {
		return p.ProductName
	}
	if p.ProductNameEn != "" {
		return p.ProductNameEn
	}
	return p.GenericName
}

// extractNutriments reads the per-100g values we care about. Unparsable
// or negative values are left absent.
func extractNutriments(m map[string]any) domain.Nutriments {
	n := domain.Nutriments{
		Sugars:       findNutriment(m, keySugars),
		SaturatedFat: findNutriment(m, keySaturatedFat, keySaturatedFatAlt),
		EnergyKcal:   findNutriment(m, keyEnergyKcal),
		Fat:          findNutriment(m, keyFat),
		Salt:         findNutriment(m, keySalt),
	}

	if n.EnergyKcal == nil {
		if kj := findNutriment(m, keyEnergyKJ); kj != nil {
			n.EnergyKcal = domain.Float(*kj / kjPerKcal)
		}
	}

	return n
}

// findNutriment returns the first key present with a valid value
func findNutriment(m map[string]any, keys ...string) *float64 {
	for _, key := range keys {
		if v, ok := extractFloat(m, key); ok {
			return domain.Float(v)
		}
	}
	return nil
}

// extractFloat coerces a nutriments map value to a non-negative float64
func extractFloat(m map[string]any, key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}

	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int:
		f = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}
