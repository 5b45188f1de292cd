package domain

import "strings"

// DefaultCategory is used when a product carries no category tags
const DefaultCategory = "generic"

// Product represents a food product record from the Open Food Facts database.
// Records are treated as read-only once fetched.
type Product struct {
	Code            string     `json:"code"`
	Name            string     `json:"productName"`
	Brands          string     `json:"brands,omitempty"`
	Quantity        string     `json:"quantity,omitempty"`
	ImageURL        string     `json:"imageUrl,omitempty"`
	IngredientsText string     `json:"ingredientsText,omitempty"`
	Allergens       string     `json:"allergens,omitempty"`
	Nutriments      Nutriments `json:"nutriments"`
	CategoryTags    []string   `json:"categoryTags,omitempty"`
	StoreTags       []string   `json:"storeTags,omitempty"`
	CountryTags     []string   `json:"countryTags,omitempty"`
	NutriScoreGrade string     `json:"nutriscoreGrade,omitempty"`
	EcoScoreGrade   string     `json:"ecoscoreGrade,omitempty"`
}

// PrimaryCategory returns the first category tag with its language prefix
// removed, or DefaultCategory when the product has no categories.
func (p *Product) PrimaryCategory() string {
	if len(p.CategoryTags) == 0 {
		return DefaultCategory
	}
	// Every "en:" is removed, not only the prefix.
	category := strings.ReplaceAll(p.CategoryTags[0], "en:", "")
	if strings.TrimSpace(category) == "" {
		return DefaultCategory
	}
	return category
}

// StoreCount returns the number of distinct store tags
func (p *Product) StoreCount() int {
	return countDistinct(p.StoreTags)
}

// CountryCount returns the number of distinct country tags
func (p *Product) CountryCount() int {
	return countDistinct(p.CountryTags)
}

func countDistinct(tags []string) int {
	if len(tags) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		seen[tag] = struct{}{}
	}
	return len(seen)
}

// SearchResult is a page of products returned by a name or category search
type SearchResult struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
}
