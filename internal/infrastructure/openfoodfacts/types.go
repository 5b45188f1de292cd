package openfoodfacts

// offProduct is the subset of an Open Food Facts product record we read.
// Nutriment values arrive as numbers or numeric strings.
type offProduct struct {
	Code            string         `json:"code"`
	ProductName     string         `json:"product_name"`
	ProductNameEn   string         `json:"product_name_en"`
	GenericName     string         `json:"generic_name"`
	Brands          string         `json:"brands"`
	Quantity        string         `json:"quantity"`
	ImageURL        string         `json:"image_url"`
	IngredientsText string         `json:"ingredients_text"`
	Allergens       string         `json:"allergens"`
	Nutriments      map[string]any `json:"nutriments"`
	CategoriesTags  []string       `json:"categories_tags"`
	StoresTags      []string       `json:"stores_tags"`
	CountriesTags   []string       `json:"countries_tags"`
	NutriScoreGrade string         `json:"nutriscore_grade"`
	EcoScoreGrade   string         `json:"ecoscore_grade"`
}

// productResponse is the body of /api/v0/product/{barcode}.json
type productResponse struct {
	Status        int         `json:"status"`
	StatusVerbose string      `json:"status_verbose"`
	Code          string      `json:"code"`
	Product       *offProduct `json:"product"`
}

// searchResponse is the body of /cgi/search.pl?json=1
type searchResponse struct {
	Count    int          `json:"count"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Products []offProduct `json:"products"`
}
