package models

// RawProduct is a single record as returned by the OpenFoodFacts search
// endpoint, restricted to the fields we request.
type RawProduct struct {
	ProductName   string `json:"product_name"`
	ProductNameKR string `json:"product_name_KR"`
	Code          string `json:"code"`
	Brands        string `json:"brands"`     // comma-separated upstream
	Categories    string `json:"categories"` // comma-separated upstream
}

// DisplayProduct is the localized, display-ready projection of a RawProduct.
type DisplayProduct struct {
	Name         string `json:"name"`
	Barcode      string `json:"barcode"`
	Manufacturer string `json:"manufacturer"`
	Categories   string `json:"categories"`
}

// NutritionInfo holds per-100g nutrition facts for one product.
type NutritionInfo struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}
