package service

import (
	"context"
	"strings"

	"diet_tracker/internal/models"
)

// Display sentinels substituted for absent source fields.
const (
	NoBarcode      = "바코드 없음"
	NoName         = "이름 없음"
	NoManufacturer = "제조사 없음"
	NoCategory     = "카테고리 없음"
)

// FoodService runs the search pipeline: query translation, external search,
// and projection of raw records into localized display products.
type FoodService struct {
	api         FoodAPI
	translation Translation
}

var _ Foods = (*FoodService)(nil)

func NewFoodService(api FoodAPI, translation Translation) *FoodService {
	return &FoodService{api: api, translation: translation}
}

// Search translates the query into the service's language, issues the search
// and projects the results. Records with no name in either field are dropped.
func (s *FoodService) Search(ctx context.Context, query string) ([]models.DisplayProduct, error) {
	translated := s.translation.QueryLanguage(ctx, query)

	raw, err := s.api.Search(ctx, translated)
	if err != nil {
		return nil, err
	}

	named := raw[:0:0]
	for _, p := range raw {
		if p.ProductName != "" || p.ProductNameKR != "" {
			named = append(named, p)
		}
	}
	return s.project(ctx, named), nil
}

// List returns one projected page of the full catalog. It shares the exact
// projection path with Search; the two must not diverge.
func (s *FoodService) List(ctx context.Context, page, pageSize int) ([]models.DisplayProduct, error) {
	raw, err := s.api.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, raw), nil
}

// Nutrition fetches per-100g facts for a barcode. (nil, nil) means the
// product is unknown upstream — not zero nutrition.
func (s *FoodService) Nutrition(ctx context.Context, barcode string) (*models.NutritionInfo, error) {
	return s.api.Nutrition(ctx, barcode)
}

// project maps raw records to display products. Name resolution order:
// pre-localized field, then cached/live translation (persisted when a barcode
// exists), then the no-name sentinel.
func (s *FoodService) project(ctx context.Context, raw []models.RawProduct) []models.DisplayProduct {
	out := make([]models.DisplayProduct, 0, len(raw))
	for _, p := range raw {
		barcode := p.Code
		if barcode == "" {
			barcode = NoBarcode
		}

		var name string
		switch {
		case p.ProductNameKR != "":
			name = p.ProductNameKR
		case p.ProductName != "" && p.Code != "":
			name = s.translation.Localize(ctx, p.ProductName, p.Code)
		case p.ProductName != "":
			name = s.translation.Localize(ctx, p.ProductName, "")
		default:
			name = NoName
		}

		out = append(out, models.DisplayProduct{
			Name:         name,
			Barcode:      barcode,
			Manufacturer: normalizeList(p.Brands, NoManufacturer),
			Categories:   normalizeList(p.Categories, NoCategory),
		})
	}
	return out
}

// normalizeList rejoins a comma-separated source field with ", ", smoothing
// the upstream's inconsistent separator spacing.
func normalizeList(s, fallback string) string {
	if s == "" {
		s = fallback
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
