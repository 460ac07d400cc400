package models

// ProductTranslation is one row of the persistent translation cache:
// a barcode mapped to the display name it was once translated to.
// Rows are created lazily on first translation and never updated.
type ProductTranslation struct {
	ID             int64  `json:"id"`
	Barcode        string `json:"barcode"`
	TranslatedName string `json:"translated_name"`
}
