package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type TranslationSQLite struct {
	db *sql.DB
}

func NewTranslationSQLite(db *sql.DB) *TranslationSQLite { return &TranslationSQLite{db: db} }

var _ TranslationRepo = (*TranslationSQLite)(nil)

const (
	selectTranslationSQL = `SELECT translated_name FROM product_translations WHERE barcode = ?`

	// Concurrent first-time translations of the same barcode may race; the
	// first committed row wins and later inserts are no-ops.
	insertTranslationSQL = `
		INSERT INTO product_translations (barcode, translated_name)
		VALUES (?, ?)
		ON CONFLICT(barcode) DO NOTHING
	`

	deleteAllTranslationsSQL = `DELETE FROM product_translations`
)

// Get returns the cached translated name for a barcode, if any.
func (r *TranslationSQLite) Get(ctx context.Context, barcode string) (string, bool, error) {
	var name string
	err := r.db.QueryRowContext(ctx, selectTranslationSQL, barcode).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select translation for barcode %q: %w", barcode, err)
	}
	return name, true, nil
}

// Put stores a translation for a barcode. An existing row is left untouched
// and treated as authoritative.
func (r *TranslationSQLite) Put(ctx context.Context, barcode, translatedName string) error {
	if _, err := r.db.ExecContext(ctx, insertTranslationSQL, barcode, translatedName); err != nil {
		return fmt.Errorf("insert translation for barcode %q: %w", barcode, err)
	}
	return nil
}

// DeleteAll wipes the whole translation cache.
func (r *TranslationSQLite) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteAllTranslationsSQL); err != nil {
		return fmt.Errorf("delete all translations: %w", err)
	}
	return nil
}
