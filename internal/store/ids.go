package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base32"
	"errors"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// newItemID picks an item id not already present in the items table.
func newItemID(ctx context.Context, tx *sql.Tx) (string, error) {
	for i := 0; i < 8; i++ {
		id, err := newRandomID("item")
		if err != nil {
			return "", err
		}
		var one int
		err = tx.QueryRowContext(ctx, `SELECT 1 FROM items WHERE id = ?`, id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("could not allocate a unique item id")
}

// NewItemID returns a fresh item-xxxxxxxx id. Backends without a uniqueness
// check (redis seeding) rely on its 40 bits of randomness.
func NewItemID() (string, error) {
	return newRandomID("item")
}
