package models

import "time"

// Collection groups assets under a shared name and symbol. The catalog is
// the only producer of asset IDs the ledger ever sees.
type Collection struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Symbol      string    `db:"symbol" json:"symbol"`
	MetadataRef string    `db:"metadata_ref" json:"metadata_ref"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
