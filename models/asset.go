package models

import "time"

// Asset is a unique, non-divisible item. MetadataRef is an opaque pointer to
// off-chain data; the core never interprets it. TitleHolder is the single
// party currently holding title. Once fractionalized, custody of the title
// belongs to the asset's ledger and LedgerID is set.
type Asset struct {
	ID             string    `db:"id" json:"id"`
	CollectionID   string    `db:"collection_id" json:"collection_id"`
	MetadataRef    string    `db:"metadata_ref" json:"metadata_ref"`
	TitleHolder    string    `db:"title_holder" json:"title_holder"`
	Fractionalized bool      `db:"fractionalized" json:"fractionalized"`
	LedgerID       string    `db:"ledger_id" json:"ledger_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
