package models

import "time"

// LedgerState tells whether all shares sit with one holder or are split
// across two or more.
type LedgerState string

const (
	StateConsolidated LedgerState = "consolidated"
	StateDistributed  LedgerState = "distributed"
)

// LedgerRecord is the persisted identity of an ownership ledger. Balances
// live in the holdings table and in memory; this row carries the parameters
// fixed at fractionalization time plus the current pool owner (Seller),
// which changes only when a buyer re-consolidates the ledger.
type LedgerRecord struct {
	ID                 string    `db:"id" json:"id"`
	AssetID            string    `db:"asset_id" json:"asset_id"`
	Creator            string    `db:"creator" json:"creator"`
	Seller             string    `db:"seller" json:"seller"`
	TotalShares        int64     `db:"total_shares" json:"total_shares"`
	PricePerShareCents int64     `db:"price_per_share_cents" json:"price_per_share_cents"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// Holding is one holder's stake in one ledger. Percentage is floor(balance *
// 100 / totalShares); 33 shares of 100 is 33, never 33.33. Position records
// the order the holder first acquired shares, for deterministic enumeration.
type Holding struct {
	LedgerID   string `db:"ledger_id" json:"ledger_id"`
	Holder     string `db:"holder" json:"holder"`
	Balance    int64  `db:"balance" json:"balance"`
	Percentage int64  `db:"-" json:"percentage"`
	Position   int    `db:"pos" json:"-"`
}

// PurchaseReceipt is returned to the buyer after a successful buy.
// NewTitleHolder is set only when this purchase consolidated the ledger.
type PurchaseReceipt struct {
	PurchaseID     string      `json:"purchase_id"`
	LedgerID       string      `json:"ledger_id"`
	Buyer          string      `json:"buyer"`
	Seller         string      `json:"seller"`
	Count          int64       `json:"count"`
	PaidCents      int64       `json:"paid_cents"`
	BuyerBalance   int64       `json:"buyer_balance"`
	State          LedgerState `json:"state"`
	NewTitleHolder string      `json:"new_title_holder,omitempty"`
	ExecutedAt     time.Time   `json:"executed_at"`
}

// Purchase is the persisted audit row for a completed buy.
type Purchase struct {
	ID         string    `db:"id" json:"id"`
	LedgerID   string    `db:"ledger_id" json:"ledger_id"`
	Buyer      string    `db:"buyer" json:"buyer"`
	Seller     string    `db:"seller" json:"seller"`
	Count      int64     `db:"count" json:"count"`
	PaidCents  int64     `db:"paid_cents" json:"paid_cents"`
	ExecutedAt time.Time `db:"executed_at" json:"executed_at"`
}
