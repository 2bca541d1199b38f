package models

import "time"

// EventBus topics for external observers (dashboards, projections).
const (
	TopicAssetFractionalized = "asset.fractionalized"
	TopicSharesPurchased     = "shares.purchased"
	TopicTitleTransferred    = "title.transferred"
)

// AssetFractionalized fires once per asset, when custody is locked under a
// new ledger.
type AssetFractionalized struct {
	AssetID            string    `json:"asset_id"`
	LedgerID           string    `json:"ledger_id"`
	Creator            string    `json:"creator"`
	TotalShares        int64     `json:"total_shares"`
	PricePerShareCents int64     `json:"price_per_share_cents"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// SharesPurchased fires for every successful non-noop buy.
type SharesPurchased struct {
	PurchaseID string    `json:"purchase_id"`
	LedgerID   string    `json:"ledger_id"`
	Buyer      string    `json:"buyer"`
	Seller     string    `json:"seller"`
	Count      int64     `json:"count"`
	PaidCents  int64     `json:"paid_cents"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TitleTransferred fires whenever the registry re-titles an asset, including
// the consolidation transfer driven by a buy.
type TitleTransferred struct {
	AssetID    string    `json:"asset_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	LedgerID   string    `json:"ledger_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
