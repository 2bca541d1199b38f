package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferreirogomes/quinhao/models"
)

func (d *DB) SaveCollection(c models.Collection) error {
	query := `INSERT INTO collections (id, name, symbol, metadata_ref, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = $2, symbol = $3, metadata_ref = $4`
	_, err := d.Exec(query, c.ID, c.Name, c.Symbol, c.MetadataRef, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}
	return nil
}

func (d *DB) GetCollection(id string) (models.Collection, bool, error) {
	var c models.Collection
	err := d.Get(&c, `SELECT * FROM collections WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Collection{}, false, nil
	}
	if err != nil {
		return models.Collection{}, false, fmt.Errorf("loading collection: %w", err)
	}
	return c, true, nil
}

func (d *DB) SaveAsset(a models.Asset) error {
	query := `INSERT INTO assets (id, collection_id, metadata_ref, title_holder, fractionalized, ledger_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET title_holder = $4, fractionalized = $5, ledger_id = $6`
	_, err := d.Exec(query, a.ID, a.CollectionID, a.MetadataRef, a.TitleHolder, a.Fractionalized, a.LedgerID, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving asset: %w", err)
	}
	return nil
}

func (d *DB) GetAsset(id string) (models.Asset, bool, error) {
	var a models.Asset
	err := d.Get(&a, `SELECT * FROM assets WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Asset{}, false, nil
	}
	if err != nil {
		return models.Asset{}, false, fmt.Errorf("loading asset: %w", err)
	}
	return a, true, nil
}

func (d *DB) MarkAssetFractionalized(assetID, ledgerID string) error {
	_, err := d.Exec(`UPDATE assets SET fractionalized = TRUE, ledger_id = $1 WHERE id = $2`, ledgerID, assetID)
	if err != nil {
		return fmt.Errorf("marking asset fractionalized: %w", err)
	}
	return nil
}

func (d *DB) UpdateAssetTitle(assetID, holder string) error {
	_, err := d.Exec(`UPDATE assets SET title_holder = $1 WHERE id = $2`, holder, assetID)
	if err != nil {
		return fmt.Errorf("updating asset title: %w", err)
	}
	return nil
}

func (d *DB) SaveLedger(rec models.LedgerRecord) error {
	query := `INSERT INTO ledgers (id, asset_id, creator, seller, total_shares, price_per_share_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`
	_, err := d.Exec(query, rec.ID, rec.AssetID, rec.Creator, rec.Seller, rec.TotalShares, rec.PricePerShareCents, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	return nil
}

// UpdateLedgerSeller records a pool-owner change after a re-consolidation.
func (d *DB) UpdateLedgerSeller(ledgerID, seller string) error {
	_, err := d.Exec(`UPDATE ledgers SET seller = $1 WHERE id = $2`, seller, ledgerID)
	if err != nil {
		return fmt.Errorf("updating ledger seller: %w", err)
	}
	return nil
}

// ReplaceHoldings swaps the persisted holdings of one ledger for the given
// snapshot, in a single transaction.
func (d *DB) ReplaceHoldings(ledgerID string, holdings []models.Holding) error {
	tx, err := d.Beginx()
	if err != nil {
		return fmt.Errorf("beginning holdings transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM holdings WHERE ledger_id = $1`, ledgerID); err != nil {
		return fmt.Errorf("clearing holdings: %w", err)
	}
	for _, h := range holdings {
		_, err := tx.Exec(`INSERT INTO holdings (ledger_id, holder, balance, pos) VALUES ($1, $2, $3, $4)`,
			ledgerID, h.Holder, h.Balance, h.Position)
		if err != nil {
			return fmt.Errorf("inserting holding: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing holdings: %w", err)
	}
	return nil
}

func (d *DB) SavePurchase(p models.Purchase) error {
	query := `INSERT INTO purchases (id, ledger_id, buyer, seller, count, paid_cents, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`
	_, err := d.Exec(query, p.ID, p.LedgerID, p.Buyer, p.Seller, p.Count, p.PaidCents, p.ExecutedAt)
	if err != nil {
		return fmt.Errorf("saving purchase: %w", err)
	}
	return nil
}

func (d *DB) GetHoldingsByHolder(holder string) ([]models.Holding, error) {
	var hs []models.Holding
	err := d.Select(&hs, `SELECT ledger_id, holder, balance, pos FROM holdings WHERE holder = $1 ORDER BY ledger_id`, holder)
	if err != nil {
		return nil, fmt.Errorf("loading holdings by holder: %w", err)
	}
	return hs, nil
}

func (d *DB) GetHoldingsByLedger(ledgerID string) ([]models.Holding, error) {
	var hs []models.Holding
	err := d.Select(&hs, `SELECT ledger_id, holder, balance, pos FROM holdings WHERE ledger_id = $1 ORDER BY pos`, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("loading holdings by ledger: %w", err)
	}
	return hs, nil
}

func (d *DB) GetPurchasesByLedger(ledgerID string) ([]models.Purchase, error) {
	var ps []models.Purchase
	err := d.Select(&ps, `SELECT * FROM purchases WHERE ledger_id = $1 ORDER BY executed_at`, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("loading purchases: %w", err)
	}
	return ps, nil
}

func (d *DB) LoadAssets() ([]models.Asset, error) {
	var as []models.Asset
	if err := d.Select(&as, `SELECT * FROM assets ORDER BY created_at`); err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}
	return as, nil
}

func (d *DB) LoadLedgers() ([]models.LedgerRecord, error) {
	var ls []models.LedgerRecord
	if err := d.Select(&ls, `SELECT * FROM ledgers ORDER BY created_at`); err != nil {
		return nil, fmt.Errorf("loading ledgers: %w", err)
	}
	return ls, nil
}
