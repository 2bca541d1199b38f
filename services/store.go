package services

import "github.com/ferreirogomes/quinhao/models"

// Store is the persistence surface the services depend on. storage.DB is
// the postgres implementation; tests substitute a mock.
type Store interface {
	SaveCollection(c models.Collection) error
	GetCollection(id string) (models.Collection, bool, error)

	SaveAsset(a models.Asset) error
	GetAsset(id string) (models.Asset, bool, error)
	MarkAssetFractionalized(assetID, ledgerID string) error
	UpdateAssetTitle(assetID, holder string) error

	SaveLedger(rec models.LedgerRecord) error
	ReplaceHoldings(ledgerID string, holdings []models.Holding) error
	SavePurchase(p models.Purchase) error

	GetHoldingsByHolder(holder string) ([]models.Holding, error)
	GetPurchasesByLedger(ledgerID string) ([]models.Purchase, error)
}
