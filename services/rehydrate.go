package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ferreirogomes/quinhao/ledger"
	"github.com/ferreirogomes/quinhao/models"
	"github.com/ferreirogomes/quinhao/registry"
)

// SnapshotStore is the slice of persistence startup rehydration reads from.
type SnapshotStore interface {
	LoadAssets() ([]models.Asset, error)
	LoadLedgers() ([]models.LedgerRecord, error)
	GetHoldingsByLedger(ledgerID string) ([]models.Holding, error)
}

// Rehydrate rebuilds the in-memory registry and ledger table from the
// persisted snapshot. Run once at startup, before the HTTP surface opens.
func Rehydrate(store SnapshotStore, reg *registry.Registry, ledgers *ledger.Table, log *zap.Logger) error {
	assets, err := store.LoadAssets()
	if err != nil {
		return fmt.Errorf("rehydrating assets: %w", err)
	}
	for _, a := range assets {
		reg.Restore(a.ID, a.TitleHolder, a.Fractionalized, a.LedgerID)
	}

	recs, err := store.LoadLedgers()
	if err != nil {
		return fmt.Errorf("rehydrating ledgers: %w", err)
	}
	for _, rec := range recs {
		holdings, err := store.GetHoldingsByLedger(rec.ID)
		if err != nil {
			return fmt.Errorf("rehydrating holdings for ledger %s: %w", rec.ID, err)
		}
		if len(holdings) == 0 {
			// Ledger row without holdings means the projection never
			// caught up past creation; the creator still holds everything.
			holdings = []models.Holding{{LedgerID: rec.ID, Holder: rec.Creator, Balance: rec.TotalShares}}
		}
		ledgers.Put(ledger.Restore(rec, holdings))
	}

	log.Info("state rehydrated",
		zap.Int("assets", len(assets)),
		zap.Int("ledgers", len(recs)))
	return nil
}
