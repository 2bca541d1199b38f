package services

import (
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ferreirogomes/quinhao/ledger"
	"github.com/ferreirogomes/quinhao/models"
	"github.com/ferreirogomes/quinhao/registry"
)

// FractionalizationService converts a singly-owned asset into a share-traded
// one. The conversion is one-shot and irreversible: custody of the title is
// locked under a new ledger and never released, even if the ledger later
// returns to a single holder.
type FractionalizationService struct {
	store    Store
	registry *registry.Registry
	ledgers  *ledger.Table
	bus      EventBus.Bus
	log      *zap.Logger
}

func NewFractionalizationService(store Store, reg *registry.Registry, ledgers *ledger.Table, bus EventBus.Bus, log *zap.Logger) *FractionalizationService {
	return &FractionalizationService{store: store, registry: reg, ledgers: ledgers, bus: bus, log: log}
}

// Fractionalize locks the asset under a new ledger with the caller holding
// every share. Any failure leaves the asset exactly as before, still
// singly-owned and eligible for retry.
func (s *FractionalizationService) Fractionalize(assetID string, totalShares, pricePerShareCents int64, caller string) (models.LedgerRecord, error) {
	if totalShares <= 0 {
		return models.LedgerRecord{}, models.ErrInvalidShareCount
	}
	if pricePerShareCents <= 0 {
		return models.LedgerRecord{}, models.ErrInvalidPrice
	}

	owner, err := s.registry.TitleOf(assetID)
	if err != nil {
		return models.LedgerRecord{}, err
	}
	if caller != owner {
		return models.LedgerRecord{}, models.ErrNotOwner
	}

	ledgerID := uuid.New().String()
	if err := s.registry.LockCustody(assetID, ledgerID); err != nil {
		return models.LedgerRecord{}, err
	}

	l := ledger.New(ledgerID, assetID, caller, totalShares, pricePerShareCents)
	s.ledgers.Put(l)

	rec := models.LedgerRecord{
		ID:                 ledgerID,
		AssetID:            assetID,
		Creator:            caller,
		Seller:             caller,
		TotalShares:        totalShares,
		PricePerShareCents: pricePerShareCents,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.persist(rec); err != nil {
		s.ledgers.Remove(ledgerID)
		s.registry.UnlockCustody(assetID)
		return models.LedgerRecord{}, err
	}

	s.bus.Publish(models.TopicAssetFractionalized, models.AssetFractionalized{
		AssetID:            assetID,
		LedgerID:           ledgerID,
		Creator:            caller,
		TotalShares:        totalShares,
		PricePerShareCents: pricePerShareCents,
		OccurredAt:         rec.CreatedAt,
	})
	s.log.Info("asset fractionalized",
		zap.String("asset_id", assetID),
		zap.String("ledger_id", ledgerID),
		zap.Int64("total_shares", totalShares),
		zap.Int64("price_per_share_cents", pricePerShareCents))
	return rec, nil
}

func (s *FractionalizationService) persist(rec models.LedgerRecord) error {
	if err := s.store.SaveLedger(rec); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	if err := s.store.MarkAssetFractionalized(rec.AssetID, rec.ID); err != nil {
		return fmt.Errorf("marking asset fractionalized: %w", err)
	}
	if err := s.store.ReplaceHoldings(rec.ID, []models.Holding{{
		LedgerID: rec.ID,
		Holder:   rec.Creator,
		Balance:  rec.TotalShares,
		Position: 0,
	}}); err != nil {
		return fmt.Errorf("saving initial holding: %w", err)
	}
	return nil
}
