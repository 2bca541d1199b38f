// Package listener keeps the database read model in sync with the live
// ledgers by projecting domain events off the bus.
package listener

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/ferreirogomes/quinhao/ledger"
	"github.com/ferreirogomes/quinhao/models"
)

// Store is the slice of persistence the projector writes to.
type Store interface {
	SavePurchase(p models.Purchase) error
	ReplaceHoldings(ledgerID string, holdings []models.Holding) error
	UpdateLedgerSeller(ledgerID, seller string) error
	UpdateAssetTitle(assetID, holder string) error
}

// Listener subscribes to ledger events and writes them through to storage.
// Projection is asynchronous; the in-memory ledgers stay authoritative, so a
// failed write here is logged for reconciliation rather than failing the
// purchase that produced it.
type Listener struct {
	bus     EventBus.Bus
	ledgers *ledger.Table
	store   Store
	log     *zap.Logger
}

func New(bus EventBus.Bus, ledgers *ledger.Table, store Store, log *zap.Logger) *Listener {
	return &Listener{bus: bus, ledgers: ledgers, store: store, log: log}
}

// Start registers the projection handlers. Purchase projections run
// transactionally so events for one ledger apply in publication order.
func (l *Listener) Start() error {
	if err := l.bus.SubscribeAsync(models.TopicSharesPurchased, l.onSharesPurchased, true); err != nil {
		return fmt.Errorf("subscribing to %s: %w", models.TopicSharesPurchased, err)
	}
	if err := l.bus.SubscribeAsync(models.TopicTitleTransferred, l.onTitleTransferred, true); err != nil {
		return fmt.Errorf("subscribing to %s: %w", models.TopicTitleTransferred, err)
	}
	if err := l.bus.Subscribe(models.TopicAssetFractionalized, l.onAssetFractionalized); err != nil {
		return fmt.Errorf("subscribing to %s: %w", models.TopicAssetFractionalized, err)
	}
	l.log.Info("event listener started")
	return nil
}

// Stop deregisters the handlers and waits for in-flight projections.
func (l *Listener) Stop() {
	l.bus.Unsubscribe(models.TopicSharesPurchased, l.onSharesPurchased)
	l.bus.Unsubscribe(models.TopicTitleTransferred, l.onTitleTransferred)
	l.bus.Unsubscribe(models.TopicAssetFractionalized, l.onAssetFractionalized)
	l.bus.WaitAsync()
}

func (l *Listener) onSharesPurchased(ev models.SharesPurchased) {
	if err := l.store.SavePurchase(models.Purchase{
		ID:         ev.PurchaseID,
		LedgerID:   ev.LedgerID,
		Buyer:      ev.Buyer,
		Seller:     ev.Seller,
		Count:      ev.Count,
		PaidCents:  ev.PaidCents,
		ExecutedAt: ev.OccurredAt,
	}); err != nil {
		l.log.Error("recording purchase failed, read model needs reconciliation",
			zap.String("purchase_id", ev.PurchaseID), zap.Error(err))
		return
	}

	led, err := l.ledgers.Get(ev.LedgerID)
	if err != nil {
		l.log.Error("purchased ledger missing from table", zap.String("ledger_id", ev.LedgerID))
		return
	}
	if err := l.store.ReplaceHoldings(ev.LedgerID, led.ShareHolders()); err != nil {
		l.log.Error("persisting holdings failed, read model needs reconciliation",
			zap.String("ledger_id", ev.LedgerID), zap.Error(err))
		return
	}
	if err := l.store.UpdateLedgerSeller(ev.LedgerID, led.Seller()); err != nil {
		l.log.Error("persisting ledger seller failed, read model needs reconciliation",
			zap.String("ledger_id", ev.LedgerID), zap.Error(err))
		return
	}
	l.log.Debug("purchase projected",
		zap.String("ledger_id", ev.LedgerID),
		zap.String("buyer", ev.Buyer),
		zap.Int64("count", ev.Count))
}

func (l *Listener) onTitleTransferred(ev models.TitleTransferred) {
	if err := l.store.UpdateAssetTitle(ev.AssetID, ev.To); err != nil {
		l.log.Error("persisting title transfer failed, read model needs reconciliation",
			zap.String("asset_id", ev.AssetID), zap.Error(err))
		return
	}
	l.log.Info("title transferred",
		zap.String("asset_id", ev.AssetID),
		zap.String("from", ev.From),
		zap.String("to", ev.To))
}

func (l *Listener) onAssetFractionalized(ev models.AssetFractionalized) {
	l.log.Info("asset fractionalized",
		zap.String("asset_id", ev.AssetID),
		zap.String("ledger_id", ev.LedgerID),
		zap.Int64("total_shares", ev.TotalShares))
}
