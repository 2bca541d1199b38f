package services

import (
	"time"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/ferreirogomes/quinhao/ledger"
	"github.com/ferreirogomes/quinhao/models"
	"github.com/ferreirogomes/quinhao/registry"
)

// TradingService is the buy-in entry point. Each purchase runs as one atomic
// step inside the target ledger's critical section; the consolidation title
// transfer happens through the registry within that same step.
type TradingService struct {
	registry *registry.Registry
	ledgers  *ledger.Table
	bus      EventBus.Bus
	log      *zap.Logger
}

func NewTradingService(reg *registry.Registry, ledgers *ledger.Table, bus EventBus.Bus, log *zap.Logger) *TradingService {
	return &TradingService{registry: reg, ledgers: ledgers, bus: bus, log: log}
}

// BuyShares purchases count shares from the ledger's consolidated holder
// against an exact payment.
func (s *TradingService) BuyShares(ledgerID, buyer string, count, paymentCents int64) (models.PurchaseReceipt, error) {
	l, err := s.ledgers.Get(ledgerID)
	if err != nil {
		return models.PurchaseReceipt{}, err
	}

	receipt, err := l.BuyShares(buyer, count, paymentCents, s.titleTransfer(ledgerID))
	if err != nil {
		return models.PurchaseReceipt{}, err
	}

	if receipt.Buyer != receipt.Seller {
		s.bus.Publish(models.TopicSharesPurchased, models.SharesPurchased{
			PurchaseID: receipt.PurchaseID,
			LedgerID:   receipt.LedgerID,
			Buyer:      receipt.Buyer,
			Seller:     receipt.Seller,
			Count:      receipt.Count,
			PaidCents:  receipt.PaidCents,
			OccurredAt: receipt.ExecutedAt,
		})
	}
	s.log.Info("shares purchased",
		zap.String("ledger_id", ledgerID),
		zap.String("buyer", buyer),
		zap.Int64("count", count),
		zap.String("state", string(receipt.State)))
	return receipt, nil
}

// titleTransfer builds the consolidation callback for one ledger. It runs
// inside the ledger's critical section, authorized by the ledger's own ID as
// the asset's custodian.
func (s *TradingService) titleTransfer(ledgerID string) ledger.TitleTransfer {
	return func(assetID, newHolder string) error {
		prev, err := s.registry.TransferTitle(assetID, newHolder, ledgerID)
		if err != nil {
			return err
		}
		s.bus.Publish(models.TopicTitleTransferred, models.TitleTransferred{
			AssetID:    assetID,
			From:       prev,
			To:         newHolder,
			LedgerID:   ledgerID,
			OccurredAt: time.Now().UTC(),
		})
		return nil
	}
}

// Ledger exposes read access to a live ledger for the query surface.
func (s *TradingService) Ledger(ledgerID string) (*ledger.Ledger, error) {
	return s.ledgers.Get(ledgerID)
}

// ShareHolders lists the ledger's holders in first-acquisition order.
func (s *TradingService) ShareHolders(ledgerID string) ([]models.Holding, error) {
	l, err := s.ledgers.Get(ledgerID)
	if err != nil {
		return nil, err
	}
	return l.ShareHolders(), nil
}

// PercentageOf returns one holder's truncated whole-percentage stake.
func (s *TradingService) PercentageOf(ledgerID, holder string) (int64, error) {
	l, err := s.ledgers.Get(ledgerID)
	if err != nil {
		return 0, err
	}
	return l.PercentageOf(holder), nil
}
