// Package ledger implements per-asset share accounting: the balance table,
// the buy-in protocol and the atomic consolidation transfer.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ferreirogomes/quinhao/models"
)

// TitleTransfer re-titles the asset to newHolder on behalf of the ledger.
// It runs inside the ledger's critical section; if it fails the purchase
// that triggered it is rolled back before the lock is released.
type TitleTransfer func(assetID, newHolder string) error

// Ledger is the share table of one fractionalized asset. totalShares and
// pricePerShare are fixed at creation. Balances always sum to totalShares.
//
// Trading follows a single-seller model: shares are drawn only from the pool
// of whoever most recently held 100% (the creator at first, then any buyer
// who re-consolidates). Minority holders cannot sell to each other. Once the
// pool is exhausted without a new consolidation, nothing is for sale.
type Ledger struct {
	mu sync.RWMutex

	id            string
	assetID       string
	creator       string
	totalShares   int64
	pricePerShare int64 // cents

	seller   string // current pool owner: last holder to own every share
	balances map[string]int64
	order    []string // holders in first-acquisition order
}

// New creates a ledger with the creator holding all shares. Parameters are
// assumed validated by the coordinator.
func New(id, assetID, creator string, totalShares, pricePerShareCents int64) *Ledger {
	return &Ledger{
		id:            id,
		assetID:       assetID,
		creator:       creator,
		totalShares:   totalShares,
		pricePerShare: pricePerShareCents,
		seller:        creator,
		balances:      map[string]int64{creator: totalShares},
		order:         []string{creator},
	}
}

// Restore rebuilds a ledger from persisted holdings, given in
// first-acquisition order. Used only during startup rehydration.
func Restore(rec models.LedgerRecord, holdings []models.Holding) *Ledger {
	l := &Ledger{
		id:            rec.ID,
		assetID:       rec.AssetID,
		creator:       rec.Creator,
		totalShares:   rec.TotalShares,
		pricePerShare: rec.PricePerShareCents,
		seller:        rec.Seller,
		balances:      make(map[string]int64, len(holdings)),
	}
	for _, h := range holdings {
		l.balances[h.Holder] = h.Balance
		l.order = append(l.order, h.Holder)
	}
	return l
}

func (l *Ledger) ID() string                { return l.id }
func (l *Ledger) AssetID() string           { return l.assetID }
func (l *Ledger) Creator() string           { return l.creator }
func (l *Ledger) TotalShares() int64        { return l.totalShares }
func (l *Ledger) PricePerShareCents() int64 { return l.pricePerShare }

// Seller returns the current pool owner. Their balance may be zero, in
// which case nothing is for sale.
func (l *Ledger) Seller() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.seller
}

// available is the pool owner's remaining balance. Caller must hold l.mu.
func (l *Ledger) available() int64 {
	return l.balances[l.seller]
}

func (l *Ledger) state() models.LedgerState {
	if l.balances[l.seller] == l.totalShares {
		return models.StateConsolidated
	}
	return models.StateDistributed
}

// State reports whether one holder owns every share or the shares are split.
func (l *Ledger) State() models.LedgerState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state()
}

// AvailableShares is the sellable inventory: the unsold remainder of the
// current pool owner's stake. Zero once the pool is exhausted.
func (l *Ledger) AvailableShares() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.available()
}

// TitleHolder returns the holder owning all shares, or "" when distributed.
func (l *Ledger) TitleHolder() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.balances[l.seller] == l.totalShares {
		return l.seller
	}
	return ""
}

// BuyShares moves count shares from the pool owner to buyer against an
// exact payment of count*pricePerShare cents. The balance move and, when
// the buyer ends up with every share, the title transfer happen as one
// atomic step: a failed transfer rolls the balances back and the buyer sees
// the whole operation fail with nothing changed.
//
// Buying from yourself is a no-op success.
func (l *Ledger) BuyShares(buyer string, count, paymentCents int64, transfer TitleTransfer) (models.PurchaseReceipt, error) {
	if count <= 0 {
		return models.PurchaseReceipt{}, models.ErrInvalidCount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	available := l.available()
	if available == 0 {
		return models.PurchaseReceipt{}, models.ErrNoSeller
	}
	if count > available {
		return models.PurchaseReceipt{}, fmt.Errorf("%w: requested %d, available %d",
			models.ErrInsufficientShares, count, available)
	}
	if paymentCents != count*l.pricePerShare {
		return models.PurchaseReceipt{}, fmt.Errorf("%w: expected %d cents, got %d",
			models.ErrIncorrectPayment, count*l.pricePerShare, paymentCents)
	}

	seller := l.seller
	receipt := models.PurchaseReceipt{
		PurchaseID: uuid.New().String(),
		LedgerID:   l.id,
		Buyer:      buyer,
		Seller:     seller,
		Count:      count,
		PaidCents:  paymentCents,
		ExecutedAt: time.Now().UTC(),
	}

	if buyer == seller {
		receipt.BuyerBalance = l.balances[buyer]
		receipt.State = l.state()
		return receipt, nil
	}

	newBuyer := l.balances[buyer] == 0
	l.balances[seller] -= count
	l.balances[buyer] += count
	if newBuyer {
		l.order = append(l.order, buyer)
	}

	if l.balances[buyer] == l.totalShares {
		// Consolidation. Title must move within this same atomic step;
		// a buyer owning every share without title is never observable.
		if err := transfer(l.assetID, buyer); err != nil {
			l.balances[seller] += count
			l.balances[buyer] -= count
			if newBuyer {
				delete(l.balances, buyer)
				l.order = l.order[:len(l.order)-1]
			}
			return models.PurchaseReceipt{}, fmt.Errorf("%w: %v", models.ErrTitleTransferFailed, err)
		}
		l.seller = buyer
		receipt.NewTitleHolder = buyer
	}

	if l.balances[seller] == 0 {
		delete(l.balances, seller)
		l.dropFromOrder(seller)
	}

	receipt.BuyerBalance = l.balances[buyer]
	receipt.State = l.state()
	return receipt, nil
}

func (l *Ledger) dropFromOrder(holder string) {
	for i, h := range l.order {
		if h == holder {
			l.order = append(l.order[:i], l.order[i+1:]...)
			return
		}
	}
}

// ShareHolders lists holders with nonzero balance in first-acquisition
// order, with floor-division percentages.
func (l *Ledger) ShareHolders() []models.Holding {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Holding, 0, len(l.order))
	for i, h := range l.order {
		out = append(out, models.Holding{
			LedgerID:   l.id,
			Holder:     h,
			Balance:    l.balances[h],
			Percentage: l.balances[h] * 100 / l.totalShares,
			Position:   i,
		})
	}
	return out
}

// PercentageOf returns the holder's stake as a truncated whole percentage.
// Unknown holders are simply at zero.
func (l *Ledger) PercentageOf(holder string) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[holder] * 100 / l.totalShares
}
