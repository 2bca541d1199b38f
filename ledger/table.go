package ledger

import (
	"sync"

	"github.com/ferreirogomes/quinhao/models"
)

// Table is the arena of live ledgers, keyed by ledger ID with a secondary
// index by asset. Each ledger carries its own lock, so operations on
// unrelated assets never contend.
type Table struct {
	mu      sync.RWMutex
	byID    map[string]*Ledger
	byAsset map[string]*Ledger
}

func NewTable() *Table {
	return &Table{
		byID:    make(map[string]*Ledger),
		byAsset: make(map[string]*Ledger),
	}
}

func (t *Table) Put(l *Ledger) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byID[l.ID()] = l
	t.byAsset[l.AssetID()] = l
}

// Remove drops a ledger from the arena. Only the coordinator's rollback
// path uses it; a settled ledger is never destroyed.
func (t *Table) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if l, ok := t.byID[id]; ok {
		delete(t.byAsset, l.AssetID())
		delete(t.byID, id)
	}
}

func (t *Table) Get(id string) (*Ledger, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	l, ok := t.byID[id]
	if !ok {
		return nil, models.ErrUnknownLedger
	}
	return l, nil
}

func (t *Table) GetByAsset(assetID string) (*Ledger, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	l, ok := t.byAsset[assetID]
	if !ok {
		return nil, models.ErrUnknownLedger
	}
	return l, nil
}
