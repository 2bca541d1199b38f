// Package registry is the single source of truth for which party currently
// holds title to each asset.
package registry

import (
	"sync"

	"github.com/ferreirogomes/quinhao/models"
)

type record struct {
	titleHolder    string
	fractionalized bool
	custodian      string // ledger ID once fractionalized
}

// Registry maps asset IDs to their current title holder. Once an asset is
// fractionalized, title can only be reassigned by its custodian ledger.
type Registry struct {
	mu     sync.RWMutex
	assets map[string]*record
}

func New() *Registry {
	return &Registry{assets: make(map[string]*record)}
}

// Register creates a non-fractionalized asset titled to initialOwner.
func (r *Registry) Register(assetID, initialOwner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assets[assetID]; ok {
		return models.ErrDuplicateAsset
	}
	r.assets[assetID] = &record{titleHolder: initialOwner}
	return nil
}

// TitleOf returns the current title holder of the asset.
func (r *Registry) TitleOf(assetID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.assets[assetID]
	if !ok {
		return "", models.ErrUnknownAsset
	}
	return rec.titleHolder, nil
}

// IsFractionalized reports whether custody of the asset has been locked
// under a ledger.
func (r *Registry) IsFractionalized(assetID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.assets[assetID]
	if !ok {
		return false, models.ErrUnknownAsset
	}
	return rec.fractionalized, nil
}

// LockCustody marks the asset fractionalized and hands title authority to
// ledgerID. Once taken, the lock outlives any later re-consolidation.
func (r *Registry) LockCustody(assetID, ledgerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.assets[assetID]
	if !ok {
		return models.ErrUnknownAsset
	}
	if rec.fractionalized {
		return models.ErrAlreadyFractionalized
	}
	rec.fractionalized = true
	rec.custodian = ledgerID
	return nil
}

// UnlockCustody reverts LockCustody. Only the coordinator's rollback path
// uses it, when ledger persistence fails after the lock was taken.
func (r *Registry) UnlockCustody(assetID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.assets[assetID]; ok {
		rec.fractionalized = false
		rec.custodian = ""
	}
}

// Drop removes an asset record. Only the catalog's rollback path uses it,
// when persisting a freshly minted asset fails.
func (r *Registry) Drop(assetID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.assets, assetID)
}

// Restore seeds a record from persisted state during startup rehydration.
// It overwrites any existing record for the asset.
func (r *Registry) Restore(assetID, titleHolder string, fractionalized bool, ledgerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[assetID] = &record{
		titleHolder:    titleHolder,
		fractionalized: fractionalized,
		custodian:      ledgerID,
	}
}

// TransferTitle reassigns title to newHolder. For a fractionalized asset the
// caller must be the custodian ledger; otherwise it must be the current
// title holder. Returns the previous holder on success.
func (r *Registry) TransferTitle(assetID, newHolder, authorizedBy string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.assets[assetID]
	if !ok {
		return "", models.ErrUnknownAsset
	}
	if rec.fractionalized {
		if authorizedBy != rec.custodian {
			return "", models.ErrUnauthorized
		}
	} else if authorizedBy != rec.titleHolder {
		return "", models.ErrUnauthorized
	}
	prev := rec.titleHolder
	rec.titleHolder = newHolder
	return prev, nil
}
