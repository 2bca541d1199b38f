package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ferreirogomes/quinhao/models"
	"github.com/ferreirogomes/quinhao/services"
)

// LedgerHandler serves the share-trading surface: buys and holder queries
// against the live ledgers, audit queries against the store.
type LedgerHandler struct {
	Trading *services.TradingService
	Store   services.Store
}

func NewLedgerHandler(trading *services.TradingService, store services.Store) *LedgerHandler {
	return &LedgerHandler{Trading: trading, Store: store}
}

type ledgerSummary struct {
	ID                 string             `json:"id"`
	AssetID            string             `json:"asset_id"`
	Creator            string             `json:"creator"`
	TotalShares        int64              `json:"total_shares"`
	PricePerShareCents int64              `json:"price_per_share_cents"`
	State              models.LedgerState `json:"state"`
	AvailableShares    int64              `json:"available_shares"`
	TitleHolder        string             `json:"title_holder,omitempty"`
}

// GetLedger returns the ledger's state and sellable inventory.
// GET /ledgers/{id}
func (h *LedgerHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	l, err := h.Trading.Ledger(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ledgerSummary{
		ID:                 l.ID(),
		AssetID:            l.AssetID(),
		Creator:            l.Creator(),
		TotalShares:        l.TotalShares(),
		PricePerShareCents: l.PricePerShareCents(),
		State:              l.State(),
		AvailableShares:    l.AvailableShares(),
		TitleHolder:        l.TitleHolder(),
	})
}

// BuyShares purchases shares from the ledger's available pool.
// POST /ledgers/{id}/buy
func (h *LedgerHandler) BuyShares(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Buyer        string `json:"buyer"`
		Count        int64  `json:"count"`
		PaymentCents int64  `json:"payment_cents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if requestBody.Buyer == "" {
		http.Error(w, "buyer is required", http.StatusBadRequest)
		return
	}

	receipt, err := h.Trading.BuyShares(chi.URLParam(r, "id"),
		requestBody.Buyer, requestBody.Count, requestBody.PaymentCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// GetShareHolders lists holders with balances and percentages.
// GET /ledgers/{id}/holders
func (h *LedgerHandler) GetShareHolders(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.Trading.ShareHolders(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, holdings)
}

// GetPercentage returns one holder's truncated percentage stake.
// GET /ledgers/{id}/holders/{holder}/percentage
func (h *LedgerHandler) GetPercentage(w http.ResponseWriter, r *http.Request) {
	pct, err := h.Trading.PercentageOf(chi.URLParam(r, "id"), chi.URLParam(r, "holder"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"percentage": pct})
}

// GetPurchases returns the ledger's purchase audit trail.
// GET /ledgers/{id}/purchases
func (h *LedgerHandler) GetPurchases(w http.ResponseWriter, r *http.Request) {
	// Confirm the ledger exists so unknown IDs 404 instead of listing empty.
	if _, err := h.Trading.Ledger(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	ps, err := h.Store.GetPurchasesByLedger(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

// GetHolderHoldings lists every stake one holder has across ledgers.
// GET /holders/{id}/holdings
func (h *LedgerHandler) GetHolderHoldings(w http.ResponseWriter, r *http.Request) {
	hs, err := h.Store.GetHoldingsByHolder(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	// The store rows carry balances only; percentages come from the live ledgers.
	for i := range hs {
		if pct, err := h.Trading.PercentageOf(hs[i].LedgerID, hs[i].Holder); err == nil {
			hs[i].Percentage = pct
		}
	}
	writeJSON(w, http.StatusOK, hs)
}
