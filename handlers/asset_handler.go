package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ferreirogomes/quinhao/services"
)

// AssetHandler serves asset queries and the fractionalize command.
type AssetHandler struct {
	Catalog *services.CatalogService
	Frac    *services.FractionalizationService
}

func NewAssetHandler(catalog *services.CatalogService, frac *services.FractionalizationService) *AssetHandler {
	return &AssetHandler{Catalog: catalog, Frac: frac}
}

// GetAsset returns an asset by ID.
// GET /assets/{id}
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	a, err := h.Catalog.GetAsset(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// GetTitle returns the asset's current title holder.
// GET /assets/{id}/title
func (h *AssetHandler) GetTitle(w http.ResponseWriter, r *http.Request) {
	holder, err := h.Catalog.TitleOf(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"title_holder": holder})
}

// Fractionalize splits the asset into shares held by its current owner.
// POST /assets/{id}/fractionalize
func (h *AssetHandler) Fractionalize(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Caller             string `json:"caller"`
		TotalShares        int64  `json:"total_shares"`
		PricePerShareCents int64  `json:"price_per_share_cents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if requestBody.Caller == "" {
		http.Error(w, "caller is required", http.StatusBadRequest)
		return
	}

	rec, err := h.Frac.Fractionalize(chi.URLParam(r, "id"),
		requestBody.TotalShares, requestBody.PricePerShareCents, requestBody.Caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}
