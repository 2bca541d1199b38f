package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ferreirogomes/quinhao/services"
)

// CollectionHandler serves collection creation and asset minting.
type CollectionHandler struct {
	Catalog *services.CatalogService
}

func NewCollectionHandler(catalog *services.CatalogService) *CollectionHandler {
	return &CollectionHandler{Catalog: catalog}
}

// CreateCollection creates a new collection.
// POST /collections
func (h *CollectionHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Name        string `json:"name"`
		Symbol      string `json:"symbol"`
		MetadataRef string `json:"metadata_ref"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if requestBody.Name == "" || requestBody.Symbol == "" {
		http.Error(w, "name and symbol are required", http.StatusBadRequest)
		return
	}

	c, err := h.Catalog.CreateCollection(requestBody.Name, requestBody.Symbol, requestBody.MetadataRef)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// GetCollection returns a collection by ID.
// GET /collections/{id}
func (h *CollectionHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	c, err := h.Catalog.GetCollection(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// MintAsset creates a new asset inside a collection, titled to its owner.
// POST /collections/{id}/assets
func (h *CollectionHandler) MintAsset(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		MetadataRef string `json:"metadata_ref"`
		Owner       string `json:"owner"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if requestBody.Owner == "" {
		http.Error(w, "owner is required", http.StatusBadRequest)
		return
	}

	a, err := h.Catalog.MintAsset(chi.URLParam(r, "id"), requestBody.MetadataRef, requestBody.Owner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}
