package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the full command/query surface.
func NewRouter(collections *CollectionHandler, assets *AssetHandler, ledgers *LedgerHandler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/collections", func(r chi.Router) {
		r.Post("/", collections.CreateCollection)
		r.Get("/{id}", collections.GetCollection)
		r.Post("/{id}/assets", collections.MintAsset)
	})

	r.Route("/assets", func(r chi.Router) {
		r.Get("/{id}", assets.GetAsset)
		r.Get("/{id}/title", assets.GetTitle)
		r.Post("/{id}/fractionalize", assets.Fractionalize)
	})

	r.Route("/ledgers", func(r chi.Router) {
		r.Get("/{id}", ledgers.GetLedger)
		r.Post("/{id}/buy", ledgers.BuyShares)
		r.Get("/{id}/holders", ledgers.GetShareHolders)
		r.Get("/{id}/holders/{holder}/percentage", ledgers.GetPercentage)
		r.Get("/{id}/purchases", ledgers.GetPurchases)
	})

	r.Get("/holders/{id}/holdings", ledgers.GetHolderHoldings)

	return r
}
