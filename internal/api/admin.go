package api

import (
	"net/http"

	"github.com/Houeta/phone-insights/internal/models"
)

func (h *handler) adminListPhones(w http.ResponseWriter, r *http.Request) {
	phones, err := h.Phones.ListPhones(r.Context(), models.PhoneFilter{Sort: models.SortName})
	if err != nil {
		h.log.ErrorContext(r.Context(), "Failed to list phones", "error", err)
		h.renderError(w, r, errorFor(err, "Failed to fetch phones"))
		return
	}
	if phones == nil {
		phones = []models.Phone{}
	}

	h.render(w, r, &AdminPhonesResponse{Total: len(phones), Phones: phones})
}

func (h *handler) backfillSpecs(w http.ResponseWriter, r *http.Request) {
	report, err := h.Specs.Backfill(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "Specs backfill failed", "error", err)
		h.renderError(w, r, errorFor(err, "Failed to backfill specs"))
		return
	}

	h.render(w, r, &BackfillResponse{BackfillReport: report})
}

func (h *handler) checkCatalog(w http.ResponseWriter, r *http.Request) {
	if h.Catalog == nil {
		h.renderError(w, r, ErrCatalogDisabled)
		return
	}

	changes, err := h.Catalog.CheckForUpdates(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "Catalog check failed", "error", err)
		h.renderError(w, r, errorFor(err, "Failed to check catalog"))
		return
	}

	if !changes.Empty() && h.OnCatalogChange != nil {
		h.OnCatalogChange(r.Context(), changes)
	}

	h.render(w, r, &CatalogChangesResponse{CatalogChanges: changes})
}
