package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/go-chi/render"
)

const maxPageSize = 100

// listPhones serves GET /phones?brand=&q=&sort=&limit=&offset=.
func (h *handler) listPhones(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.PhoneFilter{
		Brand:  strings.TrimSpace(query.Get("brand")),
		Query:  strings.TrimSpace(query.Get("q")),
		Sort:   models.ParseSortOption(query.Get("sort")),
		Limit:  min(positiveInt(query.Get("limit")), maxPageSize),
		Offset: positiveInt(query.Get("offset")),
	}
	if filter.Limit == 0 {
		filter.Limit = maxPageSize
	}

	phones, err := h.Phones.ListPhones(r.Context(), filter)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Failed to list phones", "error", err)
		h.renderError(w, r, errorFor(err, "Failed to fetch phones"))
		return
	}

	if err = render.RenderList(w, r, NewPhoneListResponse(phones)); err != nil {
		h.log.ErrorContext(r.Context(), "Failed to render phones", "error", err)
	}
}

// getPhone returns the phone loaded by phoneCtx.
func (h *handler) getPhone(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, &PhoneResponse{Phone: phoneFrom(r.Context())})
}

func (h *handler) listBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.Phones.ListBrands(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "Failed to list brands", "error", err)
		h.renderError(w, r, errorFor(err, "Failed to fetch brands"))
		return
	}
	if brands == nil {
		brands = []string{}
	}

	render.JSON(w, r, brands)
}

// positiveInt parses a query value, treating anything invalid or negative as 0.
func positiveInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
