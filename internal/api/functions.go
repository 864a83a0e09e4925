package api

import (
	"net/http"

	"github.com/go-chi/render"
)

// generateReview serves POST /functions/generate-review.
func (h *handler) generateReview(w http.ResponseWriter, r *http.Request) {
	data := &ReviewRequest{}
	if err := render.Bind(r, data); err != nil {
		h.renderError(w, r, ErrInvalidRequest(err))
		return
	}

	review, err := h.Reviewer.GenerateReview(r.Context(), data.Phone)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Error generating review", "error", err)
		h.renderError(w, r, errorFor(err, "Failed to generate review"))
		return
	}

	h.render(w, r, &ReviewResponse{Review: review})
}

// generateSpecs serves POST /functions/generate-specs.
func (h *handler) generateSpecs(w http.ResponseWriter, r *http.Request) {
	data := &SpecsRequest{}
	if err := render.Bind(r, data); err != nil {
		h.renderError(w, r, ErrInvalidRequest(err))
		return
	}

	specs, err := h.Specs.GenerateSpecs(r.Context(), data.PhoneID, data.PhoneName)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Error generating specs", "error", err)
		h.renderError(w, r, errorFor(err, "Failed to generate specs"))
		return
	}

	h.render(w, r, &SpecsResponse{Specs: specs, Updated: true})
}

// recommendPhones serves POST /functions/recommend-phones.
func (h *handler) recommendPhones(w http.ResponseWriter, r *http.Request) {
	data := &RecommendRequest{}
	if err := render.Bind(r, data); err != nil {
		h.renderError(w, r, ErrInvalidRequest(err))
		return
	}

	recs, err := h.Recommender.Recommend(r.Context(), data.Budget, data.Preferences)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Error generating recommendations", "error", err)
		h.renderError(w, r, errorFor(err, "Failed to generate recommendations"))
		return
	}

	h.render(w, r, &RecommendResponse{Recommendations: recs})
}
