package api

import (
	"net/http"
	"strings"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/Houeta/phone-insights/internal/services/recommender"
	"github.com/Houeta/phone-insights/internal/services/reviewer"
	"github.com/Houeta/phone-insights/internal/services/specgen"
	"github.com/go-chi/render"
)

//--
// Request payloads.
//--

type ReviewRequest struct {
	Phone *models.Phone `json:"phone"`
}

func (req *ReviewRequest) Bind(_ *http.Request) error {
	if req.Phone == nil {
		return reviewer.ErrPhoneRequired
	}
	return nil
}

type SpecsRequest struct {
	PhoneName string `json:"phoneName"`
	PhoneID   string `json:"phoneId"`
}

func (req *SpecsRequest) Bind(_ *http.Request) error {
	req.PhoneName, req.PhoneID = strings.TrimSpace(req.PhoneName), strings.TrimSpace(req.PhoneID)
	if req.PhoneName == "" || req.PhoneID == "" {
		return specgen.ErrInputRequired
	}
	return nil
}

type RecommendRequest struct {
	Budget      float64  `json:"budget"`
	Preferences []string `json:"preferences"`
}

func (req *RecommendRequest) Bind(_ *http.Request) error {
	if req.Budget <= 0 {
		return recommender.ErrBudgetRequired
	}
	return nil
}

//--
// Response payloads.
//--

type PhoneResponse struct {
	*models.Phone
}

func (*PhoneResponse) Render(_ http.ResponseWriter, _ *http.Request) error { return nil }

func NewPhoneListResponse(phones []models.Phone) []render.Renderer {
	list := make([]render.Renderer, 0, len(phones))
	for i := range phones {
		list = append(list, &PhoneResponse{Phone: &phones[i]})
	}
	return list
}

type ReviewResponse struct {
	Review *models.Review `json:"review"`
}

func (*ReviewResponse) Render(_ http.ResponseWriter, _ *http.Request) error { return nil }

type SpecsResponse struct {
	Specs   *models.Specs `json:"specs"`
	Updated bool          `json:"updated"`
}

func (*SpecsResponse) Render(_ http.ResponseWriter, _ *http.Request) error { return nil }

type RecommendResponse struct {
	*models.Recommendations
}

func (*RecommendResponse) Render(_ http.ResponseWriter, _ *http.Request) error { return nil }

// AdminPhonesResponse is the admin view of the whole catalog.
type AdminPhonesResponse struct {
	Total  int            `json:"total"`
	Phones []models.Phone `json:"phones"`
}

func (*AdminPhonesResponse) Render(_ http.ResponseWriter, _ *http.Request) error { return nil }

type BackfillResponse struct {
	*models.BackfillReport
}

func (*BackfillResponse) Render(_ http.ResponseWriter, _ *http.Request) error { return nil }

type CatalogChangesResponse struct {
	*models.CatalogChanges
}

// Render replaces nil slices so clients always see arrays.
func (c *CatalogChangesResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	if c.Added == nil {
		c.Added = []models.Listing{}
	}
	if c.Removed == nil {
		c.Removed = []models.Listing{}
	}
	if c.Changed == nil {
		c.Changed = []models.PriceChange{}
	}
	return nil
}
