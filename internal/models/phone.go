package models

import "time"

// Phone is a single row of the phone catalog.
type Phone struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Brand         string   `json:"brand,omitempty"`
	CurrentPrice  float64  `json:"current_price"`
	OriginalPrice *float64 `json:"original_price"`
	Discount      string   `json:"discount,omitempty"`
	Rating        *float64 `json:"rating"`
	ImageURL      string   `json:"image_url,omitempty"`

	Processor    string `json:"processor,omitempty"`
	RAM          string `json:"ram,omitempty"`
	Storage      string `json:"storage,omitempty"`
	Battery      string `json:"battery,omitempty"`
	MainCamera   string `json:"main_camera,omitempty"`
	SelfieCamera string `json:"selfie_camera,omitempty"`
	DisplaySize  string `json:"display_size,omitempty"`
	DisplayType  string `json:"display_type,omitempty"`
	OS           string `json:"os,omitempty"`
	Network      string `json:"network,omitempty"`
	Weight       string `json:"weight,omitempty"`
	Dimensions   string `json:"dimensions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasSpecs reports whether the spec columns were filled in.
func (p *Phone) HasSpecs() bool {
	return p.Processor != ""
}

// SortOption is the ordering applied to catalog listings.
type SortOption string

const (
	SortNewest    SortOption = "newest"
	SortPriceLow  SortOption = "price-low"
	SortPriceHigh SortOption = "price-high"
	SortRating    SortOption = "rating"
	SortName      SortOption = "name"
)

// ParseSortOption maps a query value to a SortOption, defaulting to SortNewest.
func ParseSortOption(s string) SortOption {
	switch opt := SortOption(s); opt {
	case SortPriceLow, SortPriceHigh, SortRating, SortName:
		return opt
	default:
		return SortNewest
	}
}

// PhoneFilter narrows a catalog listing. Zero values mean "no restriction".
type PhoneFilter struct {
	Brand  string
	Query  string
	Sort   SortOption
	Limit  int
	Offset int
}
