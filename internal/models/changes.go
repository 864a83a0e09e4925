package models

// Listing is one phone row scraped from the retailer's listing page.
type Listing struct {
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Brand         string   `json:"brand,omitempty"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Discount      string   `json:"discount,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
}

// PriceChange - information about a listing whose price moved.
type PriceChange struct {
	Old Listing `json:"old"`
	New Listing `json:"new"`
}

// Dropped reports whether the new price is lower than the old one.
func (c PriceChange) Dropped() bool {
	return c.New.Price < c.Old.Price
}

// CatalogChanges - comparison result: all types of changes.
type CatalogChanges struct {
	Added   []Listing     `json:"added"`
	Removed []Listing     `json:"removed"`
	Changed []PriceChange `json:"changed"`
}

// Empty reports whether nothing changed.
func (c *CatalogChanges) Empty() bool {
	return c == nil || len(c.Added)+len(c.Removed)+len(c.Changed) == 0
}

// CatalogState - the imported catalog stored in the database.
type CatalogState struct {
	PageHash string
	Listings []Listing
}
