package filter

import "fmt"

// Set holds the user-supplied hard filters for a product search.
// Every populated field becomes a hard filter clause that removes
// non-matching candidates before ranking.
type Set struct {
	category     string
	brand        string
	priceMin     *float64
	priceMax     *float64
	ratingFloor  *float64
	availability string
}

// New validates and creates a filter Set. All fields are optional.
func New(category, brand string, priceMin, priceMax, ratingFloor *float64, availability string) (Set, error) {
	if priceMin != nil && *priceMin < 0 {
		return Set{}, fmt.Errorf("price_min must not be negative")
	}
	if priceMax != nil && *priceMax < 0 {
		return Set{}, fmt.Errorf("price_max must not be negative")
	}
	if priceMin != nil && priceMax != nil && *priceMin > *priceMax {
		return Set{}, fmt.Errorf("price_min %v exceeds price_max %v", *priceMin, *priceMax)
	}
	if ratingFloor != nil && (*ratingFloor < 0 || *ratingFloor > 5) {
		return Set{}, fmt.Errorf("rating_floor must be between 0 and 5")
	}
	return Set{
		category:     category,
		brand:        brand,
		priceMin:     priceMin,
		priceMax:     priceMax,
		ratingFloor:  ratingFloor,
		availability: availability,
	}, nil
}

// Category returns the explicit category filter, empty when unset.
func (s Set) Category() string { return s.category }

// Brand returns the brand filter, empty when unset.
func (s Set) Brand() string { return s.brand }

// PriceMin returns the inclusive lower price bound, nil when unset.
func (s Set) PriceMin() *float64 { return s.priceMin }

// PriceMax returns the inclusive upper price bound, nil when unset.
func (s Set) PriceMax() *float64 { return s.priceMax }

// RatingFloor returns the minimum rating, nil when unset.
func (s Set) RatingFloor() *float64 { return s.ratingFloor }

// Availability returns the availability status filter, empty when unset.
func (s Set) Availability() string { return s.availability }

// IsEmpty reports whether no filter is set.
func (s Set) IsEmpty() bool {
	return s.category == "" && s.brand == "" &&
		s.priceMin == nil && s.priceMax == nil &&
		s.ratingFloor == nil && s.availability == ""
}
