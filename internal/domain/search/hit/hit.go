package hit

// Hit is a single retrieved catalog item with its relevance score.
// Scores are comparable across retrieval calls because every mode is
// normalized to [0,1] before it leaves the search repository.
type Hit struct {
	id           string
	title        string
	description  string
	price        float64
	brand        string
	category     string
	imageURL     string
	rating       *float64
	availability string
	score        float64
	subQuery     string
}

// New creates a hit.
func New(
	id, title, description string, price float64,
	brand, category, imageURL string, rating *float64,
	availability string, score float64,
) Hit {
	return Hit{
		id: id, title: title, description: description, price: price,
		brand: brand, category: category, imageURL: imageURL, rating: rating,
		availability: availability, score: score,
	}
}

// ID returns the stable item identifier.
func (h Hit) ID() string { return h.id }

// Title returns the display title.
func (h Hit) Title() string { return h.title }

// Description returns the item description.
func (h Hit) Description() string { return h.description }

// Price returns the item price.
func (h Hit) Price() float64 { return h.price }

// Brand returns the brand name.
func (h Hit) Brand() string { return h.brand }

// Category returns the catalog category.
func (h Hit) Category() string { return h.category }

// ImageURL returns the primary image URL.
func (h Hit) ImageURL() string { return h.imageURL }

// Rating returns the average rating, nil when the item has none.
func (h Hit) Rating() *float64 { return h.rating }

// Availability returns the availability status.
func (h Hit) Availability() string { return h.availability }

// Score returns the normalized relevance score in [0,1].
func (h Hit) Score() float64 { return h.score }

// SubQuery returns the exploration sub-query the hit originated from,
// empty outside exploration.
func (h Hit) SubQuery() string { return h.subQuery }

// WithSubQuery returns a copy tagged with its originating sub-query.
func (h Hit) WithSubQuery(sq string) Hit {
	h.subQuery = sq
	return h
}
