package domain

// PlaceholderImage is used when a review's cafe name cannot be matched to a
// known cafe during enrichment.
const PlaceholderImage = "https://via.placeholder.com/50"

// Review is a record owned by the review backend. CafeName is the
// denormalized join key back to the cafe.
type Review struct {
	ID       string `json:"id"`
	Author   string `json:"author"`
	CafeName string `json:"cafe_name"`
	CafeID   string `json:"cafe_id,omitempty"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
	IsEdited bool   `json:"is_edited"`
}

// CafeRef is the resolved cafe reference attached to a review during profile
// enrichment. Unmatched means no cafe with that name was found; Ambiguous
// means more than one was, and the first match was taken.
type CafeRef struct {
	Name      string `json:"name"`
	ID        string `json:"id,omitempty"`
	Image     string `json:"image"`
	Unmatched bool   `json:"unmatched,omitempty"`
	Ambiguous bool   `json:"ambiguous,omitempty"`
}

// EnrichedReview is a review joined with its cafe reference. Assembled
// per-request by the aggregator, never persisted.
type EnrichedReview struct {
	Review
	Cafe CafeRef `json:"cafe"`
}
