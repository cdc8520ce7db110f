package domain

// Cafe is a listing owned by the core backend. Reviews and reservations
// reference it by name (denormalized join key), so the gateway treats
// name-based joins as best-effort lookups.
type Cafe struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Bio        string   `json:"bio,omitempty"`
	DTI        string   `json:"dti,omitempty"`
	Image      string   `json:"image,omitempty"`
	PriceRange string   `json:"price_range,omitempty"`
	Address    string   `json:"address,omitempty"`
	Items      []string `json:"items"`
	Owner      string   `json:"owner,omitempty"`
}

// IsOwnedBy reports whether the identity owns this cafe. Ownership holds when
// the cafe's owner field matches the username or the cafe name appears in the
// identity's owned-cafe list.
func (c Cafe) IsOwnedBy(identity Identity) bool {
	if identity.IsAnonymous() {
		return false
	}
	return c.Owner == identity.Username || identity.Owns(c.Name)
}
