package models

// CartItem is one line of the locally persisted cart. Title, Price and Image
// are denormalized from the product at the moment it was added, the same way
// the storefront snapshots them for display.
type CartItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}
