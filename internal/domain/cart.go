package domain

// Cart mirrors the backend's cart aggregate. The backend is the single source
// of truth: the gateway never computes authoritative totals, it re-fetches the
// cart after every mutation and displays whatever the server returned.
type Cart struct {
	ID         string     `json:"_id,omitempty"`
	Products   []CartItem `json:"products"`
	TotalPrice float64    `json:"totalPrice"`
}

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// ItemCount is the derived badge count shown next to the cart icon.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, item := range c.Products {
		total += item.Quantity
	}
	return total
}

// Wishlist mirrors the backend's saved-for-later aggregate.
type Wishlist struct {
	ID       string         `json:"_id,omitempty"`
	Products []WishlistItem `json:"products"`
}

type WishlistItem struct {
	Product Product `json:"product"`
}
