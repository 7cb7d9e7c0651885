package domain

// Product is read-only from the gateway's perspective: the backend owns the
// catalog, we only filter, sort and display.
type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Images      []string `json:"images"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
}

type Review struct {
	ID        string  `json:"_id"`
	User      string  `json:"user"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	CreatedAt string  `json:"createdAt"`
}
