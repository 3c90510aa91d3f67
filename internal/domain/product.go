package domain

const (
	MinPrice int64 = 1000
	MaxPrice int64 = 15000
)

// Product is a catalog entry. Prices are in minor currency units.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
}

// RatedProduct is a product with the visitor's rating overlaid. Rating is 0 when unrated.
type RatedProduct struct {
	Product
	Rating int `json:"rating"`
}

type ShopInfo struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}
