package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Service is a bookable treatment (lash set, refill, removal...).
type Service struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	ImageURL        string    `json:"imageUrl"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Media resource kinds as reported by the upload host
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

type GalleryItem struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	PublicID  string    `json:"publicId"`
	MediaType string    `json:"mediaType"` // image | video
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
}

// ActiveProducts filters a product list down to storefront-visible entries.
func ActiveProducts(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}
