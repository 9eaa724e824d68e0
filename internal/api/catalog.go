package api

import (
	"context"
	"net/http"

	"lashup-client/internal/domain"
)

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	IsActive    bool    `json:"isActive"`
}

type ServiceInput struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	ImageURL        string  `json:"imageUrl"`
	IsActive        bool    `json:"isActive"`
}

// --- Products ---

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, http.MethodPost, "products", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, http.MethodPut, "products/"+id, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeactivateProduct soft-deletes: the server flips isActive off and returns
// the updated record.
func (c *Client) DeactivateProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, http.MethodDelete, "products/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// --- Services ---

func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	if err := c.do(ctx, http.MethodGet, "services", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *Client) CreateService(ctx context.Context, in ServiceInput) (*domain.Service, error) {
	var s domain.Service
	if err := c.do(ctx, http.MethodPost, "services", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateService(ctx context.Context, id string, in ServiceInput) (*domain.Service, error) {
	var s domain.Service
	if err := c.do(ctx, http.MethodPut, "services/"+id, in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) DeactivateService(ctx context.Context, id string) (*domain.Service, error) {
	var s domain.Service
	if err := c.do(ctx, http.MethodDelete, "services/"+id, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// --- Gallery ---

type GalleryInput struct {
	URL       string `json:"url"`
	PublicID  string `json:"publicId"`
	MediaType string `json:"mediaType"`
	Caption   string `json:"caption"`
}

func (c *Client) ListGallery(ctx context.Context) ([]domain.GalleryItem, error) {
	var items []domain.GalleryItem
	if err := c.do(ctx, http.MethodGet, "gallery", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateGalleryItem(ctx context.Context, in GalleryInput) (*domain.GalleryItem, error) {
	var item domain.GalleryItem
	if err := c.do(ctx, http.MethodPost, "gallery", in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteGalleryItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "gallery/"+id, nil, nil)
}
