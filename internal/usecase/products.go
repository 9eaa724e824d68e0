package usecase

import (
	"context"
	"time"

	"lashup-client/internal/api"
	"lashup-client/internal/domain"
	"lashup-client/internal/infrastructure/notify"
	"lashup-client/pkg/cache"
	"lashup-client/pkg/media"
)

const fetchProductsFallback = "Failed to fetch products"

// ProductStore is the resilient product collection. The storefront variant
// filters to active entries and caches reads; the admin variant sees
// everything and exposes the mutators.
type ProductStore struct {
	api        *api.Client
	session    *Session
	notify     *notify.Hub
	cache      cache.CacheService
	cacheTTL   time.Duration
	uploader   *media.Uploader
	folder     string
	maxMB      int64
	policy     FetchPolicy
	activeOnly bool
	col        collection[domain.Product]
}

const productCacheKey = "products:storefront"

// NewStorefrontProducts: public catalog view, active-only, TTL-cached.
func NewStorefrontProducts(client *api.Client, hub *notify.Hub, memCache cache.CacheService, cacheTTL time.Duration, policy FetchPolicy) *ProductStore {
	return &ProductStore{
		api:        client,
		notify:     hub,
		cache:      memCache,
		cacheTTL:   cacheTTL,
		policy:     policy,
		activeOnly: true,
		col:        newCollection(func(p domain.Product) string { return p.ID }),
	}
}

// NewAdminProducts: back-office view, unfiltered, mutators enabled.
func NewAdminProducts(client *api.Client, session *Session, hub *notify.Hub, uploader *media.Uploader,
	folder string, maxMB int64, policy FetchPolicy) *ProductStore {
	return &ProductStore{
		api:      client,
		session:  session,
		notify:   hub,
		uploader: uploader,
		folder:   folder,
		maxMB:    maxMB,
		policy:   policy,
		col:      newCollection(func(p domain.Product) string { return p.ID }),
	}
}

// Fetch loads the product list under the retry policy. Retries are silent;
// exhaustion records the error and notifies exactly once.
func (s *ProductStore) Fetch(ctx context.Context) error {
	if s.cache != nil {
		if val, found := s.cache.Get(productCacheKey); found {
			cached := val.([]domain.Product)
			s.col.finishOK(append([]domain.Product(nil), cached...))
			return nil
		}
	}

	s.col.beginLoad()
	products, err := fetchWithRetry(ctx, s.policy, s.api.ListProducts)
	if err != nil {
		if ctx.Err() != nil {
			s.col.cancelLoad()
			return err
		}
		msg := domain.ServerMessage(err, fetchProductsFallback)
		s.col.finishErr(msg)
		s.notify.Error(msg)
		return err
	}

	if s.activeOnly {
		products = domain.ActiveProducts(products)
	}
	s.col.finishOK(products)

	if s.cache != nil {
		// Cache its own copy; collection reconciliation must not reach the
		// cached slice through a shared backing array.
		s.cache.Set(productCacheKey, append([]domain.Product(nil), products...), s.cacheTTL)
	}
	return nil
}

func (s *ProductStore) Products() []domain.Product {
	return s.col.snapshot()
}

func (s *ProductStore) State() (Phase, string) {
	return s.col.state()
}

// Create is admin-only; on success the server's record is prepended.
func (s *ProductStore) Create(ctx context.Context, in api.ProductInput) (*domain.Product, error) {
	if err := requireAdmin(s.session); err != nil {
		return nil, err
	}
	created, err := s.api.CreateProduct(ctx, in)
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to create product"))
		return nil, err
	}
	s.col.prepend(*created)
	s.notify.Success("Product created")
	return created, nil
}

func (s *ProductStore) Update(ctx context.Context, id string, in api.ProductInput) (*domain.Product, error) {
	if err := requireAdmin(s.session); err != nil {
		return nil, err
	}
	updated, err := s.api.UpdateProduct(ctx, id, in)
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to update product"))
		return nil, err
	}
	s.col.replace(*updated)
	s.notify.Success("Product updated")
	return updated, nil
}

// Deactivate soft-deletes: the flagged record replaces the old one so the
// admin list keeps showing it while storefront views drop it.
func (s *ProductStore) Deactivate(ctx context.Context, id string) error {
	if err := requireAdmin(s.session); err != nil {
		return err
	}
	updated, err := s.api.DeactivateProduct(ctx, id)
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to deactivate product"))
		return err
	}
	s.col.replace(*updated)
	s.notify.Success("Product deactivated")
	return nil
}

// UploadImages ships product photos to the media host and returns their
// public URLs in input order, for use in a subsequent Create or Update.
func (s *ProductStore) UploadImages(ctx context.Context, files []media.File) ([]string, error) {
	if err := requireAdmin(s.session); err != nil {
		return nil, err
	}
	results, err := s.uploader.UploadAll(ctx, files, s.folder, s.maxMB)
	if err != nil {
		s.notify.Error(err.Error())
		return nil, err
	}
	urls := make([]string, len(results))
	for i, r := range results {
		urls[i] = r.URL
	}
	return urls, nil
}

// requireAdmin gates mutators before any network call.
func requireAdmin(s *Session) error {
	if s == nil || !s.IsAuthenticated() {
		return domain.ErrUnauthorized
	}
	if !s.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}
