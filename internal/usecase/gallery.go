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

const fetchGalleryFallback = "Failed to fetch gallery"

const galleryCacheKey = "gallery:all"

// GalleryStore holds the portfolio media list. Upload goes to the media host
// first, then the resulting URL/publicId is registered with the backend.
type GalleryStore struct {
	api      *api.Client
	session  *Session
	notify   *notify.Hub
	uploader *media.Uploader
	cache    cache.CacheService
	cacheTTL time.Duration
	folder   string
	maxMB    int64
	policy   FetchPolicy
	col      collection[domain.GalleryItem]
}

func NewGalleryStore(client *api.Client, session *Session, hub *notify.Hub, uploader *media.Uploader,
	memCache cache.CacheService, cacheTTL time.Duration, folder string, maxMB int64, policy FetchPolicy) *GalleryStore {
	return &GalleryStore{
		api:      client,
		session:  session,
		notify:   hub,
		uploader: uploader,
		cache:    memCache,
		cacheTTL: cacheTTL,
		folder:   folder,
		maxMB:    maxMB,
		policy:   policy,
		col:      newCollection(func(g domain.GalleryItem) string { return g.ID }),
	}
}

func (s *GalleryStore) Fetch(ctx context.Context) error {
	if s.cache != nil {
		if val, found := s.cache.Get(galleryCacheKey); found {
			cached := val.([]domain.GalleryItem)
			s.col.finishOK(append([]domain.GalleryItem(nil), cached...))
			return nil
		}
	}

	s.col.beginLoad()
	items, err := fetchWithRetry(ctx, s.policy, s.api.ListGallery)
	if err != nil {
		if ctx.Err() != nil {
			s.col.cancelLoad()
			return err
		}
		msg := domain.ServerMessage(err, fetchGalleryFallback)
		s.col.finishErr(msg)
		s.notify.Error(msg)
		return err
	}
	s.col.finishOK(items)

	if s.cache != nil {
		// Cache its own copy; collection reconciliation must not reach the
		// cached slice through a shared backing array.
		s.cache.Set(galleryCacheKey, append([]domain.GalleryItem(nil), items...), s.cacheTTL)
	}
	return nil
}

func (s *GalleryStore) Items() []domain.GalleryItem {
	return s.col.snapshot()
}

func (s *GalleryStore) State() (Phase, string) {
	return s.col.state()
}

// Upload ships the file to the media host, registers it with the backend,
// and prepends the confirmed record.
func (s *GalleryStore) Upload(ctx context.Context, file media.File, caption string) (*domain.GalleryItem, error) {
	if err := requireAdmin(s.session); err != nil {
		return nil, err
	}

	uploaded, err := s.uploader.Upload(ctx, file, s.folder, s.maxMB)
	if err != nil {
		s.notify.Error(err.Error())
		return nil, err
	}

	item, err := s.api.CreateGalleryItem(ctx, api.GalleryInput{
		URL:       uploaded.URL,
		PublicID:  uploaded.PublicID,
		MediaType: uploaded.ResourceType,
		Caption:   caption,
	})
	if err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to save gallery item"))
		return nil, err
	}

	s.col.prepend(*item)
	s.invalidateCache()
	s.notify.Success("Gallery item added")
	return item, nil
}

// Delete removes the record from the backend and the local list.
func (s *GalleryStore) Delete(ctx context.Context, id string) error {
	if err := requireAdmin(s.session); err != nil {
		return err
	}
	if err := s.api.DeleteGalleryItem(ctx, id); err != nil {
		s.notify.Error(domain.ServerMessage(err, "Failed to delete gallery item"))
		return err
	}
	s.col.remove(id)
	s.invalidateCache()
	s.notify.Success("Gallery item removed")
	return nil
}

func (s *GalleryStore) invalidateCache() {
	if s.cache != nil {
		s.cache.Delete(galleryCacheKey)
	}
}
