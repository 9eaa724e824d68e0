package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"lashup-client/config"
	"lashup-client/internal/api"
	"lashup-client/internal/infrastructure/cache"
	"lashup-client/internal/infrastructure/notify"
	"lashup-client/internal/localstore"
	"lashup-client/internal/usecase"
	"lashup-client/pkg/logger"
	"lashup-client/pkg/media"
)

func main() {
	cfg := config.LoadConfig()

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Durable client-side state (token, user, cart, theme, pending order)
	store := localstore.Open(cfg.StateFile)

	// Notification hub (transient toasts)
	hub := notify.NewHub()

	// Backend API client
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)

	// Session: hydrate from storage, wire 401 invalidation
	session := usecase.NewSession(client, store, hub)
	session.Hydrate()

	// Cart + theme rehydrate from the same store
	cart := usecase.NewCart(store)
	theme := usecase.NewThemeController(store, cfg.PrefersDark)
	log.Info().
		Int("cart_items", cart.ItemCount()).
		Str("theme", theme.RootClass()).
		Bool("authenticated", session.IsAuthenticated()).
		Msg("Local state restored")

	// In-memory cache for storefront reads
	memCache := cache.NewMemoryCache(cfg.CacheProductTTL, time.Minute)

	// Media uploader (Cloudinary unsigned preset)
	uploader, err := media.NewUploader(cfg.CloudinaryURL, cfg.UploadPreset, cfg.UploadTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize media uploader")
	}

	// Resource stores, all sharing the same retry policy
	policy := usecase.DefaultFetchPolicy(cfg.FetchRetries, cfg.FetchRetryDelay)

	storefront := usecase.NewStorefrontProducts(client, hub, memCache, cfg.CacheProductTTL, policy)
	adminProducts := usecase.NewAdminProducts(client, session, hub, uploader,
		cfg.ProductFolder, cfg.MaxImageMB, policy)
	services := usecase.NewServiceStore(client, session, hub, policy)
	orders := usecase.NewOrderStore(client, session, hub, policy)
	bookings := usecase.NewBookingStore(client, session, hub, policy)
	gallery := usecase.NewGalleryStore(client, session, hub, uploader, memCache,
		cfg.CacheGalleryTTL, cfg.GalleryFolder, cfg.MaxGalleryMB, policy)
	users := usecase.NewUserStore(client, session, hub, policy)
	checkout := usecase.NewCheckout(client, store, cart, orders, hub)

	// Resume an interrupted payment round trip before anything else.
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if pending, ok := checkout.Pending(); ok {
		log.Info().Str("reference", pending.Reference).Msg("Resuming pending payment verification")
		if _, err := checkout.Complete(rootCtx, pending.Reference); err != nil {
			log.Warn().Err(err).Msg("Pending payment not verified yet")
		}
	}

	// Warm the signed-in views once; the fetch layer retries on its own.
	if session.IsAuthenticated() {
		go func() {
			_ = services.Fetch(rootCtx)
			_ = orders.Fetch(rootCtx)
			_ = bookings.Fetch(rootCtx)
		}()
	}
	if session.IsAdmin() {
		go func() {
			_ = adminProducts.Fetch(rootCtx)
			_ = users.Fetch(rootCtx)
		}()
	}

	// Home-page pollers keep the public previews fresh while running.
	poller := usecase.NewPoller(cfg.HomePollInterval, cfg.PollRatePerSec, cfg.PollBurst)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		poller.Run(rootCtx, "products", storefront.Fetch)
	}()
	go func() {
		defer wg.Done()
		poller.Run(rootCtx, "gallery", gallery.Fetch)
	}()

	// Drain notifications to the log until shutdown.
	toasts, unsubscribe := hub.Subscribe(32)
	go func() {
		for n := range toasts {
			log.Info().Str("level", string(n.Level)).Str("id", n.ID).Msg(n.Message)
		}
	}()

	logger.ClientStart("lashup-client", "1.0", cfg.APIBaseURL)

	// Wait for interrupt signal via channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Client shutting down...")

	cancel()
	wg.Wait()
	unsubscribe()

	logger.ClientStop("lashup-client")
}
