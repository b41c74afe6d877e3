package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"commission-catalog/app/controller"
	"commission-catalog/app/middleware"
	"commission-catalog/app/router"
	"commission-catalog/cart"
	"commission-catalog/config"
	"commission-catalog/db"
	applog "commission-catalog/logger"
	"commission-catalog/repository"
	"commission-catalog/service"
)

// App holds the wired HTTP handler and the resources it owns
type App struct {
	Handler http.Handler
	closers []func() error
}

// Close releases the database and blob store clients
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config, zl *zap.Logger) (*App, error) {
	logger := applog.OrNop(zl)
	a := &App{}
	log := logger.Sugar()

	store, err := a.openStore(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	blobs, drive, err := a.openBlobs(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Repositories
	catalogRepo := repository.NewCatalogRepository(store, logger)
	contentRepo := repository.NewContentRepository(store, logger)

	// Services
	reader := service.NewCatalogReader(catalogRepo, logger)
	handoff := service.NewHandoff(cfg.Handoff.WhatsAppPhone, cfg.Handoff.Greeting)
	storefront := service.NewStorefrontService(reader, handoff, logger)
	availability := service.NewAvailabilityService(store, catalogRepo, logger)
	admin := service.NewAdminService(store, logger)
	uploads := service.NewUploadService(store, contentRepo, blobs, cfg.Blob.MaxUploadBytes, logger)
	sync := service.NewSyncService(drive, store, contentRepo, cfg.Blob.DriveFolderID, logger)
	testimonials := service.NewTestimonialService(store, contentRepo, logger)
	announcements := service.NewAnnouncementService(contentRepo)
	sheets := service.NewPriceSheetService(reader, cfg.Server.BaseURL, cfg.Chrome.Path, logger)

	var blobReader service.BlobReader
	if r, ok := blobs.(service.BlobReader); ok {
		blobReader = r
	}

	// Create controllers
	controllers := &router.Controllers{
		Storefront: controller.NewStorefrontController(reader, storefront, cart.NewRegistry(cfg.Cart.SessionTTL, logger), cfg.Cart.SessionTTL, cfg.IsProduction(), logger),
		Content:    controller.NewContentController(contentRepo, announcements, testimonials, logger),
		Admin:      controller.NewAdminController(admin, availability, logger),
		Media:      controller.NewMediaController(uploads, sync, blobReader, cfg.Blob.MaxUploadBytes, logger),
		PriceSheet: controller.NewPriceSheetController(sheets, logger),
	}

	auth := middleware.NewAdminAuth(cfg.Auth.JWTSecret, cfg.Auth.AdminRole, logger)
	a.Handler = router.New(controllers, auth, logger)

	log.Infof("✓ Application initialized (store=%s, blobs=%s)", cfg.Database.Backend, cfg.Blob.Backend)
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.RecordStore, error) {
	if cfg.Database.Backend == "memory" {
		logger.Sugar().Warnf("⚠️  Using in-memory record store; data is lost on restart")
		return repository.NewMemoryStore(), nil
	}

	if cfg.Database.RunMigrations {
		if err := db.Migrate(cfg.Database.URL, logger); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	conn, err := db.InitDB(ctx, cfg.Database.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a.closers = append(a.closers, func() error { return closeDB(conn) })
	return repository.NewPostgresStore(conn, logger), nil
}

func closeDB(conn *sql.DB) error {
	if err := conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// openBlobs builds the configured blob store. The Drive lister is returned
// whenever Drive credentials and a folder are configured, so gallery imports
// keep working with other blob backends.
func (a *App) openBlobs(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.BlobStore, service.DriveLister, error) {
	var drive *service.DriveService
	if cfg.Blob.CredentialsPath != "" && cfg.Blob.DriveFolderID != "" {
		ds, err := service.NewDriveService(ctx, cfg.Blob.CredentialsPath, cfg.Blob.DriveFolderID, logger)
		if err != nil {
			return nil, nil, err
		}
		drive = ds
	}

	var lister service.DriveLister
	if drive != nil {
		lister = drive
	}

	switch cfg.Blob.Backend {
	case "drive":
		return drive, lister, nil
	case "gcs":
		gcs, err := service.NewGCSBlobStore(ctx, cfg.Blob.GCSBucket, cfg.Blob.CredentialsPath, logger)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, gcs.Close)
		return gcs, lister, nil
	default:
		logger.Sugar().Warnf("⚠️  Using in-memory blob store; uploads are lost on restart")
		return service.NewMemoryBlobStore(cfg.Server.BaseURL), lister, nil
	}
}
