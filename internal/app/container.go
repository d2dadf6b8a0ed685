package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/nekogravitycat/transfer-booking-backend/internal/admin"
	"github.com/nekogravitycat/transfer-booking-backend/internal/api"
	"github.com/nekogravitycat/transfer-booking-backend/internal/booking"
	"github.com/nekogravitycat/transfer-booking-backend/internal/catalog"
	"github.com/nekogravitycat/transfer-booking-backend/internal/contact"
	"github.com/nekogravitycat/transfer-booking-backend/internal/image"
	"github.com/nekogravitycat/transfer-booking-backend/internal/lifecycle"
	"github.com/nekogravitycat/transfer-booking-backend/internal/notification"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/storage"
	"github.com/nekogravitycat/transfer-booking-backend/internal/voucher"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *slog.Logger

	// DBPool selects the Postgres repositories; nil keeps every record in memory.
	DBPool *pgxpool.Pool
	// Redis selects the shared attempt limiter; nil keeps counters in memory.
	Redis *redis.Client

	AdminAccessKey   string
	JWTSecret        string
	AdminSessionTTL  time.Duration
	AdminMaxAttempts int
	AdminLockout     time.Duration
	BcryptCost       int

	NotificationPhone string
	// Sender delivers notifications. Defaults to the logging stub.
	Sender                notification.Sender
	NotificationSendDelay time.Duration

	StatusPolicy lifecycle.Policy

	// Storage holds uploaded images. Defaults to local storage under StoragePath.
	Storage        storage.Storage
	StoragePath    string
	MaxUploadBytes int64
	CatalogPath    string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router   *gin.Engine
	Notifier *notification.Notifier
	Catalog  catalog.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Catalog
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	catalogService := catalog.NewService(cat)

	// Notifications
	sender := cfg.Sender
	if sender == nil {
		sender = notification.NewLogSender(cfg.Logger, cfg.NotificationSendDelay)
	}
	notifier := notification.NewNotifier(sender, cfg.NotificationPhone, cfg.Logger)

	// Booking and contact records
	var (
		bookingRepo booking.Repository
		contactRepo contact.Repository
		imageRepo   image.Repository
	)
	if cfg.DBPool != nil {
		bookingRepo = booking.NewPgxRepository(cfg.DBPool)
		contactRepo = contact.NewPgxRepository(cfg.DBPool)
		imageRepo = image.NewPgxRepository(cfg.DBPool)
	} else {
		bookingRepo = booking.NewMemoryRepository()
		contactRepo = contact.NewMemoryRepository()
		imageRepo = image.NewMemoryRepository()
	}

	policy := lifecycle.WithPolicy(cfg.StatusPolicy)
	bookingService := booking.NewService(bookingRepo, notifier, policy)
	contactService := contact.NewService(contactRepo, catalogService, notifier, policy)

	// Image gallery
	store := cfg.Storage
	if store == nil {
		local, err := storage.NewLocalStorage(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		store = local
	}
	imageService := image.NewService(imageRepo, store, catalogService, cfg.Logger, cfg.MaxUploadBytes)

	// Admin gate
	keys, err := admin.NewKeyChecker(cfg.AdminAccessKey, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	limits := admin.LimitConfig{MaxAttempts: cfg.AdminMaxAttempts, Lockout: cfg.AdminLockout}
	var limiter admin.Limiter = admin.NewMemoryLimiter(limits)
	if cfg.Redis != nil {
		limiter = admin.NewRedisLimiter(cfg.Redis, limits)
	}
	adminService := admin.NewService(keys, admin.NewTokenManager(cfg.JWTSecret, cfg.AdminSessionTTL), limiter, cfg.Logger)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		MaxUploadBytes: cfg.MaxUploadBytes,
		BookingService: bookingService,
		ContactService: contactService,
		CatalogService: catalogService,
		ImageService:   imageService,
		AdminService:   adminService,
		Vouchers:       voucher.NewRenderer(notification.Brand, cfg.NotificationPhone),
	})

	return &Container{
		Router:   router,
		Notifier: notifier,
		Catalog:  catalogService,
	}, nil
}
