package api

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/transfer-booking-backend/internal/admin"
	adminHttp "github.com/nekogravitycat/transfer-booking-backend/internal/admin/http"
	"github.com/nekogravitycat/transfer-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/transfer-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/transfer-booking-backend/internal/catalog"
	catalogHttp "github.com/nekogravitycat/transfer-booking-backend/internal/catalog/http"
	"github.com/nekogravitycat/transfer-booking-backend/internal/contact"
	contactHttp "github.com/nekogravitycat/transfer-booking-backend/internal/contact/http"
	"github.com/nekogravitycat/transfer-booking-backend/internal/image"
	imageHttp "github.com/nekogravitycat/transfer-booking-backend/internal/image/http"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/request"
	pricingHttp "github.com/nekogravitycat/transfer-booking-backend/internal/pricing/http"
)

// Config carries the services the router exposes.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	Logger         *slog.Logger
	MaxUploadBytes int64

	BookingService booking.Service
	ContactService contact.Service
	CatalogService catalog.Service
	ImageService   image.Service
	AdminService   admin.Service
	Vouchers       bookingHttp.VoucherRenderer
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (request id, logging, CORS, admin gate) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	request.UseJSONFieldNames()

	r := gin.New()

	// Global Middleware:
	// - RequestID: tags every request and response with X-Request-ID.
	// - RequestLogger: one structured log line per request.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(RequestID(), RequestLogger(cfg.Logger), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins(cfg.IsProduction, cfg.ProdOrigins)
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader, "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	// adminMiddleware: Validates the admin session token.
	adminMiddleware := admin.AdminRequired(cfg.AdminService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.Vouchers)
	contactHandler := contactHttp.NewHandler(cfg.ContactService)
	catalogHandler := catalogHttp.NewHandler(cfg.CatalogService)
	pricingHandler := pricingHttp.NewHandler()
	imageHandler := imageHttp.NewHandler(cfg.ImageService, cfg.MaxUploadBytes, cfg.Logger)
	adminHandler := adminHttp.NewHandler(cfg.AdminService)

	// Register API routes under /api
	api := r.Group("/api")
	{
		pricingHttp.RegisterRoutes(api, pricingHandler)
		catalogHttp.RegisterRoutes(api, catalogHandler)
		bookingHttp.RegisterRoutes(api, bookingHandler, adminMiddleware)
		contactHttp.RegisterRoutes(api, contactHandler, adminMiddleware)
		adminHttp.RegisterRoutes(api, adminHandler, adminMiddleware)
		imageHttp.RegisterRoutes(api, r, imageHandler, adminMiddleware)
	}

	return r
}

// allowedOrigins returns the configured origins in production and the local
// development servers otherwise.
func allowedOrigins(production bool, prodOrigins string) []string {
	if production {
		var out []string
		for _, o := range strings.Split(prodOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return []string{
		"http://localhost:5000", // Vite dev server
		"http://localhost:5173",
	}
}
