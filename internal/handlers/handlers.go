package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"servicehub/api/internal/config"
	"servicehub/api/internal/middleware"
	"servicehub/api/internal/repository"
	"servicehub/api/internal/service"
)

type HandlerSet struct {
	log            zerolog.Logger
	cfg            *config.AppConfig
	authService    *service.AuthService
	listingService *service.ListingService
	db             *pgxpool.Pool
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)

	return HandlerSet{
		log:            log,
		cfg:            cfg,
		authService:    service.NewAuthService(userRepo, cfg, log),
		listingService: service.NewListingService(listingRepo, log),
		db:             db,
	}
}

// NewHandlerSetWithServices wires pre-built services; used by tests to run
// the full router against in-memory stores.
func NewHandlerSetWithServices(log zerolog.Logger, cfg *config.AppConfig, auth *service.AuthService, listings *service.ListingService) HandlerSet {
	return HandlerSet{
		log:            log,
		cfg:            cfg,
		authService:    auth,
		listingService: listings,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/health", h.Health)

	auth := router.Group("/auth")
	auth.POST("/register", h.RegisterUser)
	auth.POST("/login", h.Login)
	auth.GET("/profile", middleware.Auth(h.cfg), h.Profile)

	listings := router.Group("/listings")
	listings.GET("", h.ListListings)
	listings.GET("/:id", h.GetListing)

	protected := router.Group("/listings")
	protected.Use(middleware.Auth(h.cfg))
	protected.POST("", h.CreateListing)
	protected.GET("/user/my-listings", h.MyListings)
	protected.PUT("/:id", h.UpdateListing)
	protected.DELETE("/:id", h.DeleteListing)
}
