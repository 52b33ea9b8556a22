package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"servicehub/internal/middleware"
	"servicehub/internal/modules/auth"
	"servicehub/internal/modules/booking"
	"servicehub/internal/modules/catalog"
	"servicehub/internal/modules/realtime"
	"servicehub/internal/pkg/jwt"
	"servicehub/internal/repository"
)

// Deps are the long-lived collaborators shared by every handler. Cache and
// Publisher are optional.
type Deps struct {
	DB          *gorm.DB
	JWT         *jwt.Service
	Hub         *realtime.Hub
	Cache       catalog.Cache
	CacheTTL    time.Duration
	Publisher   realtime.Publisher
	CORSOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	userRepo := repository.NewUserRepository(d.DB)
	providerRepo := repository.NewProviderRepository(d.DB)
	serviceRepo := repository.NewServiceRepository(d.DB)
	categoryRepo := repository.NewCategoryRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	messageRepo := repository.NewMessageRepository(d.DB)

	notifier := realtime.NewNotifier(d.Hub, d.Publisher)

	authHandler := auth.NewHandler(auth.NewService(userRepo, d.JWT))
	catalogHandler := catalog.NewHandler(catalog.NewService(serviceRepo, categoryRepo, d.Cache, d.CacheTTL))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, serviceRepo, providerRepo, notifier))
	wsHandler := realtime.NewWSHandler(d.Hub, d.JWT, realtime.NewService(userRepo, bookingRepo, messageRepo))

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(d.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	wsHandler.RegisterRoutes(r)

	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api)
		catalogHandler.RegisterRoutes(api)
		bookingHandler.RegisterPublicRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(d.JWT, userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterProtectedRoutes(protected)
		}
	}

	return r
}
