package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"staybook/internal/infra/config"
	"staybook/internal/infra/obs"
)

type ReservationHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Save(c *gin.Context)
	Delete(c *gin.Context)
	Book(c *gin.Context)
	Confirm(c *gin.Context)
	Cancel(c *gin.Context)
	Update(c *gin.Context)
	CheckIn(c *gin.Context)
	CheckOut(c *gin.Context)
	SendConfirmation(c *gin.Context)
	SendReminder(c *gin.Context)
	ByClient(c *gin.Context)
	ByProperty(c *gin.Context)
	ByStatus(c *gin.Context)
	ByCode(c *gin.Context)
	CreatedBetween(c *gin.Context)
}

type AvailabilityHTTP interface {
	Check(c *gin.Context)
	Quote(c *gin.Context)
	OccupiedDays(c *gin.Context)
}

type Handlers struct {
	Reservation  ReservationHTTP
	Availability AvailabilityHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Reservation != nil {
		res := api.Group("/reservations")
		res.GET("", h.Reservation.List)
		res.POST("", h.Reservation.Save)
		res.POST("/book", h.Reservation.Book)
		res.GET("/client/:id", h.Reservation.ByClient)
		res.GET("/property/:id", h.Reservation.ByProperty)
		res.GET("/status/:status", h.Reservation.ByStatus)
		res.GET("/code/:code", h.Reservation.ByCode)
		res.GET("/dates", h.Reservation.CreatedBetween)
		res.GET("/:id", h.Reservation.Get)
		res.DELETE("/:id", h.Reservation.Delete)
		res.PUT("/:id/confirm", h.Reservation.Confirm)
		res.PUT("/:id/cancel", h.Reservation.Cancel)
		res.PUT("/:id/update", h.Reservation.Update)
		res.PUT("/:id/check-in", h.Reservation.CheckIn)
		res.PUT("/:id/check-out", h.Reservation.CheckOut)
		res.POST("/:id/send-confirmation", h.Reservation.SendConfirmation)
		res.POST("/:id/send-reminder", h.Reservation.SendReminder)
	}
	if h.Availability != nil {
		api.GET("/availability/:propertyId", h.Availability.Check)
		api.GET("/pricing/:propertyId", h.Availability.Quote)
		api.GET("/properties/:id/occupied-days", h.Availability.OccupiedDays)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
