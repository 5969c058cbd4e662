package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "travelbooking/internal/config"
	"travelbooking/internal/domain/models"
	h "travelbooking/internal/http/handlers"
	"travelbooking/internal/http/middleware"
	"travelbooking/internal/services"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	momo := services.NewMoMoGateway(env.MoMo)
	zalo := services.NewZaloPayGateway(env.ZaloPay)
	gatewaysByMethod := map[models.PaymentMethod]services.PaymentGateway{
		models.PaymentMethodMoMo:    momo,
		models.PaymentMethodZaloPay: zalo,
	}
	gatewaysByName := map[string]services.PaymentGateway{
		momo.Provider(): momo,
		zalo.Provider(): zalo,
	}

	pending := services.RedisPendingStore{Client: intconfig.RDB, TTL: env.PendingTTL}
	var notifier services.Notifier = services.NoopNotifier{}
	if intconfig.RDB != nil {
		notifier = services.RedisNotifier{Client: intconfig.RDB, Channel: env.NotifyChannel}
	}

	authH := h.AuthHandlers{JWTSecret: env.JWTSecret}
	checkoutH := h.CheckoutHandlers{Gateways: gatewaysByMethod, Pending: pending, Notifier: notifier}
	paymentH := h.PaymentHandlers{Gateways: gatewaysByName, Pending: pending, Notifier: notifier}
	bookingH := h.BookingHandlers{}
	catalogH := h.CatalogHandlers{}
	docsH := h.DocsHandlers{}

	requireAuth := middleware.RequireAuth(env.JWTSecret)
	requireAdmin := middleware.RequireRole("admin")

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", authH.Login)
		auth.POST("/register", authH.Register)

		// Public catalog
		api.GET("/destinations", catalogH.ListDestinations)
		api.GET("/tours", catalogH.ListTours)
		api.GET("/tours/:id", catalogH.GetTour)
		api.GET("/flights", catalogH.ListFlights)
		api.GET("/flights/:id", catalogH.GetFlight)
		api.GET("/activities", catalogH.ListActivities)
		api.GET("/activities/:id", catalogH.GetActivity)

		// Checkout funnel
		checkout := api.Group("/checkout")
		checkout.POST("/quote", checkoutH.Quote)
		checkout.POST("/participants", checkoutH.InitParticipants)
		checkout.POST("/submit", requireAuth, checkoutH.Submit)

		// Discounts
		api.POST("/discounts/validate", paymentH.ValidateDiscount)

		// Gateway return leg. No auth: the user lands here from the
		// gateway's redirect, possibly in a fresh browser session.
		api.GET("/payments/:provider/return", paymentH.Return)

		// User bookings
		bookings := api.Group("/bookings", requireAuth)
		bookings.GET("", bookingH.ListMine)
		bookings.GET("/:id", bookingH.GetMine)
		bookings.PUT("/:id/cancel", bookingH.CancelMine)
		bookings.GET("/:id/eticket", docsH.ETicket)
		bookings.GET("/:id/invoice", docsH.Invoice)

		// Admin
		admin := api.Group("/admin", requireAuth, requireAdmin)
		admin.GET("/bookings", bookingH.AdminList)
		admin.GET("/bookings/:id", bookingH.AdminGet)
		admin.PUT("/bookings/:id/status", bookingH.AdminUpdateStatus)
		admin.GET("/stats", bookingH.AdminStats)

		admin.GET("/discounts", paymentH.ListDiscounts)
		admin.POST("/discounts", paymentH.CreateDiscount)
		admin.PUT("/discounts/:id", paymentH.UpdateDiscount)
		admin.DELETE("/discounts/:id", paymentH.DeleteDiscount)

		admin.GET("/reconciliations", paymentH.ListReconciliations)
		admin.PUT("/reconciliations/:id/resolve", paymentH.ResolveReconciliation)

		admin.POST("/destinations", catalogH.CreateDestination)
		admin.PUT("/destinations/:id", catalogH.UpdateDestination)
		admin.DELETE("/destinations/:id", catalogH.DeleteDestination)
		admin.POST("/tours", catalogH.CreateTour)
		admin.PUT("/tours/:id", catalogH.UpdateTour)
		admin.DELETE("/tours/:id", catalogH.DeleteTour)
		admin.POST("/flights", catalogH.CreateFlight)
		admin.PUT("/flights/:id", catalogH.UpdateFlight)
		admin.DELETE("/flights/:id", catalogH.DeleteFlight)
		admin.POST("/activities", catalogH.CreateActivity)
		admin.PUT("/activities/:id", catalogH.UpdateActivity)
		admin.DELETE("/activities/:id", catalogH.DeleteActivity)
	}

	h.SetRouter(r)
	return r
}
