package api

import (
	stdhttp "net/http"

	intconfig "hotelbook/internal/config"
	h "hotelbook/internal/http/handlers"
	"hotelbook/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewRouter(env intconfig.Env, a *h.API) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins),
		middleware.Timeout(env.RequestTimeout),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logrus.WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":      "route not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": middleware.GetRequestID(c),
		})
	})

	session := middleware.Session(middleware.SessionOptions{
		Secret: []byte(env.SessionSecret),
		TTL:    env.SessionTTL,
		Secure: env.CookieSecure,
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/routes", h.Routes)

		// Site settings; changes need an admin token
		admin := middleware.AdminOnly([]byte(env.AdminTokenSecret))
		settings := api.Group("/settings")
		settings.GET("", a.GetSettings)
		settings.PUT("", admin, a.UpdateSettings)
		settings.DELETE("", admin, a.ResetSettings)
		settings.GET("/theme.css", a.ThemeCSS)

		// Catalog
		hotels := api.Group("/hotels")
		hotels.GET("", a.ListHotels)
		hotels.GET("/:id", a.GetHotel)
		hotels.GET("/:id/rooms", a.GetHotelRooms)

		// Selection and checkout are owned by the browser session
		selections := api.Group("/selections", session)
		selections.POST("", a.CreateSelection)
		selections.GET("/:id", a.GetSelection)
		mountSelectionRooms(selections.Group("/:id/rooms"), a)

		checkout := api.Group("/checkout", session)
		checkout.POST("", a.StartCheckout)
		checkout.GET("/:id", a.GetCheckout)
		checkout.POST("/:id/submit", a.SubmitCheckout)
		checkout.POST("/:id/redirect", a.RedirectCheckout)

		// Payments
		payments := api.Group("/payments")
		payments.GET("/validate/:txn", a.ValidatePayment)
		payments.GET("/status/:txn", a.GetPaymentStatus)
		payments.GET("/status/:txn/receipt.pdf", a.GetReceiptPDF)

		// Bookings
		api.GET("/bookings", a.SearchBookings)

		// Leads
		leads := api.Group("/leads")
		leads.POST("/b2b", a.SubmitB2BLead)
		leads.POST("/contact", a.SubmitContactLead)
	}

	h.SetRouter(r)
	return r
}

func mountSelectionRooms(g *gin.RouterGroup, a *h.API) {
	g.POST("/:roomId", a.AdjustSelectionRoom)
	g.PUT("/:roomId", a.SetSelectionRoom)
	g.DELETE("/:roomId", a.RemoveSelectionRoom)
}
