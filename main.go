package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "hotelbook/internal/config"
	"hotelbook/internal/domain/models"
	router "hotelbook/internal/http"
	"hotelbook/internal/http/handlers"
	"hotelbook/internal/http/middleware"
	"hotelbook/internal/jobs"
	"hotelbook/internal/repositories"
	"hotelbook/internal/services"
	"hotelbook/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	env := intconfig.LoadEnv()
	utils.SetupLogger(env.LogLevel, env.LogFormat)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	// `hotelbook admin-token [subject]` prints a bearer token for the admin routes.
	if len(os.Args) > 1 && os.Args[1] == "admin-token" {
		subject := "admin"
		if len(os.Args) > 2 {
			subject = os.Args[2]
		}
		tok, err := middleware.SignAdminToken([]byte(env.AdminTokenSecret), subject, 24*time.Hour, time.Now())
		if err != nil {
			logrus.WithError(err).Fatal("cannot issue admin token")
		}
		fmt.Println(tok)
		return
	}

	sessions, conn := openSessionStore(env)
	if conn != nil {
		defer conn.Close()
	}
	hotels, rdb := openHotelSource(env)
	if rdb != nil {
		defer rdb.Close()
	}

	api, err := buildAPI(env, hotels, sessions)
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	maint := &jobs.Maintenance{Catalog: api.Catalog, Sessions: sessions}
	if env.CatalogWarmSpec != "" {
		if err := maint.Start(env.CatalogWarmSpec); err != nil {
			logrus.WithError(err).Fatal("invalid CATALOG_WARM_SPEC")
		}
	}

	r := router.NewRouter(env, api)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      env.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.Infof("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	maint.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("server shutdown failed")
		return
	}

	logrus.Info("server stopped")
}

// openSessionStore uses MySQL when DATABASE_DSN is set and falls back to
// process memory when it is not or the database is unreachable.
func openSessionStore(env intconfig.Env) (repositories.SessionStore, *sql.DB) {
	if env.DatabaseDSN == "" {
		logrus.Info("DATABASE_DSN not set; keeping sessions in memory")
		return repositories.NewMemorySessionStore(), nil
	}
	conn, err := intconfig.ConnectDB(env.DatabaseDSN)
	if err != nil {
		logrus.WithError(err).Warn("session database unavailable; keeping sessions in memory")
		return repositories.NewMemorySessionStore(), nil
	}
	store := repositories.NewSQLSessionStore(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.EnsureSchema(ctx); err != nil {
		logrus.WithError(err).Warn("cannot prepare session table; keeping sessions in memory")
		_ = conn.Close()
		return repositories.NewMemorySessionStore(), nil
	}
	return store, conn
}

func openHotelSource(env intconfig.Env) (repositories.HotelSource, *redis.Client) {
	client := repositories.NewAPIClient(env.BackendBaseURL, env.BackendTimeout)
	source := repositories.HotelRepository{API: client}
	if env.RedisAddr == "" {
		return source, nil
	}
	rdb, err := intconfig.ConnectRedis(env)
	if err != nil {
		logrus.WithError(err).Warn("redis unavailable; hotel cache disabled")
		return source, nil
	}
	return repositories.CachedHotelRepository{Source: source, Cache: repositories.RedisKV{Client: rdb}, TTL: env.HotelCacheTTL}, rdb
}

func buildAPI(env intconfig.Env, hotels repositories.HotelSource, sessions repositories.SessionStore) (*handlers.API, error) {
	tax, err := services.ParseTaxPolicy(env.TaxPolicy)
	if err != nil {
		return nil, err
	}
	client := repositories.NewAPIClient(env.BackendBaseURL, env.BackendTimeout)
	validate := services.NewValidator()
	payments := repositories.PaymentRepository{API: client}

	catalog := &services.CatalogService{Hotels: hotels, Rooms: repositories.RoomRepository{API: client}}
	selections := &services.SelectionService{Catalog: catalog, Store: sessions, TTL: env.SessionTTL}

	defaults := services.DefaultSiteSettings()
	defaults.Branding.SiteName = utils.Safe(env.SiteName, defaults.Branding.SiteName)
	defaults.Contact.Phone = utils.Safe(env.SitePhone, defaults.Contact.Phone)
	defaults.Contact.Email = utils.Safe(env.SiteEmail, defaults.Contact.Email)
	settings := services.NewSettingsService(defaults, validate)
	docs := services.DocsService{Payments: payments, SiteName: defaults.Branding.SiteName}
	settings.OnApply = func(s models.SiteSettings) {
		logrus.WithField("site_name", s.Branding.SiteName).Info("site settings applied")
	}

	return &handlers.API{
		Catalog:    catalog,
		Selections: selections,
		Checkout: &services.CheckoutService{
			Selections: selections,
			Bookings:   repositories.BookingRepository{API: client},
			Store:      sessions,
			Pricer:     services.Pricer{Tax: tax},
			TTL:        env.SessionTTL,
			Validate:   validate,
		},
		Payments: &services.PaymentService{
			Gateway: payments,
			Poll:    services.NewRetryPolicy(env.StatusPollAttempts, env.StatusPollBaseDelay, env.StatusPollMaxDelay),
		},
		Bookings: &services.BookingLookupService{Bookings: repositories.BookingRepository{API: client}},
		Leads:    &services.LeadService{Leads: repositories.LeadRepository{API: client}, Validate: validate},
		Settings: settings,
		Docs:     docs,
	}, nil
}
