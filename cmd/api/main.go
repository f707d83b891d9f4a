package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/villamosta/villa-api/internal/config"
	"github.com/villamosta/villa-api/internal/domain/admin"
	"github.com/villamosta/villa-api/internal/domain/booking"
	"github.com/villamosta/villa-api/internal/domain/contact"
	"github.com/villamosta/villa-api/internal/domain/content"
	"github.com/villamosta/villa-api/internal/domain/review"
	"github.com/villamosta/villa-api/internal/domain/room"
	"github.com/villamosta/villa-api/internal/domain/settings"
	"github.com/villamosta/villa-api/internal/middleware"
	"github.com/villamosta/villa-api/internal/pkg/database"
	"github.com/villamosta/villa-api/internal/pkg/jwt"
	pkgresponse "github.com/villamosta/villa-api/internal/pkg/response"
	"github.com/villamosta/villa-api/internal/pkg/stripe"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Villa Mosta API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.AdminSessionTTL)

	stripeClient := stripe.NewClient(stripe.Config{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
	})

	// ---------- Repositories ----------
	roomRepo := room.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	settingsRepo := settings.NewRepository(db)
	reviewRepo := review.NewRepository(db)
	contentRepo := content.NewRepository(db)
	contactRepo := contact.NewRepository(db)
	adminRepo := admin.NewRepository(db)

	// ---------- Adapters ----------
	paymentProvider := &stripePaymentAdapter{client: stripeClient}

	// ---------- Services ----------
	bookingService := booking.NewService(bookingRepo, roomRepo, settingsRepo, paymentProvider, redis, cfg.BookingCurrency)

	// ---------- Handlers ----------
	roomHandler := room.NewHandler(roomRepo)
	bookingHandler := booking.NewHandler(bookingService, bookingRepo, cfg.StripeWebhookSecret)
	settingsHandler := settings.NewHandler(settingsRepo)
	reviewHandler := review.NewHandler(reviewRepo)
	contentHandler := content.NewHandler(contentRepo)
	contactHandler := contact.NewHandler(contactRepo)
	adminHandler := admin.NewHandler(adminRepo, jwtService, cfg.IsProduction())

	adminAuth := admin.AuthMiddleware(jwtService, adminRepo)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/rooms", roomHandler.Routes())
		r.Get("/availability", bookingHandler.CheckAvailability)
		r.Mount("/bookings", bookingHandler.Routes())
		r.Mount("/reviews", reviewHandler.Routes())
		r.Get("/content/{page}", contentHandler.GetPage)
		r.Get("/faqs", contentHandler.ListFAQs)
		r.Mount("/contact", contactHandler.Routes())
	})

	r.Post("/webhooks/stripe", bookingHandler.StripeWebhook)

	r.Route("/api/admin", func(r chi.Router) {
		r.Mount("/auth", adminHandler.Routes(adminAuth))
		r.Mount("/rooms", roomHandler.AdminRoutes(adminAuth))
		r.Mount("/bookings", bookingHandler.AdminRoutes(adminAuth))
		r.Mount("/blocked-dates", bookingHandler.BlockRoutes(adminAuth))
		r.Mount("/settings", settingsHandler.AdminRoutes(adminAuth))
		r.Mount("/reviews", reviewHandler.AdminRoutes(adminAuth))
		r.Mount("/content", contentHandler.AdminContentRoutes(adminAuth))
		r.Mount("/faqs", contentHandler.AdminFAQRoutes(adminAuth))
		r.Mount("/contacts", contactHandler.AdminRoutes(adminAuth))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}

// stripePaymentAdapter adapts stripe.Client to booking.PaymentProvider
type stripePaymentAdapter struct {
	client *stripe.Client
}

func (a *stripePaymentAdapter) CreateIntent(ctx context.Context, params booking.PaymentIntentParams) (*booking.PaymentIntent, error) {
	intent, err := a.client.CreateIntent(ctx, stripe.CreateIntentRequest{
		Amount:       params.Amount,
		Currency:     params.Currency,
		ReceiptEmail: params.ReceiptEmail,
		Metadata:     params.Metadata,
	})
	if err != nil {
		return nil, err
	}
	return &booking.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (a *stripePaymentAdapter) CancelIntent(ctx context.Context, id string) error {
	return a.client.CancelIntent(ctx, id)
}
