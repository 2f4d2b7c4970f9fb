package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/middleware"
	"hotelier/internal/modules/availability"
	"hotelier/internal/modules/billing"
	"hotelier/internal/modules/booking"
	"hotelier/internal/modules/directory"
	jwtsvc "hotelier/internal/pkg/jwt"
	"hotelier/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}
	if err := repository.EnsureNoOverbookingConstraint(db); err != nil {
		log.Fatal(err)
	}

	roomRepo := repository.NewRoomRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	promoRepo := repository.NewPromotionRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	chargeRepo := repository.NewChargeRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	availabilityService := availability.NewService(roomRepo, bookingRepo)
	availabilityHandler := availability.NewHandler(availabilityService)

	billingService := billing.NewService(invoiceRepo, chargeRepo, bookingRepo, roomRepo, promoRepo)
	billingHandler := billing.NewHandler(billingService)

	bookingService := booking.NewService(
		bookingRepo,
		roomRepo,
		guestRepo,
		promoRepo,
		availabilityService,
		billingService,
		log.Printf,
	)
	bookingHandler := booking.NewHandler(bookingService)

	directoryService := directory.NewService(roomRepo, guestRepo, promoRepo, bookingRepo)
	directoryHandler := directory.NewHandler(directoryService)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.SweepSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := bookingService.NoShowSweep(ctx); err != nil {
			log.Printf("noshow_sweep_failed error=%q", err)
		}
	}); err != nil {
		log.Fatal(err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		availabilityHandler.RegisterRoutes(v1)

		// protected (front-desk operations)
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			directoryHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			billingHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
