package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/modules/availability"
	"hotelier/internal/modules/billing"
	"hotelier/internal/modules/booking"
	"hotelier/internal/repository"
)

// One-shot no-show sweep for cron-style scheduling outside the API
// process. The API binary also runs the sweep on its own schedule;
// running both is safe, the sweep is idempotent.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	roomRepo := repository.NewRoomRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	promoRepo := repository.NewPromotionRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	chargeRepo := repository.NewChargeRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	checker := availability.NewService(roomRepo, bookingRepo)
	biller := billing.NewService(invoiceRepo, chargeRepo, bookingRepo, roomRepo, promoRepo)
	svc := booking.NewService(bookingRepo, roomRepo, guestRepo, promoRepo, checker, biller, log.Printf)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := svc.NoShowSweep(ctx)
	if err != nil {
		log.Fatalf("no-show sweep failed: %v", err)
	}

	log.Printf("no-show sweep completed: scanned=%d cancelled=%d failures=%d",
		report.Scanned, report.Cancelled, len(report.Failures))
	for _, f := range report.Failures {
		log.Printf("sweep_failure booking_id=%d error=%q", f.BookingID, f.Reason)
	}
}
