package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/repository"
)

func main() {
	_ = godotenv.Load()

	db, err := database.Connect("hotelier.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}
	if err := repository.EnsureNoOverbookingConstraint(db); err != nil {
		log.Fatal("constraint setup failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM invoices")
	db.Exec("DELETE FROM extra_charges")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM promotions")
	db.Exec("DELETE FROM guests")
	db.Exec("DELETE FROM rooms")

	ctx := context.Background()

	rooms := repository.NewRoomRepository(db)
	guests := repository.NewGuestRepository(db)
	promos := repository.NewPromotionRepository(db)
	bookings := repository.NewBookingRepository(db)

	// ================== ROOMS ==================
	log.Println("Creating rooms...")

	seedRooms := []domain.Room{
		{Number: "101", Type: domain.RoomSingle, Capacity: 1, PricePerNight: 60},
		{Number: "102", Type: domain.RoomDouble, Capacity: 2, PricePerNight: 100},
		{Number: "103", Type: domain.RoomDouble, Capacity: 2, PricePerNight: 100},
		{Number: "201", Type: domain.RoomTwin, Capacity: 2, PricePerNight: 90},
		{Number: "202", Type: domain.RoomSuite, Capacity: 4, PricePerNight: 220},
		{Number: "301", Type: domain.RoomDeluxe, Capacity: 3, PricePerNight: 180},
	}
	for i := range seedRooms {
		seedRooms[i].Status = domain.RoomAvailable
		if err := rooms.Create(ctx, &seedRooms[i]); err != nil {
			log.Fatalf("room %s: %v", seedRooms[i].Number, err)
		}
	}

	// ================== GUESTS ==================
	log.Println("Creating guests...")

	seedGuests := []domain.Guest{
		{FullName: "Aizhan Bekova", Phone: "+7 777 123 4501", Email: "aizhan@mail.kz", IDDocument: "N12345601"},
		{FullName: "Marat Ospanov", Phone: "+7 777 123 4502", Email: "marat@gmail.com", IDDocument: "N12345602"},
		{FullName: "Dana Serikova", Phone: "+7 777 123 4503", Email: "dana@yandex.kz", IDDocument: "N12345603"},
	}
	for i := range seedGuests {
		if err := guests.Create(ctx, &seedGuests[i]); err != nil {
			log.Fatalf("guest %s: %v", seedGuests[i].FullName, err)
		}
	}

	// ================== PROMOTIONS ==================
	log.Println("Creating promotions...")

	today := time.Now().UTC().Truncate(24 * time.Hour)
	promo := domain.Promotion{
		Code:            "SUMMER10",
		DiscountPercent: 10,
		ValidFrom:       today.AddDate(0, -1, 0),
		ValidUntil:      today.AddDate(0, 2, 0),
	}
	if err := promos.Create(ctx, &promo); err != nil {
		log.Fatal("promotion:", err)
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	seedBookings := []domain.Booking{
		{
			GuestID:      seedGuests[0].ID,
			RoomID:       seedRooms[1].ID,
			CheckInDate:  today.AddDate(0, 0, 1),
			CheckOutDate: today.AddDate(0, 0, 4),
			Occupants:    2,
		},
		{
			GuestID:      seedGuests[1].ID,
			RoomID:       seedRooms[4].ID,
			PromotionID:  &promo.ID,
			CheckInDate:  today.AddDate(0, 0, 7),
			CheckOutDate: today.AddDate(0, 0, 10),
			Occupants:    3,
		},
	}
	for i := range seedBookings {
		b := &seedBookings[i]
		b.Status = domain.BookingReserved
		b.ReservedAt = time.Now().UTC()
		if err := bookings.CreateIfFree(ctx, b); err != nil {
			log.Fatalf("booking room=%d: %v", b.RoomID, err)
		}
		if err := rooms.UpdateStatus(ctx, b.RoomID, domain.RoomReserved); err != nil {
			log.Fatalf("room status room=%d: %v", b.RoomID, err)
		}
	}

	fmt.Println()
	log.Printf("Seed completed: rooms=%d guests=%d promotions=1 bookings=%d",
		len(seedRooms), len(seedGuests), len(seedBookings))
}
