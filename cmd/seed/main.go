package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/config"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/database"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/modules/booking"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/modules/calendar"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	db, err := database.Connect(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data
	log.Println("Cleaning old data...")
	for _, table := range []string{"schedule_logs", "schedules", "contracts", "expenses", "availability_blocks", "bookings", "apartments", "users"} {
		db.Exec("DELETE FROM " + table)
	}

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// ================== USERS ==================
	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	users := repository.NewUserRepository(db)
	if err := users.Create(ctx, &domain.User{
		Email:        "admin@ledger.local",
		PasswordHash: string(adminHash),
		Name:         "Administrador",
		Role:         domain.RoleAdmin,
	}); err != nil {
		log.Fatal("create admin:", err)
	}
	log.Println("Admin created: admin@ledger.local / admin123")

	// ================== APARTMENTS ==================
	log.Println("Creating apartments...")
	apartments := repository.NewApartmentRepository(db)
	units := []domain.Apartment{
		{Unit: "101", Name: "Studio Vista Mar", DailyRate: 220, CleaningFee: 90, CommissionRate: 15, Active: true},
		{Unit: "102", Name: "Loft Centro", DailyRate: 180, CleaningFee: 80, CommissionRate: 15, Active: true},
		{Unit: "201", Name: "Cobertura Jardim", DailyRate: 420, CleaningFee: 150, CommissionRate: 12, Active: true},
		{Unit: "202", Name: "Flat Executivo", DailyRate: 250, CleaningFee: 90, CommissionRate: 15, Active: true},
	}
	for i := range units {
		if err := apartments.Create(ctx, &units[i]); err != nil {
			log.Fatal("create apartment:", err)
		}
	}

	bookingRepo := repository.NewBookingRepository(db)
	blockRepo := repository.NewAvailabilityRepository(db)
	bookings := booking.NewService(bookingRepo, blockRepo, apartments, nil)
	blocks := calendar.NewService(blockRepo, bookingRepo, apartments, nil)

	// ================== BLOCKS ==================
	log.Println("Creating availability blocks...")
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if _, err := blocks.CreateBlock(ctx, calendar.BlockRequest{
		Unit:      "201",
		StartDate: today.AddDate(0, 0, 10).Format("2006-01-02"),
		EndDate:   today.AddDate(0, 0, 13).Format("2006-01-02"),
		Status:    string(domain.BlockMaintenance),
		Notes:     "Pintura",
	}); err != nil {
		log.Fatal("create block:", err)
	}

	// ================== BOOKINGS ==================
	// Random stays; the conflict check rejects the overlapping ones.
	log.Println("Creating bookings...")
	guests := []string{"Ana Souza", "Bruno Lima", "Carla Mendes", "Diego Rocha", "Elisa Castro", "Fábio Nunes"}
	created, skipped := 0, 0
	for i := 0; i < 24; i++ {
		unit := units[rng.Intn(len(units))].Unit
		checkIn := today.AddDate(0, 0, rng.Intn(60)-20)
		checkOut := checkIn.AddDate(0, 0, 2+rng.Intn(6))
		_, err := bookings.Create(ctx, booking.BookingRequest{
			Unit:      unit,
			GuestName: guests[rng.Intn(len(guests))],
			CheckIn:   checkIn.Format("2006-01-02"),
			CheckOut:  checkOut.Format("2006-01-02"),
			Source:    []string{"airbnb", "booking", "direto"}[rng.Intn(3)],
		})
		var conflict *booking.ConflictError
		switch {
		case errors.As(err, &conflict):
			skipped++
		case err != nil:
			log.Fatal("create booking:", err)
		default:
			created++
		}
	}
	log.Printf("Bookings created=%d skipped_conflicts=%d", created, skipped)

	// ================== EXPENSES ==================
	log.Println("Creating expenses...")
	expenses := repository.NewExpenseRepository(db)
	for _, u := range units {
		for _, e := range []domain.Expense{
			{Unit: u.Unit, Category: domain.ExpenseCondo, Description: "Condomínio", Amount: 650, Date: today.AddDate(0, 0, -today.Day()+5)},
			{Unit: u.Unit, Category: domain.ExpenseUtilities, Description: "Conta de luz", Amount: 120 + float64(rng.Intn(80)), Date: today.AddDate(0, 0, -today.Day()+10)},
		} {
			if err := expenses.Create(ctx, &e); err != nil {
				log.Fatal("create expense:", err)
			}
		}
	}

	log.Println("Seed completed")
}
