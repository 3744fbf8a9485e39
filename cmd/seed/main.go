package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"roomly/internal/reservations"
	"roomly/internal/roomtypes"
	"roomly/internal/shared/config"
	"roomly/internal/shared/database"
	"roomly/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Roomly Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"reservations",
		"room_type_configs",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedRoomTypeConfigs(); err != nil {
		return fmt.Errorf("failed to seed room type configs: %w", err)
	}

	if err := s.SeedReservations(); err != nil {
		return fmt.Errorf("failed to seed reservations: %w", err)
	}

	// Clear Redis so cached policies reflect the fresh rows
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates an admin and two front-desk staff accounts
func (s *Seeder) SeedUsers() error {
	fmt.Println("  👤 Seeding users...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"Admin", "User", "admin@roomly.test", users.RoleAdmin},
		{"Dana", "Front", "dana@roomly.test", users.RoleStaff},
		{"Luca", "Desk", "luca@roomly.test", users.RoleStaff},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return nil
}

// SeedRoomTypeConfigs persists the scheduling policy per category
func (s *Seeder) SeedRoomTypeConfigs() error {
	fmt.Println("  🏨 Seeding room type configs...")

	configsData := []struct {
		category      string
		capacity      int
		preBufferMin  int
		postBufferMin int
	}{
		{roomtypes.CategoryStandard, 23, 30, 30},
		{roomtypes.CategoryFamily, 1, 45, 45},
	}

	for _, configData := range configsData {
		cfg := roomtypes.RoomTypeConfig{
			ID:            uuid.New(),
			Category:      configData.category,
			Capacity:      configData.capacity,
			PreBufferMin:  configData.preBufferMin,
			PostBufferMin: configData.postBufferMin,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&cfg).Error; err != nil {
			return fmt.Errorf("failed to create room type config %s: %w", configData.category, err)
		}

		fmt.Printf("    ✅ Created config: %s (capacity %d, buffers %d/%d min)\n",
			cfg.Category, cfg.Capacity, cfg.PreBufferMin, cfg.PostBufferMin)
	}

	return nil
}

// SeedReservations creates a handful of bookings around tomorrow so the
// availability endpoints have something to chew on immediately
func (s *Seeder) SeedReservations() error {
	fmt.Println("  📅 Seeding reservations...")

	base := time.Now().UTC().Truncate(time.Hour).Add(24 * time.Hour)

	reservationsData := []struct {
		category   string
		start      time.Time
		end        time.Time
		guestName  string
		guestEmail string
	}{
		{roomtypes.CategoryStandard, base, base.Add(10 * time.Hour), "Ava Martin", "ava@example.com"},
		{roomtypes.CategoryStandard, base.Add(2 * time.Hour), base.Add(5 * time.Hour), "Noah Klein", "noah@example.com"},
		{roomtypes.CategoryStandard, base.Add(26 * time.Hour), base.Add(50 * time.Hour), "Mia Ortiz", "mia@example.com"},
		{roomtypes.CategoryFamily, base, base.Add(24 * time.Hour), "The Larsens", "larsen@example.com"},
	}

	for _, resData := range reservationsData {
		reservation := reservations.Reservation{
			ID:           uuid.New(),
			RoomCategory: resData.category,
			StartTime:    resData.start,
			EndTime:      resData.end,
			GuestName:    resData.guestName,
			GuestEmail:   resData.guestEmail,
			CreatedAt:    time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation for %s: %w", resData.guestName, err)
		}

		fmt.Printf("    ✅ Created reservation: %s %s → %s (%s)\n",
			reservation.RoomCategory,
			reservation.StartTime.Format(time.RFC3339),
			reservation.EndTime.Format(time.RFC3339),
			reservation.GuestName)
	}

	return nil
}
