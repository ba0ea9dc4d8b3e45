package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pawcare/internal/database"
	"pawcare/internal/domain"
)

func main() {
	db, err := database.Connect("pawcare.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Sitter{},
		&domain.Pet{},
		&domain.Booking{},
		&domain.Conversation{},
		&domain.Message{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup in FK-safe order.
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM conversations")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM pets")
	db.Exec("DELETE FROM sitters")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	hash := func(pw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		return string(h)
	}

	owners := make([]domain.User, 0, 2)
	for i, email := range []string{"anna@example.com", "mark@example.com"} {
		u := domain.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: hash("owner123"),
			Role:         domain.RoleOwner,
			FullName:     fmt.Sprintf("Owner %d", i+1),
			Phone:        fmt.Sprintf("+1555000%04d", i+1),
			Location:     "Brooklyn, NY",
		}
		db.Create(&u)
		owners = append(owners, u)
	}

	sitterUsers := make([]domain.User, 0, 3)
	for i, email := range []string{"kate@example.com", "leo@example.com", "mia@example.com"} {
		u := domain.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: hash("sitter123"),
			Role:         domain.RoleSitter,
			FullName:     fmt.Sprintf("Sitter %d", i+1),
			Phone:        fmt.Sprintf("+1555100%04d", i+1),
			Location:     "Brooklyn, NY",
		}
		db.Create(&u)
		sitterUsers = append(sitterUsers, u)
	}

	// ================== SITTER PROFILES ==================
	log.Println("Creating sitter profiles...")
	sitters := make([]domain.Sitter, 0, len(sitterUsers))
	rates := []float64{25, 30, 22}
	for i, u := range sitterUsers {
		s := domain.Sitter{
			ID:              uuid.NewString(),
			UserID:          u.ID,
			Bio:             "Experienced dog walker, comfortable with all breeds.",
			HourlyRate:      rates[i],
			ExperienceYears: i + 1,
			Services:        "walking,sitting",
			Available:       true,
		}
		db.Create(&s)
		sitters = append(sitters, s)
	}

	// ================== PETS ==================
	log.Println("Creating pets...")
	lastVax := time.Now().AddDate(0, -11, 0)
	interval := 365
	due := lastVax.AddDate(0, 0, interval)
	pets := make([]domain.Pet, 0, 3)
	names := []struct{ name, kind, breed string }{
		{"Rex", "dog", "Labrador"},
		{"Luna", "dog", "Beagle"},
		{"Simba", "cat", "Maine Coon"},
	}
	for i, n := range names {
		age := 2 + i
		p := domain.Pet{
			ID:                      uuid.NewString(),
			OwnerID:                 owners[i%len(owners)].ID,
			Name:                    n.name,
			Type:                    n.kind,
			Breed:                   n.breed,
			Age:                     &age,
			LastVaccinationDate:     &lastVax,
			VaccinationIntervalDays: &interval,
			VaccinationDueDate:      &due,
		}
		db.Create(&p)
		pets = append(pets, p)
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	mkBooking := func(owner domain.User, pet domain.Pet, sitter *domain.Sitter, daysAhead, hours int, status domain.BookingStatus) {
		rate := 25.0
		var sitterID *string
		if sitter != nil {
			rate = sitter.HourlyRate
			sitterID = &sitter.ID
		}
		b := domain.Booking{
			ID:            uuid.NewString(),
			OwnerID:       owner.ID,
			SitterID:      sitterID,
			PetID:         pet.ID,
			StartTime:     time.Now().AddDate(0, 0, daysAhead).Truncate(time.Hour),
			DurationHours: hours,
			TotalCost:     float64(hours) * rate,
			Status:        status,
			WalkCode:      "482913",
			Notes:         "Seeded booking",
		}
		db.Create(&b)
	}

	mkBooking(owners[0], pets[0], &sitters[0], 2, 2, domain.BookingPending)
	mkBooking(owners[0], pets[0], &sitters[1], 3, 1, domain.BookingUpcoming)
	mkBooking(owners[1], pets[1], &sitters[0], -7, 2, domain.BookingCompleted)
	mkBooking(owners[1], pets[1], &sitters[2], -2, 1, domain.BookingCancelled)
	// Open posting, claimable by any sitter.
	mkBooking(owners[0], pets[2], nil, 5, 3, domain.BookingPending)

	// ================== CONVERSATION ==================
	log.Println("Creating conversation...")
	conv := domain.Conversation{
		ID:       uuid.NewString(),
		OwnerID:  owners[0].ID,
		SitterID: sitterUsers[0].ID,
	}
	db.Create(&conv)

	for i, line := range []string{
		"Hi! Is Rex okay with other dogs on walks?",
		"Absolutely, he is very social. See you Tuesday!",
	} {
		sender := conv.OwnerID
		if i%2 == 1 {
			sender = conv.SitterID
		}
		db.Create(&domain.Message{
			ConversationID: &conv.ID,
			SenderID:       sender,
			Body:           line,
		})
	}

	log.Println("Seed completed!")
	log.Println("Owners: anna@example.com, mark@example.com / owner123")
	log.Println("Sitters: kate@example.com, leo@example.com, mia@example.com / sitter123")
}
