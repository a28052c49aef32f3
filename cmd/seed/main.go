package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mangavault/internal/database"
	"mangavault/internal/domain/account"
	"mangavault/internal/domain/gallery"
)

func main() {
	db, err := database.Connect("mangavault.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(&account.Account{}, &gallery.ImageRecord{}); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM images")
	db.Exec("DELETE FROM accounts")

	log.Println("Creating accounts...")

	type seedAccount struct {
		id, email, first, last string
	}
	seeds := []seedAccount{
		{"user_seed_mika", "mika@mangavault.dev", "Mika", "Tan"},
		{"user_seed_leon", "leon@mangavault.dev", "Leon", "Park"},
		{"user_seed_aria", "aria@mangavault.dev", "Aria", "Sato"},
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("reader123"), bcrypt.DefaultCost)
	accounts := make([]account.Account, 0, len(seeds))
	for _, s := range seeds {
		a := account.Account{
			ID:           s.id,
			Email:        s.email,
			FirstName:    s.first,
			LastName:     s.last,
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		}
		db.Create(&a)
		accounts = append(accounts, a)
		log.Printf("Account created: %s / reader123", s.email)
	}

	log.Println("Creating image records...")

	images := []gallery.ImageRecord{
		{
			OwnerID:          accounts[0].ID,
			OwnerEmail:       accounts[0].Email,
			OwnerDisplayName: accounts[0].FirstName,
			FileName:         "cat-art.jpg",
			ImageName:        "Cat Art Collection",
			Description:      "A hand-drawn cat illustration in manga style.",
			ImageURL:         "/static/uploads/seed/cat-art.jpg",
			CreatedAt:        time.Now().Add(-48 * time.Hour),
		},
		{
			OwnerID:          accounts[1].ID,
			OwnerEmail:       accounts[1].Email,
			OwnerDisplayName: accounts[1].FirstName,
			FileName:         "dog-art.png",
			ImageName:        "Dog Art Sketches",
			Description:      "Pencil sketches of shiba inu characters.",
			ImageURL:         "/static/uploads/seed/dog-art.png",
			CreatedAt:        time.Now().Add(-24 * time.Hour),
		},
		{
			OwnerID:          accounts[2].ID,
			OwnerEmail:       accounts[2].Email,
			OwnerDisplayName: accounts[2].FirstName,
			FileName:         "city-panel.webp",
			ImageName:        "Night City Panel",
			Description:      "Background panel of a neon-lit city street.",
			ImageURL:         "/static/uploads/seed/city-panel.webp",
			CreatedAt:        time.Now().Add(-2 * time.Hour),
		},
	}
	for i := range images {
		db.Create(&images[i])
	}

	log.Printf("Seed complete: %d accounts, %d images", len(accounts), len(images))
}
