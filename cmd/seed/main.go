package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/okasatria/go-auth-api/config"
	"github.com/okasatria/go-auth-api/internal/domain/entity"
	"github.com/okasatria/go-auth-api/pkg/helpers"
)

type seedAccount struct {
	email     string
	password  string
	staff     bool
	superuser bool
}

// Development-only seeding: creates predictable accounts for local
// testing. Safe to run multiple times.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.Env == "production" {
		log.Fatal("refusing to seed a production database")
	}

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	accounts := []seedAccount{
		{email: "test@ex.com", password: "Qweqwe123"},
		{email: "admin@ex.com", password: "Qweqwe123", staff: true, superuser: true},
	}

	for _, a := range accounts {
		email := entity.NormalizeEmail(a.email)
		hash, err := helpers.HashPassword(a.password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		var id string
		err = db.QueryRow(`
			INSERT INTO users (email, password_hash, is_active, is_staff, is_superuser)
			VALUES ($1, $2, TRUE, $3, $4)
			ON CONFLICT (email) DO UPDATE SET is_staff = EXCLUDED.is_staff, is_superuser = EXCLUDED.is_superuser
			RETURNING id
		`, email, hash, a.staff, a.superuser).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed %s: %v", email, err)
		}
		fmt.Printf("seeded: id=%s email=%s password=%s superuser=%v\n", id, email, a.password, a.superuser)
	}
}
