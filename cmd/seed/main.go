package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/satriadi/go-task-api/config"
	"github.com/satriadi/go-task-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "Demo1234"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	due := time.Now().Add(72 * time.Hour)
	tasks := []struct {
		title     string
		desc      string
		due       *time.Time
		completed bool
	}{
		{"Finish project proposal", "Draft and circulate for review", &due, false},
		{"Book dentist appointment", "", nil, false},
		{"Pay electricity bill", "Due end of month", nil, true},
	}
	for _, t := range tasks {
		if _, err := db.Exec(`
			INSERT INTO tasks (user_id, title, description, due_date, completed)
			VALUES ($1, $2, $3, $4, $5)
		`, id, t.title, t.desc, t.due, t.completed); err != nil {
			log.Fatalf("failed to seed task %q: %v", t.title, err)
		}
	}
	fmt.Printf("seeded %d tasks for %s\n", len(tasks), email)
}
