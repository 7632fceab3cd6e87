package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/yogswara/gearzone/config"
	"github.com/yogswara/gearzone/internal/domain/entity"
	"github.com/yogswara/gearzone/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@gearzone.dev"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, username, first_name, last_name, phone_number, password_hash, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		ON CONFLICT (email) DO UPDATE SET is_active = TRUE
		RETURNING id
	`, email, entity.UsernameFromEmail(email), "Demo", "User", "+628123456789", hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO user_profiles (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, id); err != nil {
		log.Fatalf("failed to seed profile: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	// A completed order so the dashboard and history pages have data
	var orderID string
	err = db.QueryRow(`
		INSERT INTO orders (user_id, order_number, order_total, tax, status, is_ordered)
		VALUES ($1, $2, $3, $4, 'Completed', TRUE)
		ON CONFLICT (order_number) DO UPDATE SET status = EXCLUDED.status
		RETURNING id
	`, id, "2026083001", 110.00, 10.00).Scan(&orderID)
	if err != nil {
		log.Fatalf("failed to seed order: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO order_products (order_id, product_id, product_name, product_price, quantity)
		SELECT $1, 'atx-jersey', 'ATX Jersey', 25.00, 2
		WHERE NOT EXISTS (SELECT 1 FROM order_products WHERE order_id = $1)
	`, orderID); err != nil {
		log.Fatalf("failed to seed order products: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO order_products (order_id, product_id, product_name, product_price, quantity)
		SELECT $1, 'carbon-frame', 'Carbon Frame', 50.00, 1
		WHERE NOT EXISTS (SELECT 1 FROM order_products WHERE order_id = $1 AND product_id = 'carbon-frame')
	`, orderID); err != nil {
		log.Fatalf("failed to seed order products: %v", err)
	}
	fmt.Printf("seeded order: id=%s number=%s\n", orderID, "2026083001")

	// An anonymous cart keyed by a fixed session so merge-on-login can be exercised
	var cartID string
	err = db.QueryRow(`
		INSERT INTO carts (session_key) VALUES ('demo-session')
		ON CONFLICT (session_key) DO UPDATE SET session_key = EXCLUDED.session_key
		RETURNING id
	`).Scan(&cartID)
	if err != nil {
		log.Fatalf("failed to seed cart: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO cart_items (cart_id, product_id, quantity)
		SELECT $1, 'atx-jersey', 1
		WHERE NOT EXISTS (SELECT 1 FROM cart_items WHERE cart_id = $1)
	`, cartID); err != nil {
		log.Fatalf("failed to seed cart items: %v", err)
	}
	fmt.Printf("seeded cart: id=%s session_key=%s\n", cartID, "demo-session")
}
