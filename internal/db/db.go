package db

import (
	"context"
	"fmt"
	"log/slog"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// Connect opens the SQLite connection pool at the given path and returns a
// pointer to the sqlx.DB instance. The special path ":memory:" yields a
// private in-memory database, used by tests.
func Connect(dbPath string) (*sqlx.DB, error) {
	pool, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	return pool, nil
}

// Initialize enables foreign keys and creates the schema if it doesn't exist.
func Initialize(database *sqlx.DB) error {
	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	userSchema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL
	);`

	if _, err := database.Exec(userSchema); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	itemSchema := `
	CREATE TABLE IF NOT EXISTS clothing_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		color TEXT NOT NULL,
		season TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		user_id INTEGER NOT NULL REFERENCES users(id)
	);`

	if _, err := database.Exec(itemSchema); err != nil {
		return fmt.Errorf("failed to create clothing_items table: %w", err)
	}

	slog.Info("DB connection initialized and schema verified")

	return nil
}

// Seed inserts the demo users and alice's starter wardrobe. It is
// idempotent: existing usernames are left alone. Demo passwords are stored
// bcrypt-hashed even though they are printed right here.
func Seed(ctx context.Context, database *sqlx.DB) error {
	aliceID, err := seedUser(ctx, database, "alice", "password123", "Alice Johnson", "alice@example.com")
	if err != nil {
		return err
	}
	if aliceID != 0 {
		starter := []struct {
			name, category, color, season, notes string
		}{
			{"Blue Jeans", "bottoms", "blue", "all", "Favorite pair of jeans."},
			{"Red T-Shirt", "tops", "red", "summer", ""},
		}
		for _, it := range starter {
			_, err := database.ExecContext(ctx,
				`INSERT INTO clothing_items (name, category, color, season, notes, user_id) VALUES (?, ?, ?, ?, ?, ?)`,
				it.name, it.category, it.color, it.season, it.notes, aliceID)
			if err != nil {
				return fmt.Errorf("failed to seed item %q: %w", it.name, err)
			}
		}
	}

	if _, err := seedUser(ctx, database, "bob", "password456", "Bob Smith", "bob@example.com"); err != nil {
		return err
	}

	return nil
}

// seedUser inserts a user unless the username already exists. It returns the
// new row id, or 0 when the user was already present.
func seedUser(ctx context.Context, database *sqlx.DB, username, password, name, email string) (int64, error) {
	var count int
	if err := database.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE username = ?`, username); err != nil {
		return 0, fmt.Errorf("failed to check for seed user %q: %w", username, err)
	}
	if count > 0 {
		return 0, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash seed password: %w", err)
	}

	res, err := database.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, name, email) VALUES (?, ?, ?, ?)`,
		username, string(hash), name, email)
	if err != nil {
		return 0, fmt.Errorf("failed to seed user %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read seed user id: %w", err)
	}
	return id, nil
}
