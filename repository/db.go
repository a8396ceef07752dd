// repository/db.go
package repository

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

var db *sql.DB

// InitDB initializes the database connection and bootstraps the schema
func InitDB() error {
	// Get database connection details from environment variables
	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "postgres")
	dbname := getEnvOrDefault("DB_NAME", "evenly")

	// Create connection string
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	// Connect to database
	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %v", err)
	}

	// Test the connection
	err = db.Ping()
	if err != nil {
		return fmt.Errorf("failed to ping database: %v", err)
	}

	if err := createSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %v", err)
	}

	log.Println("Successfully connected to the database")
	return nil
}

// createSchema creates the tables if they don't exist. Consumer and payer
// rows deliberately carry no foreign key to members: deleting a member may
// leave dangling ids on items, which the settlement engine tolerates.
func createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS groups (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			creation_time BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS members (
			id TEXT PRIMARY KEY,
			group_id TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			position INT NOT NULL,
			creation_time BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS receipts (
			id TEXT PRIMARY KEY,
			group_id TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			paid_to TEXT NOT NULL,
			sst DOUBLE PRECISION,
			service_charge DOUBLE PRECISION,
			creation_time BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS receipt_items (
			id SERIAL PRIMARY KEY,
			receipt_id TEXT NOT NULL REFERENCES receipts(id) ON DELETE CASCADE,
			position INT NOT NULL,
			name TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			quantity INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS item_consumers (
			item_id INT NOT NULL REFERENCES receipt_items(id) ON DELETE CASCADE,
			member_id TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS item_payers (
			item_id INT NOT NULL REFERENCES receipt_items(id) ON DELETE CASCADE,
			member_id TEXT NOT NULL,
			paid_at BIGINT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// CloseDB closes the database connection
func CloseDB() {
	if db != nil {
		db.Close()
	}
}

// GetDB returns the database instance
func GetDB() *sql.DB {
	return db
}

// Helper function to get environment variable with default value
func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
