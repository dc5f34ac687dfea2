package database

import (
	"database/sql"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database represents the database connection and operations
type Database struct {
	DB *sql.DB
}

// New creates a new Database instance
func New(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	// Verify connection
	if err = db.Ping(); err != nil {
		return nil, err
	}

	return &Database{DB: db}, nil
}

// Init creates the required tables if they don't exist
func (d *Database) Init() error {
	createTables := `
	CREATE TABLE IF NOT EXISTS alerts (
		id TEXT PRIMARY KEY,
		camera TEXT NOT NULL,
		location TEXT NOT NULL,
		time TIMESTAMP NOT NULL,
		message TEXT NOT NULL,
		severity TEXT NOT NULL,
		status TEXT NOT NULL,
		is_true_detection BOOLEAN
	);

	CREATE TABLE IF NOT EXISTS camera_settings (
		camera_id INTEGER PRIMARY KEY,
		source TEXT NOT NULL,
		detections TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`

	_, err := d.DB.Exec(createTables)
	return err
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.DB.Close()
}
