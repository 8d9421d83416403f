package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the tables the mysql backend reads and writes.  Each
// statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS auditoriums (
        name        VARCHAR(191) NOT NULL PRIMARY KEY,
        capacity    INT NULL,
        seat_layout MEDIUMTEXT NULL,
        status      VARCHAR(32) NOT NULL DEFAULT 'ACTIVE'
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS events (
        id          VARCHAR(64) NOT NULL PRIMARY KEY,
        name        VARCHAR(255) NOT NULL,
        auditorium  VARCHAR(191) NULL,
        seat_layout MEDIUMTEXT NULL,
        capacity    INT NULL,
        event_date  VARCHAR(64) NULL,
        event_time  VARCHAR(64) NULL
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
        booking_id VARCHAR(16) NOT NULL PRIMARY KEY,
        usn        VARCHAR(64) NOT NULL,
        event_id   VARCHAR(64) NOT NULL,
        seats      VARCHAR(255) NOT NULL,
        schedule   VARCHAR(128) NULL,
        status     VARCHAR(16) NOT NULL DEFAULT 'CONFIRMED',
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        UNIQUE KEY uq_bookings_event_seat (event_id, seats),
        KEY idx_bookings_event (event_id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates missing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
