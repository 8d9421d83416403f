package repository

import (
	"context"
	"database/sql"
	"errors"
)

// AuditoriumRepo reads auditorium layouts.
type AuditoriumRepo struct {
	db *sql.DB
}

// NewAuditoriumRepo returns a new AuditoriumRepo bound to the given database.
func NewAuditoriumRepo(db *sql.DB) *AuditoriumRepo { return &AuditoriumRepo{db: db} }

// LayoutByName returns the stored layout of the named auditorium.  Unknown
// auditoriums and NULL layouts both yield "".
func (r *AuditoriumRepo) LayoutByName(ctx context.Context, name string) (string, error) {
	const q = `SELECT seat_layout FROM auditoriums WHERE name = ?`
	var layout sql.NullString
	err := r.db.QueryRowContext(ctx, q, name).Scan(&layout)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return layout.String, nil
}
