package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/ragdesk/internal/core"
)

type BookingsRepo struct {
	db *sql.DB
}

var _ core.BookingRepository = (*BookingsRepo)(nil)

func NewBookingsRepo(db *sql.DB) *BookingsRepo {
	return &BookingsRepo{db: db}
}

func (r *BookingsRepo) SaveBooking(ctx context.Context, b core.Booking) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (id, session_id, name, email, preferred_date, preferred_time, notes, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.SessionID, b.Name, b.Email, b.PreferredDate, b.PreferredTime, b.Notes, b.Status,
		b.CreatedAt.UTC(), b.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

// ListBookings returns bookings newest first. An empty sessionID lists all.
func (r *BookingsRepo) ListBookings(ctx context.Context, sessionID string) ([]core.Booking, error) {
	query := `SELECT id, session_id, name, email, preferred_date, preferred_time, notes, status, created_at, updated_at FROM bookings`
	var args []any
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []core.Booking{}
	for rows.Next() {
		var b core.Booking
		if err := rows.Scan(&b.ID, &b.SessionID, &b.Name, &b.Email, &b.PreferredDate, &b.PreferredTime,
			&b.Notes, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
