package mysql

import (
	"context"
	"database/sql"
	"strings"

	"booking_rag/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// UpsertBookings writes rows in a single multi-row statement keyed by source row.
func (r *Repo) UpsertBookings(ctx context.Context, rows []domain.BookingRow) error {
	if len(rows) == 0 {
		return nil
	}
	values := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*10) // 10 params per row
	for _, row := range rows {
		b := row.Booking
		values = append(values, bookingPlaceholders)
		args = append(args,
			row.Row,
			b.Hotel,
			b.ArrivalYear,
			b.ArrivalMonth,
			b.Country,
			b.LeadTime,
			b.IsCanceled,
			b.ADR,
			b.TotalNights,
			b.TotalGuests,
		)
	}
	sqlStr := insertBookingsPrefix + strings.Join(values, ",") + insertBookingsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// ListBookings returns every stored booking in source-row order.
func (r *Repo) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.Hotel,
			&b.ArrivalYear,
			&b.ArrivalMonth,
			&b.Country,
			&b.LeadTime,
			&b.IsCanceled,
			&b.ADR,
			&b.TotalNights,
			&b.TotalGuests,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) CountBookings(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countBookingsSQL).Scan(&n)
	return n, err
}
