package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ingri/reservations/internal/model"
)

// ReservationRepo provides CRUD operations over the reservations table.
// A reservation row is written once at creation; afterwards only the
// status column is ever updated, and rows are never deleted in normal
// operation.  Writes are last-write-wins: there is no version column
// and no optimistic-concurrency token.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for callers that manage their own
// transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, name, email, phone, res_date, res_time, party_size, special_requests, status, created_at`

// Create persists a new reservation.  The store assigns the opaque ID
// and the creation timestamp and forces the initial status to pending,
// regardless of what the payload carried.  The stored record is
// returned.
func (r *ReservationRepo) Create(ctx context.Context, in model.CreateReservationInput) (*model.Reservation, error) {
	res := &model.Reservation{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		Date:            in.Date,
		Time:            in.Time,
		PartySize:       in.PartySize,
		SpecialRequests: in.SpecialRequests,
		Status:          model.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}
	const q = `INSERT INTO reservations (` + reservationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		res.ID, res.Name, res.Email, nullable(res.Phone),
		res.Date, res.Time, res.PartySize, nullable(res.SpecialRequests),
		string(res.Status), res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetByID returns a single reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

// UpdateStatus overwrites the status column for the given ID and
// returns the refreshed record.  It is a single-field update with no
// side effects on any other column.  ErrReservationNotFound is
// returned when the ID does not exist.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Reservation, error) {
	const q = `UPDATE reservations SET status = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, string(status), id)
	if err != nil {
		return nil, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		// either the id is unknown or the status already had this value;
		// re-read to tell the two apart
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
	}
	return r.GetByID(ctx, id)
}

// List returns reservations ordered by date ascending then time
// ascending.  When date is non-empty only reservations on that exact
// civil date are returned.
func (r *ReservationRepo) List(ctx context.Context, date string) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations`
	args := []interface{}{}
	if date != "" {
		q += ` WHERE res_date = ?`
		args = append(args, date)
	}
	q += ` ORDER BY res_date ASC, res_time ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByDateSlot returns, for one civil date, how many non-cancelled
// reservations occupy each time slot.  Slots with no reservations are
// absent from the map.  No-show reservations still count; only
// cancelled ones free the slot.
func (r *ReservationRepo) CountByDateSlot(ctx context.Context, date string) (map[string]int, error) {
	const q = `SELECT res_time, COUNT(*) FROM reservations
	           WHERE res_date = ? AND status <> ?
	           GROUP BY res_time`
	rows, err := r.db.QueryContext(ctx, q, date, string(model.StatusCancelled))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var slot string
		var n int
		if err := rows.Scan(&slot, &n); err != nil {
			return nil, err
		}
		counts[slot] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
	var res model.Reservation
	var phone, requests sql.NullString
	var status string
	if err := row.Scan(
		&res.ID, &res.Name, &res.Email, &phone,
		&res.Date, &res.Time, &res.PartySize, &requests,
		&status, &res.CreatedAt,
	); err != nil {
		return nil, err
	}
	res.Phone = phone.String
	res.SpecialRequests = requests.String
	res.Status = model.Status(status)
	return &res, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
