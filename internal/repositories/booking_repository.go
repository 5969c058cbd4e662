package repositories

import (
	"database/sql"
	"errors"

	intconfig "travelbooking/internal/config"
	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id,
       COALESCE(user_id,0),
       COALESCE(item_type,''),
       COALESCE(item_id,0),
       COALESCE(item_name,''),
       COALESCE(subtotal,0),
       COALESCE(discount_code,''),
       COALESCE(discount_amount,0),
       COALESCE(total,0),
       COALESCE(payment_method,''),
       COALESCE(gateway_order_id,''),
       COALESCE(note,''),
       COALESCE(status,''),
       created_at,
       updated_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ItemType,
		&b.ItemID,
		&b.ItemName,
		&b.Subtotal,
		&b.DiscountCode,
		&b.DiscountAmount,
		&b.Total,
		&b.PaymentMethod,
		&b.GatewayOrderID,
		&b.Note,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

// Create inserts the booking and its participants in one transaction.
// A duplicate idempotency key maps to ConflictError so a double submit
// (second tab, retried request) is rejected instead of booked twice.
func (r BookingRepository) Create(b *models.Booking, participants []models.Participant) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	tx, err := db.Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		INSERT INTO bookings
			(user_id, item_type, item_id, item_name, subtotal, discount_code, discount_amount,
			 total, payment_method, gateway_order_id, idempotency_key, note, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		b.UserID, b.ItemType, b.ItemID, b.ItemName, b.Subtotal, b.DiscountCode, b.DiscountAmount,
		b.Total, b.PaymentMethod, b.GatewayOrderID, b.IdempotencyKey, b.Note, b.Status,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return domain.ConflictError{Resource: "booking", Msg: "duplicate submission", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	b.ID = id

	for i, p := range participants {
		if _, err := tx.Exec(`
			INSERT INTO booking_participants
				(booking_id, position, full_name, role, gender, date_of_birth, national_id, phone, email, is_contact)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, p.FullName, p.Role, p.Gender, p.DateOfBirth, p.NationalID, p.Phone, p.Email, p.IsContact,
		); err != nil {
			return domain.InternalError{Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return models.Booking{}, domain.InternalError{Msg: "db not available"}
	}

	b, err := scanBooking(db.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

func (r BookingRepository) ListByUser(userID int64) ([]models.Booking, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(`SELECT `+bookingColumns+` FROM bookings WHERE user_id=? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	return collectBookings(rows)
}

// List returns bookings for the admin dashboard, newest first, optionally
// filtered by status. limit <= 0 means a sane default.
func (r BookingRepository) List(status models.BookingStatus, limit int) ([]models.Booking, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}
	if limit <= 0 {
		limit = 100
	}

	var (
		rows *sql.Rows
		err  error
	)
	if status == "" {
		rows, err = db.Query(`SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC LIMIT ?`, limit)
	} else {
		rows, err = db.Query(`SELECT `+bookingColumns+` FROM bookings WHERE status=? ORDER BY created_at DESC LIMIT ?`, status, limit)
	}
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r BookingRepository) UpdateStatus(id int64, status models.BookingStatus) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`UPDATE bookings SET status=?, updated_at=NOW() WHERE id=?`, status, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// Stats aggregates the dashboard numbers in two queries: one grouped
// count/revenue pass and one windowed count pass.
func (r BookingRepository) Stats() (models.BookingStats, error) {
	db := r.db()
	if db == nil {
		return models.BookingStats{}, domain.InternalError{Msg: "db not available"}
	}

	stats := models.BookingStats{BookingsByStatus: map[models.BookingStatus]int64{}}

	rows, err := db.Query(`
		SELECT COALESCE(status,''), COUNT(*), COALESCE(SUM(total),0)
		FROM bookings
		GROUP BY status`)
	if err != nil {
		return models.BookingStats{}, domain.InternalError{Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status  models.BookingStatus
			count   int64
			revenue int64
		)
		if err := rows.Scan(&status, &count, &revenue); err != nil {
			return models.BookingStats{}, domain.InternalError{Err: err}
		}
		stats.BookingsByStatus[status] = count
		stats.TotalBookings += count
		if status == models.BookingStatusConfirmed || status == models.BookingStatusCompleted {
			stats.Revenue += revenue
		}
	}
	if err := rows.Err(); err != nil {
		return models.BookingStats{}, domain.InternalError{Err: err}
	}

	err = db.QueryRow(`
		SELECT
			COALESCE(SUM(created_at >= CURDATE()),0),
			COALESCE(SUM(created_at >= DATE_SUB(NOW(), INTERVAL 7 DAY)),0),
			COALESCE(SUM(created_at >= DATE_SUB(NOW(), INTERVAL 30 DAY)),0)
		FROM bookings`).Scan(&stats.DailyBookings, &stats.WeeklyBookings, &stats.MonthlyBookings)
	if err != nil {
		return models.BookingStats{}, domain.InternalError{Err: err}
	}

	return stats, nil
}

func (r BookingRepository) GetParticipants(bookingID int64) ([]models.Participant, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(`
		SELECT COALESCE(full_name,''),
		       COALESCE(role,''),
		       COALESCE(gender,''),
		       COALESCE(date_of_birth,''),
		       COALESCE(national_id,''),
		       COALESCE(phone,''),
		       COALESCE(email,''),
		       COALESCE(is_contact,0)
		FROM booking_participants
		WHERE booking_id=?
		ORDER BY position`, bookingID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.FullName, &p.Role, &p.Gender, &p.DateOfBirth, &p.NationalID, &p.Phone, &p.Email, &p.IsContact); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
