package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
)

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "item_type", "item_id", "item_name", "subtotal",
		"discount_code", "discount_amount", "total", "payment_method",
		"gateway_order_id", "note", "status", "created_at", "updated_at",
	})
}

func TestBookingCreateInsertsBookingAndParticipants(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO booking_participants").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO booking_participants").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	repo := BookingRepository{DB: db}
	b := &models.Booking{
		UserID:        7,
		ItemType:      models.ItemTypeTour,
		ItemID:        3,
		ItemName:      "Ha Long Bay 3D2N",
		Subtotal:      3000000,
		Total:         3000000,
		PaymentMethod: models.PaymentMethodCash,
		Status:        models.BookingStatusPending,
	}
	participants := []models.Participant{
		{FullName: "A", Role: models.RoleAdult, IsContact: true},
		{FullName: "B", Role: models.RoleAdult},
	}

	if err := repo.Create(b, participants); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if b.ID != 5 {
		t.Fatalf("booking id = %d, want 5", b.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCreateDuplicateKeyIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	repo := BookingRepository{DB: db}
	err = repo.Create(&models.Booking{UserID: 7}, nil)
	if !domain.IsConflict(err) {
		t.Fatalf("error = %v, want conflict", err)
	}
}

func TestBookingGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings").WithArgs(int64(99)).
		WillReturnRows(bookingRows())

	repo := BookingRepository{DB: db}
	_, err = repo.GetByID(99)
	if !domain.IsNotFound(err) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestBookingGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM bookings").WithArgs(int64(5)).
		WillReturnRows(bookingRows().AddRow(
			5, 7, "tour", 3, "Ha Long Bay 3D2N", 3000000,
			"SUMMER10", 300000, 2700000, "momo",
			"TB-42", "", "confirmed", now, now,
		))

	repo := BookingRepository{DB: db}
	b, err := repo.GetByID(5)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if b.Total != 2700000 || b.Status != models.BookingStatusConfirmed || b.GatewayOrderID != "TB-42" {
		t.Fatalf("booking = %+v", b)
	}
}

func TestBookingUpdateStatusNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := BookingRepository{DB: db}
	err = repo.UpdateStatus(99, models.BookingStatusCancelled)
	if !domain.IsNotFound(err) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestBookingStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("GROUP BY status").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count", "revenue"}).
			AddRow("pending", 3, 5000000).
			AddRow("confirmed", 10, 27000000).
			AddRow("cancelled", 2, 1000000))
	mock.ExpectQuery("FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"daily", "weekly", "monthly"}).AddRow(2, 8, 15))

	repo := BookingRepository{DB: db}
	stats, err := repo.Stats()
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.TotalBookings != 15 {
		t.Fatalf("total = %d, want 15", stats.TotalBookings)
	}
	// Revenue counts confirmed and completed only; cancelled money is not revenue.
	if stats.Revenue != 27000000 {
		t.Fatalf("revenue = %d, want 27000000", stats.Revenue)
	}
	if stats.BookingsByStatus[models.BookingStatusPending] != 3 {
		t.Fatalf("pending count = %d, want 3", stats.BookingsByStatus[models.BookingStatusPending])
	}
	if stats.WeeklyBookings != 8 {
		t.Fatalf("weekly = %d, want 8", stats.WeeklyBookings)
	}
}

func TestBookingGetParticipantsOrdered(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM booking_participants").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"full_name", "role", "gender", "date_of_birth", "national_id", "phone", "email", "is_contact",
		}).
			AddRow("A", "adult", "male", "1990-01-01", "0123", "0900", "a@example.com", true).
			AddRow("B", "child", "female", "2018-01-01", "", "", "", false))

	repo := BookingRepository{DB: db}
	parts, err := repo.GetParticipants(5)
	if err != nil {
		t.Fatalf("GetParticipants returned error: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("got %d participants, want 2", len(parts))
	}
	if !parts[0].IsContact || parts[1].Role != models.RoleChild {
		t.Fatalf("participants = %+v", parts)
	}
}
