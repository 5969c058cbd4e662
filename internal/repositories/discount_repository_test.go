package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
)

func discountRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "code", "kind", "value", "active", "valid_from", "valid_to", "usage_limit", "used_count",
	})
}

func TestDiscountGetByCodeUppercasesInput(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM discounts").WithArgs("SUMMER10").
		WillReturnRows(discountRows().AddRow(1, "SUMMER10", "percentage", 10, true, nil, nil, 100, 3))

	repo := DiscountRepository{DB: db}
	d, err := repo.GetByCode("  summer10 ")
	if err != nil {
		t.Fatalf("GetByCode returned error: %v", err)
	}
	if d.Code != "SUMMER10" || d.Kind != models.DiscountPercentage {
		t.Fatalf("discount = %+v", d)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDiscountGetByCodeNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM discounts").WithArgs("NOPE").
		WillReturnRows(discountRows())

	repo := DiscountRepository{DB: db}
	_, err = repo.GetByCode("NOPE")
	if !domain.IsNotFound(err) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestDiscountGetByCodeEmpty(t *testing.T) {
	repo := DiscountRepository{}
	_, err := repo.GetByCode("  ")
	if !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation", err)
	}
}

func TestDiscountCreateRejectsBadValues(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := DiscountRepository{DB: db}

	over := models.Discount{Code: "BROKEN150", Kind: models.DiscountPercentage, Value: 150, Active: true}
	if err := repo.Create(&over); !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation for percentage over 100", err)
	}

	negative := models.Discount{Code: "NEG", Kind: models.DiscountFixed, Value: -5000, Active: true}
	if err := repo.Create(&negative); !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation for negative value", err)
	}

	badKind := models.Discount{Code: "ODD", Kind: "raffle", Value: 10, Active: true}
	if err := repo.Create(&badKind); !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation for unknown kind", err)
	}

	// None of the rejects may reach the database.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database traffic: %v", err)
	}
}

func TestDiscountUpdateRejectsPercentageOver100(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := DiscountRepository{DB: db}
	d := models.Discount{ID: 4, Code: "SUMMER10", Kind: models.DiscountPercentage, Value: 120, Active: true}
	if err := repo.Update(d); !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database traffic: %v", err)
	}
}

func TestDiscountCreateValid(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO discounts").
		WithArgs("SUMMER10", models.DiscountPercentage, int64(10), true, nil, nil, int64(100)).
		WillReturnResult(sqlmock.NewResult(9, 1))

	repo := DiscountRepository{DB: db}
	d := models.Discount{Code: " summer10 ", Kind: models.DiscountPercentage, Value: 10, Active: true, UsageLimit: 100}
	if err := repo.Create(&d); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if d.ID != 9 {
		t.Fatalf("id = %d, want 9", d.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDiscountIncrementUsage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE discounts SET used_count").WithArgs("SUMMER10").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := DiscountRepository{DB: db}
	if err := repo.IncrementUsage("summer10"); err != nil {
		t.Fatalf("IncrementUsage returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
