package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "travelbooking/internal/config"
	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
)

type DiscountRepository struct {
	DB *sql.DB
}

func (r DiscountRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const discountColumns = `id,
       COALESCE(code,''),
       COALESCE(kind,''),
       COALESCE(value,0),
       COALESCE(active,0),
       valid_from,
       valid_to,
       COALESCE(usage_limit,0),
       COALESCE(used_count,0)`

func scanDiscount(row interface{ Scan(...any) error }) (models.Discount, error) {
	var d models.Discount
	err := row.Scan(
		&d.ID,
		&d.Code,
		&d.Kind,
		&d.Value,
		&d.Active,
		&d.ValidFrom,
		&d.ValidTo,
		&d.UsageLimit,
		&d.UsedCount,
	)
	return d, err
}

// GetByCode looks a discount up by its (case-insensitive) code.
func (r DiscountRepository) GetByCode(code string) (models.Discount, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return models.Discount{}, domain.ValidationError{Field: "code", Msg: "empty code"}
	}
	db := r.db()
	if db == nil {
		return models.Discount{}, domain.InternalError{Msg: "db not available"}
	}

	d, err := scanDiscount(db.QueryRow(`SELECT `+discountColumns+` FROM discounts WHERE UPPER(code)=? LIMIT 1`, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Discount{}, domain.NotFoundError{Resource: "discount", Err: err}
		}
		return models.Discount{}, domain.InternalError{Err: err}
	}
	return d, nil
}

func (r DiscountRepository) List() ([]models.Discount, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(`SELECT ` + discountColumns + ` FROM discounts ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Discount{}
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// checkDiscountFields guards what admins may store. A percentage over
// 100 or a negative value would let a code push a booking total below
// zero at checkout.
func checkDiscountFields(d models.Discount) error {
	if strings.TrimSpace(d.Code) == "" {
		return domain.ValidationError{Field: "code", Msg: "empty code"}
	}
	if !d.Kind.Valid() {
		return domain.ValidationError{Field: "kind", Msg: "unknown discount kind " + string(d.Kind)}
	}
	if d.Value < 0 {
		return domain.ValidationError{Field: "value", Msg: "value must not be negative"}
	}
	if d.Kind == models.DiscountPercentage && d.Value > 100 {
		return domain.ValidationError{Field: "value", Msg: "percentage must be between 0 and 100"}
	}
	return nil
}

func (r DiscountRepository) Create(d *models.Discount) error {
	if err := checkDiscountFields(*d); err != nil {
		return err
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`
		INSERT INTO discounts (code, kind, value, active, valid_from, valid_to, usage_limit, used_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)`,
		strings.ToUpper(strings.TrimSpace(d.Code)), d.Kind, d.Value, d.Active, d.ValidFrom, d.ValidTo, d.UsageLimit,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	d.ID, _ = res.LastInsertId()
	return nil
}

func (r DiscountRepository) Update(d models.Discount) error {
	if d.ID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	if err := checkDiscountFields(d); err != nil {
		return err
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`
		UPDATE discounts
		SET code=?, kind=?, value=?, active=?, valid_from=?, valid_to=?, usage_limit=?
		WHERE id=?`,
		strings.ToUpper(strings.TrimSpace(d.Code)), d.Kind, d.Value, d.Active, d.ValidFrom, d.ValidTo, d.UsageLimit, d.ID,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "discount"}
	}
	return nil
}

func (r DiscountRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`DELETE FROM discounts WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "discount"}
	}
	return nil
}

// IncrementUsage bumps used_count after a booking applied the code.
// Best-effort: callers log but do not fail the booking on error.
func (r DiscountRepository) IncrementUsage(code string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}
	_, err := db.Exec(`UPDATE discounts SET used_count=used_count+1 WHERE UPPER(code)=?`,
		strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
