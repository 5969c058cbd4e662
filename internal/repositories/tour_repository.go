package repositories

import (
	"database/sql"
	"errors"

	intconfig "travelbooking/internal/config"
	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
)

type TourRepository struct {
	DB *sql.DB
}

func (r TourRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tourColumns = `id,
       COALESCE(name,''),
       COALESCE(destination_id,0),
       COALESCE(description,''),
       COALESCE(duration_days,0),
       COALESCE(base_price,0),
       COALESCE(capacity,0),
       COALESCE(active,0)`

func scanTour(row interface{ Scan(...any) error }) (models.Tour, error) {
	var t models.Tour
	err := row.Scan(&t.ID, &t.Name, &t.DestinationID, &t.Description, &t.DurationDays, &t.BasePrice, &t.Capacity, &t.Active)
	return t, err
}

func (r TourRepository) GetByID(id int64) (models.Tour, error) {
	if id <= 0 {
		return models.Tour{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return models.Tour{}, domain.InternalError{Msg: "db not available"}
	}

	t, err := scanTour(db.QueryRow(`SELECT `+tourColumns+` FROM tours WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Tour{}, domain.NotFoundError{Resource: "tour", Err: err}
		}
		return models.Tour{}, domain.InternalError{Err: err}
	}
	return t, nil
}

func (r TourRepository) List() ([]models.Tour, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(`SELECT ` + tourColumns + ` FROM tours ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Tour{}
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r TourRepository) Create(t *models.Tour) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`
		INSERT INTO tours (name, destination_id, description, duration_days, base_price, capacity, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Name, t.DestinationID, t.Description, t.DurationDays, t.BasePrice, t.Capacity, t.Active,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	t.ID, _ = res.LastInsertId()
	return nil
}

func (r TourRepository) Update(t models.Tour) error {
	if t.ID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`
		UPDATE tours SET name=?, destination_id=?, description=?, duration_days=?, base_price=?, capacity=?, active=?
		WHERE id=?`,
		t.Name, t.DestinationID, t.Description, t.DurationDays, t.BasePrice, t.Capacity, t.Active, t.ID,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "tour"}
	}
	return nil
}

func (r TourRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`DELETE FROM tours WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "tour"}
	}
	return nil
}
