package repositories

import (
	"database/sql"
	"errors"

	intconfig "travelbooking/internal/config"
	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
)

type ActivityRepository struct {
	DB *sql.DB
}

func (r ActivityRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const activityColumns = `id,
       COALESCE(name,''),
       COALESCE(destination_id,0),
       COALESCE(description,''),
       COALESCE(base_price,0),
       COALESCE(capacity,0),
       COALESCE(active,0)`

func scanActivity(row interface{ Scan(...any) error }) (models.Activity, error) {
	var a models.Activity
	err := row.Scan(&a.ID, &a.Name, &a.DestinationID, &a.Description, &a.BasePrice, &a.Capacity, &a.Active)
	return a, err
}

func (r ActivityRepository) GetByID(id int64) (models.Activity, error) {
	if id <= 0 {
		return models.Activity{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return models.Activity{}, domain.InternalError{Msg: "db not available"}
	}

	a, err := scanActivity(db.QueryRow(`SELECT `+activityColumns+` FROM activities WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Activity{}, domain.NotFoundError{Resource: "activity", Err: err}
		}
		return models.Activity{}, domain.InternalError{Err: err}
	}
	return a, nil
}

func (r ActivityRepository) List() ([]models.Activity, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(`SELECT ` + activityColumns + ` FROM activities ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r ActivityRepository) Create(a *models.Activity) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`
		INSERT INTO activities (name, destination_id, description, base_price, capacity, active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.Name, a.DestinationID, a.Description, a.BasePrice, a.Capacity, a.Active,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	a.ID, _ = res.LastInsertId()
	return nil
}

func (r ActivityRepository) Update(a models.Activity) error {
	if a.ID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`
		UPDATE activities SET name=?, destination_id=?, description=?, base_price=?, capacity=?, active=?
		WHERE id=?`,
		a.Name, a.DestinationID, a.Description, a.BasePrice, a.Capacity, a.Active, a.ID,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "activity"}
	}
	return nil
}

func (r ActivityRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`DELETE FROM activities WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "activity"}
	}
	return nil
}
