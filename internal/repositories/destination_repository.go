package repositories

import (
	"database/sql"
	"errors"

	intconfig "travelbooking/internal/config"
	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
)

type DestinationRepository struct {
	DB *sql.DB
}

func (r DestinationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func scanDestination(row interface{ Scan(...any) error }) (models.Destination, error) {
	var d models.Destination
	err := row.Scan(&d.ID, &d.Name, &d.Region, &d.Description)
	return d, err
}

const destinationColumns = `id, COALESCE(name,''), COALESCE(region,''), COALESCE(description,'')`

func (r DestinationRepository) GetByID(id int64) (models.Destination, error) {
	if id <= 0 {
		return models.Destination{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return models.Destination{}, domain.InternalError{Msg: "db not available"}
	}

	d, err := scanDestination(db.QueryRow(`SELECT `+destinationColumns+` FROM destinations WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Destination{}, domain.NotFoundError{Resource: "destination", Err: err}
		}
		return models.Destination{}, domain.InternalError{Err: err}
	}
	return d, nil
}

func (r DestinationRepository) List() ([]models.Destination, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(`SELECT ` + destinationColumns + ` FROM destinations ORDER BY name`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
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

func (r DestinationRepository) Create(d *models.Destination) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`INSERT INTO destinations (name, region, description) VALUES (?, ?, ?)`,
		d.Name, d.Region, d.Description)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	d.ID, _ = res.LastInsertId()
	return nil
}

func (r DestinationRepository) Update(d models.Destination) error {
	if d.ID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`UPDATE destinations SET name=?, region=?, description=? WHERE id=?`,
		d.Name, d.Region, d.Description, d.ID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "destination"}
	}
	return nil
}

func (r DestinationRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`DELETE FROM destinations WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "destination"}
	}
	return nil
}
