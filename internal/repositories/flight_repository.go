package repositories

import (
	"database/sql"
	"errors"

	intconfig "travelbooking/internal/config"
	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
)

type FlightRepository struct {
	DB *sql.DB
}

func (r FlightRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const flightColumns = `id,
       COALESCE(code,''),
       COALESCE(origin,''),
       COALESCE(dest,''),
       depart_at,
       COALESCE(base_fare,0),
       COALESCE(seats,0),
       COALESCE(active,0)`

func scanFlight(row interface{ Scan(...any) error }) (models.Flight, error) {
	var f models.Flight
	err := row.Scan(&f.ID, &f.Code, &f.Origin, &f.Dest, &f.DepartAt, &f.BaseFare, &f.Seats, &f.Active)
	return f, err
}

func (r FlightRepository) GetByID(id int64) (models.Flight, error) {
	if id <= 0 {
		return models.Flight{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return models.Flight{}, domain.InternalError{Msg: "db not available"}
	}

	f, err := scanFlight(db.QueryRow(`SELECT `+flightColumns+` FROM flights WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Flight{}, domain.NotFoundError{Resource: "flight", Err: err}
		}
		return models.Flight{}, domain.InternalError{Err: err}
	}
	return f, nil
}

func (r FlightRepository) List() ([]models.Flight, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(`SELECT ` + flightColumns + ` FROM flights ORDER BY depart_at`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Flight{}
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r FlightRepository) Create(f *models.Flight) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`
		INSERT INTO flights (code, origin, dest, depart_at, base_fare, seats, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.Code, f.Origin, f.Dest, f.DepartAt, f.BaseFare, f.Seats, f.Active,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	f.ID, _ = res.LastInsertId()
	return nil
}

func (r FlightRepository) Update(f models.Flight) error {
	if f.ID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`
		UPDATE flights SET code=?, origin=?, dest=?, depart_at=?, base_fare=?, seats=?, active=?
		WHERE id=?`,
		f.Code, f.Origin, f.Dest, f.DepartAt, f.BaseFare, f.Seats, f.Active, f.ID,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "flight"}
	}
	return nil
}

func (r FlightRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`DELETE FROM flights WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "flight"}
	}
	return nil
}
