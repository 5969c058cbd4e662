package repositories

import (
	"database/sql"

	intconfig "travelbooking/internal/config"
	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
)

// ReconciliationRepository persists payment/booking mismatches for manual
// support follow-up. A row here means money was captured by a gateway but
// the booking record could not be written.
type ReconciliationRepository struct {
	DB *sql.DB
}

func (r ReconciliationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ReconciliationRepository) Record(rec models.Reconciliation) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	_, err := db.Exec(`
		INSERT INTO payment_reconciliations (provider, order_id, transaction_id, user_id, amount, reason, resolved, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, NOW())`,
		rec.Provider, rec.OrderID, rec.TransactionID, rec.UserID, rec.Amount, rec.Reason,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r ReconciliationRepository) ListUnresolved() ([]models.Reconciliation, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}

	rows, err := db.Query(`
		SELECT id,
		       COALESCE(provider,''),
		       COALESCE(order_id,''),
		       COALESCE(transaction_id,''),
		       COALESCE(user_id,0),
		       COALESCE(amount,0),
		       COALESCE(reason,''),
		       COALESCE(resolved,0),
		       created_at
		FROM payment_reconciliations
		WHERE resolved=0
		ORDER BY created_at`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Reconciliation{}
	for rows.Next() {
		var rec models.Reconciliation
		if err := rows.Scan(&rec.ID, &rec.Provider, &rec.OrderID, &rec.TransactionID, &rec.UserID, &rec.Amount, &rec.Reason, &rec.Resolved, &rec.CreatedAt); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r ReconciliationRepository) MarkResolved(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}

	res, err := db.Exec(`UPDATE payment_reconciliations SET resolved=1 WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "reconciliation"}
	}
	return nil
}
