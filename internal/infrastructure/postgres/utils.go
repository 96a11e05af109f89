package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isCheckViolation verifica si un error es una violación de constraint CHECK (23514),
// p. ej. due_date_day fuera de 1..31 o nombre vacío.
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514" // check_violation
	}
	return false
}
