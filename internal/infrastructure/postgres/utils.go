package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que merecen un mensaje propio.
const (
	codeUndefinedTable = "42P01"
	codeNotNull        = "23502"
)

// pgCode devuelve el SQLSTATE del error, o "" si no viene de PostgreSQL.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// wrapPgError añade contexto operativo a errores conocidos sin perder el original.
func wrapPgError(op string, err error) error {
	switch pgCode(err) {
	case codeUndefinedTable:
		return fmt.Errorf("%s: tabla inexistente, ejecute `stockctl migrate up`: %w", op, err)
	case codeNotNull:
		return fmt.Errorf("%s: campo obligatorio vacío: %w", op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
