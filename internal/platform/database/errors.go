package database

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error code for foreign_key_violation.
const foreignKeyViolationCode = "23503"

// IsForeignKeyViolation reports whether err is a Postgres foreign key
// constraint violation.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolationCode
}
