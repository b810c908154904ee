package repository

import (
	"agenda/shared/constant"
	"errors"

	"github.com/lib/pq"
)

// IsUniqueViolation reports whether err comes from a violated unique constraint.
func IsUniqueViolation(err error) bool {
	return hasPqCode(err, constant.PqErrorCodeUniqueViolation)
}

// IsForeignKeyViolation reports whether err references a row that does not exist.
func IsForeignKeyViolation(err error) bool {
	return hasPqCode(err, constant.PqErrorCodeFkViolation)
}

func hasPqCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}

	return false
}
