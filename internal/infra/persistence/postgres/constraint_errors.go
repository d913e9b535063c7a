package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, pgUniqueViolation) || strings.Contains(errMsg, "duplicate key")
}

// violatesConstraint reports whether a unique violation names the given
// constraint or index.
func violatesConstraint(err error, name string) bool {
	return isUniqueConstraintViolation(err) && strings.Contains(err.Error(), name)
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	return strings.Contains(err.Error(), pgCheckViolation)
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
