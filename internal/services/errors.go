package services

import (
	"errors"

	"gorm.io/gorm"

	"mumu_delivery/internal/apperr"
)

// lookupErr names the missing record when a lookup fails.
func lookupErr(op, what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(op, what)
	}
	return apperr.Store(op, err)
}
