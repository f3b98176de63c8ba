package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by every store backend for a missing record.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
