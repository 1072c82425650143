// Package repositories wraps GORM access for the code paths the services
// drive through interfaces. Plain CRUD handlers talk to GORM directly.
package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
