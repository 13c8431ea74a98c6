package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/httperr"
)

func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}
