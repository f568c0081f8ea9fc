package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/rohitdhavare/my-expenses-tracker/internal/errors"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
)

// ensureUser returns ErrUserNotFound unless userID names an existing user.
func ensureUser(db *gorm.DB, userID string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// notFoundOr maps gorm.ErrRecordNotFound to notFound and wraps anything else
// as an internal error.
func notFoundOr(err error, notFound *apperrors.AppError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
