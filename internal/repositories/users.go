package repositories

import (
	"context"
	"errors"

	"github.com/shreyas-k21/passvault/internal/auth"
	"github.com/shreyas-k21/passvault/internal/models"
	"gorm.io/gorm"
)

// Compile-time interface check
var _ auth.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		// Uniqueness is enforced by the database constraint, so two
		// concurrent registrations cannot both win.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return auth.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
