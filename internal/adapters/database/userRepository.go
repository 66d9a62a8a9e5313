package database

import (
	"context"
	"errors"

	"ejareh/internal/config"
	"ejareh/internal/core/auth"
	"ejareh/internal/core/user"

	"gorm.io/gorm"
)

// UserRepositoryDatabase پیاده‌سازی UserRepository برای دیتابیس
type UserRepositoryDatabase struct{}

// NewUserRepositoryDatabase سازنده UserRepositoryDatabase
func NewUserRepositoryDatabase() *UserRepositoryDatabase {
	return &UserRepositoryDatabase{}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, user *user.User) (*user.User, error) {
	if err := config.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (repo *UserRepositoryDatabase) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := config.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := config.DB.WithContext(ctx).Model(&user.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
