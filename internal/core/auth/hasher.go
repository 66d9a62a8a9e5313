package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher هش و مقایسه‌ی پسورد با bcrypt
type PasswordHasher struct{}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{}
}

// Hash تولید هش bcrypt برای ذخیره در دیتابیس
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify مقایسه‌ی پسورد با هش ذخیره‌شده. عدم تطابق خطا نیست و فقط false
// برمی‌گردد؛ خطا فقط وقتی هش ذخیره‌شده خراب باشد (مشکل پیکربندی، نه کاربر)
func (h *PasswordHasher) Verify(plaintext, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
