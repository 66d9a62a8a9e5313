package authapp

import (
	"context"
	"errors"
	"time"

	"ejareh/internal/core/auth"
	userEntity "ejareh/internal/core/user"
	userPort "ejareh/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// AuthService سرویس چرخه‌ی حیات توکن: ورود، اعتبارسنجی و refresh به‌علاوه ثبت‌نام.
// هیچ state مشترکی بین فراخوانی‌ها نیست به جز SigningContext که فقط خوانده می‌شود
type AuthService struct {
	UserRepository userPort.UserRepository
	Hasher         *auth.PasswordHasher
	Signing        auth.SigningContext
	Logger         *zap.Logger
}

func NewAuthService(repo userPort.UserRepository, hasher *auth.PasswordHasher, sc auth.SigningContext, logger *zap.Logger) *AuthService {
	return &AuthService{
		UserRepository: repo,
		Hasher:         hasher,
		Signing:        sc,
		Logger:         logger,
	}
}

// LoginUser ورود کاربر و صدور توکن JWT
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error) {
	// پیدا کردن کاربر با ایمیل
	u, err := s.UserRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, auth.ErrUserNotFound
		}
		s.Logger.Error("Error finding user", zap.Error(err))
		return nil, err
	}

	// مقایسه‌ی پسورد با هش ذخیره‌شده
	ok, err := s.Hasher.Verify(password, u.Password)
	if err != nil {
		// هش خراب یعنی مشکل پیکربندی/دیتا، نه پسورد اشتباه
		s.Logger.Error("Stored password hash is malformed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, auth.ErrWrongPassword
	}

	return s.issueToken(u)
}

// RegisterUser ثبت‌نام کاربر جدید
func (s *AuthService) RegisterUser(ctx context.Context, name, family, email, password string) (*userPort.UserDTO, error) {
	// بررسی اینکه ایمیل قبلاً ثبت نشده باشد
	exists, err := s.UserRepository.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, auth.ErrEmailTaken
	}

	// هش کردن پسورد
	hashed, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     name,
		Family:   family,
		Email:    email,
		Password: hashed,
	}

	created, err := s.UserRepository.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	return &userPort.UserDTO{
		ID:     created.ID.String(),
		Name:   created.Name,
		Family: created.Family,
		Email:  created.Email,
	}, nil
}

// ValidateToken اعتبارسنجی کامل توکن و برگرداندن زمان انقضا.
// توکن منقضی و توکن نامعتبر هر دو برای کاربر یک جواب دارند (احراز نشده)؛
// ولی خطای برگشتی متمایز می‌ماند تا مسیر refresh بتواند فرق بگذارد
func (s *AuthService) ValidateToken(tokenString string) (int64, error) {
	claims, err := auth.DecodeAndVerify(tokenString, s.Signing)
	if err != nil {
		return 0, err
	}
	return claims.ExpiresAt, nil
}

// RefreshToken صدور توکن جدید برای توکنی که منقضی شده ولی هنوز داخل
// بازه‌ی sliding است. توکنی که هنوز معتبر است refresh نمی‌شود.
// اعتماد از امضای توکن قدیمی نمی‌آید — از جستجوی دوباره‌ی کاربر می‌آید
func (s *AuthService) RefreshToken(ctx context.Context, tokenString string) (*userPort.LoginResponse, error) {
	// خواندن exp بدون چک امضا
	claims, err := auth.DecodeUnverified(tokenString)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	deadline := claims.ExpiresAt + int64(s.Signing.SlidingWindow.Seconds())

	// فقط بین انقضا و پایان بازه: now >= exp && now <= deadline
	if now < claims.ExpiresAt || now > deadline {
		return nil, auth.ErrNotRefreshable
	}

	if claims.Email == "" {
		return nil, auth.ErrNotRefreshable
	}

	// اعتماد با جستجوی دوباره‌ی کاربر برقرار می‌شود
	u, err := s.UserRepository.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, auth.ErrNotRefreshable
		}
		return nil, err
	}

	// توکن جدید؛ توکن قبلی هیچ‌وقت دوباره فعال نمی‌شود
	return s.issueToken(u)
}

// GetProfile اطلاعات کاربر جاری از روی ایمیل داخل توکن
func (s *AuthService) GetProfile(ctx context.Context, email string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &userPort.UserDTO{
		ID:     u.ID.String(),
		Name:   u.Name,
		Family: u.Family,
		Email:  u.Email,
	}, nil
}

// issueToken ساخت claimها و امضای توکن — قدم آخر login و refresh
func (s *AuthService) issueToken(u *userEntity.User) (*userPort.LoginResponse, error) {
	claims := auth.BuildClaims(u)
	token, err := auth.Encode(claims, s.Signing)
	if err != nil {
		s.Logger.Error("Error generating JWT", zap.Error(err))
		return nil, err
	}
	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}
