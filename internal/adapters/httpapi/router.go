package httpapi

import (
	"context"

	"ejareh/internal/adapters/httpapi/middleware"
	"ejareh/internal/core/auth"
	tokenblacklistPort "ejareh/internal/ports/tokenblacklist"
	userPort "ejareh/internal/ports/user"

	"github.com/gin-gonic/gin"
)

// AuthUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type AuthUseCase interface {
	LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, name, family, email, password string) (*userPort.UserDTO, error)
	ValidateToken(tokenString string) (int64, error)
	RefreshToken(ctx context.Context, tokenString string) (*userPort.LoginResponse, error)
	GetProfile(ctx context.Context, email string) (*userPort.UserDTO, error)
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(
	authUC AuthUseCase,
	blacklist tokenblacklistPort.BlacklistRepository,
	sc auth.SigningContext,
) *gin.Engine {
	r := gin.Default()
	ac := NewAuthController(authUC, blacklist, sc)

	// مسیرهای ثبت‌نام و ورود بدون JWT Middleware
	r.POST("/register", ac.RegisterUser)
	r.POST("/login", ac.LoginUser)

	// اعتبارسنجی و refresh توکن — خود توکن در بدنه می‌آید
	r.POST("/token/validate", ac.ValidateToken)
	r.POST("/token/refresh", ac.RefreshToken)

	// مسیرهای محافظت‌شده با JWT Middleware
	r.GET("/me", middleware.JWTAuthMiddleware(sc, blacklist), ac.Me)
	r.POST("/logout", middleware.JWTAuthMiddleware(sc, blacklist), ac.Logout)

	return r
}
