package main

import (
	"context"
	"errors"
	"os"

	dbadapter "ejareh/internal/adapters/database"
	"ejareh/internal/adapters/httpapi"
	redisadapter "ejareh/internal/adapters/redis"
	"ejareh/internal/config"
	"ejareh/internal/core/auth"
	authapp "ejareh/internal/core/auth/service"
	"ejareh/internal/core/user"

	"go.uber.org/zap"
)

func main() {
	config.InitLogger()
	config.Init() // بارگذاری تنظیمات از .env

	// اتصال به دیتابیس و اجرای مایگریشن‌ها
	config.InitDB()

	// اعمال مایگریشن برای مدل‌ها
	if err := config.DB.AutoMigrate(&user.User{}); err != nil {
		config.Logger.Fatal("Error during migrations:", zap.Error(err))
	}

	config.Logger.Info("✅ Database migrations completed")

	// اتصال به Redis
	config.InitRedis()

	// بستن منابع بعد از اتمام کار سرور
	defer closeResources(config.Logger)

	config.Logger.Info("App is running...")

	// SigningContext یک بار ساخته می‌شود و به همه‌جا تزریق می‌شود
	sc := config.LoadSigningContext()

	userRepo := dbadapter.NewUserRepositoryDatabase()                          // آداپتر خروجی
	blacklist := redisadapter.NewBlacklistRepositoryRedis(config.RedisClient)  // آداپتر خروجی
	hasher := auth.NewPasswordHasher()
	authSvc := authapp.NewAuthService(userRepo, hasher, sc, config.Logger)     // یوزکیس/سرویس
	r := httpapi.SetupRoutes(authSvc, blacklist, sc)                           // تزریق یوزکیس به آداپتر ورودی

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ساخت کاربر ادمین اولیه در صورت تنظیم بودن env
	seedAdmin(ctx, config.Logger, authSvc)

	// اجرای سرور Gin (در اینجا سرور به صورت بلوکینگ عمل می‌کند)
	if err := r.Run(":" + os.Getenv("APP_PORT")); err != nil {
		config.Logger.Fatal("Server failed to start:", zap.Error(err))
	}
}

// closeResources بستن اتصالات به Redis و دیتابیس
func closeResources(logger *zap.Logger) {
	// بستن اتصال به Redis
	if err := config.RedisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection:", zap.Error(err))
	}

	// بستن اتصال دیتابیس
	sqlDB, err := config.DB.DB() // گرفتن *sql.DB از *gorm.DB
	if err != nil {
		logger.Error("Error getting raw DB:", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection:", zap.Error(err))
	}
}

// seedAdmin ساخت کاربر ادمین اولیه از روی ADMIN_EMAIL و ADMIN_PASSWORD
func seedAdmin(ctx context.Context, logger *zap.Logger, authSvc *authapp.AuthService) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	u, err := authSvc.RegisterUser(ctx, "Admin", "Admin", email, password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			logger.Info("Admin user already exists", zap.String("email", email))
			return
		}
		logger.Error("❌ Error creating admin user", zap.String("email", email), zap.Error(err))
		return
	}

	logger.Info("✅ Admin user created", zap.String("id", u.ID), zap.String("email", u.Email))
}
