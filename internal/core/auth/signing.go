package auth

import "time"

// SigningContext تنظیمات امضای توکن — یک بار در startup ساخته می‌شود و بعد از آن
// فقط خوانده می‌شود؛ بین همه‌ی درخواست‌ها مشترک و بدون قفل قابل استفاده است
type SigningContext struct {
	Key           []byte
	Issuer        string
	Audience      string
	TokenLifetime time.Duration // طول عمر توکن از لحظه‌ی صدور
	SlidingWindow time.Duration // بازه‌ی مجاز refresh بعد از انقضا
}
