package auth

import (
	"strings"
	"testing"
	"time"

	"ejareh/internal/core/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSigningContext() SigningContext {
	return SigningContext{
		Key:           []byte("test-secret-key"),
		Issuer:        "ejareh",
		Audience:      "ejareh-admin",
		TokenLifetime: time.Hour,
		SlidingWindow: 10 * time.Minute,
	}
}

func testUser(email string) *user.User {
	return &user.User{
		ID:    uuid.Must(uuid.NewV4()),
		Email: email,
	}
}

// mintToken امضای توکن با زمان‌های دلخواه برای تست مرزهای انقضا
func mintToken(t *testing.T, sc SigningContext, email string, iat, exp int64) string {
	t.Helper()
	claims := &Claims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			Subject:   "u1",
			Issuer:    sc.Issuer,
			Audience:  sc.Audience,
			IssuedAt:  iat,
			ExpiresAt: exp,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sc.Key)
	require.NoError(t, err)
	return token
}

func TestEncodeAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	sc := testSigningContext()
	u := testUser("admin@ejareh.ir")

	claims := BuildClaims(u)
	token, err := Encode(claims, sc)
	require.NoError(t, err)
	require.Equal(t, 3, len(strings.Split(token, ".")))

	got, err := DecodeAndVerify(token, sc)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.ID.String(), got.Subject)
	assert.Equal(t, sc.Issuer, got.Issuer)
	assert.Equal(t, sc.Audience, got.Audience)
	assert.Equal(t, got.IssuedAt+int64(sc.TokenLifetime.Seconds()), got.ExpiresAt)
}

func TestDecodeAndVerify_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	sc := testSigningContext()
	now := time.Now().Unix()

	// یک ثانیه بعد از انقضا — هیچ clock skew مجاز نیست
	expired := mintToken(t, sc, "a@b.ir", now-3600, now-1)
	_, err := DecodeAndVerify(expired, sc)
	require.ErrorIs(t, err, ErrTokenExpired)

	// دقیقاً لحظه‌ی انقضا — now >= exp یعنی منقضی، بدون هیچ مهلتی
	atBoundary := mintToken(t, sc, "a@b.ir", now-3600, now)
	_, err = DecodeAndVerify(atBoundary, sc)
	require.ErrorIs(t, err, ErrTokenExpired)

	// هنوز منقضی نشده
	valid := mintToken(t, sc, "a@b.ir", now-3600, now+5)
	_, err = DecodeAndVerify(valid, sc)
	require.NoError(t, err)
}

func TestDecodeAndVerify_ExpiredWithIssuerMismatch(t *testing.T) {
	t.Parallel()

	sc := testSigningContext()
	bad := sc
	bad.Issuer = "someone-else"
	bad.Audience = "another-audience"
	now := time.Now().Unix()

	// انقضا تنها مشکل نیست — issuer/audience هم غلط‌اند، پس Invalid نه Expired
	token := mintToken(t, bad, "a@b.ir", now-3600, now-60)
	_, err := DecodeAndVerify(token, sc)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDecodeAndVerify_WrongKey(t *testing.T) {
	t.Parallel()

	sc := testSigningContext()
	other := testSigningContext()
	other.Key = []byte("a-completely-different-key")

	now := time.Now().Unix()
	token := mintToken(t, other, "a@b.ir", now, now+3600)

	_, err := DecodeAndVerify(token, sc)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDecodeAndVerify_AlgorithmSubstitution(t *testing.T) {
	t.Parallel()

	sc := testSigningContext()
	now := time.Now().Unix()
	claims := &Claims{
		Email: "a@b.ir",
		StandardClaims: jwt.StandardClaims{
			Issuer:    sc.Issuer,
			Audience:  sc.Audience,
			IssuedAt:  now,
			ExpiresAt: now + 3600,
		},
	}

	// همان کلید ولی الگوریتم دیگر — باید رد شود
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(sc.Key)
	require.NoError(t, err)
	_, err = DecodeAndVerify(hs512, sc)
	require.ErrorIs(t, err, ErrTokenInvalid)

	// توکن بدون امضا
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = DecodeAndVerify(none, sc)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDecodeAndVerify_IssuerMismatch(t *testing.T) {
	t.Parallel()

	sc := testSigningContext()
	bad := sc
	bad.Issuer = "someone-else"

	now := time.Now().Unix()
	token := mintToken(t, bad, "a@b.ir", now, now+3600)

	_, err := DecodeAndVerify(token, sc)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDecodeAndVerify_AudienceMismatch(t *testing.T) {
	t.Parallel()

	sc := testSigningContext()
	bad := sc
	bad.Audience = "another-audience"

	now := time.Now().Unix()
	token := mintToken(t, bad, "a@b.ir", now, now+3600)

	_, err := DecodeAndVerify(token, sc)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDecodeAndVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	sc := testSigningContext()
	now := time.Now().Unix()

	// payload یک توکن با امضای توکن دیگر
	t1 := mintToken(t, sc, "real@ejareh.ir", now, now+3600)
	t2 := mintToken(t, sc, "forged@ejareh.ir", now, now+3600)

	p1 := strings.Split(t1, ".")
	p2 := strings.Split(t2, ".")
	forged := p1[0] + "." + p2[1] + "." + p1[2]

	_, err := DecodeAndVerify(forged, sc)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDecodeAndVerify_Malformed(t *testing.T) {
	t.Parallel()

	sc := testSigningContext()
	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := DecodeAndVerify(raw, sc)
		require.ErrorIs(t, err, ErrTokenMalformed, "input %q", raw)
	}
}

func TestDecodeAndVerify_IssuedInFuture(t *testing.T) {
	t.Parallel()

	sc := testSigningContext()
	now := time.Now().Unix()
	token := mintToken(t, sc, "a@b.ir", now+300, now+3900)

	_, err := DecodeAndVerify(token, sc)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDecodeUnverified(t *testing.T) {
	t.Parallel()

	sc := testSigningContext()
	now := time.Now().Unix()

	// توکن منقضی هم بدون خطا خوانده می‌شود — اینجا انقضا چک نمی‌شود
	expired := mintToken(t, sc, "a@b.ir", now-7200, now-3600)
	claims, err := DecodeUnverified(expired)
	require.NoError(t, err)
	assert.Equal(t, "a@b.ir", claims.Email)
	assert.Equal(t, now-3600, claims.ExpiresAt)

	_, err = DecodeUnverified("x.y.z")
	require.ErrorIs(t, err, ErrTokenMalformed)
}
