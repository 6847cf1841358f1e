package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/waterworks/records/internal/models"
)

// Claims wraps jwt.RegisteredClaims with the caller's email and role.
type Claims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) SubjectInt() int64 {
	v, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func (c *Claims) Session() models.Session {
	return models.Session{UserID: c.SubjectInt(), Email: c.Email, Role: c.Role}
}

// ParseTTL parses TTL such as "15m", "1h", "20s", "30" (minutes).
func ParseTTL(ttlStr string, def time.Duration) (time.Duration, error) {
	if ttlStr == "" {
		return def, nil
	}

	if strings.HasSuffix(ttlStr, "m") ||
		strings.HasSuffix(ttlStr, "h") ||
		strings.HasSuffix(ttlStr, "s") {
		return time.ParseDuration(ttlStr)
	}

	// fallback: minutes
	min, err := strconv.Atoi(ttlStr)
	if err != nil {
		return 0, err
	}
	return time.Duration(min) * time.Minute, nil
}

// TokenIssuer signs and verifies HS256 tokens for one secret and lifetime.
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

// Generate returns the signed token and its expiry.
func (ti *TokenIssuer) Generate(user *models.User) (string, time.Time, error) {
	if len(ti.Secret) == 0 {
		return "", time.Time{}, errors.New("secret not configured")
	}

	now := ti.Now()
	expTime := now.Add(ti.TTL)

	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(expTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ti.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expTime, nil
}

func (ti *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	if len(ti.Secret) == 0 {
		return nil, errors.New("secret not configured")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.Now),
	)

	var claims Claims

	_, err := parser.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return ti.Secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims.SubjectInt() == 0 || !claims.Role.Valid() {
		return nil, errors.New("token missing subject or role")
	}

	return &claims, nil
}
