package access

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/luvit/moodfit/pkg/errors"
)

// Role identifies what a granted session is allowed to do. Guests get the
// full recommendation flow; admin is reserved for catalog management.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// Config carries the passcode hashes and token settings.
type Config struct {
	AdminPasscodeHash string
	GuestPasscodeHash string
	TokenSecret       string
	TokenTTL          time.Duration
}

// Session is a granted access token plus its role.
type Session struct {
	Token     string    `json:"token"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Claims is the validated content of a session token.
type Claims struct {
	Role      Role
	ExpiresAt time.Time
}

// Service gates the API behind a shared passcode. The passcode is compared
// against the admin hash first, then the guest hash; a match mints a
// short-lived HS256 token carrying the role.
type Service interface {
	Grant(ctx context.Context, passcode string) (Session, error)
	ValidateToken(ctx context.Context, token string) (Claims, error)
}

type service struct {
	cfg    Config
	logger *slog.Logger
}

// NewService constructs the gate.
func NewService(cfg Config, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		logger: logger.With("component", "access.service"),
	}
}

func (s *service) Grant(_ context.Context, passcode string) (Session, error) {
	if strings.TrimSpace(passcode) == "" {
		return Session{}, apperrors.Wrap(apperrors.CodeInvalidInput, "passcode cannot be empty", nil)
	}

	role, ok := s.matchRole(passcode)
	if !ok {
		return Session{}, apperrors.Wrap(apperrors.CodeUnauthorized, "invalid passcode", nil)
	}

	now := time.Now()
	expiresAt := now.Add(s.cfg.TokenTTL)
	claims := tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(role),
			ID:        newTokenID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeUnauthorized, "failed to sign token", err)
	}

	s.logger.Info("access granted", "role", string(role))
	return Session{Token: signed, Role: role, ExpiresAt: expiresAt}, nil
}

func (s *service) ValidateToken(_ context.Context, token string) (Claims, error) {
	if strings.TrimSpace(token) == "" {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token missing", nil)
	}
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(s.cfg.TokenSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token validation failed", err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token invalid", nil)
	}
	if claims.ExpiresAt == nil {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token missing expiry", nil)
	}
	if claims.ExpiresAt.Time.Before(time.Now()) {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token expired", nil)
	}
	role := Role(claims.Role)
	if role != RoleAdmin && role != RoleGuest {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "unknown role", nil)
	}
	return Claims{Role: role, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (s *service) matchRole(passcode string) (Role, bool) {
	if bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasscodeHash), []byte(passcode)) == nil {
		return RoleAdmin, true
	}
	if bcrypt.CompareHashAndPassword([]byte(s.cfg.GuestPasscodeHash), []byte(passcode)) == nil {
		return RoleGuest, true
	}
	return "", false
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

func newTokenID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return hex.EncodeToString(buf)
}
