package access

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/luvit/moodfit/pkg/errors"
)

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func hash(t *testing.T, passcode string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(Config{
		AdminPasscodeHash: hash(t, "admin-code"),
		GuestPasscodeHash: hash(t, "guest-code"),
		TokenSecret:       "test-secret",
		TokenTTL:          time.Hour,
	}, newTestLogger())
}

func TestService_GrantAndValidate(t *testing.T) {
	svc := newTestService(t)

	session, err := svc.Grant(context.Background(), "admin-code")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, session.Role)
	require.NotEmpty(t, session.Token)
	require.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(context.Background(), session.Token)
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, claims.Role)
	require.WithinDuration(t, session.ExpiresAt, claims.ExpiresAt, time.Second)
}

func TestService_GuestPasscode(t *testing.T) {
	svc := newTestService(t)

	session, err := svc.Grant(context.Background(), "guest-code")
	require.NoError(t, err)
	require.Equal(t, RoleGuest, session.Role)

	claims, err := svc.ValidateToken(context.Background(), session.Token)
	require.NoError(t, err)
	require.Equal(t, RoleGuest, claims.Role)
}

func TestService_RejectsWrongPasscode(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Grant(context.Background(), "wrong-code")
	require.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))

	_, err = svc.Grant(context.Background(), "  ")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestService_RejectsTamperedToken(t *testing.T) {
	svc := newTestService(t)

	session, err := svc.Grant(context.Background(), "guest-code")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), session.Token+"x")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidToken))

	_, err = svc.ValidateToken(context.Background(), "")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidToken))
}

func TestService_RejectsTokenSignedWithOtherSecret(t *testing.T) {
	svc := newTestService(t)
	other := NewService(Config{
		AdminPasscodeHash: hash(t, "admin-code"),
		GuestPasscodeHash: hash(t, "guest-code"),
		TokenSecret:       "other-secret",
		TokenTTL:          time.Hour,
	}, newTestLogger())

	session, err := other.Grant(context.Background(), "guest-code")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), session.Token)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidToken))
}

func TestService_RejectsExpiredToken(t *testing.T) {
	svc := NewService(Config{
		AdminPasscodeHash: hash(t, "admin-code"),
		GuestPasscodeHash: hash(t, "guest-code"),
		TokenSecret:       "test-secret",
		TokenTTL:          -time.Minute,
	}, newTestLogger())

	session, err := svc.Grant(context.Background(), "guest-code")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), session.Token)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidToken))
}
