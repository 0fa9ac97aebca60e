package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sangkips/fueltrack-api/pkg/apperror"
	"github.com/sangkips/fueltrack-api/pkg/utils"
)

func newAuthService() *AuthService {
	return NewAuthService(newFakeUserRepo(), utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterInput{Name: " Ada ", Email: " Ada@Example.com ", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", user.Email)
	require.NotEqual(t, "s3cret-pass", user.Password)

	_, err = svc.Register(ctx, &RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "x"})
	requireAppError(t, err, http.StatusConflict)

	out, err := svc.Login(ctx, &LoginInput{Email: "ADA@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, out.AccessToken)

	claims, err := svc.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)

	refreshed, err := svc.RefreshToken(ctx, out.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, refreshed.User.ID)

	me, err := svc.GetCurrentUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Ada", me.Name)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()
	_, err := svc.Register(ctx, &RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "right-pass"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Email: "bob@example.com", Password: "wrong-pass"})
	require.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "right-pass"})
	require.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()
	_, err := svc.Register(ctx, &RegisterInput{Name: "Cy", Email: "cy@example.com", Password: "pass-word"})
	require.NoError(t, err)
	out, err := svc.Login(ctx, &LoginInput{Email: "cy@example.com", Password: "pass-word"})
	require.NoError(t, err)

	_, err = svc.RefreshToken(ctx, out.AccessToken)
	require.ErrorIs(t, err, apperror.ErrInvalidToken)
}
