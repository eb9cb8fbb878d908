package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kawok-pos/internal/application/auth"
	"github.com/jhoicas/kawok-pos/internal/application/dto"
	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/infrastructure/memory"
	"github.com/jhoicas/kawok-pos/pkg/jwt"
)

const secret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.TokenDenylist) {
	t.Helper()
	store := memory.NewStore()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		ID: "user-admin", Email: "admin@kawokvape.com", Name: "Administrator", PasswordHash: hash, IsAdmin: true,
	}))
	denylist := memory.NewTokenDenylist()
	uc := auth.NewAuthUseCase(store.Users(), denylist, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "kawok-pos-test"})
	return uc, denylist
}

func TestLogin_OK(t *testing.T) {
	uc, _ := newAuth(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "  Admin@KawokVape.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "user-admin", out.User.ID)
	assert.True(t, out.User.IsAdmin)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@kawokvape.com", claims.Email)
	assert.Equal(t, "kawok-pos-test", claims.Issuer)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@kawokvape.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, errUnknown := uc.Login(ctx, dto.LoginRequest{Email: "nadie@kawokvape.com", Password: "password123"})
	assert.Equal(t, err, errUnknown, "usuario inexistente y password incorrecto son indistinguibles")

	_, err = uc.Login(ctx, dto.LoginRequest{})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 2)
}

func TestLogout_RevocaHastaExpirar(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@kawokvape.com", Password: "password123"})
	require.NoError(t, err)
	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)

	revoked, err := uc.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, uc.Logout(ctx, claims))
	revoked, err = uc.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogout_SinJTIOExpirado(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	assert.NoError(t, uc.Logout(ctx, nil))
	assert.NoError(t, uc.Logout(ctx, &jwt.Claims{}))

	past := &jwt.Claims{RegisteredClaims: gojwt.RegisteredClaims{
		ID:        "viejo",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	require.NoError(t, uc.Logout(ctx, past))
	revoked, err := uc.IsRevoked(ctx, "viejo")
	require.NoError(t, err)
	assert.False(t, revoked, "un token ya vencido no ocupa la lista")

	revoked, err = uc.IsRevoked(ctx, "")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMe(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	me, err := uc.Me(ctx, "user-admin")
	require.NoError(t, err)
	assert.Equal(t, "Administrator", me.Name)

	_, err = uc.Me(ctx, "borrado")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
