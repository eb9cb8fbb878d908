package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/kawok-pos/internal/application/dto"
	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
	"github.com/jhoicas/kawok-pos/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TokenDenylist registro de tokens revocados (logout) por jti.
type TokenDenylist interface {
	// Revoke marca el jti como revocado durante ttl.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthUseCase casos de uso de autenticación: login, logout y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	denylist TokenDenylist
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, denylist TokenDenylist, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, denylist: denylist, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Usuario inexistente y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	v := &domain.ValidationError{}
	if email == "" {
		v.Add("email", "requerido")
	}
	if in.Password == "" {
		v.Add("password", "requerido")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, identityOf(user), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Message: "Login exitoso",
		User:    dto.FromUser(user),
		Token:   token,
	}, nil
}

// Logout revoca el token hasta su expiración. Un token sin jti no se puede revocar.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return uc.denylist.Revoke(ctx, claims.ID, ttl)
}

// IsRevoked indica si el jti fue revocado por logout.
func (uc *AuthUseCase) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	return uc.denylist.IsRevoked(ctx, jti)
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := dto.FromUser(user)
	return &out, nil
}

// HashPassword bcrypt con costo por defecto (usado por el seed).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func identityOf(u *entity.User) jwt.Identity {
	return jwt.Identity{UserID: u.ID, Email: u.Email, Name: u.Name, IsAdmin: u.IsAdmin}
}
