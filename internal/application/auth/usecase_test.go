package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/salecart-api/internal/application/auth"
	"github.com/jhoicas/salecart-api/internal/application/dto"
	"github.com/jhoicas/salecart-api/internal/domain"
	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/salecart-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	s := memory.NewStore()
	s.SeedUser(&entity.User{ID: "u1", CompanyID: "c1", ShopID: "s1", Email: "ventas@demo.co", PasswordHash: string(hash), Status: "active"})
	s.SeedUser(&entity.User{ID: "u2", CompanyID: "c1", Email: "baja@demo.co", PasswordHash: string(hash), Status: "inactive"})
	return auth.NewAuthUseCase(memory.NewUserRepository(s), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestLogin_TokenConTienda(t *testing.T) {
	uc := newAuth(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "VENTAS@demo.co", Password: "clave-segura"})
	require.NoError(t, err)

	assert.Equal(t, "u1", out.User.ID)
	id, err := pkgjwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, pkgjwt.Identity{UserID: "u1", CompanyID: "c1", ShopID: "s1"}, id)
}

func TestLogin_Errores(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "nadie@demo.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ventas@demo.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "baja@demo.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
