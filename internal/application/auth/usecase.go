package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/lapanasystem/lapana-api/internal/application/dto"
	"github.com/lapanasystem/lapana-api/internal/domain"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
	pkgjwt "github.com/lapanasystem/lapana-api/pkg/jwt"
	"github.com/lapanasystem/lapana-api/pkg/validator"
)

// JWTConfig parámetros de emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login con bcrypt + emisión de JWT.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login valida credenciales y devuelve un token firmado con el rol del usuario.
// Credenciales incorrectas devuelven siempre ErrUnauthorized, sin distinguir
// usuario inexistente de contraseña errónea.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
