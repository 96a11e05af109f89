package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tagihan-api/internal/application/dto"
	"github.com/jhoicas/tagihan-api/internal/domain"
	"github.com/jhoicas/tagihan-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Operator credenciales del único operador del roster (hash bcrypt desde la configuración).
type Operator struct {
	Email        string
	PasswordHash string
}

// AuthUseCase login del operador.
type AuthUseCase struct {
	operator Operator
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(operator Operator, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{operator: operator, jwtCfg: jwtCfg}
}

// Login verifica email/password y genera el JWT. Sin operador configurado nadie entra.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.operator.Email == "" || uc.operator.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if subtle.ConstantTimeCompare([]byte(email), []byte(strings.ToLower(uc.operator.Email))) != 1 {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.operator.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresIn: uc.jwtCfg.ExpMinutes * 60}, nil
}
