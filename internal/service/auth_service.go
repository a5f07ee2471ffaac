package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fabiofilipe/pizzaria-api/internal/repositories"
	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/envconfig"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
	Ativo *bool  `json:"ativo,omitempty"`
	Admin bool   `json:"admin,omitempty"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// TokenPair is the response to a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

type AuthService struct {
	logger *logger.Logger
	users  repositories.UserRepositoryInterface
	config *envconfig.AuthConfig
}

func NewAuthService(logger *logger.Logger, users repositories.UserRepositoryInterface,
	config *envconfig.AuthConfig) *AuthService {
	return &AuthService{
		logger: logger.WithComponent("auth_service"),
		users:  users,
		config: config,
	}
}

// Register creates a new account. The password is stored as a bcrypt hash
// and never echoed back.
func (s *AuthService) Register(req *RegisterRequest) (*models.Usuario, error) {
	if req.Nome == "" || req.Email == "" || req.Senha == "" {
		return nil, fmt.Errorf("%w: nome, email e senha sao obrigatorios", models.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	ativo := true
	if req.Ativo != nil {
		ativo = *req.Ativo
	}

	usuario := &models.Usuario{
		Nome:  req.Nome,
		Email: req.Email,
		Senha: string(hash),
		Ativo: ativo,
		Admin: req.Admin,
	}

	if err := s.users.Create(usuario); err != nil {
		return nil, err
	}

	s.logger.Info("Registered new account", "user_id", usuario.ID, "email", usuario.Email)
	return usuario, nil
}

// Login verifies credentials and issues an access and a refresh token.
// Wrong email and wrong password produce the same error so the response
// does not reveal which accounts exist.
func (s *AuthService) Login(req *LoginRequest) (*TokenPair, error) {
	usuario, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w", models.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Senha), []byte(req.Senha)); err != nil {
		s.logger.Warn("Rejected login with wrong password", "email", req.Email)
		return nil, fmt.Errorf("%w", models.ErrInvalidCredentials)
	}

	if !usuario.Ativo {
		return nil, fmt.Errorf("%w: conta desativada", models.ErrUserInactive)
	}

	accessToken, err := s.CreateToken(usuario.ID, s.config.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.CreateToken(usuario.ID, s.config.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", "user_id", usuario.ID)
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}, nil
}

// Refresh exchanges a valid token for a fresh access token.
func (s *AuthService) Refresh(token string) (*TokenPair, error) {
	usuario, err := s.Authenticate(token)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.CreateToken(usuario.ID, s.config.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}

// CreateToken signs a token whose subject is the user ID.
func (s *AuthService) CreateToken(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}
	return signed, nil
}

// ValidateToken verifies a token's signature and expiry and returns the user
// ID it was issued for.
func (s *AuthService) ValidateToken(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: token invalido ou expirado", models.ErrInvalidCredentials)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: token invalido", models.ErrInvalidCredentials)
	}
	return userID, nil
}

// Authenticate resolves a token to its active user account.
func (s *AuthService) Authenticate(tokenString string) (*models.Usuario, error) {
	userID, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	usuario, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if !usuario.Ativo {
		return nil, fmt.Errorf("%w: conta desativada", models.ErrUserInactive)
	}

	return usuario, nil
}
