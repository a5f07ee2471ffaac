package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/envconfig"
)

func newTestAuthService() (*AuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(testLogger(), userRepo, &envconfig.AuthConfig{
		SecretKey:       "test-secret",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
	return svc, userRepo
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, repo := newTestAuthService()

	usuario, err := svc.Register(&RegisterRequest{
		Nome: "Maria", Email: "maria@teste.com", Senha: "segredo123",
	})
	require.NoError(t, err)
	assert.True(t, usuario.Ativo)
	assert.False(t, usuario.Admin)

	stored := repo.users[usuario.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "segredo123", stored.Senha)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Senha), []byte("segredo123")))
}

func TestRegister_RequiresAllFields(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(&RegisterRequest{Nome: "Maria", Email: "maria@teste.com"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(&RegisterRequest{Nome: "Maria", Email: "maria@teste.com", Senha: "abc"})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{Nome: "Outra", Email: "maria@teste.com", Senha: "def"})
	assert.ErrorIs(t, err, models.ErrAlreadyExists)
}

func TestLogin_IssuesWorkingTokenPair(t *testing.T) {
	svc, _ := newTestAuthService()

	usuario, err := svc.Register(&RegisterRequest{
		Nome: "Maria", Email: "maria@teste.com", Senha: "segredo123",
	})
	require.NoError(t, err)

	tokens, err := svc.Login(&LoginRequest{Email: "maria@teste.com", Senha: "segredo123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	resolved, err := svc.Authenticate(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, usuario.ID, resolved.ID)
}

func TestLogin_WrongCredentialsAreIndistinguishable(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(&RegisterRequest{Nome: "Maria", Email: "maria@teste.com", Senha: "segredo123"})
	require.NoError(t, err)

	_, errWrongPassword := svc.Login(&LoginRequest{Email: "maria@teste.com", Senha: "errada"})
	_, errUnknownEmail := svc.Login(&LoginRequest{Email: "ninguem@teste.com", Senha: "segredo123"})

	assert.ErrorIs(t, errWrongPassword, models.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, models.ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, _ := newTestAuthService()

	inactive := false
	_, err := svc.Register(&RegisterRequest{
		Nome: "Maria", Email: "maria@teste.com", Senha: "segredo123", Ativo: &inactive,
	})
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{Email: "maria@teste.com", Senha: "segredo123"})
	assert.ErrorIs(t, err, models.ErrUserInactive)
}

func TestValidateToken_RejectsTamperedAndExpired(t *testing.T) {
	svc, _ := newTestAuthService()

	token, err := svc.CreateToken(42, 30*time.Minute)
	require.NoError(t, err)

	userID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	_, err = svc.ValidateToken(token + "x")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	expired, err := svc.CreateToken(42, -time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestRefresh_ReturnsFreshAccessToken(t *testing.T) {
	svc, _ := newTestAuthService()

	usuario, err := svc.Register(&RegisterRequest{
		Nome: "Maria", Email: "maria@teste.com", Senha: "segredo123",
	})
	require.NoError(t, err)

	tokens, err := svc.Login(&LoginRequest{Email: "maria@teste.com", Senha: "segredo123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	resolved, err := svc.Authenticate(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, usuario.ID, resolved.ID)
}
