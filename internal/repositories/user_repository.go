package repositories

import (
	"database/sql"
	"fmt"

	"github.com/fabiofilipe/pizzaria-api/models"
	"github.com/fabiofilipe/pizzaria-api/pkg/database"
	"github.com/fabiofilipe/pizzaria-api/pkg/logger"
)

type UserRepositoryInterface interface {
	Create(usuario *models.Usuario) error
	GetByID(id int64) (*models.Usuario, error)
	GetByEmail(email string) (*models.Usuario, error)
	GetAddress(id int64) (*models.Endereco, error)
}

type UserRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewUserRepository(logger *logger.Logger, db *database.DB) *UserRepository {
	return &UserRepository{
		logger: logger.WithComponent("user_repository"),
		db:     db,
	}
}

// Create inserts a new user. The caller is responsible for hashing the
// password before it reaches this layer.
func (r *UserRepository) Create(usuario *models.Usuario) error {
	r.logger.Debug("Adding new user", "email", usuario.Email)

	query := `
        INSERT INTO usuarios (nome, email, senha, ativo, admin)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `

	err := r.db.QueryRow(query, usuario.Nome, usuario.Email, usuario.Senha, usuario.Ativo, usuario.Admin).
		Scan(&usuario.ID)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("Attempted to register duplicate email", "email", usuario.Email)
			return fmt.Errorf("%w: email %s ja esta cadastrado", models.ErrAlreadyExists, usuario.Email)
		}
		r.logger.Error("Failed to add user", "error", err, "email", usuario.Email)
		return fmt.Errorf("failed to add user: %v", err)
	}

	r.logger.Info("Added new user", "user_id", usuario.ID, "email", usuario.Email)
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id int64) (*models.Usuario, error) {
	query := `SELECT id, nome, email, senha, ativo, admin FROM usuarios WHERE id = $1`

	usuario := &models.Usuario{}
	err := r.db.QueryRow(query, id).
		Scan(&usuario.ID, &usuario.Nome, &usuario.Email, &usuario.Senha, &usuario.Ativo, &usuario.Admin)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id %d", models.ErrUserNotFound, id)
		}
		r.logger.Error("Failed to retrieve user", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to retrieve user: %v", err)
	}

	return usuario, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.Usuario, error) {
	query := `SELECT id, nome, email, senha, ativo, admin FROM usuarios WHERE email = $1`

	usuario := &models.Usuario{}
	err := r.db.QueryRow(query, email).
		Scan(&usuario.ID, &usuario.Nome, &usuario.Email, &usuario.Senha, &usuario.Ativo, &usuario.Admin)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: email %s", models.ErrUserNotFound, email)
		}
		r.logger.Error("Failed to retrieve user", "error", err, "email", email)
		return nil, fmt.Errorf("failed to retrieve user: %v", err)
	}

	return usuario, nil
}

// GetAddress retrieves a delivery address by ID
func (r *UserRepository) GetAddress(id int64) (*models.Endereco, error) {
	query := `
        SELECT id, usuario_id, rua, numero, COALESCE(complemento, ''), bairro, cidade, estado, cep, is_default
        FROM enderecos
        WHERE id = $1
    `

	endereco := &models.Endereco{}
	err := r.db.QueryRow(query, id).Scan(
		&endereco.ID, &endereco.UsuarioID, &endereco.Rua, &endereco.Numero,
		&endereco.Complemento, &endereco.Bairro, &endereco.Cidade,
		&endereco.Estado, &endereco.CEP, &endereco.IsDefault,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id %d", models.ErrAddressNotFound, id)
		}
		r.logger.Error("Failed to retrieve address", "error", err, "address_id", id)
		return nil, fmt.Errorf("failed to retrieve address: %v", err)
	}

	return endereco, nil
}
