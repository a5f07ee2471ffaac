package models

// Usuario is an account on the ordering platform. Senha always holds the
// bcrypt hash, never the plain password, and is kept out of JSON responses.
type Usuario struct {
	ID    int64  `json:"id" db:"id"`
	Nome  string `json:"nome" db:"nome"`
	Email string `json:"email" db:"email"`
	Senha string `json:"-" db:"senha"`
	Ativo bool   `json:"ativo" db:"ativo"`
	Admin bool   `json:"admin" db:"admin"`
}

// Endereco is a delivery address owned by a user. Orders may reference one
// as their delivery destination.
type Endereco struct {
	ID          int64  `json:"id" db:"id"`
	UsuarioID   int64  `json:"usuario_id" db:"usuario_id"`
	Rua         string `json:"rua" db:"rua"`
	Numero      string `json:"numero" db:"numero"`
	Complemento string `json:"complemento,omitempty" db:"complemento"`
	Bairro      string `json:"bairro" db:"bairro"`
	Cidade      string `json:"cidade" db:"cidade"`
	Estado      string `json:"estado" db:"estado"`
	CEP         string `json:"cep" db:"cep"`
	IsDefault   bool   `json:"is_default" db:"is_default"`
}
