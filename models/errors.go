package models

import "errors"

// Error kinds shared across the service and handler layers. Services wrap
// these with fmt.Errorf("%w: ...") to add detail; handlers match with
// errors.Is to pick the transport status code. The kinds never carry HTTP
// codes themselves.
var (
	ErrVariationNotFound     = errors.New("variacao de produto nao encontrada")
	ErrProductNotFound       = errors.New("produto nao encontrado")
	ErrIngredientNotFound    = errors.New("ingrediente nao encontrado")
	ErrIngredientUnavailable = errors.New("ingrediente indisponivel")
	ErrUnavailable           = errors.New("produto nao esta disponivel no momento")
	ErrObligatoryIngredient  = errors.New("ingrediente obrigatorio nao pode ser removido")
	ErrOrderNotFound         = errors.New("pedido nao encontrado")
	ErrInvalidStatus         = errors.New("status invalido")
	ErrPermissionDenied      = errors.New("acesso negado")
	ErrUserNotFound          = errors.New("usuario nao encontrado")
	ErrUserInactive          = errors.New("usuario inativo")
	ErrInvalidCredentials    = errors.New("email ou senha incorretos")
	ErrCategoryNotFound      = errors.New("categoria nao encontrada")
	ErrAddressNotFound       = errors.New("endereco nao encontrado")
	ErrAlreadyExists         = errors.New("registro ja cadastrado")
	ErrValidation            = errors.New("dados invalidos")
)
