package entity

import "errors"

// Taxonomia de erros do serviço remoto e do engine.
// Toda falha vinda do data service é normalizada para um desses quatro
// tipos na borda do repositório, antes de chegar no usecase.

// ValidationError: input malformado ou incompleto. Nunca chega na rede.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// AuthRequiredError: mutação sem principal autenticado. Nunca chega na rede.
type AuthRequiredError struct {
	Message string
}

func (e *AuthRequiredError) Error() string {
	return e.Message
}

func IsAuthRequiredError(err error) bool {
	var v *AuthRequiredError
	return errors.As(err, &v)
}

// NotFoundError: o data service não enxerga registro com esse id
// para o principal da chamada.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func IsNotFoundError(err error) bool {
	var v *NotFoundError
	return errors.As(err, &v)
}

// RemoteError: qualquer outra falha de transporte ou do serviço.
// A mensagem do serviço passa adiante sem alteração.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

func IsRemoteError(err error) bool {
	var v *RemoteError
	return errors.As(err, &v)
}
