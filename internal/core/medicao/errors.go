package medicao

import "errors"

var (
	// ErrDecode indica que os bytes recebidos não são uma planilha válida.
	ErrDecode = errors.New("arquivo não é uma planilha válida")
	// ErrMissingSheet indica que a aba exigida pela política não existe.
	ErrMissingSheet = errors.New("aba de medição não encontrada")
)

// ParseError é a falha de extração visível ao chamador. Falhas de campo
// individuais nunca chegam aqui: degradam para valores default dentro do
// pipeline.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }
