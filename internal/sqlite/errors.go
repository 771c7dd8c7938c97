package sqlite

import "errors"

// ErrNotFound indica que nenhum registro existe com a identidade pedida.
var ErrNotFound = errors.New("registro não encontrado")
