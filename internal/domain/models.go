// internal/domain/models.go
package domain

// Medicao representa um registro extraído de uma Folha de Medição.
//
// Pendencia e Status são derivados exclusivamente de Valor no momento da
// extração e nunca alterados de forma independente.
type Medicao struct {
	ID           int64   `json:"id,omitempty"`
	Contrato     string  `json:"contrato"`
	Projeto      string  `json:"projeto"`
	FM           int     `json:"fm"`
	DataExecucao string  `json:"dataExecucao"`
	Valor        float64 `json:"valor"`
	Pendencia    string  `json:"pendencia"`
	DataEnvio    string  `json:"dataEnvio"`
	DataCorrecao string  `json:"dataCorrecao"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt,omitempty"`
}

// Valido indica se o registro carrega pelo menos um campo informativo.
// Linhas extraídas que não satisfazem esta regra são descartadas.
func (m Medicao) Valido() bool {
	return m.FM > 0 || m.Projeto != "" || m.Valor > 0 || m.DataExecucao != ""
}
