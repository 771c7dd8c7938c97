package medicao

// Classificações de pendência derivadas do valor monetário.
const (
	PendenciaGerencial = "managerial review required"
	PendenciaAprovacao = "approval pending"
	PendenciaNenhuma   = "no pendency"
)

// Status de workflow derivados do valor monetário.
const (
	StatusPrioridade = "priority"
	StatusPendente   = "pending"
)

// Classify mapeia o valor para a pendência e o status de workflow.
// Comparações estritas: 5000 e 10000 exatos caem na faixa inferior.
func Classify(valor float64) (pendencia, status string) {
	switch {
	case valor > 10000:
		return PendenciaGerencial, StatusPrioridade
	case valor > 5000:
		return PendenciaAprovacao, StatusPendente
	default:
		return PendenciaNenhuma, StatusPendente
	}
}
