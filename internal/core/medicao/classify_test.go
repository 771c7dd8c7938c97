package medicao

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		valor         float64
		wantPendencia string
		wantStatus    string
	}{
		{10001, PendenciaGerencial, StatusPrioridade},
		{12000.50, PendenciaGerencial, StatusPrioridade},
		{10000, PendenciaAprovacao, StatusPendente},
		{5000.01, PendenciaAprovacao, StatusPendente},
		{5000, PendenciaNenhuma, StatusPendente},
		{0, PendenciaNenhuma, StatusPendente},
	}
	for _, tt := range tests {
		pendencia, status := Classify(tt.valor)
		require.Equal(t, tt.wantPendencia, pendencia, "valor %v", tt.valor)
		require.Equal(t, tt.wantStatus, status, "valor %v", tt.valor)
	}
}
