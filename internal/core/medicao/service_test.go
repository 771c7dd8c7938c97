package medicao

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheetName string, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheetName))
	fillSheet(t, f, sheetName, rows)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func fillSheet(t *testing.T, f *excelize.File, sheetName string, rows [][]any) {
	t.Helper()
	for i, row := range rows {
		for j, val := range row {
			if val == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheetName, cell, val))
		}
	}
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	}
}

func TestExtract_EndToEnd(t *testing.T) {
	data := buildWorkbook(t, "Folha de Medição", [][]any{
		{"Cabeçalho"},
		{"Projeto:", "ABC-2024-001", "FM:", "77", "Data:", 45000, "Total:", "12000,50"},
	})

	svc := NewService(WithClock(fixedClock()))
	registros, err := svc.Extract(data)
	require.NoError(t, err)
	require.Len(t, registros, 1)

	m := registros[0]
	require.Equal(t, "ABC-2024-001", m.Projeto)
	require.Equal(t, 77, m.FM)
	require.Equal(t, "2024", m.Contrato)
	require.Equal(t, 12000.5, m.Valor)
	require.Equal(t, "2023-03-15", m.DataExecucao)
	require.Equal(t, PendenciaGerencial, m.Pendencia)
	require.Equal(t, StatusPrioridade, m.Status)
	require.Equal(t, "2025-06-01", m.DataEnvio)
	require.Equal(t, "", m.DataCorrecao)
}

func TestExtract_Idempotent(t *testing.T) {
	data := buildWorkbook(t, "Folha de Medição", [][]any{
		{"Cabeçalho"},
		{"FM:", "12", "Total:", "300,00"},
		{"Projeto:", "Obra 55501", "Data:", "10/02/2024"},
	})

	svc := NewService(WithClock(fixedClock()))
	first, err := svc.Extract(data)
	require.NoError(t, err)
	second, err := svc.Extract(data)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Len(t, first, 2)
}

func TestExtract_HeaderOnlyYieldsEmptySequence(t *testing.T) {
	data := buildWorkbook(t, "Folha de Medição", [][]any{
		{"Cabeçalho", "da", "planilha"},
	})

	registros, err := NewService().Extract(data)
	require.NoError(t, err)
	require.Empty(t, registros)
}

func TestExtract_DropsRowsWithoutInformativeFields(t *testing.T) {
	data := buildWorkbook(t, "Folha de Medição", [][]any{
		{"Cabeçalho"},
		{"FM:", "41"},
		{"nada", "a", "ver"},
		{"Projeto:", "", ""},
	})

	registros, err := NewService().Extract(data)
	require.NoError(t, err)
	require.Len(t, registros, 1)
	require.Equal(t, 41, registros[0].FM)
}

func TestExtract_SelectsMeasurementSheet(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Resumo"))
	fillSheet(t, f, "Resumo", [][]any{
		{"Cabeçalho"},
		{"FM:", "999"},
	})
	_, err := f.NewSheet("Folha de Medição")
	require.NoError(t, err)
	fillSheet(t, f, "Folha de Medição", [][]any{
		{"Cabeçalho"},
		{"FM:", "7"},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	registros, err := NewService().Extract(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, registros, 1)
	require.Equal(t, 7, registros[0].FM)
}

func TestExtract_ExactPolicyMissingSheet(t *testing.T) {
	data := buildWorkbook(t, "Dados", [][]any{
		{"Cabeçalho"},
		{"FM:", "1"},
	})

	svc := NewService(WithSheetPolicy(ExactPolicy{Name: "Folha de Medição"}))
	_, err := svc.Extract(data)
	require.ErrorIs(t, err, ErrMissingSheet)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestExtract_CorruptBytes(t *testing.T) {
	_, err := NewService().Extract([]byte("isto não é uma planilha"))
	require.ErrorIs(t, err, ErrDecode)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.NotEmpty(t, parseErr.Message)
}

func TestExtract_RowCap(t *testing.T) {
	rows := [][]any{{"Cabeçalho"}}
	for i := 1; i <= 150; i++ {
		rows = append(rows, []any{"FM:", fmt.Sprintf("%d", i)})
	}
	data := buildWorkbook(t, "Folha de Medição", rows)

	registros, err := NewService().Extract(data)
	require.NoError(t, err)
	// teto de 100 linhas contando o cabeçalho
	require.Len(t, registros, 99)
	require.Equal(t, 1, registros[0].FM)
	require.Equal(t, 99, registros[len(registros)-1].FM)
}

func TestExtract_ColumnCap(t *testing.T) {
	row := make([]any, 18)
	row[16] = "FM:"
	row[17] = "5"
	data := buildWorkbook(t, "Folha de Medição", [][]any{
		{"Cabeçalho"},
		row,
	})

	registros, err := NewService().Extract(data)
	require.NoError(t, err)
	require.Empty(t, registros)
}

func TestExtract_UnparseableFieldsDegradeToDefaults(t *testing.T) {
	data := buildWorkbook(t, "Folha de Medição", [][]any{
		{"Cabeçalho"},
		{"Projeto:", "Obra sem número", "FM:", "sem dígitos", "Total:", "abc", "Data:", "ontem"},
	})

	registros, err := NewService().Extract(data)
	require.NoError(t, err)
	require.Len(t, registros, 1)

	m := registros[0]
	require.Equal(t, "Obra sem número", m.Projeto)
	require.Equal(t, "", m.Contrato)
	require.Equal(t, 0, m.FM)
	require.Equal(t, float64(0), m.Valor)
	require.Equal(t, "", m.DataExecucao)
	require.Equal(t, PendenciaNenhuma, m.Pendencia)
	require.Equal(t, StatusPendente, m.Status)
}
