package medicao

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fabriciogama26/FM-Controle/internal/domain"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// Service define a interface do pipeline de extração de Folhas de Medição.
type Service interface {
	Extract(data []byte) ([]domain.Medicao, error)
}

// Limites de varredura: o teto de linhas e colunas é o que protege o
// pipeline contra arquivos malformados gigantes.
const (
	maxRows = 100
	maxCols = 16
)

// FieldKeywords são os conjuntos de rótulos procurados por campo. Os
// rótulos mudaram entre versões históricas das planilhas, por isso são
// configuráveis; os defaults cobrem a variante mais recente.
type FieldKeywords struct {
	FM      []string
	Projeto []string
	Valor   []string
	Data    []string
}

// DefaultFieldKeywords retorna os rótulos da variante mais recente.
func DefaultFieldKeywords() FieldKeywords {
	return FieldKeywords{
		FM:      []string{"registro ( nº fm):", "nº fm", "fm:"},
		Projeto: []string{"projeto:", "projeto"},
		Valor:   []string{"total:", "total"},
		Data:    []string{"data:", "data"},
	}
}

type service struct {
	sheets   SheetPolicy
	epoch    DateEpoch
	keywords FieldKeywords
	now      func() time.Time
}

// Option configura o serviço de extração.
type Option func(*service)

// WithSheetPolicy troca a política de seleção de aba.
func WithSheetPolicy(p SheetPolicy) Option {
	return func(s *service) { s.sheets = p }
}

// WithDateEpoch troca a época de conversão de seriais de data.
func WithDateEpoch(e DateEpoch) Option {
	return func(s *service) { s.epoch = e }
}

// WithFieldKeywords troca os conjuntos de rótulos por campo.
func WithFieldKeywords(kw FieldKeywords) Option {
	return func(s *service) { s.keywords = kw }
}

// WithClock troca a fonte de tempo usada para a data de envio.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService cria uma nova instância do serviço de extração.
func NewService(opts ...Option) Service {
	s := &service{
		sheets:   NewHeuristicPolicy(),
		epoch:    Epoch1900,
		keywords: DefaultFieldKeywords(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	contratoRegex = regexp.MustCompile(`\d{4,}`)
	nonDigitRegex = regexp.MustCompile(`\D`)
)

// sheetGrid é uma aba materializada como grade de células em ordem de linha.
type sheetGrid struct {
	name string
	rows [][]string
}

// Extract decodifica o workbook e devolve os registros extraídos na ordem
// das linhas da planilha. Linhas malformadas são puladas; somente a falha de
// decodificação do arquivo inteiro (ou aba ausente, na política exata) é
// fatal.
func (s *service) Extract(data []byte) ([]domain.Medicao, error) {
	grids, err := decodeWorkbook(data)
	if err != nil {
		return nil, &ParseError{Message: "falha ao decodificar o arquivo", Err: err}
	}

	names := make([]string, len(grids))
	for i, g := range grids {
		names[i] = g.name
	}
	target, err := s.sheets.Select(names)
	if err != nil {
		return nil, &ParseError{Message: "falha ao selecionar a aba de dados", Err: err}
	}

	var rows [][]string
	for _, g := range grids {
		if g.name == target {
			rows = g.rows
			break
		}
	}

	limit := len(rows)
	if limit > maxRows {
		limit = maxRows
	}

	dataEnvio := s.now().Format(dateLayout)
	out := make([]domain.Medicao, 0, limit)
	for i := 1; i < limit; i++ {
		row := rows[i]
		if row == nil {
			continue
		}
		if len(row) > maxCols {
			row = row[:maxCols]
		}
		if m, ok := s.extractRow(row, dataEnvio); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *service) extractRow(cells []string, dataEnvio string) (domain.Medicao, bool) {
	fmRaw, _ := FindValue(cells, s.keywords.FM)
	projetoRaw, _ := FindValue(cells, s.keywords.Projeto)
	valorRaw, _ := FindValue(cells, s.keywords.Valor)
	dataRaw, _ := FindValue(cells, s.keywords.Data)

	projeto := strings.TrimSpace(projetoRaw)
	valor := parseValor(valorRaw)
	pendencia, status := Classify(valor)

	m := domain.Medicao{
		Contrato:     contratoRegex.FindString(projeto),
		Projeto:      projeto,
		FM:           parseFM(fmRaw),
		DataExecucao: s.epoch.Normalize(dataRaw),
		Valor:        valor,
		Pendencia:    pendencia,
		DataEnvio:    dataEnvio,
		DataCorrecao: "",
		Status:       status,
	}
	return m, m.Valido()
}

// parseFM extrai o número da FM descartando tudo que não for dígito.
func parseFM(raw string) int {
	digits := nonDigitRegex.ReplaceAllString(raw, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// parseValor converte valores monetários com vírgula decimal; texto
// não numérico ou negativo degrada para 0.
func parseValor(raw string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// decodeWorkbook materializa todas as abas como grades de células. Tenta
// xlsx primeiro; se falhar, tenta o formato .xls legado.
func decodeWorkbook(data []byte) ([]sheetGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err == nil {
		defer f.Close()
		var grids []sheetGrid
		for _, name := range f.GetSheetList() {
			rows, err := f.GetRows(name)
			if err != nil {
				continue
			}
			grids = append(grids, sheetGrid{name: name, rows: rows})
		}
		return grids, nil
	}

	workbook, xlsErr := xls.OpenReader(bytes.NewReader(data))
	if xlsErr != nil {
		return nil, ErrDecode
	}
	var grids []sheetGrid
	for _, sh := range workbook.GetSheets() {
		var rows [][]string
		for _, row := range sh.GetRows() {
			var cells []string
			for _, cell := range row.GetCols() {
				cells = append(cells, cell.GetString())
			}
			rows = append(rows, cells)
		}
		grids = append(grids, sheetGrid{name: sh.GetName(), rows: rows})
	}
	return grids, nil
}
