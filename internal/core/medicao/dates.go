package medicao

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayout é a forma canônica de data usada em todo o sistema.
const dateLayout = "2006-01-02"

var (
	isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	brDateRegex  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// DateEpoch converte seriais numéricos de planilha para datas.
//
// Epoch1900 usa a âncora 1899-12-30: o sistema de datas 1900 do Excel com o
// deslocamento do bug de ano bissexto do Lotus já embutido na âncora.
// Mover essa âncora em um único dia corrompe silenciosamente todas as datas
// de execução. A âncora fica ao meio-dia UTC para evitar arredondamento na
// virada de fuso horário.
type DateEpoch struct {
	name string
	base time.Time
}

var (
	// Epoch1900 é o sistema de datas padrão (Windows).
	Epoch1900 = DateEpoch{name: "1900", base: time.Date(1899, 12, 30, 12, 0, 0, 0, time.UTC)}
	// Epoch1904 é o sistema de datas de workbooks gerados no Mac.
	Epoch1904 = DateEpoch{name: "1904", base: time.Date(1904, 1, 1, 12, 0, 0, 0, time.UTC)}
)

// EpochByName resolve o nome configurado para uma época; padrão 1900.
func EpochByName(name string) DateEpoch {
	if name == Epoch1904.name {
		return Epoch1904
	}
	return Epoch1900
}

func (e DateEpoch) String() string { return e.name }

// SerialToTime interpreta o serial como deslocamento em dias sobre a âncora.
// A fração (hora do dia) é descartada: com a âncora ao meio-dia ela só
// poderia empurrar a data para o dia errado.
func (e DateEpoch) SerialToTime(serial float64) time.Time {
	return e.base.AddDate(0, 0, int(math.Floor(serial)))
}

// Normalize converte representações heterogêneas de data para a forma
// canônica YYYY-MM-DD. Entradas vazias ou não reconhecidas produzem string
// vazia, nunca erro.
func (e DateEpoch) Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if isoDateRegex.MatchString(s) {
		if _, err := time.Parse(dateLayout, s); err != nil {
			return ""
		}
		return s
	}

	if m := brDateRegex.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		t := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
		if t.Day() != day || int(t.Month()) != month || t.Year() != year {
			return ""
		}
		return t.Format(dateLayout)
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t := e.SerialToTime(serial)
		if t.Year() < 1 || t.Year() > 9999 {
			return ""
		}
		return t.Format(dateLayout)
	}

	return ""
}
