package medicao

import (
	"fmt"
	"strings"

	"github.com/schollz/closestmatch"
)

// SheetPolicy decide qual aba de um workbook multi-aba é a fonte de dados.
type SheetPolicy interface {
	Select(names []string) (string, error)
}

// HeuristicPolicy escolhe a primeira aba cujo nome contém algum dos
// marcadores (comparação sem acentos e sem caixa); sem match, cai na
// primeira aba do workbook. É a política padrão por degradar bem quando o
// nome da aba muda entre versões do arquivo.
type HeuristicPolicy struct {
	Markers []string
}

// NewHeuristicPolicy cria a política padrão com os marcadores "folha" e
// "medicao".
func NewHeuristicPolicy() HeuristicPolicy {
	return HeuristicPolicy{Markers: []string{"folha", "medicao"}}
}

func (p HeuristicPolicy) Select(names []string) (string, error) {
	if len(names) == 0 {
		return "", ErrMissingSheet
	}
	for _, name := range names {
		folded := foldName(name)
		for _, marker := range p.Markers {
			if strings.Contains(folded, marker) {
				return name, nil
			}
		}
	}
	return names[0], nil
}

// ExactPolicy exige uma aba com nome exato e falha quando ausente.
type ExactPolicy struct {
	Name string
}

func (p ExactPolicy) Select(names []string) (string, error) {
	for _, name := range names {
		if name == p.Name {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrMissingSheet, p.Name)
}

// ClosestPolicy escolhe a aba cujo nome normalizado é o mais próximo do
// alvo por similaridade de n-gramas; sem candidato, cai na primeira aba.
type ClosestPolicy struct {
	Target string
}

func (p ClosestPolicy) Select(names []string) (string, error) {
	if len(names) == 0 {
		return "", ErrMissingSheet
	}
	target := p.Target
	if target == "" {
		target = "folha de medicao"
	}
	folded := make([]string, len(names))
	byFolded := make(map[string]string, len(names))
	for i, name := range names {
		folded[i] = foldName(name)
		if _, ok := byFolded[folded[i]]; !ok {
			byFolded[folded[i]] = name
		}
	}
	cm := closestmatch.New(folded, []int{2, 3})
	if match := cm.Closest(foldName(target)); match != "" {
		return byFolded[match], nil
	}
	return names[0], nil
}

// PolicyByName resolve a política configurada. Nomes desconhecidos caem na
// heurística padrão.
func PolicyByName(policy, sheetName string) SheetPolicy {
	switch policy {
	case "exact":
		return ExactPolicy{Name: sheetName}
	case "closest":
		return ClosestPolicy{Target: sheetName}
	default:
		return NewHeuristicPolicy()
	}
}
