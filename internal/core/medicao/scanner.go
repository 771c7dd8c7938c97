package medicao

import "strings"

// FindValue varre as células da esquerda para a direita procurando um rótulo
// que contenha alguma das palavras-chave (case-insensitive, por substring:
// rótulos costumam carregar pontuação extra, ex. "Registro ( Nº FM):").
//
// No primeiro rótulo encontrado, retorna a célula não vazia mais próxima à
// direita, tolerando células em branco ou mescladas entre rótulo e valor.
// Retorna false quando nenhum rótulo casa ou nenhum valor segue o rótulo.
func FindValue(cells []string, keywords []string) (string, bool) {
	for i, cell := range cells {
		if cell == "" {
			continue
		}
		lower := strings.ToLower(cell)
		for _, kw := range keywords {
			if !strings.Contains(lower, strings.ToLower(kw)) {
				continue
			}
			for j := i + 1; j < len(cells); j++ {
				if cells[j] != "" {
					return cells[j], true
				}
			}
			return "", false
		}
	}
	return "", false
}
