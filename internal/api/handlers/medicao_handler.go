package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fabriciogama26/FM-Controle/internal/api/responses"
	"github.com/fabriciogama26/FM-Controle/internal/core/medicao"
	"github.com/fabriciogama26/FM-Controle/internal/domain"
	"github.com/fabriciogama26/FM-Controle/internal/sqlite"

	"github.com/gin-gonic/gin"
)

// MedicaoHandler lida com as requisições da API de Folhas de Medição.
type MedicaoHandler struct {
	service medicao.Service
	repo    *sqlite.MedicaoRepository
}

// NewMedicaoHandler cria um novo handler de medições.
func NewMedicaoHandler(service medicao.Service, repo *sqlite.MedicaoRepository) *MedicaoHandler {
	return &MedicaoHandler{
		service: service,
		repo:    repo,
	}
}

// HandleUpload recebe uma planilha, extrai os registros e persiste o lote
// em uma única transação. Nada é gravado quando a extração falha.
func (h *MedicaoHandler) HandleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo de medição (.xls, .xlsx) não encontrado ou inválido")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xls" && ext != ".xlsx" {
		responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Extensão de arquivo não suportada: %s", ext))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo enviado")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível ler o arquivo enviado")
		return
	}

	registros, err := h.service.Extract(data)
	if err != nil {
		if errors.Is(err, medicao.ErrDecode) || errors.Is(err, medicao.ErrMissingSheet) {
			responses.Error(c, http.StatusBadRequest, "Erro ao processar a planilha", err.Error())
			return
		}
		responses.Error(c, http.StatusInternalServerError, "Erro ao processar a planilha", err.Error())
		return
	}

	if err := h.repo.InsertBatch(c.Request.Context(), registros); err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao salvar os registros", err.Error())
		return
	}

	responses.Success(c, gin.H{"count": len(registros)},
		fmt.Sprintf("Dados salvos com sucesso (%d registros)", len(registros)))
}

// HandleList devolve as medições persistidas, com busca por substring e
// filtro de recência opcionais.
func (h *MedicaoHandler) HandleList(c *gin.Context) {
	opts := sqlite.ListOptions{
		Search: c.Query("search"),
		Filter: c.Query("filter"),
	}

	registros, err := h.repo.List(c.Request.Context(), opts)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro no banco de dados", err.Error())
		return
	}
	if registros == nil {
		registros = []domain.Medicao{}
	}

	responses.Success(c, gin.H{
		"data":       registros,
		"count":      len(registros),
		"lastUpdate": time.Now().UTC().Format(time.RFC3339),
	}, "")
}

// HandleUpdate substitui integralmente o registro identificado.
func (h *MedicaoHandler) HandleUpdate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Identificador inválido")
		return
	}

	var m domain.Medicao
	if err := c.ShouldBindJSON(&m); err != nil {
		responses.Error(c, http.StatusBadRequest, "Corpo da requisição inválido", err.Error())
		return
	}

	if err := h.repo.Update(c.Request.Context(), id, m); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			responses.Error(c, http.StatusNotFound, "Registro não encontrado")
			return
		}
		responses.Error(c, http.StatusInternalServerError, "Erro ao atualizar o registro", err.Error())
		return
	}

	responses.Success(c, nil, "Registro atualizado com sucesso")
}

// HandleDelete remove o registro identificado.
func (h *MedicaoHandler) HandleDelete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			responses.Error(c, http.StatusNotFound, "Registro não encontrado")
			return
		}
		responses.Error(c, http.StatusInternalServerError, "Erro ao excluir o registro", err.Error())
		return
	}

	responses.Success(c, nil, "Registro excluído com sucesso")
}
