package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/fabriciogama26/FM-Controle/internal/domain"
)

// Filtros de recência aceitos pela listagem, avaliados contra data_execucao.
const (
	FilterLastDay    = "Last day"
	FilterLast7Days  = "Last 7 days"
	FilterLast30Days = "Last 30 days"
	FilterLastMonth  = "Last month"
	FilterLastYear   = "Last year"
)

// ListOptions restringe a listagem de medições. Campos vazios não filtram.
type ListOptions struct {
	// Search busca por substring (sem caixa) em contrato, projeto e fm.
	Search string
	// Filter é um dos buckets de recência; valores desconhecidos são
	// ignorados, reproduzindo o comportamento permissivo da listagem
	// original.
	Filter string
}

// MedicaoRepository persiste medições extraídas em uma única tabela.
type MedicaoRepository struct {
	db *DB
}

// NewMedicaoRepository cria o repositório de medições.
func NewMedicaoRepository(db *DB) *MedicaoRepository {
	return &MedicaoRepository{db: db}
}

// InsertBatch grava o lote inteiro em uma única transação: ou todos os
// registros extraídos ficam duráveis, ou nenhum.
func (r *MedicaoRepository) InsertBatch(ctx context.Context, ms []domain.Medicao) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("falha ao iniciar transação: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO medicoes (
			contrato, projeto, fm, data_execucao, valor,
			pendencia, data_envio, data_correcao, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("falha ao preparar insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range ms {
		if _, err := stmt.ExecContext(ctx,
			m.Contrato, m.Projeto, m.FM, m.DataExecucao, m.Valor,
			m.Pendencia, m.DataEnvio, m.DataCorrecao, m.Status,
		); err != nil {
			return fmt.Errorf("falha ao inserir medição: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("falha ao confirmar transação: %w", err)
	}
	return nil
}

// List devolve as medições em ordem de inserção, que preserva a ordem das
// linhas da planilha de origem.
func (r *MedicaoRepository) List(ctx context.Context, opts ListOptions) ([]domain.Medicao, error) {
	query := `
		SELECT id, contrato, projeto, fm, data_execucao, valor,
		       pendencia, data_envio, data_correcao, status, created_at
		FROM medicoes
	`
	var clauses []string
	var args []any

	if opts.Search != "" {
		clauses = append(clauses,
			"(instr(lower(contrato), ?) > 0 OR instr(lower(projeto), ?) > 0 OR instr(CAST(fm AS TEXT), ?) > 0)")
		needle := strings.ToLower(opts.Search)
		args = append(args, needle, needle, needle)
	}

	if clause := recencyClause(opts.Filter); clause != "" {
		clauses = append(clauses, clause)
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar medições: %w", err)
	}
	defer rows.Close()

	var out []domain.Medicao
	for rows.Next() {
		var m domain.Medicao
		if err := rows.Scan(
			&m.ID, &m.Contrato, &m.Projeto, &m.FM, &m.DataExecucao, &m.Valor,
			&m.Pendencia, &m.DataEnvio, &m.DataCorrecao, &m.Status, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("falha ao ler medição: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update substitui integralmente o registro com a identidade dada.
func (r *MedicaoRepository) Update(ctx context.Context, id int64, m domain.Medicao) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE medicoes
		SET contrato = ?, projeto = ?, fm = ?, data_execucao = ?, valor = ?,
		    pendencia = ?, data_envio = ?, data_correcao = ?, status = ?
		WHERE id = ?
	`,
		m.Contrato, m.Projeto, m.FM, m.DataExecucao, m.Valor,
		m.Pendencia, m.DataEnvio, m.DataCorrecao, m.Status, id,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar medição: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("falha ao verificar atualização: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete remove o registro com a identidade dada.
func (r *MedicaoRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM medicoes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("falha ao excluir medição: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("falha ao verificar exclusão: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// recencyClause traduz o bucket de recência para SQL sobre a data canônica
// YYYY-MM-DD. Registros sem data de execução nunca passam por um filtro
// ativo: date('') é NULL e a comparação falha.
func recencyClause(filter string) string {
	switch filter {
	case FilterLastDay:
		return "date(data_execucao) >= date('now', '-1 day')"
	case FilterLast7Days:
		return "date(data_execucao) >= date('now', '-7 days')"
	case FilterLast30Days:
		return "date(data_execucao) >= date('now', '-30 days')"
	case FilterLastMonth:
		return "strftime('%Y-%m', data_execucao) = strftime('%Y-%m', 'now')"
	case FilterLastYear:
		return "strftime('%Y', data_execucao) = strftime('%Y', 'now')"
	default:
		return ""
	}
}
