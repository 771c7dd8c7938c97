package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB encapsula a conexão SQLite.
type DB struct {
	*sql.DB
}

// New abre (ou cria) o banco no caminho indicado. O handle é aberto uma vez
// na subida do processo e fechado explicitamente no desligamento.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir o banco de dados: %w", err)
	}
	// uma conexão só: evita SQLITE_BUSY em escrita concorrente e mantém
	// bancos ":memory:" em uma única instância
	db.SetMaxOpenConns(1)
	return &DB{db}, nil
}

// Migrate garante o schema da tabela de medições.
func (db *DB) Migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS medicoes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    contrato TEXT,
    projeto TEXT,
    fm INTEGER,
    data_execucao TEXT,
    valor REAL,
    pendencia TEXT,
    data_envio TEXT,
    data_correcao TEXT,
    status TEXT,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_medicoes_data_execucao ON medicoes(data_execucao);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("falha ao criar schema: %w", err)
	}
	return nil
}
