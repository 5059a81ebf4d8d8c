package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type FornecedoresStore struct {
	db *sqlx.DB
}

func (fs *FornecedoresStore) List(ctx context.Context, userID string) ([]Fornecedor, error) {
	query := `
	SELECT
		id, user_id, nome_fornecedor, tipo_servico, email_contato,
		telefone_contato, created_at, updated_at
	FROM
		fornecedores
	WHERE
		user_id = $1
	ORDER BY
		nome_fornecedor ASC;
	`

	fornecedores := []Fornecedor{}
	if err := fs.db.SelectContext(ctx, &fornecedores, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query fornecedores: %w", err)
	}

	return fornecedores, nil
}

func (fs *FornecedoresStore) GetByID(ctx context.Context, id int64, userID string) (*Fornecedor, error) {
	query := `
	SELECT
		id, user_id, nome_fornecedor, tipo_servico, email_contato,
		telefone_contato, created_at, updated_at
	FROM
		fornecedores
	WHERE
		id = $1 AND user_id = $2;
	`

	var fornecedor Fornecedor
	err := fs.db.GetContext(ctx, &fornecedor, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query fornecedor: %w", err)
	}

	return &fornecedor, nil
}

func (fs *FornecedoresStore) Exists(ctx context.Context, id int64, userID string) error {
	var exists int64
	err := fs.db.GetContext(ctx, &exists,
		`SELECT id FROM fornecedores WHERE id = $1 AND user_id = $2`, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check fornecedor: %w", err)
	}
	return nil
}

func (fs *FornecedoresStore) Insert(ctx context.Context, fornecedor *Fornecedor) error {
	query := `INSERT INTO fornecedores (
		user_id,
		nome_fornecedor,
		tipo_servico,
		email_contato,
		telefone_contato
	) VALUES (
		:user_id,
		:nome_fornecedor,
		:tipo_servico,
		:email_contato,
		:telefone_contato
	) RETURNING id, created_at, updated_at`

	rows, err := sqlx.NamedQueryContext(ctx, fs.db, query, fornecedor)
	if err != nil {
		return fmt.Errorf("failed to insert fornecedor: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&fornecedor.ID, &fornecedor.CreatedAt, &fornecedor.UpdatedAt); err != nil {
			return err
		}
	}

	return rows.Err()
}
