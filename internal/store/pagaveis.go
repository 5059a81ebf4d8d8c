package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type PagaveisStore struct {
	db *sqlx.DB
}

func (ps *PagaveisStore) List(ctx context.Context, userID string) ([]PagavelComEvento, error) {
	query := `
	SELECT
		vp.id, vp.user_id, vp.evento_id, vp.fornecedor_id, vp.descricao,
		vp.valor, vp.data_vencimento, vp.status_pagamento, vp.created_at,
		e.nome_evento AS evento_nome,
		f.nome_fornecedor AS fornecedor_nome
	FROM
		vencimentos_pagar vp
	JOIN
		eventos e ON vp.evento_id = e.id
	LEFT JOIN
		fornecedores f ON vp.fornecedor_id = f.id
	WHERE
		vp.user_id = $1
	ORDER BY
		vp.data_vencimento ASC;
	`

	pagaveis := []PagavelComEvento{}
	if err := ps.db.SelectContext(ctx, &pagaveis, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query pagaveis: %w", err)
	}

	return pagaveis, nil
}

func (ps *PagaveisStore) ListByFornecedor(ctx context.Context, fornecedorID int64, userID string) ([]PagavelComEvento, error) {
	query := `
	SELECT
		vp.id, vp.user_id, vp.evento_id, vp.fornecedor_id, vp.descricao,
		vp.valor, vp.data_vencimento, vp.status_pagamento, vp.created_at,
		e.nome_evento AS evento_nome,
		f.nome_fornecedor AS fornecedor_nome
	FROM
		vencimentos_pagar vp
	JOIN
		eventos e ON e.id = vp.evento_id
	LEFT JOIN
		fornecedores f ON vp.fornecedor_id = f.id
	WHERE
		vp.fornecedor_id = $1 AND vp.user_id = $2
	ORDER BY
		vp.data_vencimento DESC;
	`

	pagaveis := []PagavelComEvento{}
	if err := ps.db.SelectContext(ctx, &pagaveis, query, fornecedorID, userID); err != nil {
		return nil, fmt.Errorf("failed to query pagaveis do fornecedor: %w", err)
	}

	return pagaveis, nil
}

func (ps *PagaveisStore) Insert(ctx context.Context, pagavel *Pagavel) error {
	query := `INSERT INTO vencimentos_pagar (
		user_id,
		evento_id,
		fornecedor_id,
		descricao,
		valor,
		data_vencimento,
		status_pagamento
	) VALUES (
		:user_id,
		:evento_id,
		:fornecedor_id,
		:descricao,
		:valor,
		:data_vencimento,
		:status_pagamento
	) RETURNING id, created_at`

	rows, err := sqlx.NamedQueryContext(ctx, ps.db, query, pagavel)
	if err != nil {
		return fmt.Errorf("failed to insert pagavel: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&pagavel.ID, &pagavel.CreatedAt); err != nil {
			return err
		}
	}

	return rows.Err()
}

func (ps *PagaveisStore) UpdateStatus(ctx context.Context, id int64, userID, status string) error {
	result, err := ps.db.ExecContext(ctx,
		`UPDATE vencimentos_pagar SET status_pagamento = $1 WHERE id = $2 AND user_id = $3`,
		status, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update pagavel: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
