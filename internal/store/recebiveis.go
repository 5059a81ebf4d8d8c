package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type RecebiveisStore struct {
	db *sqlx.DB
}

func (rs *RecebiveisStore) List(ctx context.Context, userID string) ([]RecebivelComEvento, error) {
	query := `
	SELECT
		vr.id, vr.user_id, vr.evento_id, vr.descricao, vr.valor,
		vr.data_vencimento, vr.status_pagamento, vr.created_at,
		e.nome_evento AS evento_nome
	FROM
		vencimentos_receber vr
	JOIN
		eventos e ON vr.evento_id = e.id
	WHERE
		vr.user_id = $1
	ORDER BY
		vr.data_vencimento ASC;
	`

	recebiveis := []RecebivelComEvento{}
	if err := rs.db.SelectContext(ctx, &recebiveis, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query recebiveis: %w", err)
	}

	return recebiveis, nil
}

func (rs *RecebiveisStore) Insert(ctx context.Context, recebivel *Recebivel) error {
	query := `INSERT INTO vencimentos_receber (
		user_id,
		evento_id,
		descricao,
		valor,
		data_vencimento,
		status_pagamento
	) VALUES (
		:user_id,
		:evento_id,
		:descricao,
		:valor,
		:data_vencimento,
		:status_pagamento
	) RETURNING id, created_at`

	rows, err := sqlx.NamedQueryContext(ctx, rs.db, query, recebivel)
	if err != nil {
		return fmt.Errorf("failed to insert recebivel: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&recebivel.ID, &recebivel.CreatedAt); err != nil {
			return err
		}
	}

	return rows.Err()
}

// UpdateStatus reports ErrNotFound when no row matched, so a foreign-owned id
// never looks like a successful update.
func (rs *RecebiveisStore) UpdateStatus(ctx context.Context, id int64, userID, status string) error {
	result, err := rs.db.ExecContext(ctx,
		`UPDATE vencimentos_receber SET status_pagamento = $1 WHERE id = $2 AND user_id = $3`,
		status, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update recebivel: %w", err)
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
