package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type ContratantesStore struct {
	db *sqlx.DB
}

func (cs *ContratantesStore) List(ctx context.Context, userID string) ([]Contratante, error) {
	query := `
	SELECT
		id, user_id, nome, email, telefone, created_at, updated_at
	FROM
		contratantes
	WHERE
		user_id = $1
	ORDER BY
		nome ASC;
	`

	contratantes := []Contratante{}
	if err := cs.db.SelectContext(ctx, &contratantes, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query contratantes: %w", err)
	}

	return contratantes, nil
}

func (cs *ContratantesStore) GetByID(ctx context.Context, id int64, userID string) (*Contratante, error) {
	query := `
	SELECT
		id, user_id, nome, email, telefone, created_at, updated_at
	FROM
		contratantes
	WHERE
		id = $1 AND user_id = $2;
	`

	var contratante Contratante
	err := cs.db.GetContext(ctx, &contratante, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query contratante: %w", err)
	}

	return &contratante, nil
}

func (cs *ContratantesStore) Insert(ctx context.Context, contratante *Contratante) error {
	query := `INSERT INTO contratantes (
		user_id,
		nome,
		email,
		telefone
	) VALUES (
		:user_id,
		:nome,
		:email,
		:telefone
	) RETURNING id, created_at, updated_at`

	rows, err := sqlx.NamedQueryContext(ctx, cs.db, query, contratante)
	if err != nil {
		return fmt.Errorf("failed to insert contratante: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&contratante.ID, &contratante.CreatedAt, &contratante.UpdatedAt); err != nil {
			return err
		}
	}

	return rows.Err()
}
