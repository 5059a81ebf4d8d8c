package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type EventosStore struct {
	db *sqlx.DB
}

func (es *EventosStore) List(ctx context.Context, userID string) ([]EventoComContratante, error) {
	query := `
	SELECT
		e.id, e.user_id, e.contratante_id, e.nome_evento, e.data_evento,
		e.valor_total_receber, e.valor_total_custos, e.status_evento,
		e.created_at, e.updated_at,
		c.nome AS contratante_nome
	FROM
		eventos e
	LEFT JOIN
		contratantes c ON e.contratante_id = c.id
	WHERE
		e.user_id = $1
	ORDER BY
		e.data_evento DESC;
	`

	eventos := []EventoComContratante{}
	if err := es.db.SelectContext(ctx, &eventos, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query eventos: %w", err)
	}

	return eventos, nil
}

func (es *EventosStore) GetByID(ctx context.Context, id int64, userID string) (*EventoDetalhe, error) {
	query := `
	SELECT
		e.id, e.user_id, e.contratante_id, e.nome_evento, e.data_evento,
		e.valor_total_receber, e.valor_total_custos, e.status_evento,
		e.created_at, e.updated_at,
		c.nome AS contratante_nome,
		c.email AS contratante_email,
		c.telefone AS contratante_telefone
	FROM
		eventos e
	LEFT JOIN
		contratantes c ON e.contratante_id = c.id
	WHERE
		e.id = $1 AND e.user_id = $2;
	`

	var evento EventoDetalhe
	err := es.db.GetContext(ctx, &evento, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query evento: %w", err)
	}

	return &evento, nil
}

func (es *EventosStore) Exists(ctx context.Context, id int64, userID string) error {
	var exists int64
	err := es.db.GetContext(ctx, &exists,
		`SELECT id FROM eventos WHERE id = $1 AND user_id = $2`, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check evento: %w", err)
	}
	return nil
}

func (es *EventosStore) Insert(ctx context.Context, evento *Evento) error {
	query := `INSERT INTO eventos (
		user_id,
		contratante_id,
		nome_evento,
		data_evento,
		valor_total_receber,
		valor_total_custos,
		status_evento
	) VALUES (
		:user_id,
		:contratante_id,
		:nome_evento,
		:data_evento,
		:valor_total_receber,
		:valor_total_custos,
		:status_evento
	) RETURNING id, created_at, updated_at`

	rows, err := sqlx.NamedQueryContext(ctx, es.db, query, evento)
	if err != nil {
		return fmt.Errorf("failed to insert evento: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&evento.ID, &evento.CreatedAt, &evento.UpdatedAt); err != nil {
			return err
		}
	}

	return rows.Err()
}

func (es *EventosStore) ListByContratante(ctx context.Context, contratanteID int64, userID string) ([]Evento, error) {
	query := `
	SELECT
		id, user_id, contratante_id, nome_evento, data_evento,
		valor_total_receber, valor_total_custos, status_evento,
		created_at, updated_at
	FROM
		eventos
	WHERE
		contratante_id = $1 AND user_id = $2
	ORDER BY
		data_evento DESC;
	`

	eventos := []Evento{}
	if err := es.db.SelectContext(ctx, &eventos, query, contratanteID, userID); err != nil {
		return nil, fmt.Errorf("failed to query eventos do contratante: %w", err)
	}

	return eventos, nil
}
