package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type DocumentosStore struct {
	db *sqlx.DB
}

func (ds *DocumentosStore) ListByEvento(ctx context.Context, eventoID int64, userID string) ([]DocumentoEvento, error) {
	query := `
	SELECT
		id, evento_id, user_id, nome_arquivo, tipo_documento, mime_type,
		tamanho, storage_key, created_at
	FROM
		documentos_evento
	WHERE
		evento_id = $1 AND user_id = $2
	ORDER BY
		created_at DESC;
	`

	documentos := []DocumentoEvento{}
	if err := ds.db.SelectContext(ctx, &documentos, query, eventoID, userID); err != nil {
		return nil, fmt.Errorf("failed to query documentos: %w", err)
	}

	return documentos, nil
}

func (ds *DocumentosStore) GetByID(ctx context.Context, id, eventoID int64, userID string) (*DocumentoEvento, error) {
	query := `
	SELECT
		id, evento_id, user_id, nome_arquivo, tipo_documento, mime_type,
		tamanho, storage_key, created_at
	FROM
		documentos_evento
	WHERE
		id = $1 AND evento_id = $2 AND user_id = $3;
	`

	var doc DocumentoEvento
	err := ds.db.GetContext(ctx, &doc, query, id, eventoID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query documento: %w", err)
	}

	return &doc, nil
}

func (ds *DocumentosStore) Insert(ctx context.Context, doc *DocumentoEvento) error {
	query := `INSERT INTO documentos_evento (
		evento_id,
		user_id,
		nome_arquivo,
		tipo_documento,
		mime_type,
		tamanho,
		storage_key
	) VALUES (
		:evento_id,
		:user_id,
		:nome_arquivo,
		:tipo_documento,
		:mime_type,
		:tamanho,
		:storage_key
	) RETURNING id, created_at`

	rows, err := sqlx.NamedQueryContext(ctx, ds.db, query, doc)
	if err != nil {
		return fmt.Errorf("failed to insert documento: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&doc.ID, &doc.CreatedAt); err != nil {
			return err
		}
	}

	return rows.Err()
}

func (ds *DocumentosStore) Delete(ctx context.Context, id, eventoID int64, userID string) error {
	result, err := ds.db.ExecContext(ctx,
		`DELETE FROM documentos_evento WHERE id = $1 AND evento_id = $2 AND user_id = $3`,
		id, eventoID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete documento: %w", err)
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
