package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type ChecklistsStore struct {
	db *sqlx.DB
}

func (cs *ChecklistsStore) ListTemplates(ctx context.Context, userID string) ([]TemplateComTotal, error) {
	query := `
	SELECT
		tc.id, tc.user_id, tc.nome_template, tc.created_at,
		(SELECT COUNT(*) FROM tarefas_template tt WHERE tt.template_id = tc.id) AS total_tarefas
	FROM
		templates_checklist tc
	WHERE
		tc.user_id = $1
	ORDER BY
		tc.created_at DESC;
	`

	templates := []TemplateComTotal{}
	if err := cs.db.SelectContext(ctx, &templates, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}

	return templates, nil
}

func (cs *ChecklistsStore) InsertTemplate(ctx context.Context, template *TemplateChecklist) error {
	query := `INSERT INTO templates_checklist (
		user_id,
		nome_template
	) VALUES (
		:user_id,
		:nome_template
	) RETURNING id, created_at`

	rows, err := sqlx.NamedQueryContext(ctx, cs.db, query, template)
	if err != nil {
		return fmt.Errorf("failed to insert template: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&template.ID, &template.CreatedAt); err != nil {
			return err
		}
	}

	return rows.Err()
}

func (cs *ChecklistsStore) TemplateExists(ctx context.Context, id int64, userID string) error {
	var exists int64
	err := cs.db.GetContext(ctx, &exists,
		`SELECT id FROM templates_checklist WHERE id = $1 AND user_id = $2`, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check template: %w", err)
	}
	return nil
}

// ListTarefasTemplate returns the template's tasks in authoring order;
// created_at stands in for insertion order here.
func (cs *ChecklistsStore) ListTarefasTemplate(ctx context.Context, templateID int64) ([]TarefaTemplate, error) {
	query := `
	SELECT
		id, template_id, descricao_tarefa, prazo_relativo_dias, tipo_prazo, created_at
	FROM
		tarefas_template
	WHERE
		template_id = $1
	ORDER BY
		created_at ASC;
	`

	tarefas := []TarefaTemplate{}
	if err := cs.db.SelectContext(ctx, &tarefas, query, templateID); err != nil {
		return nil, fmt.Errorf("failed to query tarefas do template: %w", err)
	}

	return tarefas, nil
}

func (cs *ChecklistsStore) InsertTarefaTemplate(ctx context.Context, tarefa *TarefaTemplate) error {
	query := `INSERT INTO tarefas_template (
		template_id,
		descricao_tarefa,
		prazo_relativo_dias,
		tipo_prazo
	) VALUES (
		:template_id,
		:descricao_tarefa,
		:prazo_relativo_dias,
		:tipo_prazo
	) RETURNING id, created_at`

	rows, err := sqlx.NamedQueryContext(ctx, cs.db, query, tarefa)
	if err != nil {
		return fmt.Errorf("failed to insert tarefa do template: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&tarefa.ID, &tarefa.CreatedAt); err != nil {
			return err
		}
	}

	return rows.Err()
}

func (cs *ChecklistsStore) ListTarefasEvento(ctx context.Context, eventoID int64, userID string) ([]TarefaEvento, error) {
	query := `
	SELECT
		id, evento_id, user_id, descricao_tarefa, data_vencimento,
		is_concluida, created_at, updated_at
	FROM
		tarefas_evento
	WHERE
		evento_id = $1 AND user_id = $2
	ORDER BY
		data_vencimento ASC;
	`

	tarefas := []TarefaEvento{}
	if err := cs.db.SelectContext(ctx, &tarefas, query, eventoID, userID); err != nil {
		return nil, fmt.Errorf("failed to query tarefas do evento: %w", err)
	}

	return tarefas, nil
}

func (cs *ChecklistsStore) InsertTarefaEvento(ctx context.Context, tarefa *TarefaEvento) error {
	query := `INSERT INTO tarefas_evento (
		evento_id,
		user_id,
		descricao_tarefa,
		data_vencimento,
		is_concluida
	) VALUES (
		:evento_id,
		:user_id,
		:descricao_tarefa,
		:data_vencimento,
		:is_concluida
	) RETURNING id, created_at, updated_at`

	rows, err := sqlx.NamedQueryContext(ctx, cs.db, query, tarefa)
	if err != nil {
		return fmt.Errorf("failed to insert tarefa do evento: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&tarefa.ID, &tarefa.CreatedAt, &tarefa.UpdatedAt); err != nil {
			return err
		}
	}

	return rows.Err()
}

// InsertTarefasEvento writes the whole batch inside one transaction. Either
// every row commits or none does; a partially materialized checklist is never
// visible.
func (cs *ChecklistsStore) InsertTarefasEvento(ctx context.Context, tarefas []TarefaEvento) error {
	if len(tarefas) == 0 {
		return nil
	}

	tx, err := cs.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch: %w", err)
	}

	query := `INSERT INTO tarefas_evento (
		evento_id,
		user_id,
		descricao_tarefa,
		data_vencimento,
		is_concluida
	) VALUES (
		:evento_id,
		:user_id,
		:descricao_tarefa,
		:data_vencimento,
		:is_concluida
	)`

	for i := range tarefas {
		if _, err := tx.NamedExecContext(ctx, query, &tarefas[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert tarefa batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tarefa batch: %w", err)
	}
	return nil
}

// TarefaEventoUpdate is a partial update; nil fields are left untouched.
type TarefaEventoUpdate struct {
	ID              int64
	EventoID        int64
	UserID          string
	DescricaoTarefa *string
	DataVencimento  *Date
	IsConcluida     *bool
}

func (cs *ChecklistsStore) UpdateTarefaEvento(ctx context.Context, up TarefaEventoUpdate) error {
	query := `
	UPDATE tarefas_evento
	SET
		descricao_tarefa = COALESCE($1, descricao_tarefa),
		data_vencimento = COALESCE($2, data_vencimento),
		is_concluida = COALESCE($3, is_concluida),
		updated_at = NOW()
	WHERE
		id = $4 AND evento_id = $5 AND user_id = $6;
	`

	result, err := cs.db.ExecContext(ctx, query,
		up.DescricaoTarefa, up.DataVencimento, up.IsConcluida,
		up.ID, up.EventoID, up.UserID)
	if err != nil {
		return fmt.Errorf("failed to update tarefa: %w", err)
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
