package checklist

import (
	"context"
	"errors"

	"github.com/festeja/eventos-api/internal/logger"
	"github.com/festeja/eventos-api/internal/store"
)

// ErrEmptyTemplate is reported when a template with zero tasks is applied.
// It is a client error, not a persistence failure.
var ErrEmptyTemplate = errors.New("template has no tasks")

/*
Engine materializes an ordered checklist for a concrete evento from a
reusable template. Ownership and existence are validated before any write;
the generated tasks are persisted in a single all-or-nothing batch, so a
failed application leaves no rows behind.
*/
type Engine struct {
	storage   *store.Storage
	appLogger *logger.Logger
}

func NewEngine(storage *store.Storage, appLogger *logger.Logger) *Engine {
	return &Engine{
		storage:   storage,
		appLogger: appLogger,
	}
}

// ApplyTemplate generates one incomplete tarefa per template task, each dated
// relative to the evento's date, and returns how many were created.
// Re-applying the same template appends a second full set; it does not
// deduplicate.
func (e *Engine) ApplyTemplate(ctx context.Context, userID string, templateID, eventoID int64) (int, error) {
	const component = "ChecklistEngine"

	if err := e.storage.Checklists.TemplateExists(ctx, templateID, userID); err != nil {
		return 0, err
	}

	evento, err := e.storage.Eventos.GetByID(ctx, eventoID, userID)
	if err != nil {
		return 0, err
	}

	tarefasTemplate, err := e.storage.Checklists.ListTarefasTemplate(ctx, templateID)
	if err != nil {
		return 0, err
	}
	if len(tarefasTemplate) == 0 {
		return 0, ErrEmptyTemplate
	}

	novas := make([]store.TarefaEvento, 0, len(tarefasTemplate))
	for _, tarefa := range tarefasTemplate {
		dir := Antes
		if tarefa.TipoPrazo == store.TipoPrazoDepois {
			dir = Depois
		}

		due := ShiftDate(evento.DataEvento.Time, tarefa.PrazoRelativoDias, dir)
		novas = append(novas, store.TarefaEvento{
			EventoID:        eventoID,
			UserID:          userID,
			DescricaoTarefa: tarefa.DescricaoTarefa,
			DataVencimento:  store.NewDate(due),
			IsConcluida:     false,
		})
	}

	if err := e.storage.Checklists.InsertTarefasEvento(ctx, novas); err != nil {
		e.appLogger.Error(component, "Failed to apply template: template=%d evento=%d err=%v", templateID, eventoID, err)
		return 0, err
	}

	e.appLogger.Info(component, "Template applied: template=%d evento=%d tarefas=%d", templateID, eventoID, len(novas))
	return len(novas), nil
}
