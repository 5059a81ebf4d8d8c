package checklist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/festeja/eventos-api/internal/logger"
	"github.com/festeja/eventos-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventos struct {
	evento *store.EventoDetalhe
}

func (f *fakeEventos) List(ctx context.Context, userID string) ([]store.EventoComContratante, error) {
	return nil, nil
}

func (f *fakeEventos) GetByID(ctx context.Context, id int64, userID string) (*store.EventoDetalhe, error) {
	if f.evento == nil || f.evento.ID != id || f.evento.UserID != userID {
		return nil, store.ErrNotFound
	}
	return f.evento, nil
}

func (f *fakeEventos) Exists(ctx context.Context, id int64, userID string) error {
	_, err := f.GetByID(ctx, id, userID)
	return err
}

func (f *fakeEventos) Insert(ctx context.Context, evento *store.Evento) error {
	return nil
}

func (f *fakeEventos) ListByContratante(ctx context.Context, contratanteID int64, userID string) ([]store.Evento, error) {
	return nil, nil
}

type fakeChecklists struct {
	templateID      int64
	templateUserID  string
	tarefasTemplate []store.TarefaTemplate
	batches         [][]store.TarefaEvento
	insertErr       error
}

func (f *fakeChecklists) ListTemplates(ctx context.Context, userID string) ([]store.TemplateComTotal, error) {
	return nil, nil
}

func (f *fakeChecklists) InsertTemplate(ctx context.Context, template *store.TemplateChecklist) error {
	return nil
}

func (f *fakeChecklists) TemplateExists(ctx context.Context, id int64, userID string) error {
	if id != f.templateID || userID != f.templateUserID {
		return store.ErrNotFound
	}
	return nil
}

func (f *fakeChecklists) ListTarefasTemplate(ctx context.Context, templateID int64) ([]store.TarefaTemplate, error) {
	return f.tarefasTemplate, nil
}

func (f *fakeChecklists) InsertTarefaTemplate(ctx context.Context, tarefa *store.TarefaTemplate) error {
	return nil
}

func (f *fakeChecklists) ListTarefasEvento(ctx context.Context, eventoID int64, userID string) ([]store.TarefaEvento, error) {
	return nil, nil
}

func (f *fakeChecklists) InsertTarefaEvento(ctx context.Context, tarefa *store.TarefaEvento) error {
	return nil
}

func (f *fakeChecklists) InsertTarefasEvento(ctx context.Context, tarefas []store.TarefaEvento) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.batches = append(f.batches, tarefas)
	return nil
}

func (f *fakeChecklists) UpdateTarefaEvento(ctx context.Context, up store.TarefaEventoUpdate) error {
	return nil
}

func newTestEngine(eventos *fakeEventos, checklists *fakeChecklists) *Engine {
	storage := &store.Storage{
		Eventos:    eventos,
		Checklists: checklists,
	}
	return NewEngine(storage, &logger.Logger{MinLevel: logger.LevelError})
}

func testEvento(id int64, userID, dataEvento string) *store.EventoDetalhe {
	data, _ := store.ParseDate(dataEvento)
	return &store.EventoDetalhe{
		EventoComContratante: store.EventoComContratante{
			Evento: store.Evento{
				ID:         id,
				UserID:     userID,
				NomeEvento: "Casamento",
				DataEvento: data,
			},
		},
	}
}

func TestApplyTemplateGeneratesShiftedTarefas(t *testing.T) {
	eventos := &fakeEventos{evento: testEvento(10, "user-1", "2026-06-15")}
	checklists := &fakeChecklists{
		templateID:     1,
		templateUserID: "user-1",
		tarefasTemplate: []store.TarefaTemplate{
			{ID: 1, TemplateID: 1, DescricaoTarefa: "Contratar buffet", PrazoRelativoDias: 30, TipoPrazo: store.TipoPrazoAntes},
			{ID: 2, TemplateID: 1, DescricaoTarefa: "Confirmar convidados", PrazoRelativoDias: 7, TipoPrazo: store.TipoPrazoAntes},
			{ID: 3, TemplateID: 1, DescricaoTarefa: "Pagar saldo final", PrazoRelativoDias: 5, TipoPrazo: store.TipoPrazoDepois},
		},
	}
	engine := newTestEngine(eventos, checklists)

	geradas, err := engine.ApplyTemplate(context.Background(), "user-1", 1, 10)

	require.NoError(t, err)
	assert.Equal(t, 3, geradas)
	require.Len(t, checklists.batches, 1)

	batch := checklists.batches[0]
	require.Len(t, batch, 3)

	assert.Equal(t, "Contratar buffet", batch[0].DescricaoTarefa)
	assert.Equal(t, "2026-05-16", batch[0].DataVencimento.String())
	assert.Equal(t, "2026-06-08", batch[1].DataVencimento.String())
	assert.Equal(t, "2026-06-20", batch[2].DataVencimento.String())

	for _, tarefa := range batch {
		assert.Equal(t, int64(10), tarefa.EventoID)
		assert.Equal(t, "user-1", tarefa.UserID)
		assert.False(t, tarefa.IsConcluida)
	}
}

func TestApplyTemplateNotFound(t *testing.T) {
	eventos := &fakeEventos{evento: testEvento(10, "user-1", "2026-06-15")}
	checklists := &fakeChecklists{templateID: 1, templateUserID: "user-1"}
	engine := newTestEngine(eventos, checklists)

	t.Run("template missing", func(t *testing.T) {
		_, err := engine.ApplyTemplate(context.Background(), "user-1", 99, 10)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("template owned by another user", func(t *testing.T) {
		_, err := engine.ApplyTemplate(context.Background(), "user-2", 1, 10)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("evento missing", func(t *testing.T) {
		_, err := engine.ApplyTemplate(context.Background(), "user-1", 1, 99)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	assert.Empty(t, checklists.batches)
}

func TestApplyTemplateEmptyTemplate(t *testing.T) {
	eventos := &fakeEventos{evento: testEvento(10, "user-1", "2026-06-15")}
	checklists := &fakeChecklists{templateID: 1, templateUserID: "user-1"}
	engine := newTestEngine(eventos, checklists)

	geradas, err := engine.ApplyTemplate(context.Background(), "user-1", 1, 10)

	assert.ErrorIs(t, err, ErrEmptyTemplate)
	assert.Equal(t, 0, geradas)
	assert.Empty(t, checklists.batches)
}

func TestApplyTemplateBatchFailure(t *testing.T) {
	batchErr := errors.New("connection reset")
	eventos := &fakeEventos{evento: testEvento(10, "user-1", "2026-06-15")}
	checklists := &fakeChecklists{
		templateID:     1,
		templateUserID: "user-1",
		tarefasTemplate: []store.TarefaTemplate{
			{ID: 1, TemplateID: 1, DescricaoTarefa: "Reservar local", PrazoRelativoDias: 60, TipoPrazo: store.TipoPrazoAntes},
		},
		insertErr: batchErr,
	}
	engine := newTestEngine(eventos, checklists)

	geradas, err := engine.ApplyTemplate(context.Background(), "user-1", 1, 10)

	assert.ErrorIs(t, err, batchErr)
	assert.Equal(t, 0, geradas)
}

func TestApplyTemplateTwiceAppends(t *testing.T) {
	eventos := &fakeEventos{evento: testEvento(10, "user-1", "2026-06-15")}
	checklists := &fakeChecklists{
		templateID:     1,
		templateUserID: "user-1",
		tarefasTemplate: []store.TarefaTemplate{
			{ID: 1, TemplateID: 1, DescricaoTarefa: "Contratar fotógrafo", PrazoRelativoDias: 45, TipoPrazo: store.TipoPrazoAntes},
			{ID: 2, TemplateID: 1, DescricaoTarefa: "Enviar convites", PrazoRelativoDias: 20, TipoPrazo: store.TipoPrazoAntes},
		},
	}
	engine := newTestEngine(eventos, checklists)

	first, err := engine.ApplyTemplate(context.Background(), "user-1", 1, 10)
	require.NoError(t, err)
	second, err := engine.ApplyTemplate(context.Background(), "user-1", 1, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, first)
	assert.Equal(t, 2, second)
	require.Len(t, checklists.batches, 2)
	assert.Equal(t, checklists.batches[0][0].DataVencimento, checklists.batches[1][0].DataVencimento)
}

func TestApplyTemplateDueDatesAreCalendarDates(t *testing.T) {
	eventos := &fakeEventos{evento: testEvento(10, "user-1", "2026-01-02")}
	checklists := &fakeChecklists{
		templateID:     1,
		templateUserID: "user-1",
		tarefasTemplate: []store.TarefaTemplate{
			{ID: 1, TemplateID: 1, DescricaoTarefa: "Pagar entrada", PrazoRelativoDias: 10, TipoPrazo: store.TipoPrazoAntes},
		},
	}
	engine := newTestEngine(eventos, checklists)

	_, err := engine.ApplyTemplate(context.Background(), "user-1", 1, 10)
	require.NoError(t, err)

	due := checklists.batches[0][0].DataVencimento
	assert.Equal(t, "2025-12-23", due.String())
	assert.Equal(t, time.UTC, due.Location())
}
