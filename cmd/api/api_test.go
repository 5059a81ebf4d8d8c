package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/festeja/eventos-api/internal/checklist"
	"github.com/festeja/eventos-api/internal/dashboard"
	"github.com/festeja/eventos-api/internal/logger"
	"github.com/festeja/eventos-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEventos struct {
	evento   *store.EventoDetalhe
	inserted *store.Evento
}

func (s *stubEventos) List(ctx context.Context, userID string) ([]store.EventoComContratante, error) {
	return []store.EventoComContratante{}, nil
}

func (s *stubEventos) GetByID(ctx context.Context, id int64, userID string) (*store.EventoDetalhe, error) {
	if s.evento == nil || s.evento.ID != id || s.evento.UserID != userID {
		return nil, store.ErrNotFound
	}
	return s.evento, nil
}

func (s *stubEventos) Exists(ctx context.Context, id int64, userID string) error {
	_, err := s.GetByID(ctx, id, userID)
	return err
}

func (s *stubEventos) Insert(ctx context.Context, evento *store.Evento) error {
	evento.ID = 1
	s.inserted = evento
	return nil
}

func (s *stubEventos) ListByContratante(ctx context.Context, contratanteID int64, userID string) ([]store.Evento, error) {
	return nil, nil
}

type stubChecklists struct {
	templateID      int64
	templateUserID  string
	tarefasTemplate []store.TarefaTemplate
	inserted        []store.TarefaEvento
}

func (s *stubChecklists) ListTemplates(ctx context.Context, userID string) ([]store.TemplateComTotal, error) {
	return []store.TemplateComTotal{}, nil
}

func (s *stubChecklists) InsertTemplate(ctx context.Context, template *store.TemplateChecklist) error {
	template.ID = 1
	return nil
}

func (s *stubChecklists) TemplateExists(ctx context.Context, id int64, userID string) error {
	if id != s.templateID || userID != s.templateUserID {
		return store.ErrNotFound
	}
	return nil
}

func (s *stubChecklists) ListTarefasTemplate(ctx context.Context, templateID int64) ([]store.TarefaTemplate, error) {
	return s.tarefasTemplate, nil
}

func (s *stubChecklists) InsertTarefaTemplate(ctx context.Context, tarefa *store.TarefaTemplate) error {
	tarefa.ID = 1
	return nil
}

func (s *stubChecklists) ListTarefasEvento(ctx context.Context, eventoID int64, userID string) ([]store.TarefaEvento, error) {
	return []store.TarefaEvento{}, nil
}

func (s *stubChecklists) InsertTarefaEvento(ctx context.Context, tarefa *store.TarefaEvento) error {
	tarefa.ID = 1
	return nil
}

func (s *stubChecklists) InsertTarefasEvento(ctx context.Context, tarefas []store.TarefaEvento) error {
	s.inserted = append(s.inserted, tarefas...)
	return nil
}

func (s *stubChecklists) UpdateTarefaEvento(ctx context.Context, up store.TarefaEventoUpdate) error {
	return nil
}

type stubDashboard struct{}

func (s *stubDashboard) SumRecebiveisPendentesBetween(ctx context.Context, userID string, start, end time.Time) (int64, error) {
	return 0, nil
}

func (s *stubDashboard) OverdueRecebiveis(ctx context.Context, userID string, before time.Time) (store.OverdueResumo, error) {
	return store.OverdueResumo{}, nil
}

func (s *stubDashboard) UpcomingEventos(ctx context.Context, userID string, start, end time.Time) ([]store.EventoComContratante, error) {
	return nil, nil
}

func (s *stubDashboard) RecebiveisPorMes(ctx context.Context, userID string, start, end time.Time) ([]store.PeriodoTotal, error) {
	return nil, nil
}

func (s *stubDashboard) PagaveisPorMes(ctx context.Context, userID string, start, end time.Time) ([]store.PeriodoTotal, error) {
	return nil, nil
}

func (s *stubDashboard) TotaisEventos(ctx context.Context, userID string) (store.TotaisEventos, error) {
	return store.TotaisEventos{}, nil
}

func (s *stubDashboard) SumRecebiveisPendentes(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (s *stubDashboard) SumPagaveisPendentes(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (s *stubDashboard) RecebiveisPorDia(ctx context.Context, userID string, start, end time.Time) ([]store.DiaTotal, error) {
	return nil, nil
}

func (s *stubDashboard) PagaveisPorDia(ctx context.Context, userID string, start, end time.Time) ([]store.DiaTotal, error) {
	return nil, nil
}

type stubRecebiveis struct {
	known map[int64]string
}

func (s *stubRecebiveis) List(ctx context.Context, userID string) ([]store.RecebivelComEvento, error) {
	return []store.RecebivelComEvento{}, nil
}

func (s *stubRecebiveis) Insert(ctx context.Context, recebivel *store.Recebivel) error {
	recebivel.ID = 1
	return nil
}

func (s *stubRecebiveis) UpdateStatus(ctx context.Context, id int64, userID, status string) error {
	if owner, ok := s.known[id]; !ok || owner != userID {
		return store.ErrNotFound
	}
	return nil
}

type stubRateLimits struct {
	result store.RateLimitResult
	err    error
}

func (s *stubRateLimits) Take(ctx context.Context, key string, limit int, window time.Duration) (store.RateLimitResult, error) {
	return s.result, s.err
}

func testEventoDetalhe(id int64, userID, dataEvento string) *store.EventoDetalhe {
	data, _ := store.ParseDate(dataEvento)
	return &store.EventoDetalhe{
		EventoComContratante: store.EventoComContratante{
			Evento: store.Evento{
				ID:           id,
				UserID:       userID,
				NomeEvento:   "Formatura",
				DataEvento:   data,
				StatusEvento: store.EventoConfirmado,
			},
		},
	}
}

func newTestApp(storage *store.Storage) *application {
	appLogger := &logger.Logger{MinLevel: logger.LevelError}
	return &application{
		config:     config{},
		store:      storage,
		appLogger:  appLogger,
		aggregator: dashboard.NewAggregator(storage, appLogger),
		engine:     checklist.NewEngine(storage, appLogger),
	}
}

func doRequest(app *application, method, target, userID string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	app.mount().ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(&store.Storage{})

	rec := doRequest(app, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	app := newTestApp(&store.Storage{})

	targets := []string{
		"/api/eventos",
		"/api/dashboard/stats",
		"/api/recebiveis",
		"/api/checklists/templates",
	}

	for _, target := range targets {
		rec := doRequest(app, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestDashboardStatsContract(t *testing.T) {
	app := newTestApp(&store.Storage{Dashboard: &stubDashboard{}})

	rec := doRequest(app, http.MethodGet, "/api/dashboard/stats", "user-1", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	for _, key := range []string{
		"receivablesMonth", "overduePayments", "upcomingEvents",
		"financialSeries", "marginAnalysis", "cashPosition", "cashflowProjection",
	} {
		assert.Contains(t, body, key)
	}

	// Empty account still gets an array, not null.
	assert.Equal(t, "[]", string(body["upcomingEvents"]))

	var series []map[string]any
	require.NoError(t, json.Unmarshal(body["financialSeries"], &series))
	assert.Len(t, series, 6)
}

func TestApplyTemplateEndpoint(t *testing.T) {
	newStorage := func(tarefas []store.TarefaTemplate) (*store.Storage, *stubChecklists) {
		checklists := &stubChecklists{
			templateID:      1,
			templateUserID:  "user-1",
			tarefasTemplate: tarefas,
		}
		storage := &store.Storage{
			Eventos:    &stubEventos{evento: testEventoDetalhe(10, "user-1", "2026-06-15")},
			Checklists: checklists,
		}
		return storage, checklists
	}

	t.Run("generates tasks", func(t *testing.T) {
		storage, checklists := newStorage([]store.TarefaTemplate{
			{ID: 1, TemplateID: 1, DescricaoTarefa: "Reservar local", PrazoRelativoDias: 30, TipoPrazo: store.TipoPrazoAntes},
			{ID: 2, TemplateID: 1, DescricaoTarefa: "Devolver equipamentos", PrazoRelativoDias: 2, TipoPrazo: store.TipoPrazoDepois},
		})
		app := newTestApp(storage)

		rec := doRequest(app, http.MethodPost, "/api/checklists/templates/1/aplicar", "user-1", `{"evento_id":10}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"tarefas_geradas":2}`, rec.Body.String())
		assert.Len(t, checklists.inserted, 2)
	})

	t.Run("unknown template answers 404", func(t *testing.T) {
		storage, _ := newStorage(nil)
		app := newTestApp(storage)

		rec := doRequest(app, http.MethodPost, "/api/checklists/templates/99/aplicar", "user-1", `{"evento_id":10}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown evento answers 404", func(t *testing.T) {
		storage, _ := newStorage(nil)
		app := newTestApp(storage)

		rec := doRequest(app, http.MethodPost, "/api/checklists/templates/1/aplicar", "user-1", `{"evento_id":99}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("empty template answers 400", func(t *testing.T) {
		storage, _ := newStorage(nil)
		app := newTestApp(storage)

		rec := doRequest(app, http.MethodPost, "/api/checklists/templates/1/aplicar", "user-1", `{"evento_id":10}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing evento_id answers 400", func(t *testing.T) {
		storage, _ := newStorage(nil)
		app := newTestApp(storage)

		rec := doRequest(app, http.MethodPost, "/api/checklists/templates/1/aplicar", "user-1", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateRecebivelStatusEndpoint(t *testing.T) {
	storage := &store.Storage{
		Recebiveis: &stubRecebiveis{known: map[int64]string{7: "user-1"}},
	}
	app := newTestApp(storage)

	t.Run("valid transition", func(t *testing.T) {
		rec := doRequest(app, http.MethodPatch, "/api/recebiveis/7", "user-1", `{"status_pagamento":"Pago"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	})

	t.Run("invalid status answers 400", func(t *testing.T) {
		rec := doRequest(app, http.MethodPatch, "/api/recebiveis/7", "user-1", `{"status_pagamento":"Quitado"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("foreign-owned row answers 404", func(t *testing.T) {
		rec := doRequest(app, http.MethodPatch, "/api/recebiveis/7", "user-2", `{"status_pagamento":"Pago"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id answers 400", func(t *testing.T) {
		rec := doRequest(app, http.MethodPatch, "/api/recebiveis/abc", "user-1", `{"status_pagamento":"Pago"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("full window answers 429 with retry hint", func(t *testing.T) {
		app := newTestApp(&store.Storage{
			RateLimits: &stubRateLimits{result: store.RateLimitResult{Allowed: false, RetryAfter: 42 * time.Second}},
		})
		app.config.rate = rateConfig{limit: 100, window: time.Minute}

		rec := doRequest(app, http.MethodGet, "/health", "user-1", "")

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "42", rec.Header().Get("Retry-After"))
	})

	t.Run("counter failure lets the request through", func(t *testing.T) {
		app := newTestApp(&store.Storage{
			RateLimits: &stubRateLimits{err: errors.New("connection refused")},
		})
		app.config.rate = rateConfig{limit: 100, window: time.Minute}

		rec := doRequest(app, http.MethodGet, "/health", "user-1", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disabled limiter never touches the store", func(t *testing.T) {
		app := newTestApp(&store.Storage{})

		rec := doRequest(app, http.MethodGet, "/health", "user-1", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCreateEventoValidation(t *testing.T) {
	storage := &store.Storage{
		Eventos: &stubEventos{},
	}
	app := newTestApp(storage)

	t.Run("missing name answers 400", func(t *testing.T) {
		rec := doRequest(app, http.MethodPost, "/api/eventos", "user-1",
			`{"nome_evento":"  ","data_evento":"2026-06-15"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad date answers 400", func(t *testing.T) {
		rec := doRequest(app, http.MethodPost, "/api/eventos", "user-1",
			`{"nome_evento":"Casamento","data_evento":"15/06/2026"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative values answer 400", func(t *testing.T) {
		rec := doRequest(app, http.MethodPost, "/api/eventos", "user-1",
			`{"nome_evento":"Casamento","data_evento":"2026-06-15","valor_total_receber":-1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("markup is stripped from the name", func(t *testing.T) {
		eventos := &stubEventos{}
		app := newTestApp(&store.Storage{Eventos: eventos})

		rec := doRequest(app, http.MethodPost, "/api/eventos", "user-1",
			`{"nome_evento":"<b>Casamento</b>","data_evento":"2026-06-15"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, eventos.inserted)
		assert.NotContains(t, eventos.inserted.NomeEvento, "<")
		assert.NotContains(t, eventos.inserted.NomeEvento, ">")
	})
}
