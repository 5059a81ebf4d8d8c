package main

import (
	"errors"
	"net/http"

	"github.com/festeja/eventos-api/internal/response"
	"github.com/festeja/eventos-api/internal/store"
)

type createEventoPayload struct {
	ContratanteID     *int64 `json:"contratante_id"`
	NomeEvento        string `json:"nome_evento"`
	DataEvento        string `json:"data_evento"`
	ValorTotalReceber int64  `json:"valor_total_receber"`
	ValorTotalCustos  int64  `json:"valor_total_custos"`
	StatusEvento      string `json:"status_evento"`
}

func (app *application) handleListEventos(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	eventos, err := app.store.Eventos.List(r.Context(), user.ID)
	if err != nil {
		app.appLogger.Error("Eventos", "Failed to list eventos: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao listar eventos")
		return
	}

	writeJSON(w, http.StatusOK, eventos)
}

func (app *application) handleGetEvento(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	evento, err := app.store.Eventos.GetByID(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Evento não encontrado")
			return
		}
		app.appLogger.Error("Eventos", "Failed to fetch evento %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao buscar evento")
		return
	}

	writeJSON(w, http.StatusOK, evento)
}

func (app *application) handleCreateEvento(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	var payload createEventoPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	payload.NomeEvento = sanitizeString(payload.NomeEvento)
	if payload.NomeEvento == "" {
		writeJSONError(w, http.StatusBadRequest, "Nome do evento é obrigatório")
		return
	}

	dataEvento, err := store.ParseDate(payload.DataEvento)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Data do evento inválida, use YYYY-MM-DD")
		return
	}

	if payload.ValorTotalReceber < 0 || payload.ValorTotalCustos < 0 {
		writeJSONError(w, http.StatusBadRequest, "Valores não podem ser negativos")
		return
	}

	if payload.ContratanteID != nil {
		if _, err := app.store.Contratantes.GetByID(r.Context(), *payload.ContratanteID, user.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSONError(w, http.StatusBadRequest, "Contratante não encontrado")
				return
			}
			app.appLogger.Error("Eventos", "Failed to check contratante: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "Erro ao criar evento")
			return
		}
	}

	status := payload.StatusEvento
	if status == "" {
		status = store.EventoPlanejamento
	}
	if status != store.EventoPlanejamento && status != store.EventoConfirmado &&
		status != store.EventoConcluido && status != store.EventoCancelado {
		writeJSONError(w, http.StatusBadRequest, "Status do evento inválido")
		return
	}

	evento := &store.Evento{
		UserID:            user.ID,
		ContratanteID:     payload.ContratanteID,
		NomeEvento:        payload.NomeEvento,
		DataEvento:        dataEvento,
		ValorTotalReceber: payload.ValorTotalReceber,
		ValorTotalCustos:  payload.ValorTotalCustos,
		StatusEvento:      status,
	}

	if err := app.store.Eventos.Insert(r.Context(), evento); err != nil {
		app.appLogger.Error("Eventos", "Failed to insert evento: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao criar evento")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": evento.ID})
}

type createTarefaPayload struct {
	DescricaoTarefa string `json:"descricao_tarefa"`
	DataVencimento  string `json:"data_vencimento"`
}

func (app *application) handleListTarefasEvento(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	eventoID, err := parseIDParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	tarefas, err := app.store.Checklists.ListTarefasEvento(r.Context(), eventoID, user.ID)
	if err != nil {
		app.appLogger.Error("Tarefas", "Failed to list tarefas for evento %d: %v", eventoID, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao listar tarefas")
		return
	}

	writeJSON(w, http.StatusOK, tarefas)
}

func (app *application) handleCreateTarefaEvento(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	eventoID, err := parseIDParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	if err := app.store.Eventos.Exists(r.Context(), eventoID, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Evento não encontrado")
			return
		}
		app.appLogger.Error("Tarefas", "Failed to check evento %d: %v", eventoID, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao criar tarefa")
		return
	}

	var payload createTarefaPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	payload.DescricaoTarefa = sanitizeString(payload.DescricaoTarefa)
	if payload.DescricaoTarefa == "" {
		writeJSONError(w, http.StatusBadRequest, "Descrição da tarefa é obrigatória")
		return
	}

	vencimento, err := store.ParseDate(payload.DataVencimento)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Data de vencimento inválida, use YYYY-MM-DD")
		return
	}

	tarefa := &store.TarefaEvento{
		EventoID:        eventoID,
		UserID:          user.ID,
		DescricaoTarefa: payload.DescricaoTarefa,
		DataVencimento:  vencimento,
		IsConcluida:     false,
	}

	if err := app.store.Checklists.InsertTarefaEvento(r.Context(), tarefa); err != nil {
		app.appLogger.Error("Tarefas", "Failed to insert tarefa: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao criar tarefa")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": tarefa.ID})
}

type updateTarefaPayload struct {
	DescricaoTarefa *string `json:"descricao_tarefa"`
	DataVencimento  *string `json:"data_vencimento"`
	IsConcluida     *bool   `json:"is_concluida"`
}

func (app *application) handleUpdateTarefaEvento(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	eventoID, err := parseIDParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	tarefaID, err := parseIDParam(r, "tarefaID")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	var payload updateTarefaPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if payload.DescricaoTarefa == nil && payload.DataVencimento == nil && payload.IsConcluida == nil {
		writeJSONError(w, http.StatusBadRequest, "Nenhum campo para atualizar")
		return
	}

	up := store.TarefaEventoUpdate{
		ID:          tarefaID,
		EventoID:    eventoID,
		UserID:      user.ID,
		IsConcluida: payload.IsConcluida,
	}

	if payload.DescricaoTarefa != nil {
		descricao := sanitizeString(*payload.DescricaoTarefa)
		if descricao == "" {
			writeJSONError(w, http.StatusBadRequest, "Descrição da tarefa não pode ser vazia")
			return
		}
		up.DescricaoTarefa = &descricao
	}

	if payload.DataVencimento != nil {
		vencimento, err := store.ParseDate(*payload.DataVencimento)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Data de vencimento inválida, use YYYY-MM-DD")
			return
		}
		up.DataVencimento = &vencimento
	}

	if err := app.store.Checklists.UpdateTarefaEvento(r.Context(), up); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Tarefa não encontrada")
			return
		}
		app.appLogger.Error("Tarefas", "Failed to update tarefa %d: %v", tarefaID, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao atualizar tarefa")
		return
	}

	writeJSON(w, http.StatusOK, response.APIResponse[any]{Success: true})
}
