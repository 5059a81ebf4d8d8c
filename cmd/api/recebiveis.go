package main

import (
	"errors"
	"net/http"

	"github.com/festeja/eventos-api/internal/response"
	"github.com/festeja/eventos-api/internal/store"
)

type createRecebivelPayload struct {
	EventoID       int64  `json:"evento_id"`
	Descricao      string `json:"descricao"`
	Valor          int64  `json:"valor"`
	DataVencimento string `json:"data_vencimento"`
}

type updateStatusPayload struct {
	StatusPagamento string `json:"status_pagamento"`
}

func validStatusPagamento(status string) bool {
	return status == store.StatusPendente || status == store.StatusPago || status == store.StatusCancelado
}

func (app *application) handleListRecebiveis(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	recebiveis, err := app.store.Recebiveis.List(r.Context(), user.ID)
	if err != nil {
		app.appLogger.Error("Recebiveis", "Failed to list recebiveis: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao listar recebíveis")
		return
	}

	writeJSON(w, http.StatusOK, recebiveis)
}

func (app *application) handleCreateRecebivel(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	var payload createRecebivelPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	payload.Descricao = sanitizeString(payload.Descricao)
	if payload.Descricao == "" {
		writeJSONError(w, http.StatusBadRequest, "Descrição é obrigatória")
		return
	}
	if payload.Valor <= 0 {
		writeJSONError(w, http.StatusBadRequest, "Valor deve ser positivo")
		return
	}

	vencimento, err := store.ParseDate(payload.DataVencimento)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Data de vencimento inválida, use YYYY-MM-DD")
		return
	}

	if err := app.store.Eventos.Exists(r.Context(), payload.EventoID, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusBadRequest, "Evento não encontrado")
			return
		}
		app.appLogger.Error("Recebiveis", "Failed to check evento %d: %v", payload.EventoID, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao criar recebível")
		return
	}

	recebivel := &store.Recebivel{
		UserID:          user.ID,
		EventoID:        payload.EventoID,
		Descricao:       payload.Descricao,
		Valor:           payload.Valor,
		DataVencimento:  vencimento,
		StatusPagamento: store.StatusPendente,
	}

	if err := app.store.Recebiveis.Insert(r.Context(), recebivel); err != nil {
		app.appLogger.Error("Recebiveis", "Failed to insert recebivel: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao criar recebível")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": recebivel.ID})
}

func (app *application) handleUpdateRecebivelStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	var payload updateStatusPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if !validStatusPagamento(payload.StatusPagamento) {
		writeJSONError(w, http.StatusBadRequest, "Status de pagamento inválido")
		return
	}

	if err := app.store.Recebiveis.UpdateStatus(r.Context(), id, user.ID, payload.StatusPagamento); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Recebível não encontrado")
			return
		}
		app.appLogger.Error("Recebiveis", "Failed to update recebivel %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao atualizar recebível")
		return
	}

	writeJSON(w, http.StatusOK, response.APIResponse[any]{Success: true})
}
