package main

import (
	"errors"
	"net/http"

	"github.com/festeja/eventos-api/internal/response"
	"github.com/festeja/eventos-api/internal/store"
)

type createPagavelPayload struct {
	EventoID       int64  `json:"evento_id"`
	FornecedorID   *int64 `json:"fornecedor_id"`
	Descricao      string `json:"descricao"`
	Valor          int64  `json:"valor"`
	DataVencimento string `json:"data_vencimento"`
}

func (app *application) handleListPagaveis(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	pagaveis, err := app.store.Pagaveis.List(r.Context(), user.ID)
	if err != nil {
		app.appLogger.Error("Pagaveis", "Failed to list pagaveis: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao listar pagáveis")
		return
	}

	writeJSON(w, http.StatusOK, pagaveis)
}

func (app *application) handleCreatePagavel(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	var payload createPagavelPayload
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
		app.appLogger.Error("Pagaveis", "Failed to check evento %d: %v", payload.EventoID, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao criar pagável")
		return
	}

	if payload.FornecedorID != nil {
		if err := app.store.Fornecedores.Exists(r.Context(), *payload.FornecedorID, user.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSONError(w, http.StatusBadRequest, "Fornecedor não encontrado")
				return
			}
			app.appLogger.Error("Pagaveis", "Failed to check fornecedor: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "Erro ao criar pagável")
			return
		}
	}

	pagavel := &store.Pagavel{
		UserID:          user.ID,
		EventoID:        payload.EventoID,
		FornecedorID:    payload.FornecedorID,
		Descricao:       payload.Descricao,
		Valor:           payload.Valor,
		DataVencimento:  vencimento,
		StatusPagamento: store.StatusPendente,
	}

	if err := app.store.Pagaveis.Insert(r.Context(), pagavel); err != nil {
		app.appLogger.Error("Pagaveis", "Failed to insert pagavel: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao criar pagável")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": pagavel.ID})
}

func (app *application) handleUpdatePagavelStatus(w http.ResponseWriter, r *http.Request) {
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

	if err := app.store.Pagaveis.UpdateStatus(r.Context(), id, user.ID, payload.StatusPagamento); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Pagável não encontrado")
			return
		}
		app.appLogger.Error("Pagaveis", "Failed to update pagavel %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao atualizar pagável")
		return
	}

	writeJSON(w, http.StatusOK, response.APIResponse[any]{Success: true})
}
