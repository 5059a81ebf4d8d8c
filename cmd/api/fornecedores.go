package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/festeja/eventos-api/internal/store"
)

type createFornecedorPayload struct {
	NomeFornecedor  string  `json:"nome_fornecedor"`
	TipoServico     *string `json:"tipo_servico"`
	EmailContato    *string `json:"email_contato"`
	TelefoneContato *string `json:"telefone_contato"`
}

type fornecedorStats struct {
	TotalPagamentos  int                     `json:"totalPagamentos"`
	TotalPago        int64                   `json:"totalPago"`
	TotalPendente    int64                   `json:"totalPendente"`
	ProximoPagamento *store.PagavelComEvento `json:"proximoPagamento"`
}

type fornecedorDetalhe struct {
	Fornecedor   *store.Fornecedor        `json:"fornecedor"`
	Compromissos []store.PagavelComEvento `json:"compromissos"`
	Stats        fornecedorStats          `json:"stats"`
}

func (app *application) handleListFornecedores(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	fornecedores, err := app.store.Fornecedores.List(r.Context(), user.ID)
	if err != nil {
		app.appLogger.Error("Fornecedores", "Failed to list fornecedores: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao listar fornecedores")
		return
	}

	writeJSON(w, http.StatusOK, fornecedores)
}

func (app *application) handleCreateFornecedor(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	var payload createFornecedorPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	payload.NomeFornecedor = sanitizeString(payload.NomeFornecedor)
	if payload.NomeFornecedor == "" {
		writeJSONError(w, http.StatusBadRequest, "Nome do fornecedor é obrigatório")
		return
	}

	fornecedor := &store.Fornecedor{
		UserID:          user.ID,
		NomeFornecedor:  payload.NomeFornecedor,
		TipoServico:     payload.TipoServico,
		EmailContato:    payload.EmailContato,
		TelefoneContato: payload.TelefoneContato,
	}

	if err := app.store.Fornecedores.Insert(r.Context(), fornecedor); err != nil {
		app.appLogger.Error("Fornecedores", "Failed to insert fornecedor: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao criar fornecedor")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": fornecedor.ID})
}

func (app *application) handleGetFornecedor(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	fornecedor, err := app.store.Fornecedores.GetByID(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Fornecedor não encontrado")
			return
		}
		app.appLogger.Error("Fornecedores", "Failed to fetch fornecedor %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao buscar fornecedor")
		return
	}

	compromissos, err := app.store.Pagaveis.ListByFornecedor(r.Context(), id, user.ID)
	if err != nil {
		app.appLogger.Error("Fornecedores", "Failed to list compromissos for fornecedor %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao buscar fornecedor")
		return
	}
	if compromissos == nil {
		compromissos = []store.PagavelComEvento{}
	}

	writeJSON(w, http.StatusOK, fornecedorDetalhe{
		Fornecedor:   fornecedor,
		Compromissos: compromissos,
		Stats:        buildFornecedorStats(compromissos, time.Now().UTC()),
	})
}

// buildFornecedorStats summarizes payment history with one fornecedor. Every
// compromisso counts in the total regardless of status; the sums split by
// status. ProximoPagamento is the earliest pending row due today or later,
// returned as a full row.
func buildFornecedorStats(compromissos []store.PagavelComEvento, now time.Time) fornecedorStats {
	stats := fornecedorStats{TotalPagamentos: len(compromissos)}
	today := store.NewDate(now)

	for i := range compromissos {
		compromisso := &compromissos[i]

		switch compromisso.StatusPagamento {
		case store.StatusPago:
			stats.TotalPago += compromisso.Valor
		case store.StatusPendente:
			stats.TotalPendente += compromisso.Valor

			due := compromisso.DataVencimento
			if due.Before(today.Time) {
				continue
			}
			if stats.ProximoPagamento == nil || due.Before(stats.ProximoPagamento.DataVencimento.Time) {
				stats.ProximoPagamento = compromisso
			}
		}
	}
	return stats
}
