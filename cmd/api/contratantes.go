package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/festeja/eventos-api/internal/store"
)

type createContratantePayload struct {
	Nome     string  `json:"nome"`
	Email    *string `json:"email"`
	Telefone *string `json:"telefone"`
}

type contratanteStats struct {
	TotalEventos  int           `json:"totalEventos"`
	TotalReceita  int64         `json:"totalReceita"`
	TotalLucro    int64         `json:"totalLucro"`
	MargemMedia   float64       `json:"margemMedia"`
	UltimoEvento  *store.Evento `json:"ultimoEvento"`
	ProximoEvento *store.Evento `json:"proximoEvento"`
}

type contratanteDetalhe struct {
	Contratante *store.Contratante `json:"contratante"`
	Eventos     []store.Evento     `json:"eventos"`
	Stats       contratanteStats   `json:"stats"`
}

func (app *application) handleListContratantes(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	contratantes, err := app.store.Contratantes.List(r.Context(), user.ID)
	if err != nil {
		app.appLogger.Error("Contratantes", "Failed to list contratantes: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao listar contratantes")
		return
	}

	writeJSON(w, http.StatusOK, contratantes)
}

func (app *application) handleCreateContratante(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	var payload createContratantePayload
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	payload.Nome = sanitizeString(payload.Nome)
	if payload.Nome == "" {
		writeJSONError(w, http.StatusBadRequest, "Nome é obrigatório")
		return
	}

	contratante := &store.Contratante{
		UserID:   user.ID,
		Nome:     payload.Nome,
		Email:    payload.Email,
		Telefone: payload.Telefone,
	}

	if err := app.store.Contratantes.Insert(r.Context(), contratante); err != nil {
		app.appLogger.Error("Contratantes", "Failed to insert contratante: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao criar contratante")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": contratante.ID})
}

func (app *application) handleGetContratante(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	contratante, err := app.store.Contratantes.GetByID(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Contratante não encontrado")
			return
		}
		app.appLogger.Error("Contratantes", "Failed to fetch contratante %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao buscar contratante")
		return
	}

	eventos, err := app.store.Eventos.ListByContratante(r.Context(), id, user.ID)
	if err != nil {
		app.appLogger.Error("Contratantes", "Failed to list eventos for contratante %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao buscar contratante")
		return
	}
	if eventos == nil {
		eventos = []store.Evento{}
	}

	writeJSON(w, http.StatusOK, contratanteDetalhe{
		Contratante: contratante,
		Eventos:     eventos,
		Stats:       buildContratanteStats(eventos, time.Now().UTC()),
	})
}

// buildContratanteStats summarizes a contratante's history. Every evento
// counts regardless of status. UltimoEvento is the latest-dated evento
// overall; ProximoEvento is the earliest one dated today or later. Both are
// full rows, not just dates.
func buildContratanteStats(eventos []store.Evento, now time.Time) contratanteStats {
	stats := contratanteStats{TotalEventos: len(eventos)}
	today := store.NewDate(now)

	var lucroTotal int64
	for i := range eventos {
		evento := &eventos[i]

		stats.TotalReceita += evento.ValorTotalReceber
		lucroTotal += evento.ValorTotalReceber - evento.ValorTotalCustos

		data := evento.DataEvento
		if stats.UltimoEvento == nil || data.After(stats.UltimoEvento.DataEvento.Time) {
			stats.UltimoEvento = evento
		}
		if !data.Before(today.Time) {
			if stats.ProximoEvento == nil || data.Before(stats.ProximoEvento.DataEvento.Time) {
				stats.ProximoEvento = evento
			}
		}
	}

	stats.TotalLucro = lucroTotal
	if stats.TotalReceita > 0 {
		stats.MargemMedia = float64(lucroTotal) / float64(stats.TotalReceita) * 100
	}
	return stats
}
