package main

import (
	"net/http"
	"time"
)

// @Summary		Dashboard stats
// @Description	Consolidated financial snapshot for the authenticated user.
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	dashboard.Stats
// @Failure		401	{object}	response.ErrorResponse	"Missing or invalid session"
// @Failure		500	{object}	response.ErrorResponse	"Failed to compute stats"
// @Router			/api/dashboard/stats [get]
func (app *application) handleGetDashboardStats(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	stats, err := app.aggregator.Compute(r.Context(), user.ID, time.Now().UTC())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Erro ao calcular estatísticas do dashboard")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
