package main

import (
	"errors"
	"net/http"

	"github.com/festeja/eventos-api/internal/checklist"
	"github.com/festeja/eventos-api/internal/store"
)

type createTemplatePayload struct {
	NomeTemplate string `json:"nome_template"`
}

type createTarefaTemplatePayload struct {
	DescricaoTarefa   string `json:"descricao_tarefa"`
	PrazoRelativoDias int    `json:"prazo_relativo_dias"`
	TipoPrazo         string `json:"tipo_prazo"`
}

type applyTemplatePayload struct {
	EventoID int64 `json:"evento_id"`
}

type applyTemplateResponse struct {
	Success        bool `json:"success"`
	TarefasGeradas int  `json:"tarefas_geradas"`
}

func (app *application) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	templates, err := app.store.Checklists.ListTemplates(r.Context(), user.ID)
	if err != nil {
		app.appLogger.Error("Checklists", "Failed to list templates: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao listar templates")
		return
	}

	writeJSON(w, http.StatusOK, templates)
}

func (app *application) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	var payload createTemplatePayload
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	payload.NomeTemplate = sanitizeString(payload.NomeTemplate)
	if payload.NomeTemplate == "" {
		writeJSONError(w, http.StatusBadRequest, "Nome do template é obrigatório")
		return
	}

	template := &store.TemplateChecklist{
		UserID:       user.ID,
		NomeTemplate: payload.NomeTemplate,
	}

	if err := app.store.Checklists.InsertTemplate(r.Context(), template); err != nil {
		app.appLogger.Error("Checklists", "Failed to insert template: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao criar template")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": template.ID})
}

func (app *application) handleListTarefasTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	templateID, err := parseIDParam(r, "templateID")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	if err := app.store.Checklists.TemplateExists(r.Context(), templateID, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Template não encontrado")
			return
		}
		app.appLogger.Error("Checklists", "Failed to check template %d: %v", templateID, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao listar tarefas")
		return
	}

	tarefas, err := app.store.Checklists.ListTarefasTemplate(r.Context(), templateID)
	if err != nil {
		app.appLogger.Error("Checklists", "Failed to list tarefas for template %d: %v", templateID, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao listar tarefas")
		return
	}

	writeJSON(w, http.StatusOK, tarefas)
}

func (app *application) handleCreateTarefaTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	templateID, err := parseIDParam(r, "templateID")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	if err := app.store.Checklists.TemplateExists(r.Context(), templateID, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Template não encontrado")
			return
		}
		app.appLogger.Error("Checklists", "Failed to check template %d: %v", templateID, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao criar tarefa")
		return
	}

	var payload createTarefaTemplatePayload
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	payload.DescricaoTarefa = sanitizeString(payload.DescricaoTarefa)
	if payload.DescricaoTarefa == "" {
		writeJSONError(w, http.StatusBadRequest, "Descrição da tarefa é obrigatória")
		return
	}
	if payload.PrazoRelativoDias < 0 {
		writeJSONError(w, http.StatusBadRequest, "Prazo relativo não pode ser negativo")
		return
	}
	if payload.TipoPrazo != store.TipoPrazoAntes && payload.TipoPrazo != store.TipoPrazoDepois {
		writeJSONError(w, http.StatusBadRequest, "Tipo de prazo deve ser 'antes' ou 'depois'")
		return
	}

	tarefa := &store.TarefaTemplate{
		TemplateID:        templateID,
		DescricaoTarefa:   payload.DescricaoTarefa,
		PrazoRelativoDias: payload.PrazoRelativoDias,
		TipoPrazo:         payload.TipoPrazo,
	}

	if err := app.store.Checklists.InsertTarefaTemplate(r.Context(), tarefa); err != nil {
		app.appLogger.Error("Checklists", "Failed to insert tarefa template: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao criar tarefa")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": tarefa.ID})
}

// @Summary		Apply checklist template
// @Description	Generates the template's tasks for one evento, dated relative to the evento.
// @Tags			Checklists
// @Accept			json
// @Produce		json
// @Param			aplicacao	body		object{evento_id:int64}	true	"Target evento"
// @Success		200			{object}	applyTemplateResponse	"Tasks generated"
// @Failure		400			{object}	response.ErrorResponse	"Empty template or missing evento_id"
// @Failure		404			{object}	response.ErrorResponse	"Template or evento not found"
// @Router			/api/checklists/templates/{templateID}/aplicar [post]
func (app *application) handleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	templateID, err := parseIDParam(r, "templateID")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	var payload applyTemplatePayload
	if err := readJSON(w, r, &payload); err != nil || payload.EventoID <= 0 {
		writeJSONError(w, http.StatusBadRequest, "Evento é obrigatório")
		return
	}

	geradas, err := app.engine.ApplyTemplate(r.Context(), user.ID, templateID, payload.EventoID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeJSONError(w, http.StatusNotFound, "Template ou evento não encontrado")
		case errors.Is(err, checklist.ErrEmptyTemplate):
			writeJSONError(w, http.StatusBadRequest, "Template não possui tarefas")
		default:
			writeJSONError(w, http.StatusInternalServerError, "Erro ao aplicar template")
		}
		return
	}

	writeJSON(w, http.StatusOK, applyTemplateResponse{
		Success:        true,
		TarefasGeradas: geradas,
	})
}
