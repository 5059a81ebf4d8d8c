package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"

	"github.com/festeja/eventos-api/internal/response"
	"github.com/festeja/eventos-api/internal/store"
	"github.com/google/uuid"
)

const maxDocumentoSize = 5 << 20 // 5MB

var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/png":  true,
	"image/jpeg": true,
}

var fileNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func (app *application) handleListDocumentos(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	eventoID, err := parseIDParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	documentos, err := app.store.Documentos.ListByEvento(r.Context(), eventoID, user.ID)
	if err != nil {
		app.appLogger.Error("Documentos", "Failed to list documentos for evento %d: %v", eventoID, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao listar documentos")
		return
	}

	writeJSON(w, http.StatusOK, documentos)
}

func (app *application) handleUploadDocumento(w http.ResponseWriter, r *http.Request) {
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
		app.appLogger.Error("Documentos", "Failed to check evento %d: %v", eventoID, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao enviar documento")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentoSize+4096)
	if err := r.ParseMultipartForm(maxDocumentoSize); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Arquivo excede o limite de 5MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Arquivo é obrigatório")
		return
	}
	defer file.Close()

	if header.Size > maxDocumentoSize {
		writeJSONError(w, http.StatusBadRequest, "Arquivo excede o limite de 5MB")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if !allowedMimeTypes[mimeType] {
		writeJSONError(w, http.StatusBadRequest, "Tipo de arquivo não permitido")
		return
	}

	tipoDocumento := sanitizeString(r.FormValue("tipo_documento"))
	if tipoDocumento == "" {
		tipoDocumento = "outro"
	}

	nomeArquivo := sanitizeString(header.Filename)
	if nomeArquivo == "" {
		writeJSONError(w, http.StatusBadRequest, "Nome do arquivo é obrigatório")
		return
	}

	safeName := fileNameSanitizer.ReplaceAllString(nomeArquivo, "_")
	storageKey := fmt.Sprintf("users/%s/eventos/%d/%s_%s", user.ID, eventoID, uuid.NewString(), safeName)

	if err := app.blob.Put(r.Context(), storageKey, file, mimeType, header.Size); err != nil {
		app.appLogger.Error("Documentos", "Failed to upload blob %s: %v", storageKey, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao enviar documento")
		return
	}

	doc := &store.DocumentoEvento{
		EventoID:      eventoID,
		UserID:        user.ID,
		NomeArquivo:   nomeArquivo,
		TipoDocumento: tipoDocumento,
		MimeType:      mimeType,
		Tamanho:       header.Size,
		StorageKey:    storageKey,
	}

	if err := app.store.Documentos.Insert(r.Context(), doc); err != nil {
		app.appLogger.Error("Documentos", "Failed to insert documento: %v", err)
		// The metadata row failed, so the blob is orphaned; remove it.
		if delErr := app.blob.Delete(r.Context(), storageKey); delErr != nil {
			app.appLogger.Warn("Documentos", "Failed to clean up blob %s: %v", storageKey, delErr)
		}
		writeJSONError(w, http.StatusInternalServerError, "Erro ao enviar documento")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": doc.ID})
}

func (app *application) handleDownloadDocumento(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	eventoID, err := parseIDParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	docID, err := parseIDParam(r, "docID")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	doc, err := app.store.Documentos.GetByID(r.Context(), docID, eventoID, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Documento não encontrado")
			return
		}
		app.appLogger.Error("Documentos", "Failed to fetch documento %d: %v", docID, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao baixar documento")
		return
	}

	obj, err := app.blob.Get(r.Context(), doc.StorageKey)
	if err != nil {
		app.appLogger.Error("Documentos", "Failed to fetch blob %s: %v", doc.StorageKey, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao baixar documento")
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", doc.MimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.NomeArquivo+`"`)
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}

	if _, err := io.Copy(w, obj.Body); err != nil {
		app.appLogger.Warn("Documentos", "Download interrupted for %s: %v", doc.StorageKey, err)
	}
}

func (app *application) handleDeleteDocumento(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	eventoID, err := parseIDParam(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	docID, err := parseIDParam(r, "docID")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	doc, err := app.store.Documentos.GetByID(r.Context(), docID, eventoID, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Documento não encontrado")
			return
		}
		app.appLogger.Error("Documentos", "Failed to fetch documento %d: %v", docID, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao excluir documento")
		return
	}

	if err := app.store.Documentos.Delete(r.Context(), docID, eventoID, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Documento não encontrado")
			return
		}
		app.appLogger.Error("Documentos", "Failed to delete documento %d: %v", docID, err)
		writeJSONError(w, http.StatusInternalServerError, "Erro ao excluir documento")
		return
	}

	// The row is gone; an orphaned blob only wastes space, so a failed blob
	// delete is logged and not surfaced.
	if err := app.blob.Delete(r.Context(), doc.StorageKey); err != nil {
		app.appLogger.Warn("Documentos", "Failed to delete blob %s: %v", doc.StorageKey, err)
	}

	writeJSON(w, http.StatusOK, response.APIResponse[any]{Success: true})
}
