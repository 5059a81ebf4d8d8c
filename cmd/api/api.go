package main

import (
	"net/http"
	"time"

	"github.com/festeja/eventos-api/internal/auth"
	"github.com/festeja/eventos-api/internal/blob"
	"github.com/festeja/eventos-api/internal/checklist"
	"github.com/festeja/eventos-api/internal/dashboard"
	"github.com/festeja/eventos-api/internal/logger"
	"github.com/festeja/eventos-api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type application struct {
	config     config
	store      *store.Storage
	blob       blob.Storage
	authClient *auth.Client
	aggregator *dashboard.Aggregator
	engine     *checklist.Engine
	appLogger  *logger.Logger
}

type config struct {
	addr string
	db   dbConfig
	auth authConfig
	blob blobConfig
	rate rateConfig
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

type authConfig struct {
	baseURL string
	apiKey  string
}

type blobConfig struct {
	bucket          string
	region          string
	endpoint        string
	accessKeyID     string
	secretAccessKey string
}

type rateConfig struct {
	limit  int
	window time.Duration
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(auth.Middleware(app.authClient))
	r.Use(app.rateLimit)

	r.Get("/health", app.healthCheckHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/oauth/google/redirect_url", app.handleOAuthRedirectURL)
		r.Post("/sessions", app.handleCreateSession)
		r.Get("/users/me", app.handleCurrentUser)
		r.Get("/logout", app.handleLogout)

		r.Get("/dashboard/stats", app.handleGetDashboardStats)

		r.Route("/eventos", func(r chi.Router) {
			r.Get("/", app.handleListEventos)
			r.Post("/", app.handleCreateEvento)
			r.Get("/{id}", app.handleGetEvento)

			r.Route("/{id}/tarefas", func(r chi.Router) {
				r.Get("/", app.handleListTarefasEvento)
				r.Post("/", app.handleCreateTarefaEvento)
				r.Patch("/{tarefaID}", app.handleUpdateTarefaEvento)
			})

			r.Route("/{id}/documentos", func(r chi.Router) {
				r.Get("/", app.handleListDocumentos)
				r.Post("/", app.handleUploadDocumento)
				r.Get("/{docID}/download", app.handleDownloadDocumento)
				r.Delete("/{docID}", app.handleDeleteDocumento)
			})
		})

		r.Route("/contratantes", func(r chi.Router) {
			r.Get("/", app.handleListContratantes)
			r.Post("/", app.handleCreateContratante)
			r.Get("/{id}", app.handleGetContratante)
		})

		r.Route("/fornecedores", func(r chi.Router) {
			r.Get("/", app.handleListFornecedores)
			r.Post("/", app.handleCreateFornecedor)
			r.Get("/{id}", app.handleGetFornecedor)
		})

		r.Route("/recebiveis", func(r chi.Router) {
			r.Get("/", app.handleListRecebiveis)
			r.Post("/", app.handleCreateRecebivel)
			r.Patch("/{id}", app.handleUpdateRecebivelStatus)
		})

		r.Route("/pagaveis", func(r chi.Router) {
			r.Get("/", app.handleListPagaveis)
			r.Post("/", app.handleCreatePagavel)
			r.Patch("/{id}", app.handleUpdatePagavelStatus)
		})

		r.Route("/checklists/templates", func(r chi.Router) {
			r.Get("/", app.handleListTemplates)
			r.Post("/", app.handleCreateTemplate)
			r.Get("/{templateID}/tarefas", app.handleListTarefasTemplate)
			r.Post("/{templateID}/tarefas", app.handleCreateTarefaTemplate)
			r.Post("/{templateID}/aplicar", app.handleApplyTemplate)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.appLogger.Info("Server", "Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
