package store

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned whenever a row does not exist or is owned by
// another user. Callers must not be able to tell the two apart.
var ErrNotFound = errors.New("not found")

type Storage struct {
	Eventos interface {
		List(ctx context.Context, userID string) ([]EventoComContratante, error)
		GetByID(ctx context.Context, id int64, userID string) (*EventoDetalhe, error)
		Exists(ctx context.Context, id int64, userID string) error
		Insert(ctx context.Context, evento *Evento) error
		ListByContratante(ctx context.Context, contratanteID int64, userID string) ([]Evento, error)
	}

	Contratantes interface {
		List(ctx context.Context, userID string) ([]Contratante, error)
		GetByID(ctx context.Context, id int64, userID string) (*Contratante, error)
		Insert(ctx context.Context, contratante *Contratante) error
	}

	Fornecedores interface {
		List(ctx context.Context, userID string) ([]Fornecedor, error)
		GetByID(ctx context.Context, id int64, userID string) (*Fornecedor, error)
		Exists(ctx context.Context, id int64, userID string) error
		Insert(ctx context.Context, fornecedor *Fornecedor) error
	}

	Recebiveis interface {
		List(ctx context.Context, userID string) ([]RecebivelComEvento, error)
		Insert(ctx context.Context, recebivel *Recebivel) error
		UpdateStatus(ctx context.Context, id int64, userID, status string) error
	}

	Pagaveis interface {
		List(ctx context.Context, userID string) ([]PagavelComEvento, error)
		ListByFornecedor(ctx context.Context, fornecedorID int64, userID string) ([]PagavelComEvento, error)
		Insert(ctx context.Context, pagavel *Pagavel) error
		UpdateStatus(ctx context.Context, id int64, userID, status string) error
	}

	Checklists interface {
		ListTemplates(ctx context.Context, userID string) ([]TemplateComTotal, error)
		InsertTemplate(ctx context.Context, template *TemplateChecklist) error
		TemplateExists(ctx context.Context, id int64, userID string) error
		ListTarefasTemplate(ctx context.Context, templateID int64) ([]TarefaTemplate, error)
		InsertTarefaTemplate(ctx context.Context, tarefa *TarefaTemplate) error
		ListTarefasEvento(ctx context.Context, eventoID int64, userID string) ([]TarefaEvento, error)
		InsertTarefaEvento(ctx context.Context, tarefa *TarefaEvento) error
		InsertTarefasEvento(ctx context.Context, tarefas []TarefaEvento) error
		UpdateTarefaEvento(ctx context.Context, up TarefaEventoUpdate) error
	}

	Documentos interface {
		ListByEvento(ctx context.Context, eventoID int64, userID string) ([]DocumentoEvento, error)
		GetByID(ctx context.Context, id, eventoID int64, userID string) (*DocumentoEvento, error)
		Insert(ctx context.Context, doc *DocumentoEvento) error
		Delete(ctx context.Context, id, eventoID int64, userID string) error
	}

	Dashboard interface {
		SumRecebiveisPendentesBetween(ctx context.Context, userID string, start, end time.Time) (int64, error)
		OverdueRecebiveis(ctx context.Context, userID string, before time.Time) (OverdueResumo, error)
		UpcomingEventos(ctx context.Context, userID string, start, end time.Time) ([]EventoComContratante, error)
		RecebiveisPorMes(ctx context.Context, userID string, start, end time.Time) ([]PeriodoTotal, error)
		PagaveisPorMes(ctx context.Context, userID string, start, end time.Time) ([]PeriodoTotal, error)
		TotaisEventos(ctx context.Context, userID string) (TotaisEventos, error)
		SumRecebiveisPendentes(ctx context.Context, userID string) (int64, error)
		SumPagaveisPendentes(ctx context.Context, userID string) (int64, error)
		RecebiveisPorDia(ctx context.Context, userID string, start, end time.Time) ([]DiaTotal, error)
		PagaveisPorDia(ctx context.Context, userID string, start, end time.Time) ([]DiaTotal, error)
	}

	RateLimits interface {
		Take(ctx context.Context, key string, limit int, window time.Duration) (RateLimitResult, error)
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Eventos:      &EventosStore{db: db},
		Contratantes: &ContratantesStore{db: db},
		Fornecedores: &FornecedoresStore{db: db},
		Recebiveis:   &RecebiveisStore{db: db},
		Pagaveis:     &PagaveisStore{db: db},
		Checklists:   &ChecklistsStore{db: db},
		Documentos:   &DocumentosStore{db: db},
		Dashboard:    &DashboardStore{db: db},
		RateLimits:   &RateLimitsStore{db: db},
	}
}
