package store

import (
	"time"
)

// Payment status of a receivable or payable installment.
var (
	StatusPendente  = "Pendente"
	StatusPago      = "Pago"
	StatusCancelado = "Cancelado"
)

// Lifecycle status of an evento.
var (
	EventoPlanejamento = "Planejamento"
	EventoConfirmado   = "Confirmado"
	EventoConcluido    = "Concluído"
	EventoCancelado    = "Cancelado"
)

// Relative deadline direction for template tasks.
var (
	TipoPrazoAntes  = "antes"
	TipoPrazoDepois = "depois"
)

// Contratante represents the 'contratantes' table.
type Contratante struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Nome      string    `db:"nome" json:"nome"`
	Email     *string   `db:"email" json:"email"`
	Telefone  *string   `db:"telefone" json:"telefone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Fornecedor represents the 'fornecedores' table.
type Fornecedor struct {
	ID              int64     `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	NomeFornecedor  string    `db:"nome_fornecedor" json:"nome_fornecedor"`
	TipoServico     *string   `db:"tipo_servico" json:"tipo_servico"`
	EmailContato    *string   `db:"email_contato" json:"email_contato"`
	TelefoneContato *string   `db:"telefone_contato" json:"telefone_contato"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Evento represents the 'eventos' table. Monetary columns are BIGINT
// centavos, never floats.
type Evento struct {
	ID                int64     `db:"id" json:"id"`
	UserID            string    `db:"user_id" json:"user_id"`
	ContratanteID     *int64    `db:"contratante_id" json:"contratante_id"`
	NomeEvento        string    `db:"nome_evento" json:"nome_evento"`
	DataEvento        Date      `db:"data_evento" json:"data_evento"`
	ValorTotalReceber int64     `db:"valor_total_receber" json:"valor_total_receber"`
	ValorTotalCustos  int64     `db:"valor_total_custos" json:"valor_total_custos"`
	StatusEvento      string    `db:"status_evento" json:"status_evento"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// EventoComContratante is an evento row joined with the contratante name.
type EventoComContratante struct {
	Evento
	ContratanteNome *string `db:"contratante_nome" json:"contratante_nome"`
}

// EventoDetalhe additionally carries the contratante contact fields.
type EventoDetalhe struct {
	EventoComContratante
	ContratanteEmail    *string `db:"contratante_email" json:"contratante_email"`
	ContratanteTelefone *string `db:"contratante_telefone" json:"contratante_telefone"`
}

// Recebivel represents the 'vencimentos_receber' table.
type Recebivel struct {
	ID              int64     `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	EventoID        int64     `db:"evento_id" json:"evento_id"`
	Descricao       string    `db:"descricao" json:"descricao"`
	Valor           int64     `db:"valor" json:"valor"`
	DataVencimento  Date      `db:"data_vencimento" json:"data_vencimento"`
	StatusPagamento string    `db:"status_pagamento" json:"status_pagamento"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type RecebivelComEvento struct {
	Recebivel
	EventoNome string `db:"evento_nome" json:"evento_nome"`
}

// Pagavel represents the 'vencimentos_pagar' table.
type Pagavel struct {
	ID              int64     `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	EventoID        int64     `db:"evento_id" json:"evento_id"`
	FornecedorID    *int64    `db:"fornecedor_id" json:"fornecedor_id"`
	Descricao       string    `db:"descricao" json:"descricao"`
	Valor           int64     `db:"valor" json:"valor"`
	DataVencimento  Date      `db:"data_vencimento" json:"data_vencimento"`
	StatusPagamento string    `db:"status_pagamento" json:"status_pagamento"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type PagavelComEvento struct {
	Pagavel
	EventoNome     string  `db:"evento_nome" json:"evento_nome"`
	FornecedorNome *string `db:"fornecedor_nome" json:"fornecedor_nome"`
}

// TemplateChecklist represents the 'templates_checklist' table.
type TemplateChecklist struct {
	ID           int64     `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	NomeTemplate string    `db:"nome_template" json:"nome_template"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type TemplateComTotal struct {
	TemplateChecklist
	TotalTarefas int `db:"total_tarefas" json:"total_tarefas"`
}

// TarefaTemplate represents the 'tarefas_template' table. PrazoRelativoDias
// is a non-negative whole-day offset relative to the event date.
type TarefaTemplate struct {
	ID                int64     `db:"id" json:"id"`
	TemplateID        int64     `db:"template_id" json:"template_id"`
	DescricaoTarefa   string    `db:"descricao_tarefa" json:"descricao_tarefa"`
	PrazoRelativoDias int       `db:"prazo_relativo_dias" json:"prazo_relativo_dias"`
	TipoPrazo         string    `db:"tipo_prazo" json:"tipo_prazo"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// TarefaEvento represents the 'tarefas_evento' table.
type TarefaEvento struct {
	ID              int64     `db:"id" json:"id"`
	EventoID        int64     `db:"evento_id" json:"evento_id"`
	UserID          string    `db:"user_id" json:"user_id"`
	DescricaoTarefa string    `db:"descricao_tarefa" json:"descricao_tarefa"`
	DataVencimento  Date      `db:"data_vencimento" json:"data_vencimento"`
	IsConcluida     bool      `db:"is_concluida" json:"is_concluida"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// DocumentoEvento represents the 'documentos_evento' table. StorageKey points
// at the blob in the object store; it is never exposed in list responses.
type DocumentoEvento struct {
	ID            int64     `db:"id" json:"id"`
	EventoID      int64     `db:"evento_id" json:"evento_id"`
	UserID        string    `db:"user_id" json:"user_id"`
	NomeArquivo   string    `db:"nome_arquivo" json:"nome_arquivo"`
	TipoDocumento string    `db:"tipo_documento" json:"tipo_documento"`
	MimeType      string    `db:"mime_type" json:"mime_type"`
	Tamanho       int64     `db:"tamanho" json:"tamanho"`
	StorageKey    string    `db:"storage_key" json:"-"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// PeriodoTotal is one YYYY-MM bucket of summed centavos.
type PeriodoTotal struct {
	Periodo string `db:"periodo"`
	Total   int64  `db:"total"`
}

// DiaTotal is one due-date bucket of summed centavos.
type DiaTotal struct {
	Data  Date  `db:"data_vencimento"`
	Total int64 `db:"total"`
}

// OverdueResumo is the count and sum of overdue pending receivables.
type OverdueResumo struct {
	Count int64 `db:"count"`
	Total int64 `db:"total"`
}

// TotaisEventos carries the lifetime planned revenue and cost sums.
type TotaisEventos struct {
	ReceitaTotal int64 `db:"receita_total"`
	CustoTotal   int64 `db:"custo_total"`
}
