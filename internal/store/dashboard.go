package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

/*
This store runs the read battery behind the dashboard snapshot. Every method
is a single parameterized SELECT scoped by user_id; the windowing and the
final assembly live in internal/dashboard, which issues these reads
concurrently.
*/
type DashboardStore struct {
	db *sqlx.DB
}

func (ds *DashboardStore) SumRecebiveisPendentesBetween(ctx context.Context, userID string, start, end time.Time) (int64, error) {
	query := `
	SELECT
		COALESCE(SUM(valor), 0) AS total
	FROM
		vencimentos_receber
	WHERE
		user_id = $1
		AND status_pagamento = 'Pendente'
		AND data_vencimento BETWEEN $2 AND $3;
	`

	var total int64
	if err := ds.db.GetContext(ctx, &total, query, userID, start, end); err != nil {
		return 0, fmt.Errorf("failed to query recebiveis do mes: %w", err)
	}
	return total, nil
}

func (ds *DashboardStore) OverdueRecebiveis(ctx context.Context, userID string, before time.Time) (OverdueResumo, error) {
	query := `
	SELECT
		COUNT(*) AS count,
		COALESCE(SUM(valor), 0) AS total
	FROM
		vencimentos_receber
	WHERE
		user_id = $1
		AND status_pagamento = 'Pendente'
		AND data_vencimento < $2;
	`

	var resumo OverdueResumo
	if err := ds.db.GetContext(ctx, &resumo, query, userID, before); err != nil {
		return OverdueResumo{}, fmt.Errorf("failed to query pagamentos atrasados: %w", err)
	}
	return resumo, nil
}

func (ds *DashboardStore) UpcomingEventos(ctx context.Context, userID string, start, end time.Time) ([]EventoComContratante, error) {
	query := `
	SELECT
		e.id, e.user_id, e.contratante_id, e.nome_evento, e.data_evento,
		e.valor_total_receber, e.valor_total_custos, e.status_evento,
		e.created_at, e.updated_at,
		c.nome AS contratante_nome
	FROM
		eventos e
	LEFT JOIN
		contratantes c ON e.contratante_id = c.id
	WHERE
		e.user_id = $1 AND e.data_evento BETWEEN $2 AND $3
	ORDER BY
		e.data_evento ASC;
	`

	eventos := []EventoComContratante{}
	if err := ds.db.SelectContext(ctx, &eventos, query, userID, start, end); err != nil {
		return nil, fmt.Errorf("failed to query proximos eventos: %w", err)
	}
	return eventos, nil
}

func (ds *DashboardStore) RecebiveisPorMes(ctx context.Context, userID string, start, end time.Time) ([]PeriodoTotal, error) {
	return ds.totalsPorMes(ctx, "vencimentos_receber", userID, start, end)
}

func (ds *DashboardStore) PagaveisPorMes(ctx context.Context, userID string, start, end time.Time) ([]PeriodoTotal, error) {
	return ds.totalsPorMes(ctx, "vencimentos_pagar", userID, start, end)
}

func (ds *DashboardStore) totalsPorMes(ctx context.Context, table, userID string, start, end time.Time) ([]PeriodoTotal, error) {
	query := fmt.Sprintf(`
	SELECT
		TO_CHAR(data_vencimento, 'YYYY-MM') AS periodo,
		COALESCE(SUM(valor), 0) AS total
	FROM
		%s
	WHERE
		user_id = $1
		AND data_vencimento BETWEEN $2 AND $3
		AND status_pagamento != 'Cancelado'
	GROUP BY
		periodo
	ORDER BY
		periodo ASC;
	`, table)

	totals := []PeriodoTotal{}
	if err := ds.db.SelectContext(ctx, &totals, query, userID, start, end); err != nil {
		return nil, fmt.Errorf("failed to query serie mensal de %s: %w", table, err)
	}
	return totals, nil
}

func (ds *DashboardStore) TotaisEventos(ctx context.Context, userID string) (TotaisEventos, error) {
	query := `
	SELECT
		COALESCE(SUM(valor_total_receber), 0) AS receita_total,
		COALESCE(SUM(valor_total_custos), 0) AS custo_total
	FROM
		eventos
	WHERE
		user_id = $1;
	`

	var totais TotaisEventos
	if err := ds.db.GetContext(ctx, &totais, query, userID); err != nil {
		return TotaisEventos{}, fmt.Errorf("failed to query margem bruta: %w", err)
	}
	return totais, nil
}

func (ds *DashboardStore) SumRecebiveisPendentes(ctx context.Context, userID string) (int64, error) {
	return ds.sumPendentes(ctx, "vencimentos_receber", userID)
}

func (ds *DashboardStore) SumPagaveisPendentes(ctx context.Context, userID string) (int64, error) {
	return ds.sumPendentes(ctx, "vencimentos_pagar", userID)
}

func (ds *DashboardStore) sumPendentes(ctx context.Context, table, userID string) (int64, error) {
	query := fmt.Sprintf(`
	SELECT
		COALESCE(SUM(valor), 0) AS total
	FROM
		%s
	WHERE
		user_id = $1 AND status_pagamento = 'Pendente';
	`, table)

	var total int64
	if err := ds.db.GetContext(ctx, &total, query, userID); err != nil {
		return 0, fmt.Errorf("failed to query pendentes de %s: %w", table, err)
	}
	return total, nil
}

func (ds *DashboardStore) RecebiveisPorDia(ctx context.Context, userID string, start, end time.Time) ([]DiaTotal, error) {
	return ds.totalsPorDia(ctx, "vencimentos_receber", userID, start, end)
}

func (ds *DashboardStore) PagaveisPorDia(ctx context.Context, userID string, start, end time.Time) ([]DiaTotal, error) {
	return ds.totalsPorDia(ctx, "vencimentos_pagar", userID, start, end)
}

func (ds *DashboardStore) totalsPorDia(ctx context.Context, table, userID string, start, end time.Time) ([]DiaTotal, error) {
	query := fmt.Sprintf(`
	SELECT
		data_vencimento,
		COALESCE(SUM(valor), 0) AS total
	FROM
		%s
	WHERE
		user_id = $1
		AND data_vencimento BETWEEN $2 AND $3
		AND status_pagamento != 'Cancelado'
	GROUP BY
		data_vencimento
	ORDER BY
		data_vencimento ASC;
	`, table)

	totals := []DiaTotal{}
	if err := ds.db.SelectContext(ctx, &totals, query, userID, start, end); err != nil {
		return nil, fmt.Errorf("failed to query fluxo diario de %s: %w", table, err)
	}
	return totals, nil
}
