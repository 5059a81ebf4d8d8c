package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/festeja/eventos-api/internal/logger"
	"github.com/festeja/eventos-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboard struct {
	receivablesMonth int64
	overdue          store.OverdueResumo
	upcoming         []store.EventoComContratante
	receitaMes       []store.PeriodoTotal
	despesaMes       []store.PeriodoTotal
	totais           store.TotaisEventos
	pendReceber      int64
	pendPagar        int64
	fluxoReceitas    []store.DiaTotal
	fluxoDespesas    []store.DiaTotal

	// errOn makes the named query fail; every other query succeeds.
	errOn string
	err   error
}

func (f *fakeDashboard) fail(name string) error {
	if f.errOn == name {
		return f.err
	}
	return nil
}

func (f *fakeDashboard) SumRecebiveisPendentesBetween(ctx context.Context, userID string, start, end time.Time) (int64, error) {
	return f.receivablesMonth, f.fail("receivablesMonth")
}

func (f *fakeDashboard) OverdueRecebiveis(ctx context.Context, userID string, before time.Time) (store.OverdueResumo, error) {
	return f.overdue, f.fail("overdue")
}

func (f *fakeDashboard) UpcomingEventos(ctx context.Context, userID string, start, end time.Time) ([]store.EventoComContratante, error) {
	return f.upcoming, f.fail("upcoming")
}

func (f *fakeDashboard) RecebiveisPorMes(ctx context.Context, userID string, start, end time.Time) ([]store.PeriodoTotal, error) {
	return f.receitaMes, f.fail("receitaMes")
}

func (f *fakeDashboard) PagaveisPorMes(ctx context.Context, userID string, start, end time.Time) ([]store.PeriodoTotal, error) {
	return f.despesaMes, f.fail("despesaMes")
}

func (f *fakeDashboard) TotaisEventos(ctx context.Context, userID string) (store.TotaisEventos, error) {
	return f.totais, f.fail("totais")
}

func (f *fakeDashboard) SumRecebiveisPendentes(ctx context.Context, userID string) (int64, error) {
	return f.pendReceber, f.fail("pendReceber")
}

func (f *fakeDashboard) SumPagaveisPendentes(ctx context.Context, userID string) (int64, error) {
	return f.pendPagar, f.fail("pendPagar")
}

func (f *fakeDashboard) RecebiveisPorDia(ctx context.Context, userID string, start, end time.Time) ([]store.DiaTotal, error) {
	return f.fluxoReceitas, f.fail("fluxoReceitas")
}

func (f *fakeDashboard) PagaveisPorDia(ctx context.Context, userID string, start, end time.Time) ([]store.DiaTotal, error) {
	return f.fluxoDespesas, f.fail("fluxoDespesas")
}

func newTestAggregator(fake *fakeDashboard) *Aggregator {
	storage := &store.Storage{Dashboard: fake}
	return NewAggregator(storage, &logger.Logger{MinLevel: logger.LevelError})
}

func mustDate(t *testing.T, s string) store.Date {
	t.Helper()
	d, err := store.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestComputeZeroData(t *testing.T) {
	aggregator := newTestAggregator(&fakeDashboard{})
	now := time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)

	stats, err := aggregator.Compute(context.Background(), "user-1", now)
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.ReceivablesMonth)
	assert.Equal(t, int64(0), stats.OverduePayments.Count)
	assert.Equal(t, int64(0), stats.OverduePayments.Total)
	assert.Equal(t, int64(0), stats.CashPosition)

	assert.NotNil(t, stats.UpcomingEvents)
	assert.Empty(t, stats.UpcomingEvents)
	assert.Empty(t, stats.CashflowProjection)

	require.Len(t, stats.FinancialSeries, 6)
	for _, point := range stats.FinancialSeries {
		assert.Equal(t, int64(0), point.Receita)
		assert.Equal(t, int64(0), point.Despesa)
		assert.Equal(t, float64(0), point.Margem)
	}

	assert.Equal(t, float64(0), stats.MarginAnalysis.MargemPercentual)
}

func TestComputeFinancialSeriesBuckets(t *testing.T) {
	fake := &fakeDashboard{
		receitaMes: []store.PeriodoTotal{
			{Periodo: "2026-04", Total: 1_000_00},
			{Periodo: "2026-06", Total: 2_000_00},
		},
		despesaMes: []store.PeriodoTotal{
			{Periodo: "2026-04", Total: 250_00},
		},
	}
	aggregator := newTestAggregator(fake)
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	stats, err := aggregator.Compute(context.Background(), "user-1", now)
	require.NoError(t, err)

	require.Len(t, stats.FinancialSeries, 6)

	labels := make([]string, 0, 6)
	for _, point := range stats.FinancialSeries {
		labels = append(labels, point.Period)
	}
	assert.Equal(t, []string{"jan 2026", "fev 2026", "mar 2026", "abr 2026", "mai 2026", "jun 2026"}, labels)

	abril := stats.FinancialSeries[3]
	assert.Equal(t, int64(1_000_00), abril.Receita)
	assert.Equal(t, int64(250_00), abril.Despesa)
	assert.Equal(t, int64(750_00), abril.Lucro)
	assert.InDelta(t, 75.0, abril.Margem, 0.001)

	junho := stats.FinancialSeries[5]
	assert.Equal(t, int64(2_000_00), junho.Receita)
	assert.Equal(t, int64(0), junho.Despesa)
	assert.InDelta(t, 100.0, junho.Margem, 0.001)

	// Months with no rows stay zero, margem included.
	maio := stats.FinancialSeries[4]
	assert.Equal(t, int64(0), maio.Receita)
	assert.Equal(t, float64(0), maio.Margem)
}

func TestComputeMarginAnalysis(t *testing.T) {
	fake := &fakeDashboard{
		totais: store.TotaisEventos{ReceitaTotal: 10_000_00, CustoTotal: 6_000_00},
	}
	aggregator := newTestAggregator(fake)

	stats, err := aggregator.Compute(context.Background(), "user-1", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, int64(10_000_00), stats.MarginAnalysis.ReceitaTotal)
	assert.Equal(t, int64(6_000_00), stats.MarginAnalysis.CustoTotal)
	assert.Equal(t, int64(4_000_00), stats.MarginAnalysis.LucroTotal)
	assert.InDelta(t, 40.0, stats.MarginAnalysis.MargemPercentual, 0.001)
}

func TestComputeCashPosition(t *testing.T) {
	fake := &fakeDashboard{
		pendReceber: 5_000_00,
		pendPagar:   7_500_00,
	}
	aggregator := newTestAggregator(fake)

	stats, err := aggregator.Compute(context.Background(), "user-1", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, int64(-2_500_00), stats.CashPosition)
}

func TestComputeCashflowProjection(t *testing.T) {
	fake := &fakeDashboard{
		fluxoReceitas: []store.DiaTotal{
			{Data: mustDate(t, "2026-06-20"), Total: 300_00},
			{Data: mustDate(t, "2026-06-10"), Total: 100_00},
		},
		fluxoDespesas: []store.DiaTotal{
			{Data: mustDate(t, "2026-06-10"), Total: 50_00},
			{Data: mustDate(t, "2026-06-15"), Total: 80_00},
		},
	}
	aggregator := newTestAggregator(fake)

	stats, err := aggregator.Compute(context.Background(), "user-1", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, stats.CashflowProjection, 3)

	assert.Equal(t, CashflowPoint{Date: "2026-06-10", Receita: 100_00, Despesa: 50_00}, stats.CashflowProjection[0])
	assert.Equal(t, CashflowPoint{Date: "2026-06-15", Receita: 0, Despesa: 80_00}, stats.CashflowProjection[1])
	assert.Equal(t, CashflowPoint{Date: "2026-06-20", Receita: 300_00, Despesa: 0}, stats.CashflowProjection[2])
}

func TestComputeQueryFailure(t *testing.T) {
	queryErr := errors.New("connection refused")
	fake := &fakeDashboard{errOn: "despesaMes", err: queryErr}
	aggregator := newTestAggregator(fake)

	stats, err := aggregator.Compute(context.Background(), "user-1", time.Now().UTC())

	assert.ErrorIs(t, err, queryErr)
	assert.Nil(t, stats)
}

func TestComputeNegativeMarginIsReported(t *testing.T) {
	fake := &fakeDashboard{
		receitaMes: []store.PeriodoTotal{{Periodo: "2026-06", Total: 100_00}},
		despesaMes: []store.PeriodoTotal{{Periodo: "2026-06", Total: 150_00}},
	}
	aggregator := newTestAggregator(fake)

	stats, err := aggregator.Compute(context.Background(), "user-1", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	junho := stats.FinancialSeries[5]
	assert.Equal(t, int64(-50_00), junho.Lucro)
	assert.InDelta(t, -50.0, junho.Margem, 0.001)
}
