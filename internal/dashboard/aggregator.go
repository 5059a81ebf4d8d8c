package dashboard

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/festeja/eventos-api/internal/logger"
	"github.com/festeja/eventos-api/internal/store"
)

// Stats is the consolidated financial snapshot for one user. Monetary values
// are centavos; percentages are plain floats, guarded so a zero denominator
// yields 0 and never NaN.
type Stats struct {
	ReceivablesMonth   int64                        `json:"receivablesMonth"`
	OverduePayments    Overdue                      `json:"overduePayments"`
	UpcomingEvents     []store.EventoComContratante `json:"upcomingEvents"`
	FinancialSeries    []SeriesPoint                `json:"financialSeries"`
	MarginAnalysis     Margin                       `json:"marginAnalysis"`
	CashPosition       int64                        `json:"cashPosition"`
	CashflowProjection []CashflowPoint              `json:"cashflowProjection"`
}

type Overdue struct {
	Count int64 `json:"count"`
	Total int64 `json:"total"`
}

type SeriesPoint struct {
	Period  string  `json:"period"`
	Receita int64   `json:"receita"`
	Despesa int64   `json:"despesa"`
	Lucro   int64   `json:"lucro"`
	Margem  float64 `json:"margem"`
}

type Margin struct {
	ReceitaTotal     int64   `json:"receitaTotal"`
	CustoTotal       int64   `json:"custoTotal"`
	LucroTotal       int64   `json:"lucroTotal"`
	MargemPercentual float64 `json:"margemPercentual"`
}

type CashflowPoint struct {
	Date    string `json:"date"`
	Receita int64  `json:"receita"`
	Despesa int64  `json:"despesa"`
}

var mesesAbrev = [12]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

/*
Aggregator produces the dashboard snapshot. The ten underlying reads are
independent, so they are issued concurrently and joined before the assembly
step, which is pure in-memory shaping of already-fetched rows. Read skew
across the fan-out is accepted; no snapshot isolation is required.
*/
type Aggregator struct {
	storage   *store.Storage
	appLogger *logger.Logger
}

func NewAggregator(storage *store.Storage, appLogger *logger.Logger) *Aggregator {
	return &Aggregator{
		storage:   storage,
		appLogger: appLogger,
	}
}

// Compute builds the snapshot for userID anchored at now. now is injected so
// the windows are deterministic under test.
func (a *Aggregator) Compute(ctx context.Context, userID string, now time.Time) (*Stats, error) {
	const component = "DashboardAggregator"

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	endOfMonth := startOfMonth.AddDate(0, 1, -1)
	thirtyDaysFromNow := today.AddDate(0, 0, 30)
	ninetyDaysFromNow := today.AddDate(0, 0, 90)
	sixMonthsAgo := startOfMonth.AddDate(0, -5, 0)

	var (
		receivablesMonth int64
		overdue          store.OverdueResumo
		upcoming         []store.EventoComContratante
		receitaSerie     []store.PeriodoTotal
		despesaSerie     []store.PeriodoTotal
		totaisEventos    store.TotaisEventos
		pendReceber      int64
		pendPagar        int64
		fluxoReceitas    []store.DiaTotal
		fluxoDespesas    []store.DiaTotal
	)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	run := func(query func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := query(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}()
	}

	run(func() (err error) {
		receivablesMonth, err = a.storage.Dashboard.SumRecebiveisPendentesBetween(ctx, userID, startOfMonth, endOfMonth)
		return err
	})
	run(func() (err error) {
		overdue, err = a.storage.Dashboard.OverdueRecebiveis(ctx, userID, today)
		return err
	})
	run(func() (err error) {
		upcoming, err = a.storage.Dashboard.UpcomingEventos(ctx, userID, today, thirtyDaysFromNow)
		return err
	})
	run(func() (err error) {
		receitaSerie, err = a.storage.Dashboard.RecebiveisPorMes(ctx, userID, sixMonthsAgo, endOfMonth)
		return err
	})
	run(func() (err error) {
		despesaSerie, err = a.storage.Dashboard.PagaveisPorMes(ctx, userID, sixMonthsAgo, endOfMonth)
		return err
	})
	run(func() (err error) {
		totaisEventos, err = a.storage.Dashboard.TotaisEventos(ctx, userID)
		return err
	})
	run(func() (err error) {
		pendReceber, err = a.storage.Dashboard.SumRecebiveisPendentes(ctx, userID)
		return err
	})
	run(func() (err error) {
		pendPagar, err = a.storage.Dashboard.SumPagaveisPendentes(ctx, userID)
		return err
	})
	run(func() (err error) {
		fluxoReceitas, err = a.storage.Dashboard.RecebiveisPorDia(ctx, userID, today, ninetyDaysFromNow)
		return err
	})
	run(func() (err error) {
		fluxoDespesas, err = a.storage.Dashboard.PagaveisPorDia(ctx, userID, today, ninetyDaysFromNow)
		return err
	})

	wg.Wait()
	if firstErr != nil {
		a.appLogger.Error(component, "Dashboard query failed: user=%s err=%v", userID, firstErr)
		return nil, firstErr
	}

	stats := &Stats{
		ReceivablesMonth: receivablesMonth,
		OverduePayments: Overdue{
			Count: overdue.Count,
			Total: overdue.Total,
		},
		UpcomingEvents:     upcoming,
		FinancialSeries:    buildFinancialSeries(now, receitaSerie, despesaSerie),
		MarginAnalysis:     buildMargin(totaisEventos),
		CashPosition:       pendReceber - pendPagar,
		CashflowProjection: buildCashflow(fluxoReceitas, fluxoDespesas),
	}

	if stats.UpcomingEvents == nil {
		stats.UpcomingEvents = []store.EventoComContratante{}
	}
	return stats, nil
}

// buildFinancialSeries always emits exactly six contiguous calendar-month
// buckets, oldest first, zero-filled where no rows matched.
func buildFinancialSeries(now time.Time, receitaSerie, despesaSerie []store.PeriodoTotal) []SeriesPoint {
	receitaPorMes := make(map[string]int64, len(receitaSerie))
	for _, p := range receitaSerie {
		receitaPorMes[p.Periodo] = p.Total
	}
	despesaPorMes := make(map[string]int64, len(despesaSerie))
	for _, p := range despesaSerie {
		despesaPorMes[p.Periodo] = p.Total
	}

	series := make([]SeriesPoint, 0, 6)
	for i := 5; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		key := month.Format("2006-01")

		receita := receitaPorMes[key]
		despesa := despesaPorMes[key]
		lucro := receita - despesa

		var margem float64
		if receita > 0 {
			margem = float64(lucro) / float64(receita) * 100
		}

		series = append(series, SeriesPoint{
			Period:  mesesAbrev[month.Month()-1] + " " + month.Format("2006"),
			Receita: receita,
			Despesa: despesa,
			Lucro:   lucro,
			Margem:  margem,
		})
	}
	return series
}

func buildMargin(totais store.TotaisEventos) Margin {
	lucroTotal := totais.ReceitaTotal - totais.CustoTotal

	var margem float64
	if totais.ReceitaTotal > 0 {
		margem = float64(lucroTotal) / float64(totais.ReceitaTotal) * 100
	}

	return Margin{
		ReceitaTotal:     totais.ReceitaTotal,
		CustoTotal:       totais.CustoTotal,
		LucroTotal:       lucroTotal,
		MargemPercentual: margem,
	}
}

// buildCashflow merges both sides over the union of their due dates, sorted
// ascending; a date present on only one side reports zero for the other.
func buildCashflow(fluxoReceitas, fluxoDespesas []store.DiaTotal) []CashflowPoint {
	receitaPorDia := make(map[string]int64, len(fluxoReceitas))
	for _, d := range fluxoReceitas {
		receitaPorDia[d.Data.String()] = d.Total
	}
	despesaPorDia := make(map[string]int64, len(fluxoDespesas))
	for _, d := range fluxoDespesas {
		despesaPorDia[d.Data.String()] = d.Total
	}

	datas := make([]string, 0, len(receitaPorDia)+len(despesaPorDia))
	for data := range receitaPorDia {
		datas = append(datas, data)
	}
	for data := range despesaPorDia {
		if _, ok := receitaPorDia[data]; !ok {
			datas = append(datas, data)
		}
	}
	sort.Strings(datas)

	projection := make([]CashflowPoint, 0, len(datas))
	for _, data := range datas {
		projection = append(projection, CashflowPoint{
			Date:    data,
			Receita: receitaPorDia[data],
			Despesa: despesaPorDia[data],
		})
	}
	return projection
}
