package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// SummaryUseCase genera el resumen del día y del mes en curso.
type SummaryUseCase struct {
	now func() time.Time
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase() *SummaryUseCase {
	return &SummaryUseCase{now: time.Now}
}

// GetSummary tres lecturas en paralelo: indicadores, resultado de hoy y del mes.
func (uc *SummaryUseCase) GetSummary(ctx context.Context, src Source) (*dto.SummaryDTO, error) {
	now := uc.now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	type plResult struct {
		pl  *entity.ProfitLoss
		err error
	}
	type statsResult struct {
		st  *entity.DashboardStats
		err error
	}

	todayCh := make(chan plResult, 1)
	monthCh := make(chan plResult, 1)
	statsCh := make(chan statsResult, 1)

	go func() {
		pl, err := src.ProfitLoss(ctx, todayStart, tomorrow)
		todayCh <- plResult{pl, err}
	}()
	go func() {
		pl, err := src.ProfitLoss(ctx, monthStart, tomorrow)
		monthCh <- plResult{pl, err}
	}()
	go func() {
		st, err := src.DashboardStats(ctx)
		statsCh <- statsResult{st, err}
	}()

	today, month, stats := <-todayCh, <-monthCh, <-statsCh
	if today.err != nil {
		return nil, fmt.Errorf("summary: resultado de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("summary: resultado del mes: %w", month.err)
	}
	if stats.err != nil {
		return nil, fmt.Errorf("summary: indicadores: %w", stats.err)
	}

	out := &dto.SummaryDTO{DateLabel: fmt.Sprintf("%s %d", now.Month(), now.Year())}
	if stats.st != nil {
		out.Stats = *stats.st
	}
	if today.pl != nil {
		out.Today = *today.pl
	}
	if month.pl != nil {
		out.Month = *month.pl
	}
	return out, nil
}
