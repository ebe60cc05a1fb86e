package service

import (
	"context"
	"sync"

	"github.com/sangkips/sales-analytics-api/internal/domain/repository"
)

// ============================================================================
// FAKE ANALYTICS REPOSITORY
// ============================================================================

type fakeAnalyticsRepo struct {
	products      []repository.ProductQuantityRow
	districts     []repository.DistrictTotalRow
	trends        []repository.MonthlyTrendRow
	profitability repository.ProfitabilityRow
	statuses      []repository.StatusTotalRow
	customerTypes []repository.CustomerTypeRow
	cancellations []repository.CancellationRow
	malformed     []repository.MalformedProductRow

	// Error injection and blocking per query
	errs  map[repository.QueryName]error
	block map[repository.QueryName]bool

	mu    sync.Mutex
	calls map[repository.QueryName]int
}

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{
		errs:  make(map[repository.QueryName]error),
		block: make(map[repository.QueryName]bool),
		calls: make(map[repository.QueryName]int),
	}
}

func (f *fakeAnalyticsRepo) enter(ctx context.Context, name repository.QueryName) error {
	f.mu.Lock()
	f.calls[name]++
	err := f.errs[name]
	block := f.block[name]
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (f *fakeAnalyticsRepo) callCount(name repository.QueryName) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAnalyticsRepo) ProductQuantities(ctx context.Context) ([]repository.ProductQuantityRow, error) {
	if err := f.enter(ctx, repository.QueryProducts); err != nil {
		return nil, err
	}
	return f.products, nil
}

func (f *fakeAnalyticsRepo) DistrictTotals(ctx context.Context) ([]repository.DistrictTotalRow, error) {
	if err := f.enter(ctx, repository.QueryDistrictTotals); err != nil {
		return nil, err
	}
	return f.districts, nil
}

func (f *fakeAnalyticsRepo) MonthlyTrends(ctx context.Context) ([]repository.MonthlyTrendRow, error) {
	if err := f.enter(ctx, repository.QueryMonthlyTrends); err != nil {
		return nil, err
	}
	return f.trends, nil
}

func (f *fakeAnalyticsRepo) ProfitabilityTotals(ctx context.Context) (repository.ProfitabilityRow, error) {
	if err := f.enter(ctx, repository.QueryProfitability); err != nil {
		return repository.ProfitabilityRow{}, err
	}
	return f.profitability, nil
}

func (f *fakeAnalyticsRepo) QuotationStatusTotals(ctx context.Context) ([]repository.StatusTotalRow, error) {
	if err := f.enter(ctx, repository.QueryQuotationStatus); err != nil {
		return nil, err
	}
	return f.statuses, nil
}

func (f *fakeAnalyticsRepo) CustomerTypeTotals(ctx context.Context) ([]repository.CustomerTypeRow, error) {
	if err := f.enter(ctx, repository.QueryCustomerTypes); err != nil {
		return nil, err
	}
	return f.customerTypes, nil
}

func (f *fakeAnalyticsRepo) Cancellations(ctx context.Context) ([]repository.CancellationRow, error) {
	if err := f.enter(ctx, repository.QueryCancellations); err != nil {
		return nil, err
	}
	return f.cancellations, nil
}

func (f *fakeAnalyticsRepo) MalformedProductCounts(ctx context.Context) ([]repository.MalformedProductRow, error) {
	if err := f.enter(ctx, repository.QueryMalformedProduct); err != nil {
		return nil, err
	}
	return f.malformed, nil
}

func ptr(s string) *string { return &s }
