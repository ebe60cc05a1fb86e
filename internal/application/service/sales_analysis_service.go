package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sangkips/sales-analytics-api/internal/domain/enum"
	"github.com/sangkips/sales-analytics-api/internal/domain/repository"
	"github.com/sangkips/sales-analytics-api/internal/observability"
	"github.com/sangkips/sales-analytics-api/pkg/apperror"
	"golang.org/x/sync/errgroup"
)

// AnalysisOptions tunes how the analytical queries are dispatched
type AnalysisOptions struct {
	// QueryTimeout bounds each query; zero means no per-query timeout
	QueryTimeout time.Duration
	// MaxParallelQueries caps concurrent queries; 1 runs them one after
	// another and zero or less means no cap
	MaxParallelQueries int
}

// SalesAnalysisService builds the consolidated sales report
type SalesAnalysisService struct {
	analyticsRepo repository.AnalyticsRepository
	opts          AnalysisOptions
	logger        *slog.Logger
	metrics       *observability.Metrics
}

// NewSalesAnalysisService creates a new sales analysis service
func NewSalesAnalysisService(
	analyticsRepo repository.AnalyticsRepository,
	opts AnalysisOptions,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *SalesAnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SalesAnalysisService{
		analyticsRepo: analyticsRepo,
		opts:          opts,
		logger:        logger,
		metrics:       metrics,
	}
}

// rawAnalysis holds the result set of every query. Each field is written by
// exactly one query goroutine and read only after the group has finished.
type rawAnalysis struct {
	products      []repository.ProductQuantityRow
	districts     []repository.DistrictTotalRow
	trends        []repository.MonthlyTrendRow
	profitability repository.ProfitabilityRow
	statuses      []repository.StatusTotalRow
	customerTypes []repository.CustomerTypeRow
	cancellations []repository.CancellationRow
	malformed     []repository.MalformedProductRow
}

// GetSalesAnalysis runs every analytical query and assembles the report. If
// any query fails no report is returned.
func (s *SalesAnalysisService) GetSalesAnalysis(ctx context.Context) (*SalesAnalysis, error) {
	raw, err := s.fetch(ctx)
	if err != nil {
		s.logFailure(ctx, err)
		return nil, apperror.NewInternalError("Failed to compute sales analysis", err)
	}

	s.recordDataQuality(ctx, SummarizeDataQuality(raw.malformed))

	quotations, unrecognized := AggregateQuotationStatuses(raw.statuses)
	if len(unrecognized) > 0 {
		s.metrics.AddUnrecognizedStatuses(len(unrecognized))
		for _, row := range unrecognized {
			s.logger.DebugContext(ctx, "quotation status outside conversion buckets",
				"status", derefString(row.Status),
				"count", derefString(row.Count),
			)
		}
	}

	return &SalesAnalysis{
		Products:      AggregateProducts(raw.products),
		Cities:        MergeDistrictDemand(raw.districts),
		Trends:        AggregateTrends(raw.trends),
		Profitability: AggregateProfitability(raw.profitability),
		Quotations:    quotations,
		CustomerTypes: AggregateCustomerTypes(raw.customerTypes),
		Cancellations: AggregateCancellations(raw.cancellations),
	}, nil
}

func (s *SalesAnalysisService) fetch(ctx context.Context) (*rawAnalysis, error) {
	raw := &rawAnalysis{}

	g, gctx := errgroup.WithContext(ctx)
	if s.opts.MaxParallelQueries > 0 {
		g.SetLimit(s.opts.MaxParallelQueries)
	}

	s.dispatch(gctx, g, repository.QueryProducts, func(ctx context.Context) (err error) {
		raw.products, err = s.analyticsRepo.ProductQuantities(ctx)
		return err
	})
	s.dispatch(gctx, g, repository.QueryDistrictTotals, func(ctx context.Context) (err error) {
		raw.districts, err = s.analyticsRepo.DistrictTotals(ctx)
		return err
	})
	s.dispatch(gctx, g, repository.QueryMonthlyTrends, func(ctx context.Context) (err error) {
		raw.trends, err = s.analyticsRepo.MonthlyTrends(ctx)
		return err
	})
	s.dispatch(gctx, g, repository.QueryProfitability, func(ctx context.Context) (err error) {
		raw.profitability, err = s.analyticsRepo.ProfitabilityTotals(ctx)
		return err
	})
	s.dispatch(gctx, g, repository.QueryQuotationStatus, func(ctx context.Context) (err error) {
		raw.statuses, err = s.analyticsRepo.QuotationStatusTotals(ctx)
		return err
	})
	s.dispatch(gctx, g, repository.QueryCustomerTypes, func(ctx context.Context) (err error) {
		raw.customerTypes, err = s.analyticsRepo.CustomerTypeTotals(ctx)
		return err
	})
	s.dispatch(gctx, g, repository.QueryCancellations, func(ctx context.Context) (err error) {
		raw.cancellations, err = s.analyticsRepo.Cancellations(ctx)
		return err
	})
	s.dispatch(gctx, g, repository.QueryMalformedProduct, func(ctx context.Context) (err error) {
		raw.malformed, err = s.analyticsRepo.MalformedProductCounts(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *SalesAnalysisService) dispatch(ctx context.Context, g *errgroup.Group, name repository.QueryName, run func(context.Context) error) {
	g.Go(func() error {
		qctx := ctx
		if s.opts.QueryTimeout > 0 {
			var cancel context.CancelFunc
			qctx, cancel = context.WithTimeout(ctx, s.opts.QueryTimeout)
			defer cancel()
		}

		start := time.Now()
		err := run(qctx)
		s.metrics.ObserveQuery(string(name), time.Since(start), queryOutcome(ctx, err))
		if err != nil {
			var queryErr *repository.QueryError
			if !errors.As(err, &queryErr) {
				err = repository.NewQueryError(name, err)
			}
			return err
		}
		return nil
	})
}

// queryOutcome classifies a finished query. A cancellation caused by the group
// or the caller is not the query's own failure.
func queryOutcome(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return observability.OutcomeOK
	case ctx.Err() != nil && errors.Is(err, context.Canceled):
		return observability.OutcomeCanceled
	default:
		return observability.OutcomeError
	}
}

func (s *SalesAnalysisService) recordDataQuality(ctx context.Context, quality DataQuality) {
	s.metrics.SetMalformedProducts(string(enum.SourceBooking), quality.BookingsMalformed)
	s.metrics.SetMalformedProducts(string(enum.SourceQuotation), quality.QuotationsMalformed)

	if quality.Total() > 0 {
		s.logger.WarnContext(ctx, "products column is not a JSON array",
			"bookings", quality.BookingsMalformed,
			"quotations", quality.QuotationsMalformed,
		)
	}
}

func (s *SalesAnalysisService) logFailure(ctx context.Context, err error) {
	attrs := []any{
		"error", err.Error(),
		"trace", fmt.Sprintf("%+v", err),
	}
	var queryErr *repository.QueryError
	if errors.As(err, &queryErr) {
		attrs = append(attrs, "query", string(queryErr.Query))
	}
	s.logger.ErrorContext(ctx, "sales analysis failed", attrs...)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
