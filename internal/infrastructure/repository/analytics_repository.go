package repository

import (
	"context"

	"github.com/sangkips/sales-analytics-api/internal/domain/enum"
	domainRepo "github.com/sangkips/sales-analytics-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// scan runs a read-only raw query into dest and tags any failure with the
// query name.
func (r *analyticsRepository) scan(ctx context.Context, name domainRepo.QueryName, dest interface{}, query string, args ...interface{}) error {
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(dest).Error; err != nil {
		return domainRepo.NewQueryError(name, err)
	}
	return nil
}

func (r *analyticsRepository) ProductQuantities(ctx context.Context) ([]domainRepo.ProductQuantityRow, error) {
	results := []domainRepo.ProductQuantityRow{}

	// Non-array products values expand to no items instead of failing the query
	err := r.scan(ctx, domainRepo.QueryProducts, &results, `
		SELECT
			item->>'productname' AS productname,
			item->>'quantity' AS quantity
		FROM bookings b
		CROSS JOIN LATERAL jsonb_array_elements(
			CASE WHEN jsonb_typeof(b.products) = 'array' THEN b.products ELSE '[]'::jsonb END
		) AS item
		WHERE LOWER(b.status) IN ?
		AND jsonb_typeof(item) = 'object'
		AND jsonb_exists(item, 'productname')
		AND jsonb_exists(item, 'quantity')
	`, enum.ConfirmedBookingStatuses())
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) DistrictTotals(ctx context.Context) ([]domainRepo.DistrictTotalRow, error) {
	results := []domainRepo.DistrictTotalRow{}

	err := r.scan(ctx, domainRepo.QueryDistrictTotals, &results, `
		SELECT
			'booking' AS source,
			district,
			COUNT(*)::text AS count,
			SUM(total_amount)::text AS total_amount
		FROM bookings
		WHERE LOWER(status) IN ?
		GROUP BY district
		UNION ALL
		SELECT
			'quotation' AS source,
			district,
			COUNT(*)::text AS count,
			SUM(total_amount)::text AS total_amount
		FROM quotations
		WHERE LOWER(status) IN ?
		GROUP BY district
		ORDER BY source, district
	`, enum.ConfirmedBookingStatuses(), enum.PipelineQuotationStatuses())
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) MonthlyTrends(ctx context.Context) ([]domainRepo.MonthlyTrendRow, error) {
	results := []domainRepo.MonthlyTrendRow{}

	err := r.scan(ctx, domainRepo.QueryMonthlyTrends, &results, `
		SELECT
			to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
			COUNT(*)::text AS volume,
			SUM(total_amount)::text AS total_amount,
			SUM(amount_paid)::text AS amount_paid
		FROM bookings
		WHERE LOWER(status) IN ?
		GROUP BY 1
		ORDER BY 1
	`, enum.ConfirmedBookingStatuses())
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) ProfitabilityTotals(ctx context.Context) (domainRepo.ProfitabilityRow, error) {
	var result domainRepo.ProfitabilityRow

	err := r.scan(ctx, domainRepo.QueryProfitability, &result, `
		SELECT
			SUM(total_amount)::text AS total_amount,
			SUM(amount_paid)::text AS amount_paid
		FROM bookings
		WHERE LOWER(status) IN ?
	`, enum.ConfirmedBookingStatuses())

	return result, err
}

func (r *analyticsRepository) QuotationStatusTotals(ctx context.Context) ([]domainRepo.StatusTotalRow, error) {
	results := []domainRepo.StatusTotalRow{}

	err := r.scan(ctx, domainRepo.QueryQuotationStatus, &results, `
		SELECT
			LOWER(status) AS status,
			COUNT(*)::text AS count,
			SUM(total_amount)::text AS total_amount
		FROM quotations
		GROUP BY LOWER(status)
		ORDER BY 1
	`)
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) CustomerTypeTotals(ctx context.Context) ([]domainRepo.CustomerTypeRow, error) {
	results := []domainRepo.CustomerTypeRow{}

	err := r.scan(ctx, domainRepo.QueryCustomerTypes, &results, `
		SELECT
			customer_type,
			COUNT(*)::text AS count,
			SUM(total_amount)::text AS total_amount
		FROM bookings
		WHERE LOWER(status) IN ? AND customer_type IS NOT NULL
		GROUP BY customer_type
		ORDER BY customer_type
	`, enum.ConfirmedBookingStatuses())
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) Cancellations(ctx context.Context) ([]domainRepo.CancellationRow, error) {
	results := []domainRepo.CancellationRow{}

	err := r.scan(ctx, domainRepo.QueryCancellations, &results, `
		SELECT
			'booking' AS type,
			order_id,
			total_amount::text AS total,
			created_at
		FROM bookings
		WHERE LOWER(status) = ?
		UNION ALL
		SELECT
			'quotation' AS type,
			quotation_id AS order_id,
			total_amount::text AS total,
			created_at
		FROM quotations
		WHERE LOWER(status) = ?
		ORDER BY created_at DESC, type, order_id
	`, enum.StatusCanceled.String(), enum.StatusCanceled.String())
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) MalformedProductCounts(ctx context.Context) ([]domainRepo.MalformedProductRow, error) {
	results := []domainRepo.MalformedProductRow{}

	err := r.scan(ctx, domainRepo.QueryMalformedProduct, &results, `
		SELECT
			'booking' AS source,
			COUNT(*)::text AS malformed
		FROM bookings
		WHERE LOWER(status) IN ?
		AND products IS NOT NULL
		AND jsonb_typeof(products) <> 'array'
		UNION ALL
		SELECT
			'quotation' AS source,
			COUNT(*)::text AS malformed
		FROM quotations
		WHERE LOWER(status) IN ?
		AND products IS NOT NULL
		AND jsonb_typeof(products) <> 'array'
	`, enum.ConfirmedBookingStatuses(), enum.PipelineQuotationStatuses())
	if err != nil {
		return nil, err
	}

	return results, nil
}
