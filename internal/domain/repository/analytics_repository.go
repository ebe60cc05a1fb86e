package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sangkips/sales-analytics-api/internal/domain/enum"
)

// Numeric columns are carried as the store's text rendering so that NULLs and
// unparsable values survive until normalization.

// ProductQuantityRow is one product line item taken from a confirmed booking
type ProductQuantityRow struct {
	ProductName *string `gorm:"column:productname"`
	Quantity    *string `gorm:"column:quantity"`
}

// DistrictTotalRow holds per-district sums from one source table
type DistrictTotalRow struct {
	Source      enum.Source `gorm:"column:source"`
	District    *string     `gorm:"column:district"`
	Count       *string     `gorm:"column:count"`
	TotalAmount *string     `gorm:"column:total_amount"`
}

// MonthlyTrendRow holds confirmed booking sums for one calendar month (YYYY-MM)
type MonthlyTrendRow struct {
	Month       string  `gorm:"column:month"`
	Volume      *string `gorm:"column:volume"`
	TotalAmount *string `gorm:"column:total_amount"`
	AmountPaid  *string `gorm:"column:amount_paid"`
}

// ProfitabilityRow holds confirmed booking sums across the whole dataset
type ProfitabilityRow struct {
	TotalAmount *string `gorm:"column:total_amount"`
	AmountPaid  *string `gorm:"column:amount_paid"`
}

// StatusTotalRow holds quotation sums for one lower-cased status
type StatusTotalRow struct {
	Status      *string `gorm:"column:status"`
	Count       *string `gorm:"column:count"`
	TotalAmount *string `gorm:"column:total_amount"`
}

// CustomerTypeRow holds confirmed booking sums for one customer type
type CustomerTypeRow struct {
	CustomerType *string `gorm:"column:customer_type"`
	Count        *string `gorm:"column:count"`
	TotalAmount  *string `gorm:"column:total_amount"`
}

// CancellationRow is one canceled booking or quotation
type CancellationRow struct {
	Type      enum.Source `gorm:"column:type"`
	OrderID   *string     `gorm:"column:order_id"`
	Total     *string     `gorm:"column:total"`
	CreatedAt time.Time   `gorm:"column:created_at"`
}

// MalformedProductRow counts rows of one source whose products column is not
// a JSON array
type MalformedProductRow struct {
	Source    enum.Source `gorm:"column:source"`
	Malformed *string     `gorm:"column:malformed"`
}

// QueryName identifies one analytical query
type QueryName string

const (
	QueryProducts         QueryName = "products"
	QueryDistrictTotals   QueryName = "district_totals"
	QueryMonthlyTrends    QueryName = "monthly_trends"
	QueryProfitability    QueryName = "profitability"
	QueryQuotationStatus  QueryName = "quotation_status"
	QueryCustomerTypes    QueryName = "customer_types"
	QueryCancellations    QueryName = "cancellations"
	QueryMalformedProduct QueryName = "malformed_products"
)

// QueryError reports a failed analytical query
type QueryError struct {
	Query QueryName
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("sales analytics query %q: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError wraps err with the query name and the caller's stack
func NewQueryError(query QueryName, err error) error {
	return errors.WithStackDepth(&QueryError{Query: query, Err: err}, 1)
}

// AnalyticsRepository defines the read-only queries behind the sales analysis.
// Implementations never modify data.
type AnalyticsRepository interface {
	// ProductQuantities returns every product line item of confirmed bookings
	// that carries both a name and a quantity key
	ProductQuantities(ctx context.Context) ([]ProductQuantityRow, error)

	// DistrictTotals returns per-district count and amount for confirmed
	// bookings and pipeline quotations, tagged by source
	DistrictTotals(ctx context.Context) ([]DistrictTotalRow, error)

	// MonthlyTrends returns confirmed booking sums per month, oldest first
	MonthlyTrends(ctx context.Context) ([]MonthlyTrendRow, error)

	// ProfitabilityTotals returns confirmed booking sums across all rows
	ProfitabilityTotals(ctx context.Context) (ProfitabilityRow, error)

	// QuotationStatusTotals returns quotation count and amount per status
	QuotationStatusTotals(ctx context.Context) ([]StatusTotalRow, error)

	// CustomerTypeTotals returns confirmed booking count and amount per
	// non-null customer type
	CustomerTypeTotals(ctx context.Context) ([]CustomerTypeRow, error)

	// Cancellations returns canceled bookings and quotations, newest first
	Cancellations(ctx context.Context) ([]CancellationRow, error)

	// MalformedProductCounts returns, per source, how many rows hold a
	// products value that is not a JSON array
	MalformedProductCounts(ctx context.Context) ([]MalformedProductRow, error)
}
