package service

import (
	"sort"
	"strings"

	"github.com/sangkips/sales-analytics-api/internal/domain/enum"
	"github.com/sangkips/sales-analytics-api/internal/domain/repository"
	"github.com/sangkips/sales-analytics-api/pkg/numeric"
	"github.com/shopspring/decimal"
)

const unknownLabel = "Unknown"

// AggregateProducts sums quantities per trimmed product name, skipping blank
// names, and orders the result by quantity descending. Products with equal
// quantities keep the order in which they were first seen.
func AggregateProducts(rows []repository.ProductQuantityRow) []ProductSales {
	index := make(map[string]int)
	products := make([]ProductSales, 0)

	for _, row := range rows {
		if row.ProductName == nil {
			continue
		}
		name := strings.TrimSpace(*row.ProductName)
		if name == "" {
			continue
		}

		i, ok := index[name]
		if !ok {
			i = len(products)
			index[name] = i
			products = append(products, ProductSales{ProductName: name})
		}
		products[i].Quantity += numeric.AsInt(row.Quantity)
	}

	sort.SliceStable(products, func(a, b int) bool {
		return products[a].Quantity > products[b].Quantity
	})
	return products
}

// AggregateTrends settles paid against total for every month and orders the
// points chronologically.
func AggregateTrends(rows []repository.MonthlyTrendRow) []TrendPoint {
	points := make([]TrendPoint, 0, len(rows))

	for _, row := range rows {
		total, paid, unpaid := numeric.Settle(numeric.Decimal(row.TotalAmount), numeric.Decimal(row.AmountPaid))
		points = append(points, TrendPoint{
			Month:        strings.TrimSpace(row.Month),
			Volume:       numeric.AsInt(row.Volume),
			TotalAmount:  numeric.Float(total),
			AmountPaid:   numeric.Float(paid),
			UnpaidAmount: numeric.Float(unpaid),
		})
	}

	// YYYY-MM sorts chronologically as text
	sort.SliceStable(points, func(a, b int) bool {
		return points[a].Month < points[b].Month
	})
	return points
}

// AggregateProfitability settles paid against total for the whole dataset.
func AggregateProfitability(row repository.ProfitabilityRow) Profitability {
	total, paid, unpaid := numeric.Settle(numeric.Decimal(row.TotalAmount), numeric.Decimal(row.AmountPaid))
	return Profitability{
		TotalAmount:  numeric.Float(total),
		AmountPaid:   numeric.Float(paid),
		UnpaidAmount: numeric.Float(unpaid),
	}
}

// AggregateQuotationStatuses buckets quotation totals into pending, booked and
// canceled. Rows with any other status are left out of every bucket and
// returned as unrecognized.
func AggregateQuotationStatuses(rows []repository.StatusTotalRow) (QuotationBuckets, []repository.StatusTotalRow) {
	totals := map[enum.Status]*statusTotal{
		enum.StatusPending:  {},
		enum.StatusBooked:   {},
		enum.StatusCanceled: {},
	}
	var unrecognized []repository.StatusTotalRow

	for _, row := range rows {
		var status enum.Status
		if row.Status != nil {
			status = enum.Normalize(*row.Status)
		}

		total, ok := totals[status]
		if !ok {
			unrecognized = append(unrecognized, row)
			continue
		}
		total.count += numeric.AsInt(row.Count)
		total.amount = total.amount.Add(numeric.Decimal(row.TotalAmount))
	}

	return QuotationBuckets{
		Pending:  totals[enum.StatusPending].bucket(),
		Booked:   totals[enum.StatusBooked].bucket(),
		Canceled: totals[enum.StatusCanceled].bucket(),
	}, unrecognized
}

type statusTotal struct {
	count  int64
	amount decimal.Decimal
}

func (t *statusTotal) bucket() StatusBucket {
	return StatusBucket{Count: t.count, TotalAmount: numeric.Float(t.amount)}
}

// AggregateCustomerTypes passes segment totals through, labelling a missing
// segment as Unknown.
func AggregateCustomerTypes(rows []repository.CustomerTypeRow) []CustomerSegment {
	segments := make([]CustomerSegment, 0, len(rows))

	for _, row := range rows {
		label := unknownLabel
		if row.CustomerType != nil && strings.TrimSpace(*row.CustomerType) != "" {
			label = *row.CustomerType
		}
		segments = append(segments, CustomerSegment{
			CustomerType: label,
			Count:        numeric.AsInt(row.Count),
			TotalAmount:  numeric.AsAmount(row.TotalAmount),
		})
	}

	return segments
}

// AggregateCancellations normalizes cancellation amounts, keeping the input
// order (newest first).
func AggregateCancellations(rows []repository.CancellationRow) []Cancellation {
	cancellations := make([]Cancellation, 0, len(rows))

	for _, row := range rows {
		cancellations = append(cancellations, Cancellation{
			Type:      string(row.Type),
			OrderID:   row.OrderID,
			Total:     numeric.AsAmount(row.Total),
			CreatedAt: row.CreatedAt,
		})
	}

	return cancellations
}

// SummarizeDataQuality folds the per-source malformed counts into one value.
func SummarizeDataQuality(rows []repository.MalformedProductRow) DataQuality {
	var quality DataQuality

	for _, row := range rows {
		switch row.Source {
		case enum.SourceBooking:
			quality.BookingsMalformed += numeric.AsInt(row.Malformed)
		case enum.SourceQuotation:
			quality.QuotationsMalformed += numeric.AsInt(row.Malformed)
		}
	}

	return quality
}
