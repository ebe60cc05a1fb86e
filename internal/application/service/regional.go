package service

import (
	"strings"

	"github.com/sangkips/sales-analytics-api/internal/domain/enum"
	"github.com/sangkips/sales-analytics-api/internal/domain/repository"
	"github.com/sangkips/sales-analytics-api/pkg/numeric"
	"github.com/shopspring/decimal"
)

type districtTotals struct {
	bookingCount    int64
	quotationCount  int64
	bookingAmount   decimal.Decimal
	quotationAmount decimal.Decimal
}

// districtMerger accumulates booking and quotation sums per district. Districts
// are emitted in the order they were first seen.
type districtMerger struct {
	totals map[string]*districtTotals
	order  []string
}

func newDistrictMerger() *districtMerger {
	return &districtMerger{totals: make(map[string]*districtTotals)}
}

func (m *districtMerger) entry(district *string) *districtTotals {
	key := unknownLabel
	if district != nil && strings.TrimSpace(*district) != "" {
		key = strings.TrimSpace(*district)
	}

	t, ok := m.totals[key]
	if !ok {
		t = &districtTotals{}
		m.totals[key] = t
		m.order = append(m.order, key)
	}
	return t
}

func (m *districtMerger) add(row repository.DistrictTotalRow) {
	switch row.Source {
	case enum.SourceBooking:
		t := m.entry(row.District)
		t.bookingCount += numeric.AsInt(row.Count)
		t.bookingAmount = t.bookingAmount.Add(numeric.Decimal(row.TotalAmount))
	case enum.SourceQuotation:
		t := m.entry(row.District)
		t.quotationCount += numeric.AsInt(row.Count)
		t.quotationAmount = t.quotationAmount.Add(numeric.Decimal(row.TotalAmount))
	}
}

func (m *districtMerger) result() []CityDemand {
	cities := make([]CityDemand, 0, len(m.order))
	for _, district := range m.order {
		t := m.totals[district]
		cities = append(cities, CityDemand{
			District:        district,
			BookingCount:    t.bookingCount,
			QuotationCount:  t.quotationCount,
			BookingAmount:   numeric.Float(t.bookingAmount),
			QuotationAmount: numeric.Float(t.quotationAmount),
		})
	}
	return cities
}

// MergeDistrictDemand combines confirmed booking and pipeline quotation sums
// into one entry per district. A district seen in only one source gets zero
// for the other; a missing district is reported as Unknown. Rows from an
// unrecognized source are ignored.
func MergeDistrictDemand(rows []repository.DistrictTotalRow) []CityDemand {
	merger := newDistrictMerger()
	for _, row := range rows {
		merger.add(row)
	}
	return merger.result()
}
