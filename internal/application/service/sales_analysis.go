package service

import "time"

// SalesAnalysis is the consolidated sales report served to dashboards
type SalesAnalysis struct {
	Products      []ProductSales    `json:"products"`
	Cities        []CityDemand      `json:"cities"`
	Trends        []TrendPoint      `json:"trends"`
	Profitability Profitability     `json:"profitability"`
	Quotations    QuotationBuckets  `json:"quotations"`
	CustomerTypes []CustomerSegment `json:"customer_types"`
	Cancellations []Cancellation    `json:"cancellations"`
}

// ProductSales is the quantity sold of one product
type ProductSales struct {
	ProductName string `json:"productname"`
	Quantity    int64  `json:"quantity"`
}

// CityDemand combines confirmed and pipeline demand for one district
type CityDemand struct {
	District        string  `json:"district"`
	BookingCount    int64   `json:"booking_count"`
	QuotationCount  int64   `json:"quotation_count"`
	BookingAmount   float64 `json:"booking_amount"`
	QuotationAmount float64 `json:"quotation_amount"`
}

// TrendPoint represents one calendar month of confirmed bookings
type TrendPoint struct {
	Month        string  `json:"month"`
	Volume       int64   `json:"volume"`
	TotalAmount  float64 `json:"total_amount"`
	AmountPaid   float64 `json:"amount_paid"`
	UnpaidAmount float64 `json:"unpaid_amount"`
}

// Profitability represents collected versus outstanding revenue
type Profitability struct {
	TotalAmount  float64 `json:"total_amount"`
	AmountPaid   float64 `json:"amount_paid"`
	UnpaidAmount float64 `json:"unpaid_amount"`
}

// StatusBucket is the count and value of quotations in one status
type StatusBucket struct {
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

// QuotationBuckets summarizes the quotation pipeline by status
type QuotationBuckets struct {
	Pending  StatusBucket `json:"pending"`
	Booked   StatusBucket `json:"booked"`
	Canceled StatusBucket `json:"canceled"`
}

// CustomerSegment represents confirmed bookings of one customer type
type CustomerSegment struct {
	CustomerType string  `json:"customer_type"`
	Count        int64   `json:"count"`
	TotalAmount  float64 `json:"total_amount"`
}

// Cancellation is a canceled booking or quotation
type Cancellation struct {
	Type      string    `json:"type"`
	OrderID   *string   `json:"order_id"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// DataQuality counts rows whose products column is not a JSON array. It is
// recorded to logs and metrics and not returned to callers.
type DataQuality struct {
	BookingsMalformed   int64
	QuotationsMalformed int64
}

// Total returns the number of malformed rows across both tables
func (q DataQuality) Total() int64 {
	return q.BookingsMalformed + q.QuotationsMalformed
}
