package enum

import "strings"

// Status is a booking or quotation status as stored. Stored values are not
// consistently cased, so compare through Normalize.
type Status string

const (
	StatusPending    Status = "pending"
	StatusBooked     Status = "booked"
	StatusPaid       Status = "paid"
	StatusDispatched Status = "dispatched"
	StatusPacked     Status = "packed"
	StatusDelivered  Status = "delivered"
	StatusCanceled   Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

// Normalize lower-cases and trims a raw status value.
func Normalize(raw string) Status {
	return Status(strings.ToLower(strings.TrimSpace(raw)))
}

// ConfirmedBookingStatuses are the statuses of a booking that counts as a
// confirmed order.
func ConfirmedBookingStatuses() []string {
	return []string{
		StatusBooked.String(),
		StatusPaid.String(),
		StatusDispatched.String(),
		StatusPacked.String(),
		StatusDelivered.String(),
	}
}

// PipelineQuotationStatuses are the statuses of a quotation that is still in
// the sales pipeline.
func PipelineQuotationStatuses() []string {
	return []string{
		StatusPending.String(),
		StatusBooked.String(),
	}
}

// Source identifies which table a row came from.
type Source string

const (
	SourceBooking   Source = "booking"
	SourceQuotation Source = "quotation"
)
