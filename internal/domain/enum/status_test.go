package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, StatusPaid, Normalize("  PAID "))
	assert.Equal(t, StatusCanceled, Normalize("Canceled"))
	assert.Equal(t, Status(""), Normalize(""))
}

func TestStatusSets(t *testing.T) {
	assert.Equal(t, []string{"booked", "paid", "dispatched", "packed", "delivered"}, ConfirmedBookingStatuses())
	assert.Equal(t, []string{"pending", "booked"}, PipelineQuotationStatuses())
	assert.NotContains(t, ConfirmedBookingStatuses(), StatusCanceled.String())
	assert.NotContains(t, PipelineQuotationStatuses(), StatusCanceled.String())
}
