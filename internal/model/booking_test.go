package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingCanTransition(t *testing.T) {
	assert.True(t, BookingCanTransition(BookingStatusPending, BookingStatusConfirmed))
	assert.True(t, BookingCanTransition(BookingStatusPending, BookingStatusDenied))

	// 已处理的预订不能再流转
	assert.False(t, BookingCanTransition(BookingStatusConfirmed, BookingStatusDenied))
	assert.False(t, BookingCanTransition(BookingStatusDenied, BookingStatusConfirmed))
	assert.False(t, BookingCanTransition(BookingStatusConfirmed, BookingStatusPending))
}
