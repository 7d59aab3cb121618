package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	tests := []struct {
		name   string
		status OrderStatus
		want   bool
	}{
		{"pending", OrderStatusPending, true},
		{"processing", OrderStatusProcessing, true},
		{"shipped", OrderStatusShipped, true},
		{"delivered", OrderStatusDelivered, true},
		{"cancelled", OrderStatusCancelled, true},
		{"unknown", OrderStatus("refunded"), false},
		{"empty", OrderStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Valid())
		})
	}
}

func TestOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"pending to processing", OrderStatusPending, OrderStatusProcessing, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending to shipped skips processing", OrderStatusPending, OrderStatusShipped, false},
		{"processing to shipped", OrderStatusProcessing, OrderStatusShipped, true},
		{"processing to cancelled", OrderStatusProcessing, OrderStatusCancelled, true},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"shipped to cancelled", OrderStatusShipped, OrderStatusCancelled, false},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusProcessing, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPending, false},
		{"no backwards transition", OrderStatusShipped, OrderStatusProcessing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatusCanCancel(t *testing.T) {
	assert.True(t, OrderStatusPending.CanCancel())
	assert.True(t, OrderStatusProcessing.CanCancel())
	assert.False(t, OrderStatusShipped.CanCancel())
	assert.False(t, OrderStatusDelivered.CanCancel())
	assert.False(t, OrderStatusCancelled.CanCancel())
}
